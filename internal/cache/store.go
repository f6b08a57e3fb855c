package cache

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned when no result is cached under a key
var ErrNotFound = errors.New("result not cached")

// ErrTooLarge is returned when a single result exceeds the store's budget
var ErrTooLarge = errors.New("result exceeds cache budget")

// Key identifies a generation result.
// SegmentSize is zero for the full sieve, where it has no effect.
type Key struct {
	Mode        string
	End         uint64
	SegmentSize uint64
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d/%d", k.Mode, k.End, k.SegmentSize)
}

// Store defines the interface for result caching
// All implementations must be thread-safe for concurrent access
type Store interface {
	// Get retrieves the primes cached for key
	// Returns ErrNotFound if nothing is cached
	Get(key Key) ([]uint64, error)

	// Put caches primes under key, replacing any previous entry
	Put(key Key, primes []uint64) error

	// Delete removes an entry
	// No error if the key doesn't exist
	Delete(key Key) error

	// List returns all cached keys
	// Order is not guaranteed
	List() []Key

	// Stats returns cache statistics
	Stats() StoreStats
}

// StoreStats contains statistics about the store
type StoreStats struct {
	Entries int    `json:"entries"` // Number of cached results
	Primes  int    `json:"primes"`  // Total primes held across all entries
	Budget  int    `json:"budget"`  // Maximum primes held, 0 for unbounded
	Hits    uint64 `json:"hits"`    // Successful lookups
	Misses  uint64 `json:"misses"`  // Failed lookups
}

// MemoryStore implements Store with in-memory storage
// Uses sync.RWMutex for thread-safe concurrent access
type MemoryStore struct {
	mu     sync.RWMutex      // Protects everything below
	data   map[Key][]uint64  // Cached results
	order  []Key             // Insertion order, oldest first
	primes int               // Sum of len(data[k])
	budget int               // Maximum primes held, 0 for unbounded
	hits   uint64
	misses uint64
}

// NewMemoryStore creates a new in-memory store holding at most budget primes
// in total. A budget of 0 means unbounded.
func NewMemoryStore(budget int) *MemoryStore {
	return &MemoryStore{
		data:   make(map[Key][]uint64),
		budget: budget,
	}
}

// Get retrieves the primes cached under key
// Returns a copy of the value to prevent external modification
func (m *MemoryStore) Get(key Key) ([]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, exists := m.data[key]
	if !exists {
		m.misses++
		return nil, ErrNotFound
	}
	m.hits++

	result := make([]uint64, len(value))
	copy(result, value)
	return result, nil
}

// Put caches primes under key
// Makes a copy of the value and evicts the oldest entries while over budget
func (m *MemoryStore) Put(key Key, primes []uint64) error {
	if m.budget > 0 && len(primes) > m.budget {
		return fmt.Errorf("%w: %d primes, budget %d", ErrTooLarge, len(primes), m.budget)
	}

	stored := make([]uint64, len(primes))
	copy(stored, primes)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.remove(key)
	for m.budget > 0 && m.primes+len(stored) > m.budget && len(m.order) > 0 {
		m.remove(m.order[0])
	}

	m.data[key] = stored
	m.order = append(m.order, key)
	m.primes += len(stored)
	return nil
}

// Delete removes an entry
// No error if key doesn't exist (idempotent)
func (m *MemoryStore) Delete(key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.remove(key)
	return nil
}

// List returns all cached keys, oldest first
func (m *MemoryStore) List() []Key {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]Key, len(m.order))
	copy(keys, m.order)
	return keys
}

// Stats returns cache statistics
func (m *MemoryStore) Stats() StoreStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return StoreStats{
		Entries: len(m.data),
		Primes:  m.primes,
		Budget:  m.budget,
		Hits:    m.hits,
		Misses:  m.misses,
	}
}

// remove drops key from the store. Caller must hold the write lock.
func (m *MemoryStore) remove(key Key) {
	value, exists := m.data[key]
	if !exists {
		return
	}
	delete(m.data, key)
	m.primes -= len(value)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
