// Package cache keeps computed prime lists in memory so repeated requests
// for the same range are served without sieving again.
//
// # Overview
//
// Generators are pure: the same mode, range end and segment size always
// produce the same list. The primed service exploits that by keying results
// on exactly those three values.
//
//	request ──► Key{mode, end, segment} ──► Store.Get
//	                                          │ miss
//	                                          ▼
//	                                   generate + Store.Put
//
// # Implementations
//
// MemoryStore: map guarded by sync.RWMutex.
//   - Values are copied on Put and on Get, so callers may modify what they
//     hold without affecting the cache
//   - A prime budget bounds the total number of cached primes; a Put that
//     would exceed it evicts older entries first
//   - Nothing is written to disk
//
// # Concurrency
//
// All Store implementations must be safe for concurrent use. MemoryStore
// takes a shared lock for List and Stats and an exclusive one for everything
// else, since lookups update the hit and miss counters.
package cache
