// Package config holds the run configuration shared by the primegen CLI and
// the primed service.
//
// Values are layered from lowest to highest priority: Build defaults, an
// optional YAML file (Load), environment variables (FromEnv), then whatever
// flags the command applies on top. Validate checks the final result.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dreamware/primegen/internal/sieve"
)

// Mode selects the generator used for a run.
type Mode string

const (
	// ModeFull sieves the whole range in one buffer.
	ModeFull Mode = "full"
	// ModeSegmented uses the trial-division segmented sieve, which skips a
	// partial final segment.
	ModeSegmented Mode = "segmented"
	// ModeCarried uses the segmented sieve that carries multiples across
	// segments and classifies the whole range.
	ModeCarried Mode = "carried"
	// ModeAuto uses ModeFull up to MaxFullRange and ModeCarried above it.
	ModeAuto Mode = "auto"
)

const (
	// DefaultRangeStart is the smallest candidate prime. It is the only
	// supported start.
	DefaultRangeStart uint64 = 2
	// DefaultSegmentSize is the segment width for the segmented modes.
	DefaultSegmentSize uint64 = 100
	// DefaultListLimit is the largest range end for which a run prints every
	// prime instead of only the count.
	DefaultListLimit uint64 = 1000
	// MaxSegmentSize bounds the per-segment buffer.
	MaxSegmentSize uint64 = 1 << 28
)

// Environment variables read by FromEnv.
const (
	EnvRangeEnd     = "PRIMEGEN_RANGE_END"
	EnvSegmentSize  = "PRIMEGEN_SEGMENT_SIZE"
	EnvMode         = "PRIMEGEN_MODE"
	EnvProgress     = "PRIMEGEN_PROGRESS"
	EnvMaxFullRange = "PRIMEGEN_MAX_FULL_RANGE"
)

// ErrInvalidConfig is returned (wrapped) for any configuration that fails
// parsing or validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config describes a single prime generation run.
type Config struct {
	RangeStart   uint64 `yaml:"range_start"`    // First candidate, always 2
	RangeEnd     uint64 `yaml:"range_end"`      // Exclusive upper bound
	SegmentSize  uint64 `yaml:"segment_size"`   // Segment width for segmented modes
	Progress     bool   `yaml:"progress"`       // Report each segment before processing
	Mode         Mode   `yaml:"mode"`           // Generator selection
	MaxFullRange uint64 `yaml:"max_full_range"` // Largest end the full sieve accepts
	ListLimit    uint64 `yaml:"list_limit"`     // Print the list only up to this end
}

// Build returns the default configuration for a run ending at end.
//
// Example:
//
//	cfg := config.Build(1000)
//	// cfg.RangeStart == 2, cfg.SegmentSize == 100
func Build(end uint64) Config {
	return Config{
		RangeStart:   DefaultRangeStart,
		RangeEnd:     end,
		SegmentSize:  DefaultSegmentSize,
		Progress:     true,
		Mode:         ModeFull,
		MaxFullRange: sieve.DefaultMaxFullRange,
		ListLimit:    DefaultListLimit,
	}
}

func (c Config) String() string {
	return fmt.Sprintf("range_start: %d\nrange_end: %d", c.RangeStart, c.RangeEnd)
}

// Load reads a YAML file on top of base. Keys missing from the file keep the
// value they have in base.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// FromEnv applies the PRIMEGEN_* environment variables on top of c. Unset or
// empty variables leave the corresponding field alone.
func FromEnv(c Config) (Config, error) {
	var err error
	if v := getenv(EnvRangeEnd, ""); v != "" {
		if c.RangeEnd, err = parseUint(EnvRangeEnd, v); err != nil {
			return c, err
		}
	}
	if v := getenv(EnvSegmentSize, ""); v != "" {
		if c.SegmentSize, err = parseUint(EnvSegmentSize, v); err != nil {
			return c, err
		}
	}
	if v := getenv(EnvMaxFullRange, ""); v != "" {
		if c.MaxFullRange, err = parseUint(EnvMaxFullRange, v); err != nil {
			return c, err
		}
	}
	if v := getenv(EnvMode, ""); v != "" {
		if c.Mode, err = ParseMode(v); err != nil {
			return c, err
		}
	}
	if v := getenv(EnvProgress, ""); v != "" {
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			return c, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, EnvProgress, v)
		}
		c.Progress = b
	}
	return c, nil
}

// ParseMode converts a mode name, ignoring case and surrounding space.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeFull, ModeSegmented, ModeCarried, ModeAuto:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
}

// Validate reports the first problem with c, if any.
func (c Config) Validate() error {
	if c.RangeStart != DefaultRangeStart {
		return fmt.Errorf("%w: range start must be %d, got %d", ErrInvalidConfig, DefaultRangeStart, c.RangeStart)
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.Mode != ModeFull {
		if c.SegmentSize < 2 {
			return fmt.Errorf("%w: segment size must be at least 2, got %d", ErrInvalidConfig, c.SegmentSize)
		}
		if c.SegmentSize > MaxSegmentSize {
			return fmt.Errorf("%w: segment size %d exceeds %d", ErrInvalidConfig, c.SegmentSize, MaxSegmentSize)
		}
	}
	return nil
}

// Effective resolves ModeAuto to the generator that will actually run.
func (c Config) Effective() Mode {
	if c.Mode != ModeAuto {
		return c.Mode
	}
	limit := c.MaxFullRange
	if limit == 0 {
		limit = sieve.DefaultMaxFullRange
	}
	if c.RangeEnd > limit {
		return ModeCarried
	}
	return ModeFull
}

func parseUint(name, v string) (uint64, error) {
	n, err := strconv.ParseUint(strings.ReplaceAll(v, "_", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an unsigned integer", ErrInvalidConfig, name, v)
	}
	return n, nil
}

// getenv retrieves an environment variable with a default fallback value.
func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
