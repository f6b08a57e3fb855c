// Package driver turns a config.Config into a prime list and renders the
// result for the command line and the HTTP service.
package driver

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gookit/color"

	"github.com/dreamware/primegen/internal/config"
	"github.com/dreamware/primegen/internal/sieve"
)

// Options controls how Run reports a result.
type Options struct {
	Color   bool               // Colour the headline and summary
	Verbose bool               // Print digest, elapsed time and host details
	Report  sieve.ProgressFunc // Per-segment notices; nil uses LogProgress when cfg.Progress is set
}

// Result is a finished run.
type Result struct {
	Mode    config.Mode   // Generator that actually ran
	Primes  []uint64      // Ascending primes below the range end
	Elapsed time.Duration // Wall time spent generating
}

// Generate validates cfg and runs the generator it selects.
//
// Progress notices are only produced by the segmented generators, and only
// when progress is non-nil.
//
// Returns:
//   - the ascending primes and the mode that produced them
//   - config.ErrInvalidConfig for an invalid cfg
//   - sieve.ErrRangeTooLarge when the full sieve is asked for more than
//     cfg.MaxFullRange
func Generate(cfg config.Config, progress sieve.ProgressFunc) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	mode := cfg.Effective()
	start := time.Now()

	var (
		primes []uint64
		err    error
	)
	switch mode {
	case config.ModeFull:
		primes, err = sieve.Full(cfg.RangeEnd, cfg.MaxFullRange)
	case config.ModeSegmented:
		primes, err = sieve.Segmented(cfg.RangeEnd, cfg.SegmentSize, progress)
	case config.ModeCarried:
		primes, err = sieve.Carried(cfg.RangeEnd, cfg.SegmentSize, progress)
	default:
		err = fmt.Errorf("%w: unknown mode %q", config.ErrInvalidConfig, mode)
	}
	if err != nil {
		return Result{}, err
	}

	return Result{Mode: mode, Primes: primes, Elapsed: time.Since(start)}, nil
}

// LogProgress writes a progress notice to the standard logger.
func LogProgress(p sieve.Progress) {
	log.Print(p.String())
}

// Run generates the primes described by cfg and writes them to w.
//
// Output:
//
//	Finding Prime Numbers between 2 and 30
//	2, 3, 5, 7, 11, 13, 17, 19, 23, 29
//
// Ranges ending above cfg.ListLimit print only the count:
//
//	Finding Prime Numbers between 2 and 1000000
//	78498 primes found under 1000000
func Run(w io.Writer, cfg config.Config, opts Options) (Result, error) {
	report := opts.Report
	if report == nil && cfg.Progress {
		report = LogProgress
	}

	headline := color.New(color.FgCyan, color.OpBold)
	summary := color.New(color.FgGreen)
	if !opts.Color {
		headline, summary = color.Style{}, color.Style{}
	}

	fmt.Fprintln(w, paint(headline, fmt.Sprintf("Finding Prime Numbers between %d and %d", cfg.RangeStart, cfg.RangeEnd)))

	res, err := Generate(cfg, report)
	if err != nil {
		return Result{}, err
	}

	if cfg.RangeEnd > cfg.ListLimit {
		fmt.Fprintln(w, paint(summary, fmt.Sprintf("%d primes found under %d", len(res.Primes), cfg.RangeEnd)))
	} else {
		fmt.Fprintln(w, Join(res.Primes))
	}

	if opts.Verbose {
		host := Host()
		fmt.Fprintf(w, "Mode: %s\n", res.Mode)
		fmt.Fprintf(w, "Elapsed: %.4fs\n", res.Elapsed.Seconds())
		fmt.Fprintf(w, "Verification hash: %s\n", Digest(res.Primes))
		fmt.Fprintf(w, "CPU: %s (%d cores, %d threads)\n", host.CPU, host.PhysicalCores, host.LogicalCores)
	}
	return res, nil
}

// Join renders primes as a comma separated list.
func Join(primes []uint64) string {
	var b strings.Builder
	for i, p := range primes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatUint(p, 10))
	}
	return b.String()
}

func paint(s color.Style, text string) string {
	if len(s) == 0 {
		return text
	}
	return s.Sprint(text)
}
