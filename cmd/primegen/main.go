// Package main implements primegen, a command line tool that prints the
// primes below an upper bound.
//
// Configuration is layered: defaults, then the YAML file given by -config,
// then PRIMEGEN_* environment variables, then explicit flags.
//
// Example usage:
//
//	# Primes below 30
//	primegen -e 30
//
//	# Count primes below ten million with the carried segmented sieve
//	primegen -e 10000000 -m carried -s 65536 -progress=false
//
//	# Ask a running primed service instead of computing locally
//	primegen -e 1000000 -remote http://localhost:8090
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/dreamware/primegen/internal/api"
	"github.com/dreamware/primegen/internal/config"
	"github.com/dreamware/primegen/internal/driver"
	"github.com/dreamware/primegen/internal/sieve"
)

// defaultRangeEnd matches the historical command line default.
const defaultRangeEnd uint64 = 1_000_000

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, executes the request and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("primegen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		end        uint64
		segment    uint64
		maxFull    uint64
		mode       string
		progress   bool
		configPath string
		remote     string
		noColor    bool
		verbose    bool
	)
	fs.Uint64Var(&end, "e", defaultRangeEnd, "the maximum number to search for primes under")
	fs.Uint64Var(&end, "range-end", defaultRangeEnd, "alias for -e")
	fs.Uint64Var(&segment, "s", config.DefaultSegmentSize, "segment size for the segmented modes")
	fs.Uint64Var(&maxFull, "max-full", 0, "largest range end the full sieve accepts")
	fs.StringVar(&mode, "m", string(config.ModeFull), "generator: full, segmented, carried or auto")
	fs.BoolVar(&progress, "progress", true, "report each segment before processing it")
	fs.StringVar(&configPath, "config", "", "YAML configuration file")
	fs.StringVar(&remote, "remote", "", "base URL of a primed service to query instead of computing locally")
	fs.BoolVar(&noColor, "no-color", false, "disable coloured output")
	fs.BoolVar(&verbose, "v", false, "print mode, timing, verification hash and CPU details")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger := log.New(stderr, "", log.LstdFlags)

	cfg := config.Build(defaultRangeEnd)
	var err error
	if configPath != "" {
		if cfg, err = config.Load(configPath, cfg); err != nil {
			logger.Printf("config: %v", err)
			return 1
		}
	}
	if cfg, err = config.FromEnv(cfg); err != nil {
		logger.Printf("config: %v", err)
		return 1
	}

	// Explicit flags win over file and environment.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "e", "range-end":
			cfg.RangeEnd = end
		case "s":
			cfg.SegmentSize = segment
		case "max-full":
			cfg.MaxFullRange = maxFull
		case "progress":
			cfg.Progress = progress
		case "m":
			var perr error
			if cfg.Mode, perr = config.ParseMode(mode); perr != nil {
				err = perr
			}
		}
	})
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logger.Printf("config: %v", err)
		return 1
	}

	if remote != "" {
		if err := runRemote(stdout, remote, cfg); err != nil {
			logger.Printf("remote: %v", err)
			return 1
		}
		return 0
	}

	opts := driver.Options{Color: !noColor, Verbose: verbose}
	if cfg.Progress {
		opts.Report = func(p sieve.Progress) { logger.Print(p.String()) }
	}
	if _, err := driver.Run(stdout, cfg, opts); err != nil {
		logger.Printf("primegen: %v", err)
		return 1
	}
	return 0
}

// runRemote fetches the result from a primed service and prints it in the
// same layout as a local run.
func runRemote(w io.Writer, base string, cfg config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req := api.PrimesRequest{
		End:         cfg.RangeEnd,
		Mode:        string(cfg.Mode),
		SegmentSize: cfg.SegmentSize,
		CountOnly:   cfg.RangeEnd > cfg.ListLimit,
	}
	resp, err := api.FetchPrimes(ctx, base, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Finding Prime Numbers between %d and %d\n", resp.Start, resp.End)
	if req.CountOnly {
		fmt.Fprintf(w, "%d primes found under %d\n", resp.Count, resp.End)
	} else {
		fmt.Fprintln(w, driver.Join(resp.Primes))
	}
	return nil
}
