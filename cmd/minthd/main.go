// Package main provides the MinThd CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/minthd/minthd/internal/bench"
	"github.com/minthd/minthd/internal/config"
	"github.com/minthd/minthd/internal/parallel"
)

const version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stdout)
		return 0
	}

	var err error
	switch args[0] {
	case "version":
		_, _ = fmt.Fprintf(stdout, "MinThd %s\n", version)
	case "partition":
		err = partitionCmd(args[1:], stdout, stderr)
	case "bench":
		err = benchCmd(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
	default:
		err = fmt.Errorf("unknown command %q", args[0])
	}

	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			_, _ = fmt.Fprintf(stderr, "minthd: %v\n", err)
		}
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "MinThd - minimal fork-join parallelism for Go")
	_, _ = fmt.Fprintf(w, "Version: %s\n\n", version)
	_, _ = fmt.Fprintln(w, "Commands:")
	_, _ = fmt.Fprintln(w, "  version      Show version")
	_, _ = fmt.Fprintln(w, "  partition    Print the ranges assigned to each worker")
	_, _ = fmt.Fprintln(w, "  bench        Run fill benchmarks")
}

func partitionCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("partition", flag.ContinueOnError)
	fs.SetOutput(stderr)
	length := fs.Int("length", 0, "index space length")
	workers := fs.Int("workers", 0, "maximum number of workers (0 = CPU count)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := parallel.DefaultConfig().WithWorkers(*workers)
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "WORKER\tRANGE\tSIZE")
	for i, r := range parallel.Partition(*length, cfg.Workers()) {
		_, _ = fmt.Fprintf(tw, "%d\t%v\t%d\n", i, r, r.Len())
	}
	return tw.Flush()
}

func benchCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configFile = fs.String("config", "", "config file path (YAML/JSON)")
		mode       = fs.String("mode", "", "run a single benchmark in this mode (ranged, uniform)")
		length     = fs.Int("length", 2_000_000, "collection length for -mode")
		workers    = fs.Int("workers", 0, "worker count for -mode (0 = CPU count)")
		executor   = fs.String("executor", "", "executor: "+strings.Join(parallel.ExecutorNames(), ", "))
		repeat     = fs.Int("repeat", 0, "repetitions per run (overrides config)")
		sequential = fs.Bool("sequential", false, "serialize workers on the calling goroutine")
		verbose    = fs.Bool("v", false, "enable debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fc := config.Default()
	if *configFile != "" {
		loaded, err := config.LoadFile(*configFile)
		if err != nil {
			return err
		}
		fc = loaded
	}
	if *mode != "" {
		fc.Bench.Runs = []config.RunConfig{{Name: *mode, Mode: *mode, Length: *length, Workers: *workers}}
	}
	if *executor != "" {
		fc.Bench.Executor = *executor
	}
	if *repeat > 0 {
		fc.Bench.Repeat = *repeat
	}
	if err := fc.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	exec, err := fc.Executor()
	if err != nil {
		return err
	}
	runs, err := fc.ToRuns()
	if err != nil {
		return err
	}

	cfg := parallel.DefaultConfig().WithExecutor(exec)
	cfg.Enabled = !*sequential
	logger.Info("starting benchmark",
		"executor", fc.Bench.Executor,
		"runs", len(runs),
		"repeat", max(fc.Bench.Repeat, 1),
		"available", cfg.Workers())

	results, err := bench.NewRunner(cfg, logger).ExecuteAll(runs, fc.Bench.Repeat)
	printResults(stdout, results)
	if err != nil {
		logger.Error("benchmark failed", "error", err)
		return err
	}
	return nil
}

func printResults(w io.Writer, results []bench.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tMODE\tWORKERS\tLENGTH\tDURATION")
	for _, r := range results {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%v\n", r.Name, r.Mode, r.Workers, r.Length, r.Duration)
	}
	_ = tw.Flush()
}
