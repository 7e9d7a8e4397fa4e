// Package bench runs the fill scenarios used to measure the fork-join primitives.
package bench

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/minthd/minthd/internal/parallel"
)

// ErrVerification is returned when a run leaves an element unwritten or written twice.
var ErrVerification = errors.New("bench: verification failed")

// ErrInvalidMode is returned by ParseMode for an unknown mode.
var ErrInvalidMode = errors.New("bench: invalid mode")

// Mode selects the fan-out entry point exercised by a run.
type Mode string

const (
	ModeRanged  Mode = "ranged"  // One shared collection split by ForThread.
	ModeUniform Mode = "uniform" // One collection per worker via ForThreadsUniform.
)

// ParseMode converts a case-insensitive mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case ModeRanged:
		return ModeRanged, nil
	case ModeUniform:
		return ModeUniform, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Run describes one benchmark scenario.
type Run struct {
	Name    string
	Mode    Mode
	Length  int // Collection length (shared in ranged mode, per worker in uniform mode).
	Workers int // 0 uses the runner's available parallelism.
}

// Result is the outcome of one executed Run.
type Result struct {
	Name     string
	Mode     Mode
	Workers  int // Workers actually dispatched.
	Length   int
	Duration time.Duration
}

// Runner executes runs against a parallel.Config.
type Runner struct {
	cfg    parallel.Config
	logger *slog.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(cfg parallel.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{cfg: cfg, logger: logger}
}

// Execute allocates, fills and verifies the collections of run.
// Only the fan-out itself is timed.
func (r *Runner) Execute(run Run) (Result, error) {
	res := Result{Name: run.Name, Mode: run.Mode, Length: run.Length}
	// Resolve once so the reported count is the one dispatched.
	workers := r.cfg.WithWorkers(run.Workers).Workers()
	cfg := r.cfg.WithWorkers(workers)

	var err error
	switch run.Mode {
	case ModeRanged:
		res.Workers = len(parallel.Partition(run.Length, workers))
		res.Duration, err = r.ranged(run.Length, cfg)
	case ModeUniform:
		res.Workers = workers
		res.Duration, err = r.uniform(workers, run.Length, cfg)
	default:
		return res, fmt.Errorf("%w: %q", ErrInvalidMode, run.Mode)
	}
	if err != nil {
		return res, fmt.Errorf("run %s: %w", run.Name, err)
	}

	r.logger.Debug("run finished",
		"name", run.Name,
		"mode", run.Mode,
		"workers", res.Workers,
		"length", run.Length,
		"duration", res.Duration)
	return res, nil
}

// ExecuteAll executes every run repeat times, stopping at the first failure.
func (r *Runner) ExecuteAll(runs []Run, repeat int) ([]Result, error) {
	repeat = max(repeat, 1)
	results := make([]Result, 0, len(runs)*repeat)
	for _, run := range runs {
		for i := 0; i < repeat; i++ {
			res, err := r.Execute(run)
			if err != nil {
				return results, err
			}
			results = append(results, res)
		}
	}
	return results, nil
}

func (r *Runner) ranged(length int, cfg parallel.Config) (time.Duration, error) {
	collection := make([]int32, length)

	start := time.Now()
	err := parallel.ForSlice(collection, func(_ parallel.ThreadData, part []int32) error {
		for i := range part {
			part[i]++
		}
		return nil
	}, cfg)
	elapsed := time.Since(start)
	if err != nil {
		return elapsed, err
	}
	return elapsed, verify(collection)
}

func (r *Runner) uniform(workers, length int, cfg parallel.Config) (time.Duration, error) {
	collections := make([][]int32, workers)
	for i := range collections {
		collections[i] = make([]int32, length)
	}

	start := time.Now()
	err := parallel.ForThreadsUniform(workers, func(threadIndex int) error {
		collection := collections[threadIndex]
		for i := range collection {
			collection[i]++
		}
		return nil
	}, cfg)
	elapsed := time.Since(start)
	if err != nil {
		return elapsed, err
	}

	for c, collection := range collections {
		if err := verify(collection); err != nil {
			return elapsed, fmt.Errorf("collection %d: %w", c, err)
		}
	}
	return elapsed, nil
}

// verify checks that every element was written exactly once.
func verify(collection []int32) error {
	for i, v := range collection {
		if v != 1 {
			return fmt.Errorf("%w: index %d holds %d", ErrVerification, i, v)
		}
	}
	return nil
}
