// Package parallel implements the fork-join primitives behind MinThd.
package parallel

import "runtime"

// Config controls how a fan-out is executed.
type Config struct {
	Enabled    bool       // Whether workers run concurrently; false serializes them on the caller.
	NumWorkers int        // Maximum number of ranged workers; <= 0 means use Available.
	Available  func() int // Available parallelism, consulted on every call that needs it.
	Executor   Executor   // Runs the tasks; nil selects Goroutines.
}

// DefaultConfig returns a config sized by the CPU count at call time.
func DefaultConfig() Config {
	return Config{
		Enabled:   runtime.NumCPU() > 1,
		Available: runtime.NumCPU,
	}
}

// WithWorkers returns a copy of cfg capped at n ranged workers.
func (cfg Config) WithWorkers(n int) Config {
	cfg.NumWorkers = n
	return cfg
}

// WithExecutor returns a copy of cfg running its tasks on e.
func (cfg Config) WithExecutor(e Executor) Config {
	cfg.Executor = e
	return cfg
}

// Workers resolves the requested worker count. It is never below 1.
func (cfg Config) Workers() int {
	n := cfg.NumWorkers
	if n <= 0 {
		available := cfg.Available
		if available == nil {
			available = runtime.NumCPU
		}
		n = available()
	}
	return max(n, 1)
}

func (cfg Config) executor() Executor {
	if !cfg.Enabled {
		return Sequential{}
	}
	if cfg.Executor == nil {
		return Goroutines{}
	}
	return cfg.Executor
}

// ForThread partitions [0, length) into at most cfg.Workers() ranges and runs
// body once per range, concurrently, returning after every body has returned.
//
// A non-positive length is a no-op. Failures (returned errors and panics) do
// not stop sibling workers; they are joined into one error after the last
// worker finishes, see Failures. Bodies must only touch indices inside their
// own IndexRange.
func ForThread(length int, body func(ThreadData) error, cfg Config) error {
	if length <= 0 {
		return nil
	}

	ranges := Partition(length, cfg.Workers())
	errs := make([]error, len(ranges))
	tasks := make([]func(), len(ranges))
	for i, r := range ranges {
		td := ThreadData{ThreadIndex: i, IndexRange: r}
		tasks[i] = guard(&errs[i], func() error { return body(td) })
	}

	cfg.executor().Run(tasks)
	return joinFailures(errs, ranges)
}

// ForThreadsUniform runs body once for every thread index in [0, threads),
// concurrently, returning after every body has returned.
//
// No partitioning or clamping takes place and cfg.NumWorkers is ignored.
// Failure handling matches ForThread.
func ForThreadsUniform(threads int, body func(threadIndex int) error, cfg Config) error {
	if threads <= 0 {
		return nil
	}

	errs := make([]error, threads)
	tasks := make([]func(), threads)
	for i := range tasks {
		tasks[i] = guard(&errs[i], func() error { return body(i) })
	}

	cfg.executor().Run(tasks)
	return joinFailures(errs, nil)
}

// For executes f(i) for i in [0, n), one contiguous block of indices per worker.
// If f panics, the lowest-indexed panicking worker's *PanicError is re-raised
// after the join; panics from other workers are discarded.
func For(n int, f func(i int), cfg Config) {
	err := ForThread(n, func(td ThreadData) error {
		for i := td.IndexRange.Start; i < td.IndexRange.End; i++ {
			f(i)
		}
		return nil
	}, cfg)
	for _, we := range Failures(err) {
		if pe, ok := we.Err.(*PanicError); ok {
			panic(pe)
		}
	}
}

// ForBatch is For over the batch*channels grid, as used by per-channel kernels.
func ForBatch(batch, channels int, f func(b, c int), cfg Config) {
	For(batch*channels, func(k int) {
		f(k/channels, k%channels)
	}, cfg)
}

// ForSlice runs body over s the way ForThread does over len(s), handing
// each worker only its own part of s.
func ForSlice[T any](s []T, body func(td ThreadData, part []T) error, cfg Config) error {
	return ForThread(len(s), func(td ThreadData) error {
		return body(td, Sub(s, td.IndexRange))
	}, cfg)
}

// guard wraps fn so that its error, or a recovered panic, lands in *slot.
func guard(slot *error, fn func() error) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				*slot = newPanicError(r)
			}
		}()
		*slot = fn()
	}
}
