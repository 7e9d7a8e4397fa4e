// Copyright 2025 The MinThd Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package parallel

import "github.com/minthd/minthd/internal/parallel"

// IndexRange is the half-open interval [Start, End) owned by one ranged worker.
type IndexRange = parallel.IndexRange

// ThreadData pairs a worker's index with its IndexRange.
type ThreadData = parallel.ThreadData

// Config controls how a fan-out is executed.
//
// NumWorkers <= 0 resolves the worker count from Available on every call.
// A disabled config runs the same partition serially on the caller.
type Config = parallel.Config

// Executor runs a batch of tasks and returns once all have returned.
type Executor = parallel.Executor

// WorkerError is the failure of a single worker.
type WorkerError = parallel.WorkerError

// PanicError is the cause recorded when a worker panics.
type PanicError = parallel.PanicError

// Executor names accepted by NewExecutor.
const (
	GoroutineExecutor  = parallel.GoroutineExecutor
	PargoExecutor      = parallel.PargoExecutor
	TraverseExecutor   = parallel.TraverseExecutor
	SequentialExecutor = parallel.SequentialExecutor
)

// ErrUnknownExecutor is returned by NewExecutor for an unregistered name.
var ErrUnknownExecutor = parallel.ErrUnknownExecutor

// DefaultConfig returns a config sized by runtime.NumCPU.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}

// NewExecutor returns the executor registered under name.
func NewExecutor(name string) (Executor, error) {
	return parallel.NewExecutor(name)
}

// ExecutorNames lists the registered executor names.
func ExecutorNames() []string {
	return parallel.ExecutorNames()
}

// Partition splits [0, length) into min(workers, length) contiguous ranges.
//
// Example:
//
//	for _, r := range parallel.Partition(9, 4) {
//	    fmt.Println(r) // [0, 3) [3, 5) [5, 7) [7, 9)
//	}
func Partition(length, workers int) []IndexRange {
	return parallel.Partition(length, workers)
}

// Sub returns the part of s covered by r with its capacity capped.
func Sub[T any](s []T, r IndexRange) []T {
	return parallel.Sub(s, r)
}

// ForThread runs body once per range of Partition(length, cfg.Workers())
// and waits for all of them. A non-positive length is a no-op.
func ForThread(length int, body func(ThreadData) error, cfg Config) error {
	return parallel.ForThread(length, body, cfg)
}

// ForThreadsUniform runs body for every thread index in [0, threads)
// and waits for all of them.
func ForThreadsUniform(threads int, body func(threadIndex int) error, cfg Config) error {
	return parallel.ForThreadsUniform(threads, body, cfg)
}

// For executes f(i) for i in [0, n) in contiguous per-worker blocks.
// A panic in f is re-raised after the join as a *PanicError.
func For(n int, f func(i int), cfg Config) {
	parallel.For(n, f, cfg)
}

// ForBatch executes f(b, c) over the batch*channels grid using For.
func ForBatch(batch, channels int, f func(b, c int), cfg Config) {
	parallel.ForBatch(batch, channels, f, cfg)
}

// ForSlice runs body over s, handing each worker only its own part.
func ForSlice[T any](s []T, body func(td ThreadData, part []T) error, cfg Config) error {
	return parallel.ForSlice(s, body, cfg)
}

// Failures returns every WorkerError contained in err, in worker order.
func Failures(err error) []*WorkerError {
	return parallel.Failures(err)
}
