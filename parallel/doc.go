// Copyright 2025 The MinThd Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package parallel provides minimal fork-join primitives for data-parallel loops.
//
// # Overview
//
// Two entry points share one shape: partition, dispatch, join.
//   - ForThread splits [0, length) into at most Config.Workers() contiguous
//     ranges and runs one worker per range.
//   - ForThreadsUniform runs a fixed number of workers that receive only
//     their index, for callers owning one resource per worker.
//
// Both block until every worker has returned. There is no cancellation,
// no timeout and no work stealing.
//
// # Partitioning
//
// Partition(length, workers) produces min(workers, length) ranges whose sizes
// differ by at most one. The first length%n ranges carry the extra element:
//
//	parallel.Partition(9, 4) // [0, 3) [3, 5) [5, 7) [7, 9)
//
// The assignment is deterministic; execution order is not.
//
// # Basic Usage
//
//	data := make([]float32, 1_000_000)
//	err := parallel.ForSlice(data, func(td parallel.ThreadData, part []float32) error {
//	    for i := range part {
//	        part[i] = float32(td.IndexRange.Start + i)
//	    }
//	    return nil
//	}, parallel.DefaultConfig())
//
// # Errors
//
// A worker that returns an error or panics does not stop its siblings.
// After the join every failure is returned as one error built with
// errors.Join; Failures extracts the individual *WorkerError values.
//
// # Executors
//
// Tasks run on an Executor: goroutines (default), pargo, grailbio traverse,
// or sequentially on the caller. Select one with NewExecutor or set
// Config.Executor directly.
package parallel
