package parallel

import (
	"fmt"
	"sort"
	"sync"

	pargoparallel "github.com/exascience/pargo/parallel"
	"github.com/grailbio/base/traverse"
)

// Executor runs a batch of tasks concurrently.
//
// Run must start every task and return only once all of them have returned.
// Tasks handed to an Executor by this package never panic.
type Executor interface {
	Run(tasks []func())
}

// Executor names accepted by NewExecutor.
const (
	GoroutineExecutor  = "goroutine"
	PargoExecutor      = "pargo"
	TraverseExecutor   = "traverse"
	SequentialExecutor = "sequential"
)

var executors = map[string]Executor{
	GoroutineExecutor:  Goroutines{},
	PargoExecutor:      Pargo{},
	TraverseExecutor:   Traverse{},
	SequentialExecutor: Sequential{},
}

// NewExecutor returns the executor registered under name.
// An empty name selects the goroutine executor.
func NewExecutor(name string) (Executor, error) {
	if name == "" {
		name = GoroutineExecutor
	}
	e, ok := executors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExecutor, name)
	}
	return e, nil
}

// ExecutorNames lists the registered executor names in sorted order.
func ExecutorNames() []string {
	names := make([]string, 0, len(executors))
	for name := range executors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Goroutines starts one goroutine per task and waits on a WaitGroup.
type Goroutines struct{}

// Run implements Executor.
func (Goroutines) Run(tasks []func()) {
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for _, task := range tasks {
		go func() {
			defer wg.Done()
			task()
		}()
	}
	wg.Wait()
}

// Pargo delegates to pargo's recursive fork-join Do.
type Pargo struct{}

// Run implements Executor.
func (Pargo) Run(tasks []func()) {
	pargoparallel.Do(tasks...)
}

// Traverse delegates to grailbio's traverse package.
type Traverse struct{}

// Run implements Executor.
func (Traverse) Run(tasks []func()) {
	// Tasks do not fail, so the returned error is always nil.
	_ = traverse.Parallel.Each(len(tasks), func(i int) error {
		tasks[i]()
		return nil
	})
}

// Sequential runs the tasks one after another on the calling goroutine.
type Sequential struct{}

// Run implements Executor.
func (Sequential) Run(tasks []func()) {
	for _, task := range tasks {
		task()
	}
}
