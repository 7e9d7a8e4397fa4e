package parallel

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrUnknownExecutor is returned by NewExecutor for an unregistered name.
var ErrUnknownExecutor = errors.New("parallel: unknown executor")

// WorkerError records the failure of a single worker.
type WorkerError struct {
	ThreadIndex int
	IndexRange  IndexRange // Zero for uniform workers.
	Err         error
}

func (e *WorkerError) Error() string {
	if e.IndexRange.Len() == 0 {
		return fmt.Sprintf("worker %d: %v", e.ThreadIndex, e.Err)
	}
	return fmt.Sprintf("worker %d %v: %v", e.ThreadIndex, e.IndexRange, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}

// PanicError is the cause of a WorkerError whose body panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Failures returns every WorkerError contained in err, in worker order.
// It returns nil when err is nil or carries no worker failures.
func Failures(err error) []*WorkerError {
	switch e := err.(type) {
	case nil:
		return nil
	case *WorkerError:
		return []*WorkerError{e}
	case interface{ Unwrap() []error }:
		var out []*WorkerError
		for _, inner := range e.Unwrap() {
			out = append(out, Failures(inner)...)
		}
		return out
	case interface{ Unwrap() error }:
		return Failures(e.Unwrap())
	}
	return nil
}

// joinFailures builds the aggregate error reported after the join barrier.
// errs is indexed by worker; nil entries are successful workers.
func joinFailures(errs []error, ranges []IndexRange) error {
	var failures []error
	for i, err := range errs {
		if err == nil {
			continue
		}
		we := &WorkerError{ThreadIndex: i, Err: err}
		if ranges != nil {
			we.IndexRange = ranges[i]
		}
		failures = append(failures, we)
	}
	return errors.Join(failures...)
}
