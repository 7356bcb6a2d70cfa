// Package task provides a cancelable unit of asynchronous work that carries
// its own generation token.
//
// A Handle settles exactly once. Consumers compare the settled token with the
// generation they currently expect and drop anything older, so ordering of
// late results never matters.
package task

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc/panics"
)

// ErrPanicked wraps a panic recovered from a task function.
var ErrPanicked = errors.New("task panicked")

// Result is the settlement of a task.
type Result[T any] struct {
	Token uint64
	Value T
	Err   error
}

// Handle is the owner's view of a running task.
type Handle[T any] struct {
	token  uint64
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	result Result[T]
}

// Start runs fn on its own goroutine under a context derived from parent.
func Start[T any](parent context.Context, token uint64, fn func(ctx context.Context) (T, error)) *Handle[T] {
	ctx, cancel := context.WithCancel(parent)
	h := &Handle[T]{
		token:  token,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer cancel()

		var (
			value T
			err   error
			pc    panics.Catcher
		)
		pc.Try(func() {
			value, err = fn(ctx)
		})
		if r := pc.Recovered(); r != nil {
			var zero T
			value = zero
			err = fmt.Errorf("%w: %v", ErrPanicked, r.Value)
		}

		// A canceled task settles as canceled even if fn ignored its context.
		if errors.Is(ctx.Err(), context.Canceled) && !errors.Is(err, context.Canceled) {
			var zero T
			value = zero
			err = fmt.Errorf("task %d: %w", token, context.Canceled)
		}

		h.settle(Result[T]{Token: token, Value: value, Err: err})
	}()

	return h
}

func (h *Handle[T]) settle(r Result[T]) {
	h.once.Do(func() {
		h.result = r
		close(h.done)
	})
}

// Token returns the generation this task was started under.
func (h *Handle[T]) Token() uint64 {
	return h.token
}

// Cancel signals the task to stop. It is safe to call more than once.
func (h *Handle[T]) Cancel() {
	h.cancel()
}

// Done is closed when the task has settled.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Settled reports whether the task has finished.
func (h *Handle[T]) Settled() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the task settles and returns its result.
func (h *Handle[T]) Wait() Result[T] {
	<-h.done
	return h.result
}

// IsCanceled reports whether err is a cancellation rather than a failure.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
