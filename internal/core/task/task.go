// Package task provides a generic future used by the document task manager.
//
// A Task is created together with its Source. The producer completes the
// Source exactly once with a result, an error or a cancellation; consumers
// wait on the Task or register completion callbacks.
//
// # Architectural Position
//
// Task sits beside the domain in the core. It depends on the standard
// library only so both ports and adapters can use it.
package task

import (
	"context"
	"errors"
	"sync"
)

// ErrCancelled is the error carried by a task that completed cancelled.
var ErrCancelled = errors.New("task cancelled")

type state int

const (
	statePending state = iota
	stateSucceeded
	stateFaulted
	stateCancelled
)

// Task is a handle on an in-flight operation producing a T.
type Task[T any] struct {
	mu        sync.Mutex
	done      chan struct{}
	state     state
	result    T
	err       error
	callbacks []func(*Task[T])
}

// Source completes its Task.
type Source[T any] struct {
	task *Task[T]
}

// New returns a pending task and the source that completes it.
func New[T any]() (*Task[T], *Source[T]) {
	t := &Task[T]{done: make(chan struct{})}
	return t, &Source[T]{task: t}
}

// Task returns the task this source completes.
func (s *Source[T]) Task() *Task[T] {
	return s.task
}

// SetResult completes the task successfully.
// It returns false if the task was already complete.
func (s *Source[T]) SetResult(v T) bool {
	return s.task.complete(stateSucceeded, v, nil)
}

// SetError completes the task as faulted with err.
// It returns false if the task was already complete.
func (s *Source[T]) SetError(err error) bool {
	var zero T
	return s.task.complete(stateFaulted, zero, err)
}

// SetCancelled completes the task as cancelled.
// It returns false if the task was already complete.
func (s *Source[T]) SetCancelled() bool {
	var zero T
	return s.task.complete(stateCancelled, zero, ErrCancelled)
}

func (t *Task[T]) complete(st state, v T, err error) bool {
	t.mu.Lock()
	if t.state != statePending {
		t.mu.Unlock()
		return false
	}
	t.state = st
	t.result = v
	t.err = err
	callbacks := t.callbacks
	t.callbacks = nil
	close(t.done)
	t.mu.Unlock()

	for _, cb := range callbacks {
		cb(t)
	}
	return true
}

// Done returns a channel closed once the task completes.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// OnComplete registers fn to run once the task completes.
// If the task is already complete fn runs immediately on the calling goroutine,
// otherwise it runs on the goroutine that completes the task.
func (t *Task[T]) OnComplete(fn func(*Task[T])) {
	t.mu.Lock()
	if t.state == statePending {
		t.callbacks = append(t.callbacks, fn)
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()
	fn(t)
}

// Wait blocks until the task completes.
func (t *Task[T]) Wait() {
	<-t.done
}

// WaitContext blocks until the task completes or ctx is done.
// It returns ctx.Err() in the latter case.
func (t *Task[T]) WaitContext(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsCompleted reports whether the task reached any terminal state.
func (t *Task[T]) IsCompleted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state != statePending
}

// IsFaulted reports whether the task completed with an error.
// A cancelled task is not faulted.
func (t *Task[T]) IsFaulted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == stateFaulted
}

// IsCancelled reports whether the task completed cancelled.
func (t *Task[T]) IsCancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == stateCancelled
}

// Result returns the produced value. It is the zero value unless the task succeeded.
func (t *Task[T]) Result() T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result
}

// Error returns the error carried by a faulted task, ErrCancelled for a
// cancelled task and nil otherwise.
func (t *Task[T]) Error() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Get waits for the task and returns its result and error.
func (t *Task[T]) Get() (T, error) {
	t.Wait()
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result, t.err
}

// FromResult returns a task that already succeeded with v.
func FromResult[T any](v T) *Task[T] {
	t, src := New[T]()
	src.SetResult(v)
	return t
}

// FromError returns a task that already faulted with err.
func FromError[T any](err error) *Task[T] {
	t, src := New[T]()
	src.SetError(err)
	return t
}

// Cancelled returns a task that already completed cancelled.
func Cancelled[T any]() *Task[T] {
	t, src := New[T]()
	src.SetCancelled()
	return t
}

// Run starts fn on a new goroutine and returns a task completed with its outcome.
// If fn returns an error matching context.Canceled while ctx is done, the
// task completes cancelled.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	t, src := New[T]()
	go func() {
		v, err := fn(ctx)
		switch {
		case err == nil:
			src.SetResult(v)
		case ctx.Err() != nil && errors.Is(err, context.Canceled):
			src.SetCancelled()
		default:
			src.SetError(err)
		}
	}()
	return t
}
