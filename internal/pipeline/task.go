package pipeline

import (
	"context"

	"github.com/google/uuid"
)

type taskIDKey struct{}

// WithTaskID returns a context carrying id for reporter events.
func WithTaskID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, taskIDKey{}, id)
}

// TaskID returns the task id carried by ctx, or "".
func TaskID(ctx context.Context) string {
	id, _ := ctx.Value(taskIDKey{}).(string)
	return id
}

// Task is one orchestrator operation running in its own goroutine.
type Task[T any] struct {
	ID     string
	cancel context.CancelFunc
	done   chan struct{}
	val    T
	err    error
}

// Go starts fn under a cancellable child of ctx. The task id is attached to
// the context fn receives.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task[T]{
		ID:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	ctx = WithTaskID(ctx, t.ID)
	go func() {
		defer close(t.done)
		defer cancel()
		t.val, t.err = fn(ctx)
	}()
	return t
}

// Cancel aborts the task's context. The in-flight request ends with a
// transport error.
func (t *Task[T]) Cancel() { t.cancel() }

// Done is closed once the task has returned.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Wait blocks until the task returns.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	return t.val, t.err
}
