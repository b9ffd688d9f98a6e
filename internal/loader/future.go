package loader

import "context"

// future is a single shared pending operation. Late-arriving concurrent
// requests for the same key attach to the future instead of starting a
// duplicate operation; every waiter observes the same terminal result.
type future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *future[T] {
	return &future[T]{done: make(chan struct{})}
}

// complete resolves the future for every current and future waiter.
// Must be called exactly once.
func (f *future[T]) complete(val T, err error) {
	f.val = val
	f.err = err
	close(f.done)
}

// await blocks until the future resolves or the waiter's context is
// cancelled. Cancellation abandons only this waiter; the underlying
// operation keeps running for the others.
func (f *future[T]) await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
