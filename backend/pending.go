package backend

import "context"

// Pending is the handle of one in-flight backend call. It settles exactly once.
type Pending[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// start runs call on its own goroutine. The call keeps the values of ctx
// (the request id) but not its cancellation: once issued, a request runs to
// completion.
func start[T any](ctx context.Context, call func(ctx context.Context) (T, error)) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{})}
	detached := context.WithoutCancel(ctx)

	go func() {
		defer close(p.done)
		p.value, p.err = call(detached)
	}()

	return p
}

// Done is closed once the call has settled.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the call settles.
func (p *Pending[T]) Wait() (T, error) {
	<-p.done
	return p.value, p.err
}

// Await blocks until the call settles or ctx is done. Giving up on the wait
// does not abort the request itself.
func (p *Pending[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
