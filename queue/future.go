package queue

import (
	"context"
	"fmt"
)

// Future is the eventual outcome of a submitted Operation.
type Future struct {
	done  chan struct{}
	value any
	err   error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) settle(value any, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Done is closed once the operation has settled.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the operation settles or ctx is done. An expired ctx does
// not cancel the operation itself.
func (f *Future) Wait(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TypedFuture is a Future whose value is known to be a T.
type TypedFuture[T any] struct {
	future *Future
}

// Go submits a typed operation to q.
func Go[T any](q *Queue, ctx context.Context, op func(ctx context.Context) (T, error)) *TypedFuture[T] {
	var wrapped Operation
	if op != nil {
		wrapped = func(ctx context.Context) (any, error) {
			return op(ctx)
		}
	}
	return &TypedFuture[T]{future: q.Submit(ctx, wrapped)}
}

func (f *TypedFuture[T]) Done() <-chan struct{} {
	return f.future.Done()
}

func (f *TypedFuture[T]) Wait(ctx context.Context) (T, error) {
	var zero T
	value, err := f.future.Wait(ctx)
	if err != nil {
		if typed, ok := value.(T); ok {
			return typed, err
		}
		return zero, err
	}
	if value == nil {
		return zero, nil
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("[queue TypedFuture] unexpected value type %T", value)
	}
	return typed, nil
}
