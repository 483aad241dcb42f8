// Package deferred holds values that are fetched after the first byte of a
// response has been sent. A Value is started before rendering and awaited by
// the component that needs it.
package deferred

import (
	"context"
	"fmt"
)

// Value is a future resolved exactly once by its producer goroutine.
type Value[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go starts fn in its own goroutine and returns its pending result.
// A panic in fn resolves the value with an error.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Value[T] {
	v := &Value[T]{done: make(chan struct{})}
	go func() {
		defer close(v.done)
		defer func() {
			if r := recover(); r != nil {
				v.err = fmt.Errorf("deferred: panic: %v", r)
			}
		}()
		v.val, v.err = fn(ctx)
	}()
	return v
}

// Resolved returns a Value that is already complete.
func Resolved[T any](val T) *Value[T] {
	v := &Value[T]{done: make(chan struct{}), val: val}
	close(v.done)
	return v
}

// Failed returns a Value that is already complete with err.
func Failed[T any](err error) *Value[T] {
	v := &Value[T]{done: make(chan struct{}), err: err}
	close(v.done)
	return v
}

// Done is closed once the value is resolved.
func (v *Value[T]) Done() <-chan struct{} { return v.done }

// Ready reports whether Await would return without blocking.
func (v *Value[T]) Ready() bool {
	select {
	case <-v.done:
		return true
	default:
		return false
	}
}

// Await blocks until the value resolves or ctx is done.
func (v *Value[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-v.done:
		return v.val, v.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
