// Package dispatch logs actions on their way into a state store.
//
// Interception is done by composition: Wrap captures the original dispatch
// function in a closure and returns a new one. The store itself is never
// modified.
package dispatch

import (
	"context"

	"github.com/aretw0/sonda/pkg/emit"
	"github.com/aretw0/sonda/pkg/ports"
)

// Interceptor writes one ActionRecord per dispatched action.
type Interceptor struct {
	emitter *emit.Emitter
}

// NewInterceptor creates an interceptor writing through e.
// A nil emitter falls back to emit.New().
func NewInterceptor(e *emit.Emitter) *Interceptor {
	if e == nil {
		e = emit.New()
	}
	return &Interceptor{emitter: e}
}

// Observe logs action when the gate is active (enabled && devMode).
func (in *Interceptor) Observe(action any) {
	if in.emitter.Gate().Active() {
		in.emitter.Action(action)
	}
}

// Wrap returns a dispatch function that logs the action, then calls fn with
// the same action and returns its result unchanged.
func Wrap[A, R any](in *Interceptor, fn func(action A) R) ports.DispatchFunc[A, R] {
	return func(action A) R {
		in.Observe(action)
		return fn(action)
	}
}

// WrapContext is Wrap for dispatchers that take a context and can fail.
// The error is returned untouched.
func WrapContext[A, R any](in *Interceptor, fn func(ctx context.Context, action A) (R, error)) func(ctx context.Context, action A) (R, error) {
	return func(ctx context.Context, action A) (R, error) {
		in.Observe(action)
		return fn(ctx, action)
	}
}

// WrapStore returns the store's Dispatch method wrapped by Wrap.
func WrapStore[A, R any](in *Interceptor, store ports.Store[A, R]) ports.DispatchFunc[A, R] {
	return Wrap(in, store.Dispatch)
}
