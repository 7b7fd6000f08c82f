// Copyright 2026 The future Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package future

import "github.com/kvz/future/internal/state"

// Then attaches fn to run, on the fulfilling thread, once c resolves to a
// value. If c resolves to a failure instead, fn never runs and the failure
// is forwarded unchanged to the returned Consumer. A panic inside fn is
// recovered and forwarded as an UncaughtPanic failure.
//
// Then is a free function, not a method, because Go methods cannot
// introduce new type parameters: a method on Consumer[T] has no way to
// name the result type R.
func Then[T, R any](c *Consumer[T], fn func(T) (R, error)) Consumer[R] {
	downstream, out := newLinkedConsumer[R]()
	attachContinuation(c,
		func(v T) {
			r, err := safeCall(fn, v)
			if err != nil {
				downstream.FulfillFailure(err)
			} else {
				downstream.FulfillValue(r)
			}
		},
		func(err error) {
			downstream.FulfillFailure(err)
		},
	)
	return out
}

// ThenFuture attaches fn to run once c resolves to a value, where fn itself
// returns a Consumer rather than a plain value. The returned Consumer
// flattens into fn's result instead of nesting it, per the package's
// unwrap rule: a caller never has to deal with a Consumer[Consumer[R]].
func ThenFuture[T, R any](c *Consumer[T], fn func(T) Consumer[R]) Consumer[R] {
	downstream, out := newLinkedConsumer[R]()
	attachContinuation(c,
		func(v T) {
			chainInto(downstream, fn, v)
		},
		func(err error) {
			downstream.FulfillFailure(err)
		},
	)
	return out
}

// chainInto runs fn(v), recovering a panic as an UncaughtPanic failure, and
// wires the resulting Consumer's eventual outcome to forward directly into
// downstream via InstallChainedForward, rather than through a second
// continuation, so the flattening happens at the state layer.
func chainInto[T, R any](downstream *state.State[R], fn func(T) Consumer[R], v T) {
	inner, err := safeCallFuture(fn, v)
	if err != nil {
		downstream.FulfillFailure(err)
		return
	}
	if inner.state == nil || inner.consumed {
		downstream.FulfillFailure(ErrNoState)
		return
	}
	inner.consumed = true
	innerState := inner.state
	innerState.InstallChainedForward(func(o state.Outcome[R]) {
		if o.Kind == state.Failure {
			downstream.FulfillFailure(o.Err)
		} else {
			downstream.FulfillValue(o.Val)
		}
	})
	innerState.Release()
}

// ThenDone attaches fn to run once c resolves to completion, yielding a
// value-carrying Consumer[R].
func ThenDone[R any](c *DoneConsumer, fn func() (R, error)) Consumer[R] {
	downstream, out := newLinkedConsumer[R]()
	attachDoneContinuation(c,
		func() {
			r, err := safeCallDone(fn)
			if err != nil {
				downstream.FulfillFailure(err)
			} else {
				downstream.FulfillValue(r)
			}
		},
		func(err error) {
			downstream.FulfillFailure(err)
		},
	)
	return out
}

// ThenDoneFuture attaches fn to run once c resolves to completion, where fn
// itself returns a Consumer; the result flattens per the same unwrap rule
// as ThenFuture.
func ThenDoneFuture[R any](c *DoneConsumer, fn func() Consumer[R]) Consumer[R] {
	downstream, out := newLinkedConsumer[R]()
	attachDoneContinuation(c,
		func() {
			chainDoneInto(downstream, fn)
		},
		func(err error) {
			downstream.FulfillFailure(err)
		},
	)
	return out
}

func chainDoneInto[R any](downstream *state.State[R], fn func() Consumer[R]) {
	inner, err := safeCallDoneFuture(fn)
	if err != nil {
		downstream.FulfillFailure(err)
		return
	}
	if inner.state == nil || inner.consumed {
		downstream.FulfillFailure(ErrNoState)
		return
	}
	inner.consumed = true
	innerState := inner.state
	innerState.InstallChainedForward(func(o state.Outcome[R]) {
		if o.Kind == state.Failure {
			downstream.FulfillFailure(o.Err)
		} else {
			downstream.FulfillValue(o.Val)
		}
	})
	innerState.Release()
}

// safeCall invokes fn(v), converting a panic into an UncaughtPanic error
// instead of letting it propagate across the fulfilling goroutine.
func safeCall[T, R any](fn func(T) (R, error), v T) (r R, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = newUncaughtPanic(rec)
		}
	}()
	return fn(v)
}

func safeCallFuture[T, R any](fn func(T) Consumer[R], v T) (c Consumer[R], err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = newUncaughtPanic(rec)
		}
	}()
	return fn(v), nil
}

func safeCallDone[R any](fn func() (R, error)) (r R, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = newUncaughtPanic(rec)
		}
	}()
	return fn()
}

func safeCallDoneFuture[R any](fn func() Consumer[R]) (c Consumer[R], err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = newUncaughtPanic(rec)
		}
	}()
	return fn(), nil
}
