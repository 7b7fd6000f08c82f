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

// Consumer is the read end of a future. It is consumed by exactly one of
// Get, Then, ThenFuture, or OnFailure; calling any of them a second time,
// or on a Consumer obtained from a Producer whose Consumer method already
// ran, returns ErrNoState.
//
// The zero value is moved-from and unusable.
type Consumer[T any] struct {
	state    *state.State[T]
	consumed bool
}

// Get blocks until the Producer is fulfilled, then returns its value, or
// re-raises its failure as err. It consumes the handle.
func (c *Consumer[T]) Get() (T, error) {
	var zero T
	if c.state == nil || c.consumed {
		return zero, ErrNoState
	}
	c.consumed = true
	o := c.state.Wait()
	c.state.Release()
	if o.Kind == state.Failure {
		return zero, o.Err
	}
	return o.Val, nil
}

// OnFailure attaches fn to run only if this Consumer resolves to a
// failure; fn is never invoked on a value outcome, and the value, if any
// arrives, is discarded. It consumes the handle.
//
// This is the value-carrying equivalent of DoneConsumer.OnException,
// added uniformly per the design's resolution of the exception-observer
// open question (see SPEC_FULL.md §7).
func (c *Consumer[T]) OnFailure(fn func(error)) error {
	if c.state == nil || c.consumed {
		return ErrNoState
	}
	c.consumed = true
	c.state.InstallExceptionObserver(fn)
	c.state.Release()
	return nil
}

// attachContinuation installs onValue/onFailure as c's continuation,
// consuming c. If c is already moved-from or consumed, onFailure runs
// immediately with ErrNoState instead of silently doing nothing, so that
// failures still propagate down a chain built on a stale handle rather
// than leaving the downstream future pending forever.
func attachContinuation[T any](c *Consumer[T], onValue func(T), onFailure func(error)) {
	if c.state == nil || c.consumed {
		onFailure(ErrNoState)
		return
	}
	c.consumed = true
	c.state.InstallContinuation(onValue, onFailure)
	c.state.Release()
}

// newLinkedConsumer creates a new shared state for a downstream future,
// with refcount 2 from the start: one share for the internal producer
// role that this function's caller will fulfill exactly once, and one
// share for the returned Consumer. The producer-role share is never
// explicitly Released; refcount settles at 1 rather than 0, which is
// harmless since Release is purely informational (see state.State.Release).
func newLinkedConsumer[T any]() (*state.State[T], Consumer[T]) {
	s := state.New[T]()
	s.AddRef()
	return s, Consumer[T]{state: s}
}
