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

// Package state implements the shared rendezvous object between a future
// producer and its consumer. It is the only place that touches the
// outcome, continuation, chained-producer, and exception-observer slots
// described by the future package's design; Producer and Consumer never
// reach into a State directly.
package state

import (
	"sync"
	"sync/atomic"
)

// Kind identifies which of the mutually exclusive outcomes a State holds.
type Kind uint8

const (
	// Empty is the initial outcome: neither a value nor a failure has
	// arrived yet.
	Empty Kind = iota
	// Value means a value of type V was stored.
	Value
	// Failure means an error was stored.
	Failure
)

// Outcome is the result of a State, once resolved.
type Outcome[V any] struct {
	Kind Kind
	Val  V
	Err  error
}

// continuation is the single-shot callback record installed by a
// continuation-attaching call (Then, ThenFuture). Exactly one of its two
// function fields runs, depending on which path the State resolves
// through.
type continuation[V any] struct {
	onValue   func(V)
	onFailure func(error)
}

// State is the rendezvous object shared between one producer and one
// consumer of a value of type V. The zero value is not usable; construct
// one with New.
//
// All fields other than refcount are guarded by mu. refcount is updated
// with atomic operations so that AddRef/Release never need to take the
// lock.
type State[V any] struct {
	mu   sync.Mutex
	cond *sync.Cond

	refcount int32

	outcome Outcome[V]

	continuation *continuation[V]
	chained      func(Outcome[V])
	observer     func(error)
}

// New creates a State with refcount 1, representing the producer side
// only; AddRef must be called once a consumer handle is materialized.
func New[V any]() *State[V] {
	s := &State[V]{refcount: 1}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// AddRef increments the reference count. It is called when a second
// handle (a consumer) starts sharing this State; installing a chained
// forward does not add a reference.
func (s *State[V]) AddRef() {
	atomic.AddInt32(&s.refcount, 1)
}

// Release decrements the reference count and reports whether it reached
// zero. Go has no destructors, so reaching zero here is purely
// informational (used by tests to assert no leak); there is no resource
// to free beyond what the garbage collector already reclaims.
func (s *State[V]) Release() bool {
	return atomic.AddInt32(&s.refcount, -1) == 0
}

// RefCount returns the current reference count, for tests.
func (s *State[V]) RefCount() int32 {
	return atomic.LoadInt32(&s.refcount)
}

// FulfillValue stores v as the outcome, per the dispatch order in the
// design: a pending continuation takes priority, then a chained forward,
// and only then is the value actually stored and waiters woken.
//
// The lock is released before any user code (continuation, forward) runs,
// so a continuation that itself attaches further continuations on other
// futures never deadlocks against this State's mutex.
func (s *State[V]) FulfillValue(v V) {
	s.mu.Lock()
	switch {
	case s.continuation != nil:
		c := s.continuation
		s.continuation = nil
		s.mu.Unlock()
		c.onValue(v)
	case s.chained != nil:
		fwd := s.chained
		s.chained = nil
		s.mu.Unlock()
		fwd(Outcome[V]{Kind: Value, Val: v})
	default:
		s.outcome = Outcome[V]{Kind: Value, Val: v}
		s.cond.Broadcast()
		s.mu.Unlock()
	}
}

// FulfillFailure stores err as the outcome, following the same dispatch
// order as FulfillValue, with the exception-observer slot consulted as a
// last resort before the failure is stored for a blocking Get.
func (s *State[V]) FulfillFailure(err error) {
	s.mu.Lock()
	switch {
	case s.continuation != nil:
		c := s.continuation
		s.continuation = nil
		s.mu.Unlock()
		c.onFailure(err)
	case s.chained != nil:
		fwd := s.chained
		s.chained = nil
		s.mu.Unlock()
		fwd(Outcome[V]{Kind: Failure, Err: err})
	case s.observer != nil:
		obs := s.observer
		s.observer = nil
		s.mu.Unlock()
		obs(err)
	default:
		s.outcome = Outcome[V]{Kind: Failure, Err: err}
		s.cond.Broadcast()
		s.mu.Unlock()
	}
}

// Wait blocks until the outcome is no longer Empty, then returns it.
func (s *State[V]) Wait() Outcome[V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.outcome.Kind == Empty {
		s.cond.Wait()
	}
	return s.outcome
}

// InstallContinuation attaches onValue/onFailure as this State's
// continuation. If the outcome has already arrived, the matching branch
// runs inline, before this call returns. Otherwise the pair is stored for
// the fulfilling call to dispatch to later.
func (s *State[V]) InstallContinuation(onValue func(V), onFailure func(error)) {
	s.mu.Lock()
	switch s.outcome.Kind {
	case Failure:
		err := s.outcome.Err
		s.mu.Unlock()
		onFailure(err)
	case Value:
		v := s.outcome.Val
		s.mu.Unlock()
		onValue(v)
	default:
		s.continuation = &continuation[V]{onValue: onValue, onFailure: onFailure}
		s.mu.Unlock()
	}
}

// InstallChainedForward attaches forward as this State's chained-producer
// slot, implementing the unwrap rule: a continuation that itself returns a
// future must flatten into that future's eventual outcome rather than
// nesting it. If the outcome already arrived, forward runs inline.
func (s *State[V]) InstallChainedForward(forward func(Outcome[V])) {
	s.mu.Lock()
	switch s.outcome.Kind {
	case Value, Failure:
		o := s.outcome
		s.mu.Unlock()
		forward(o)
	default:
		s.chained = forward
		s.mu.Unlock()
	}
}

// InstallExceptionObserver attaches obs to run only if this State resolves
// to a failure; it is never invoked on a value outcome. If the outcome
// already arrived, the applicable behavior runs inline.
func (s *State[V]) InstallExceptionObserver(obs func(error)) {
	s.mu.Lock()
	switch s.outcome.Kind {
	case Failure:
		err := s.outcome.Err
		s.mu.Unlock()
		obs(err)
	case Value:
		s.mu.Unlock()
	default:
		s.observer = obs
		s.mu.Unlock()
	}
}
