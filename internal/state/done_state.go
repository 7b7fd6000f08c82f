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

package state

import (
	"sync"
	"sync/atomic"
)

// DoneKind identifies the outcome of a DoneState. It is a separate enum
// from Kind, rather than reusing Value to mean "done with no payload",
// per the design decision to model the unit variant as a distinct outcome
// state instead of a value of a zero-sized type.
type DoneKind uint8

const (
	DoneEmpty DoneKind = iota
	Done
	DoneFailure
)

// DoneOutcome is the result of a DoneState once resolved.
type DoneOutcome struct {
	Kind DoneKind
	Err  error
}

type doneContinuation struct {
	onDone    func()
	onFailure func(error)
}

// DoneState is the unit-valued analogue of State: a rendezvous object for
// a pure completion signal rather than a value.
type DoneState struct {
	mu   sync.Mutex
	cond *sync.Cond

	refcount int32

	outcome DoneOutcome

	continuation *doneContinuation
	chained      func(DoneOutcome)
	observer     func(error)
}

// NewDone creates a DoneState with refcount 1.
func NewDone() *DoneState {
	s := &DoneState{refcount: 1}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *DoneState) AddRef() {
	atomic.AddInt32(&s.refcount, 1)
}

func (s *DoneState) Release() bool {
	return atomic.AddInt32(&s.refcount, -1) == 0
}

func (s *DoneState) RefCount() int32 {
	return atomic.LoadInt32(&s.refcount)
}

// FulfillDone resolves the state to Done, following the same
// continuation/chained/store dispatch order as State.FulfillValue.
func (s *DoneState) FulfillDone() {
	s.mu.Lock()
	switch {
	case s.continuation != nil:
		c := s.continuation
		s.continuation = nil
		s.mu.Unlock()
		c.onDone()
	case s.chained != nil:
		fwd := s.chained
		s.chained = nil
		s.mu.Unlock()
		fwd(DoneOutcome{Kind: Done})
	default:
		s.outcome = DoneOutcome{Kind: Done}
		s.cond.Broadcast()
		s.mu.Unlock()
	}
}

// FulfillFailure resolves the state to a failure, consulting the
// exception-observer slot as a last resort, exactly as State.FulfillFailure
// does.
func (s *DoneState) FulfillFailure(err error) {
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
		fwd(DoneOutcome{Kind: DoneFailure, Err: err})
	case s.observer != nil:
		obs := s.observer
		s.observer = nil
		s.mu.Unlock()
		obs(err)
	default:
		s.outcome = DoneOutcome{Kind: DoneFailure, Err: err}
		s.cond.Broadcast()
		s.mu.Unlock()
	}
}

func (s *DoneState) Wait() DoneOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.outcome.Kind == DoneEmpty {
		s.cond.Wait()
	}
	return s.outcome
}

func (s *DoneState) InstallContinuation(onDone func(), onFailure func(error)) {
	s.mu.Lock()
	switch s.outcome.Kind {
	case DoneFailure:
		err := s.outcome.Err
		s.mu.Unlock()
		onFailure(err)
	case Done:
		s.mu.Unlock()
		onDone()
	default:
		s.continuation = &doneContinuation{onDone: onDone, onFailure: onFailure}
		s.mu.Unlock()
	}
}

func (s *DoneState) InstallChainedForward(forward func(DoneOutcome)) {
	s.mu.Lock()
	switch s.outcome.Kind {
	case Done, DoneFailure:
		o := s.outcome
		s.mu.Unlock()
		forward(o)
	default:
		s.chained = forward
		s.mu.Unlock()
	}
}

// InstallExceptionObserver attaches obs to run only on failure; per the
// design, it runs nothing and discards the signal on a Done outcome.
func (s *DoneState) InstallExceptionObserver(obs func(error)) {
	s.mu.Lock()
	switch s.outcome.Kind {
	case DoneFailure:
		err := s.outcome.Err
		s.mu.Unlock()
		obs(err)
	case Done:
		s.mu.Unlock()
	default:
		s.observer = obs
		s.mu.Unlock()
	}
}
