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

// Producer is the write end of a future. It is move-only: once Consumer
// has handed out its Consumer, or once a fulfillment method has run, the
// Producer should not be used from more than one place at a time.
//
// The zero value is not usable; construct one with NewProducer.
type Producer[T any] struct {
	state     *state.State[T]
	retrieved bool
	fulfilled bool
	closed    bool
}

// NewProducer constructs a fresh Producer, with a newly allocated shared
// state.
func NewProducer[T any]() *Producer[T] {
	return &Producer[T]{state: state.New[T]()}
}

// Consumer returns the Consumer bound to this Producer's shared state. It
// may be called at most once per Producer.
func (p *Producer[T]) Consumer() (Consumer[T], error) {
	if p.state == nil {
		return Consumer[T]{}, ErrNoState
	}
	if p.retrieved {
		return Consumer[T]{}, ErrFutureAlreadyRetrieved
	}
	p.retrieved = true
	p.state.AddRef()
	return Consumer[T]{state: p.state}, nil
}

// SetValue fulfills the Producer with val. It may be called at most once.
func (p *Producer[T]) SetValue(val T) error {
	if p.state == nil {
		return ErrNoState
	}
	if p.fulfilled {
		return ErrPromiseAlreadySatisfied
	}
	p.fulfilled = true
	p.state.FulfillValue(val)
	return nil
}

// SetException fulfills the Producer with a failure. err is carried
// verbatim to the consumer side; it is never wrapped.
func (p *Producer[T]) SetException(err error) error {
	if p.state == nil {
		return ErrNoState
	}
	if p.fulfilled {
		return ErrPromiseAlreadySatisfied
	}
	p.fulfilled = true
	p.state.FulfillFailure(err)
	return nil
}

// Close releases this Producer's ownership of the shared state. If the
// Producer was never fulfilled, Close synthesizes a BrokenPromise failure
// first, guaranteeing the consumer side never blocks forever.
//
// Go has no destructors, so the BrokenPromise guarantee only holds if
// Close is actually called; callers should defer it immediately after
// construction:
//
//	p := future.NewProducer[int]()
//	defer p.Close()
func (p *Producer[T]) Close() {
	if p.state == nil || p.closed {
		return
	}
	p.closed = true
	if !p.fulfilled {
		p.fulfilled = true
		p.state.FulfillFailure(brokenPromise())
	}
	p.state.Release()
}
