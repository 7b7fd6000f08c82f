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

// DoneProducer is the unit-valued analogue of Producer: it signals
// completion without carrying a value.
type DoneProducer struct {
	state     *state.DoneState
	retrieved bool
	fulfilled bool
	closed    bool
}

// NewDoneProducer constructs a fresh DoneProducer.
func NewDoneProducer() *DoneProducer {
	return &DoneProducer{state: state.NewDone()}
}

// Consumer returns the DoneConsumer bound to this DoneProducer, at most
// once.
func (p *DoneProducer) Consumer() (DoneConsumer, error) {
	if p.state == nil {
		return DoneConsumer{}, ErrNoState
	}
	if p.retrieved {
		return DoneConsumer{}, ErrFutureAlreadyRetrieved
	}
	p.retrieved = true
	p.state.AddRef()
	return DoneConsumer{state: p.state}, nil
}

// SetDone fulfills the DoneProducer with completion. It may be called at
// most once.
func (p *DoneProducer) SetDone() error {
	if p.state == nil {
		return ErrNoState
	}
	if p.fulfilled {
		return ErrPromiseAlreadySatisfied
	}
	p.fulfilled = true
	p.state.FulfillDone()
	return nil
}

// SetException fulfills the DoneProducer with a failure.
func (p *DoneProducer) SetException(err error) error {
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

// Close releases this DoneProducer's ownership, synthesizing BrokenPromise
// if it was never fulfilled. See Producer.Close for the same caveat about
// Go having no destructors.
func (p *DoneProducer) Close() {
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
