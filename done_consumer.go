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

// DoneConsumer is the unit-valued analogue of Consumer.
type DoneConsumer struct {
	state    *state.DoneState
	consumed bool
}

// Get blocks until the DoneProducer is fulfilled, returning its failure,
// if any. It consumes the handle.
func (c *DoneConsumer) Get() error {
	if c.state == nil || c.consumed {
		return ErrNoState
	}
	c.consumed = true
	o := c.state.Wait()
	c.state.Release()
	if o.Kind == state.DoneFailure {
		return o.Err
	}
	return nil
}

// OnException attaches fn to run only if this DoneConsumer resolves to a
// failure; it does nothing on a Done outcome. It consumes the handle.
func (c *DoneConsumer) OnException(fn func(error)) error {
	if c.state == nil || c.consumed {
		return ErrNoState
	}
	c.consumed = true
	c.state.InstallExceptionObserver(fn)
	c.state.Release()
	return nil
}

func attachDoneContinuation(c *DoneConsumer, onDone func(), onFailure func(error)) {
	if c.state == nil || c.consumed {
		onFailure(ErrNoState)
		return
	}
	c.consumed = true
	c.state.InstallContinuation(onDone, onFailure)
	c.state.Release()
}

// newLinkedDoneConsumer mirrors newLinkedConsumer's refcount handling: the
// producer-role share is never explicitly Released.
func newLinkedDoneConsumer() (*state.DoneState, DoneConsumer) {
	s := state.NewDone()
	s.AddRef()
	return s, DoneConsumer{state: s}
}
