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

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThenTransformsValue(t *testing.T) {
	p := NewProducer[int]()
	defer p.Close()

	c, err := p.Consumer()
	require.NoError(t, err)

	out := Then(&c, func(v int) (string, error) {
		return strconv.Itoa(v * 2), nil
	})

	require.NoError(t, p.SetValue(21))

	got, err := out.Get()
	require.NoError(t, err)
	assert.Equal(t, "42", got)
}

func TestThenSkippedOnUpstreamFailure(t *testing.T) {
	p := NewProducer[int]()
	defer p.Close()

	c, err := p.Consumer()
	require.NoError(t, err)

	called := false
	out := Then(&c, func(v int) (string, error) {
		called = true
		return "", nil
	})

	wantErr := errors.New("upstream failed")
	require.NoError(t, p.SetException(wantErr))

	_, err = out.Get()
	assert.Equal(t, wantErr, err)
	assert.False(t, called)
}

func TestThenRecoversPanic(t *testing.T) {
	p := NewProducer[int]()
	defer p.Close()

	c, err := p.Consumer()
	require.NoError(t, err)

	out := Then(&c, func(v int) (int, error) {
		panic("boom")
	})

	require.NoError(t, p.SetValue(1))

	_, err = out.Get()
	var up *UncaughtPanic
	require.ErrorAs(t, err, &up)
	assert.Equal(t, "boom", up.V())
}

func TestThenFutureFlattensNestedFuture(t *testing.T) {
	outer := NewProducer[int]()
	defer outer.Close()

	oc, err := outer.Consumer()
	require.NoError(t, err)

	out := ThenFuture(&oc, func(v int) Consumer[string] {
		inner := NewProducer[string]()
		defer inner.Close()
		ic, _ := inner.Consumer()
		_ = inner.SetValue(strconv.Itoa(v) + "-inner")
		return ic
	})

	require.NoError(t, outer.SetValue(9))

	got, err := out.Get()
	require.NoError(t, err)
	assert.Equal(t, "9-inner", got)
}

func TestThenFutureForwardsInnerFailure(t *testing.T) {
	outer := NewProducer[int]()
	defer outer.Close()

	oc, err := outer.Consumer()
	require.NoError(t, err)

	innerErr := errors.New("inner failed")
	out := ThenFuture(&oc, func(v int) Consumer[string] {
		inner := NewProducer[string]()
		defer inner.Close()
		ic, _ := inner.Consumer()
		_ = inner.SetException(innerErr)
		return ic
	})

	require.NoError(t, outer.SetValue(1))

	_, err = out.Get()
	assert.Equal(t, innerErr, err)
}

func TestThenDoneProducesValue(t *testing.T) {
	p := NewDoneProducer()
	defer p.Close()

	c, err := p.Consumer()
	require.NoError(t, err)

	out := ThenDone(&c, func() (int, error) {
		return 99, nil
	})

	require.NoError(t, p.SetDone())

	got, err := out.Get()
	require.NoError(t, err)
	assert.Equal(t, 99, got)
}

func TestThenOnAlreadyConsumedForwardsNoState(t *testing.T) {
	p := NewProducer[int]()
	defer p.Close()

	c, err := p.Consumer()
	require.NoError(t, err)

	require.NoError(t, p.SetValue(1))
	_, _ = c.Get()

	out := Then(&c, func(v int) (int, error) { return v, nil })
	_, err = out.Get()
	assert.ErrorIs(t, err, ErrNoState)
}
