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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drainOrder returns a permutation of 0..n-1, so that fulfilling children
// in this order exercises completion orders other than strictly
// sequential, while still asserting the aggregate preserves the original
// input-order positions.
func drainOrder(n int) []int {
	return rand.Perm(n)
}

func TestWhenAllSlicePreservesInputOrderUnderRandomDrain(t *testing.T) {
	const n = 6
	producers := make([]*Producer[int], n)
	consumers := make([]Consumer[int], n)
	for i := 0; i < n; i++ {
		producers[i] = NewProducer[int]()
		defer producers[i].Close()
		c, err := producers[i].Consumer()
		require.NoError(t, err)
		consumers[i] = c
	}

	out := WhenAllSlice(consumers)

	for _, i := range drainOrder(n) {
		require.NoError(t, producers[i].SetValue(i*10))
	}

	got, err := out.Get()
	require.NoError(t, err)
	want := make([]int, n)
	for i := range want {
		want[i] = i * 10
	}
	assert.Equal(t, want, got)
}

func TestWhenAllSliceAggregatesFailuresInOrder(t *testing.T) {
	const n = 4
	producers := make([]*Producer[int], n)
	consumers := make([]Consumer[int], n)
	for i := 0; i < n; i++ {
		producers[i] = NewProducer[int]()
		defer producers[i].Close()
		c, err := producers[i].Consumer()
		require.NoError(t, err)
		consumers[i] = c
	}

	out := WhenAllSlice(consumers)

	failAt := map[int]error{1: errors.New("one failed"), 3: errors.New("three failed")}
	for _, i := range drainOrder(n) {
		if err, ok := failAt[i]; ok {
			require.NoError(t, producers[i].SetException(err))
		} else {
			require.NoError(t, producers[i].SetValue(i))
		}
	}

	_, err := out.Get()
	var agg *AggregateError
	require.ErrorAs(t, err, &agg)
	require.Len(t, agg.Errors, 2)
	assert.Equal(t, 1, agg.Errors[0].Index)
	assert.Equal(t, 3, agg.Errors[1].Index)
	assert.Equal(t, failAt[1], agg.Errors[0].Err)
	assert.Equal(t, failAt[3], agg.Errors[1].Err)
}

func TestWhenAllSliceEmpty(t *testing.T) {
	out := WhenAllSlice[int](nil)
	got, err := out.Get()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWhenAll2CombinesPair(t *testing.T) {
	pa := NewProducer[int]()
	defer pa.Close()
	pb := NewProducer[string]()
	defer pb.Close()

	ca, err := pa.Consumer()
	require.NoError(t, err)
	cb, err := pb.Consumer()
	require.NoError(t, err)

	out := WhenAll2(ca, cb)

	require.NoError(t, pb.SetValue("b"))
	require.NoError(t, pa.SetValue(1))

	got, err := out.Get()
	require.NoError(t, err)
	assert.Equal(t, Pair[int, string]{First: 1, Second: "b"}, got)
}

func TestWhenAll3CombinesTriple(t *testing.T) {
	pa := NewProducer[int]()
	defer pa.Close()
	pb := NewProducer[string]()
	defer pb.Close()
	pc := NewProducer[bool]()
	defer pc.Close()

	ca, err := pa.Consumer()
	require.NoError(t, err)
	cb, err := pb.Consumer()
	require.NoError(t, err)
	cc, err := pc.Consumer()
	require.NoError(t, err)

	out := WhenAll3(ca, cb, cc)

	require.NoError(t, pc.SetValue(true))
	require.NoError(t, pa.SetValue(7))
	require.NoError(t, pb.SetValue("x"))

	got, err := out.Get()
	require.NoError(t, err)
	assert.Equal(t, Triple[int, string, bool]{First: 7, Second: "x", Third: true}, got)
}

func TestWhenAll2OneFailureAggregates(t *testing.T) {
	pa := NewProducer[int]()
	defer pa.Close()
	pb := NewProducer[string]()
	defer pb.Close()

	ca, err := pa.Consumer()
	require.NoError(t, err)
	cb, err := pb.Consumer()
	require.NoError(t, err)

	out := WhenAll2(ca, cb)

	wantErr := errors.New("b failed")
	require.NoError(t, pb.SetException(wantErr))
	require.NoError(t, pa.SetValue(1))

	_, err = out.Get()
	var agg *AggregateError
	require.ErrorAs(t, err, &agg)
	require.Len(t, agg.Errors, 1)
	assert.Equal(t, 1, agg.Errors[0].Index)
}
