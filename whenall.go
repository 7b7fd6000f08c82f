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

import "sync/atomic"

// Pair is the result of WhenAll2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is the result of WhenAll3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// combinatorCountdown tracks how many of a WhenAll call's children remain
// outstanding, and how many of them failed, using plain atomic counters so
// that the last child to resolve (from whichever goroutine fulfills it)
// can tell, without a mutex, that it is the one responsible for resolving
// the aggregate.
type combinatorCountdown struct {
	remaining int32
	failures  int32
}

func newCombinatorCountdown(n int) *combinatorCountdown {
	return &combinatorCountdown{remaining: int32(n)}
}

// arrive records one child's completion and reports whether it was the
// last of n to arrive.
func (cd *combinatorCountdown) arrive(failed bool) (last bool) {
	if failed {
		atomic.AddInt32(&cd.failures, 1)
	}
	return atomic.AddInt32(&cd.remaining, -1) == 0
}

func (cd *combinatorCountdown) failureCount() int32 {
	return atomic.LoadInt32(&cd.failures)
}

// WhenAllSlice resolves once every element of cs has resolved. On success
// it yields their values in input order; if any failed, it yields an
// *AggregateError instead, with entries for only the failed children,
// still in their original input-order positions.
func WhenAllSlice[T any](cs []Consumer[T]) Consumer[[]T] {
	downstream, out := newLinkedConsumer[[]T]()
	n := len(cs)
	if n == 0 {
		downstream.FulfillValue(nil)
		return out
	}

	values := make([]T, n)
	errs := make([]error, n)
	cd := newCombinatorCountdown(n)

	for i := range cs {
		i := i
		attachContinuation(&cs[i],
			func(v T) {
				values[i] = v
				if cd.arrive(false) {
					finishSlice(downstream, values, errs, cd)
				}
			},
			func(err error) {
				errs[i] = err
				if cd.arrive(true) {
					finishSlice(downstream, values, errs, cd)
				}
			},
		)
	}
	return out
}

func finishSlice[T any](downstream interface {
	FulfillValue([]T)
	FulfillFailure(error)
}, values []T, errs []error, cd *combinatorCountdown) {
	if cd.failureCount() > 0 {
		downstream.FulfillFailure(newAggregateError(errs))
		return
	}
	downstream.FulfillValue(values)
}

// WhenAll2 resolves once both a and b have resolved, combining them into a
// Pair on success. Go has no variadic type parameters, so the
// fixed-arity overloads stop at WhenAll3.
func WhenAll2[A, B any](a Consumer[A], b Consumer[B]) Consumer[Pair[A, B]] {
	downstream, out := newLinkedConsumer[Pair[A, B]]()
	cd := newCombinatorCountdown(2)
	var pair Pair[A, B]
	errs := make([]error, 2)

	attachContinuation(&a,
		func(v A) {
			pair.First = v
			if cd.arrive(false) {
				finishPair(downstream, pair, errs, cd)
			}
		},
		func(err error) {
			errs[0] = err
			if cd.arrive(true) {
				finishPair(downstream, pair, errs, cd)
			}
		},
	)
	attachContinuation(&b,
		func(v B) {
			pair.Second = v
			if cd.arrive(false) {
				finishPair(downstream, pair, errs, cd)
			}
		},
		func(err error) {
			errs[1] = err
			if cd.arrive(true) {
				finishPair(downstream, pair, errs, cd)
			}
		},
	)
	return out
}

func finishPair[A, B any](downstream interface {
	FulfillValue(Pair[A, B])
	FulfillFailure(error)
}, pair Pair[A, B], errs []error, cd *combinatorCountdown) {
	if cd.failureCount() > 0 {
		downstream.FulfillFailure(newAggregateError(errs))
		return
	}
	downstream.FulfillValue(pair)
}

// WhenAll3 resolves once a, b, and c have all resolved, combining them into
// a Triple on success.
func WhenAll3[A, B, C any](a Consumer[A], b Consumer[B], c Consumer[C]) Consumer[Triple[A, B, C]] {
	downstream, out := newLinkedConsumer[Triple[A, B, C]]()
	cd := newCombinatorCountdown(3)
	var triple Triple[A, B, C]
	errs := make([]error, 3)

	attachContinuation(&a,
		func(v A) {
			triple.First = v
			if cd.arrive(false) {
				finishTriple(downstream, triple, errs, cd)
			}
		},
		func(err error) {
			errs[0] = err
			if cd.arrive(true) {
				finishTriple(downstream, triple, errs, cd)
			}
		},
	)
	attachContinuation(&b,
		func(v B) {
			triple.Second = v
			if cd.arrive(false) {
				finishTriple(downstream, triple, errs, cd)
			}
		},
		func(err error) {
			errs[1] = err
			if cd.arrive(true) {
				finishTriple(downstream, triple, errs, cd)
			}
		},
	)
	attachContinuation(&c,
		func(v C) {
			triple.Third = v
			if cd.arrive(false) {
				finishTriple(downstream, triple, errs, cd)
			}
		},
		func(err error) {
			errs[2] = err
			if cd.arrive(true) {
				finishTriple(downstream, triple, errs, cd)
			}
		},
	)
	return out
}

func finishTriple[A, B, C any](downstream interface {
	FulfillValue(Triple[A, B, C])
	FulfillFailure(error)
}, triple Triple[A, B, C], errs []error, cd *combinatorCountdown) {
	if cd.failureCount() > 0 {
		downstream.FulfillFailure(newAggregateError(errs))
		return
	}
	downstream.FulfillValue(triple)
}
