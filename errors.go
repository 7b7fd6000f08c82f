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
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// ErrorKind identifies which of the four domain failure kinds a
// FutureError represents.
type ErrorKind int

const (
	// KindBrokenPromise means a Producer was closed before it was
	// fulfilled.
	KindBrokenPromise ErrorKind = iota
	// KindFutureAlreadyRetrieved means Consumer was called a second time
	// on the same Producer.
	KindFutureAlreadyRetrieved
	// KindPromiseAlreadySatisfied means a fulfillment method was called
	// a second time on the same Producer.
	KindPromiseAlreadySatisfied
	// KindNoState means an operation was attempted on a moved-from
	// handle.
	KindNoState
)

func (k ErrorKind) String() string {
	switch k {
	case KindBrokenPromise:
		return "BrokenPromise"
	case KindFutureAlreadyRetrieved:
		return "FutureAlreadyRetrieved"
	case KindPromiseAlreadySatisfied:
		return "PromiseAlreadySatisfied"
	case KindNoState:
		return "NoState"
	default:
		return "Unknown"
	}
}

// FutureError is the error type for the four domain failure kinds defined
// by this package. User failures passed to SetException are never wrapped
// in a FutureError; they propagate verbatim.
type FutureError struct {
	Kind ErrorKind
	msg  string
}

func (e *FutureError) Error() string {
	return e.msg
}

// Is reports whether target is a FutureError of the same Kind, so callers
// can write errors.Is(err, future.ErrNoState) rather than comparing Kind
// directly.
func (e *FutureError) Is(target error) bool {
	t, ok := target.(*FutureError)
	return ok && t.Kind == e.Kind
}

var (
	// ErrBrokenPromise is returned to a Consumer whose Producer was
	// closed without ever being fulfilled.
	ErrBrokenPromise = &FutureError{Kind: KindBrokenPromise, msg: "future: broken promise"}
	// ErrFutureAlreadyRetrieved is returned by Producer.Consumer when
	// called a second time.
	ErrFutureAlreadyRetrieved = &FutureError{Kind: KindFutureAlreadyRetrieved, msg: "future: future already retrieved"}
	// ErrPromiseAlreadySatisfied is returned by a fulfillment method
	// called a second time on the same Producer.
	ErrPromiseAlreadySatisfied = &FutureError{Kind: KindPromiseAlreadySatisfied, msg: "future: promise already satisfied"}
	// ErrNoState is returned by any operation on a moved-from handle.
	ErrNoState = &FutureError{Kind: KindNoState, msg: "future: no state"}
)

// brokenPromise returns a BrokenPromise failure with a stack trace
// attached, so that a leaked, never-fulfilled Producer can be traced back
// to the Close call that synthesized it.
func brokenPromise() error {
	return pkgerrors.WithStack(ErrBrokenPromise)
}

// UncaughtPanic wraps a value recovered from a panic inside a Then,
// ThenFuture, ThenDone, or ThenDoneFuture callback. It replaces the
// upstream success and is forwarded down the chain like any other failure.
type UncaughtPanic struct {
	v any
}

func (e *UncaughtPanic) Error() string {
	return fmt.Sprintf("future: uncaught panic in continuation: %v", e.v)
}

// V returns the original value passed to panic.
func (e *UncaughtPanic) V() any {
	return e.v
}

func newUncaughtPanic(v any) error {
	return pkgerrors.WithStack(&UncaughtPanic{v: v})
}

// IndexedError pairs a child failure with its position in the input list
// passed to a WhenAll call.
type IndexedError struct {
	Index int
	Err   error
}

// AggregateError is the failure WhenAll resolves to when at least one
// input fails. Its Errors slice preserves input-position order among the
// failed children only; no entry is present for a child that succeeded.
type AggregateError struct {
	Errors []IndexedError
}

func newAggregateError(failures []error) *AggregateError {
	ae := &AggregateError{}
	for i, err := range failures {
		if err != nil {
			ae.Errors = append(ae.Errors, IndexedError{Index: i, Err: err})
		}
	}
	return ae
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	for i, ie := range e.Errors {
		if i != 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "[%d] %s", ie.Index, ie.Err)
	}
	return b.String()
}

// Unwrap supports errors.Is/errors.As traversal into any one of the child
// failures (Go 1.20+ multi-error unwrap).
func (e *AggregateError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, ie := range e.Errors {
		errs[i] = ie.Err
	}
	return errs
}
