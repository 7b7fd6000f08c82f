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

// Package future provides a single-producer, single-consumer promise/future
// pair, with a chaining pipeline and a WhenAll fan-in combinator.
//
// A Producer is the write end: it is constructed, handed out exactly one
// Consumer, and fulfilled at most once, with either a value or a failure.
// A Consumer is the read end: it is retrieved from a Producer, and is
// consumed by exactly one of Get, Then, ThenFuture, or OnFailure.
//
// Producer and Consumer are move-only in spirit: Go has no compiler-enforced
// move semantics, so this is modeled by consuming methods taking a pointer
// receiver and marking the handle unusable (NoState) afterward. Callers
// must not reuse a handle after passing it to a consuming call, and must
// not copy a handle once it has been used.
//
// Continuations attached through Then and ThenFuture run inline, on
// whichever goroutine calls the matching Producer fulfillment method (or
// inline, at attachment time, if the Producer already fulfilled). There is
// no executor, no worker pool, and no cancellation: dropping a Consumer
// does not affect the Producer, and a Producer that is never fulfilled and
// then Close'd synthesizes a BrokenPromise failure on its Consumer.
//
// The unit-valued variant (DoneProducer / DoneConsumer) models a pure
// completion signal rather than a value, and is the only variant carrying
// the OnException terminology from the original design; Consumer[T]
// exposes the equivalent path as OnFailure.
package future
