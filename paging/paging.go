/*
	Copyright 2025 the slicerviz authors
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package paging coordinates host-driven "load more" requests for a visual
// instance.  At most one request is outstanding at a time; a newer request
// supersedes an older unresolved one, so the last request issued is the one
// whose resolution is honored.  Rejection is the only cancellation
// primitive; there is no timeout.
package paging

import (
	"errors"
	"sync"
)

// ErrSuperseded rejects a pending request that was replaced by a newer one.
var ErrSuperseded = errors.New("load request superseded by a newer one")

// Result is the outcome of a load request.
type Result[T any] struct {
	Items []T
	Err   error
}

// Request is a pending or settled load request.  Its Result channel yields
// exactly one Result.
type Request[T any] struct {
	once sync.Once
	ch   chan Result[T]
}

func newRequest[T any]() *Request[T] {
	return &Request[T]{ch: make(chan Result[T], 1)}
}

// Resolved returns an already-settled Request carrying the provided items.
// Used when a request can be serviced synchronously from cache.
func Resolved[T any](items []T) *Request[T] {
	req := newRequest[T]()
	req.settle(Result[T]{Items: items})
	return req
}

// Result returns the channel on which the request's single Result is
// delivered.
func (r *Request[T]) Result() <-chan Result[T] {
	return r.ch
}

func (r *Request[T]) settle(res Result[T]) {
	r.once.Do(func() {
		r.ch <- res
	})
}

// Coordinator serializes load-more requests for one visual instance.
type Coordinator[T any] struct {
	mu      sync.Mutex
	pending *Request[T]
	// loadMore issues the host call fetching the next data segment.
	loadMore func()
}

// NewCoordinator returns a Coordinator issuing host fetches through
// loadMore.
func NewCoordinator[T any](loadMore func()) *Coordinator[T] {
	return &Coordinator[T]{loadMore: loadMore}
}

// Begin starts a new load request, superseding any pending one.  The
// superseded request is rejected with ErrSuperseded.  The host fetch is
// issued only if no fetch was already outstanding; the new request then
// adopts the outstanding fetch's eventual delivery.
func (c *Coordinator[T]) Begin() *Request[T] {
	c.mu.Lock()
	alreadyLoading := c.pending != nil
	if alreadyLoading {
		c.pending.settle(Result[T]{Err: ErrSuperseded})
	}
	req := newRequest[T]()
	c.pending = req
	c.mu.Unlock()
	if !alreadyLoading && c.loadMore != nil {
		c.loadMore()
	}
	return req
}

// Loading reports whether a request is outstanding.
func (c *Coordinator[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// ResolvePending settles the outstanding request with the provided items,
// returning whether a request was outstanding.
func (c *Coordinator[T]) ResolvePending(items []T) bool {
	req := c.take()
	if req == nil {
		return false
	}
	req.settle(Result[T]{Items: items})
	return true
}

// RejectPending settles the outstanding request with the provided error,
// returning whether a request was outstanding.
func (c *Coordinator[T]) RejectPending(err error) bool {
	req := c.take()
	if req == nil {
		return false
	}
	req.settle(Result[T]{Err: err})
	return true
}

func (c *Coordinator[T]) take() *Request[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	req := c.pending
	c.pending = nil
	return req
}
