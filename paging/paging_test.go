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

package paging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustResult[T any](t *testing.T, req *Request[T]) Result[T] {
	t.Helper()
	select {
	case res := <-req.Result():
		return res
	default:
		t.Fatal("request has no settled result")
		return Result[T]{}
	}
}

func requireUnsettled[T any](t *testing.T, req *Request[T]) {
	t.Helper()
	select {
	case res := <-req.Result():
		t.Fatalf("request unexpectedly settled with %v", res)
	default:
	}
}

func TestResolveDeliversItems(t *testing.T) {
	loads := 0
	c := NewCoordinator[string](func() { loads++ })
	req := c.Begin()
	require.Equal(t, 1, loads)
	require.True(t, c.Loading())
	requireUnsettled(t, req)

	require.True(t, c.ResolvePending([]string{"a", "b"}))
	require.False(t, c.Loading())
	res := mustResult(t, req)
	require.NoError(t, res.Err)
	require.Equal(t, []string{"a", "b"}, res.Items)

	// Nothing left to resolve.
	require.False(t, c.ResolvePending(nil))
}

func TestNewerRequestSupersedesOlder(t *testing.T) {
	loads := 0
	c := NewCoordinator[int](func() { loads++ })
	first := c.Begin()
	second := c.Begin()

	// The first promise rejects; no second host fetch is issued while one is
	// already outstanding.
	require.Equal(t, 1, loads)
	res := mustResult(t, first)
	require.ErrorIs(t, res.Err, ErrSuperseded)
	requireUnsettled(t, second)

	// Only the newest request can resolve.
	require.True(t, c.ResolvePending([]int{42}))
	res = mustResult(t, second)
	require.NoError(t, res.Err)
	require.Equal(t, []int{42}, res.Items)
}

func TestRejectPending(t *testing.T) {
	c := NewCoordinator[int](nil)
	req := c.Begin()
	require.True(t, c.RejectPending(ErrSuperseded))
	res := mustResult(t, req)
	require.ErrorIs(t, res.Err, ErrSuperseded)
	require.False(t, c.RejectPending(ErrSuperseded))
}

func TestResolvedIsImmediatelySettled(t *testing.T) {
	req := Resolved([]int{1, 2, 3})
	res := mustResult(t, req)
	require.NoError(t, res.Err)
	require.Equal(t, []int{1, 2, 3}, res.Items)
}
