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

// Package slicer implements the attribute slicer visual: a searchable,
// selectable categorical filter with value bars.  The package owns the
// data-to-selection round trip — converting DataView snapshots into items,
// coordinating incremental loads against an item cap, and persisting and
// restoring selection through the host — while the rendering widget stays
// behind the Widget interface.
package slicer

import (
	"github.com/ohartman/slicerviz/identity"
)

// Item is one slicer entry: a category row with its measure value.
type Item struct {
	// The display text the search matches against.
	MatchText string
	// The host-issued identity of the source row.
	Identity identity.Identity
	// Whether the item is selected.
	Selected bool
	// The item's measure value; 0 when the row has no measure.
	Value float64
	// Value normalized to a 0-100 scale against the maximum value of the
	// item's converted set.  Nil exactly when Value is 0.
	RenderedValue *float64
}

// basicallyEqual reports whether two items agree on identity, value, and
// rendered value.  Used to decide whether an updated item list actually
// changed.
func basicallyEqual(a, b Item) bool {
	if a.Identity == nil || b.Identity == nil {
		return a.Identity == nil && b.Identity == nil
	}
	if !a.Identity.Equals(b.Identity) || a.Value != b.Value {
		return false
	}
	if a.RenderedValue == nil || b.RenderedValue == nil {
		return a.RenderedValue == nil && b.RenderedValue == nil
	}
	return *a.RenderedValue == *b.RenderedValue
}
