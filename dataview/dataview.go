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

// Package dataview defines the host-provided, read-only snapshot of query
// results a visual receives on each update cycle: categorical columns with
// per-row identities, parallel measure columns, and metadata carrying the
// visual's persisted objects and the more-data segment marker.
package dataview

import (
	"github.com/ohartman/slicerviz/expr"
	"github.com/ohartman/slicerviz/identity"
)

// SortDirection enumerates column sort directions.
type SortDirection int

// Enumerated sort directions.
const (
	Unsorted SortDirection = iota
	Ascending
	Descending
)

// Column describes one column of the query backing a DataView.
type Column struct {
	// The query-unique name of the column.  Stable across updates for the
	// same mapped field.
	QueryName string
	// The user-facing name of the column.
	DisplayName string
	// The data roles the column is bound to.
	Roles map[string]bool
	// The column's sort direction, if any.
	Sort SortDirection
}

// CategoryColumn is one grouping column of a categorical DataView, with a
// host-issued identity per row.
type CategoryColumn struct {
	Source *Column
	Values []*V
	// Identity holds one opaque row identity per entry of Values.
	Identity []identity.Identity
	// IdentityFields holds the expressions the row identities are scoped to,
	// typically one column reference.
	IdentityFields []expr.Expr
}

// ValueColumn is one measure column of a categorical DataView, parallel to
// the category rows.
type ValueColumn struct {
	Source *Column
	Values []float64
}

// Categorical is the categorical shape of a DataView.
type Categorical struct {
	Categories []*CategoryColumn
	Values     []*ValueColumn
}

// Properties is a persisted property bag keyed by property name.
type Properties map[string]any

// Objects holds a visual's persisted objects keyed by object name.
type Objects map[string]Properties

// Value returns the named property and whether it is present.  Safe on nil
// Objects.
func (o Objects) Value(object, property string) (any, bool) {
	props, ok := o[object]
	if !ok {
		return nil, false
	}
	v, ok := props[property]
	return v, ok
}

// Bool returns the named property as a bool.  Absent or non-bool properties
// return false.
func (o Objects) Bool(object, property string) (bool, bool) {
	v, ok := o.Value(object, property)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Number returns the named property as a float64.  Absent or non-numeric
// properties return false.
func (o Objects) Number(object, property string) (float64, bool) {
	v, ok := o.Value(object, property)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// String returns the named property as a string.  Absent or non-string
// properties return false.
func (o Objects) String(object, property string) (string, bool) {
	v, ok := o.Value(object, property)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Metadata carries column descriptors, persisted objects, and the
// more-data segment marker for one DataView.
type Metadata struct {
	Columns []*Column
	Objects Objects
	// Segment is true when the host has more un-fetched rows beyond this
	// snapshot.
	Segment bool
}

// DataView is the host's read-only snapshot of query results for one update
// cycle.
type DataView struct {
	Categorical *Categorical
	Metadata    Metadata
}

// FirstCategory returns the DataView's first category column, or nil if the
// categorical shape or its categories are absent.  Safe on a nil receiver.
func (dv *DataView) FirstCategory() *CategoryColumn {
	if dv == nil || dv.Categorical == nil || len(dv.Categorical.Categories) == 0 {
		return nil
	}
	return dv.Categorical.Categories[0]
}
