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

// Package capability declares the static schema a visual exposes to its
// host: the data roles it accepts, how query results map onto its
// categorical shape, and the persisted object groups surfaced in the
// host's formatting pane.  Declarations are data only; no runtime logic
// lives here.
package capability

// RoleKind distinguishes grouping roles from measure roles.
type RoleKind string

const (
	Grouping RoleKind = "grouping"
	Measure  RoleKind = "measure"
)

// DataRole is one named slot a report author can bind columns to.
type DataRole struct {
	Name        string   `json:"name"`
	Kind        RoleKind `json:"kind"`
	DisplayName string   `json:"displayName,omitempty"`
	Description string   `json:"description,omitempty"`
}

// ReductionKind selects how the host trims oversized category columns.
type ReductionKind string

const (
	// Window pages rows in fixed-size segments, enabling load-more.
	Window ReductionKind = "window"
	// Top keeps only the first rows, with no further segments.
	Top ReductionKind = "top"
)

// Reduction is a row-count reduction algorithm for a category column.
type Reduction struct {
	Kind ReductionKind `json:"kind"`
	// Count is the segment size for Window reductions.
	Count int `json:"count,omitempty"`
}

// RoleCondition bounds how many columns may be bound to a role.
type RoleCondition struct {
	Min, Max int
}

// CategoricalMapping maps bound roles onto the categorical DataView shape.
type CategoricalMapping struct {
	// CategoryRole is the grouping role feeding the category column.
	CategoryRole string `json:"categoryRole"`
	// ValueRole is the measure role feeding the value columns.
	ValueRole string `json:"valueRole"`
	// Reduction trims the category column's rows.
	Reduction Reduction `json:"reduction"`
	// Conditions bound role bindings, keyed by role name.
	Conditions map[string]RoleCondition `json:"conditions,omitempty"`
	// IncludeEmptyGroups keeps categories with no measure rows.
	IncludeEmptyGroups bool `json:"includeEmptyGroups,omitempty"`
}

// PropertyKind is the formatting-pane type of a persisted property.
type PropertyKind string

const (
	FilterProperty  PropertyKind = "filter"
	TextProperty    PropertyKind = "text"
	BoolProperty    PropertyKind = "bool"
	NumericProperty PropertyKind = "numeric"
)

// PropertyDescriptor declares one persisted property within an object
// group.
type PropertyDescriptor struct {
	Name        string       `json:"name"`
	Kind        PropertyKind `json:"kind"`
	DisplayName string       `json:"displayName,omitempty"`
	Description string       `json:"description,omitempty"`
}

// ObjectDescriptor declares one persisted object group.
type ObjectDescriptor struct {
	Name        string               `json:"name"`
	DisplayName string               `json:"displayName,omitempty"`
	Properties  []PropertyDescriptor `json:"properties"`
}

// Capabilities is a visual's full host-facing declaration.
type Capabilities struct {
	DataRoles   []DataRole         `json:"dataRoles"`
	Mapping     CategoricalMapping `json:"mapping"`
	DefaultSort bool               `json:"defaultSort,omitempty"`
	Objects     []ObjectDescriptor `json:"objects"`
}

// AttributeSlicer declares the attribute slicer visual: one optional
// grouping column, one optional measure, rows windowed in segments of 500
// so the host can deliver further pages on demand.
var AttributeSlicer = Capabilities{
	DataRoles: []DataRole{{
		Name:        "Category",
		Kind:        Grouping,
		DisplayName: "Field",
	}, {
		Name: "Values",
		Kind: Measure,
	}},
	Mapping: CategoricalMapping{
		CategoryRole: "Category",
		ValueRole:    "Values",
		Reduction:    Reduction{Kind: Window, Count: 500},
		Conditions: map[string]RoleCondition{
			"Category": {Min: 0, Max: 1},
			"Values":   {Min: 0, Max: 1},
		},
		IncludeEmptyGroups: true,
	},
	DefaultSort: true,
	Objects: []ObjectDescriptor{{
		Name:        "general",
		DisplayName: "General",
		Properties: []PropertyDescriptor{
			{Name: "filter", Kind: FilterProperty},
			{Name: "selection", Kind: TextProperty},
		},
	}, {
		Name:        "data",
		DisplayName: "Data",
		Properties: []PropertyDescriptor{{
			Name:        "limit",
			Kind:        NumericProperty,
			DisplayName: "Max number of items",
			Description: "The maximum number of items to load",
		}},
	}, {
		Name:        "search",
		DisplayName: "Search",
		Properties: []PropertyDescriptor{{
			Name:        "caseInsensitive",
			Kind:        BoolProperty,
			DisplayName: "Case Insensitive",
		}},
	}},
}

// TimeScale declares the time scale visual: a time grouping column and its
// measure, rows trimmed with a top reduction since the brush needs the
// whole series at once.
var TimeScale = Capabilities{
	DataRoles: []DataRole{{
		Name:        "Times",
		Kind:        Grouping,
		DisplayName: "Time",
	}, {
		Name:        "Values",
		Kind:        Measure,
		DisplayName: "Values",
	}},
	Mapping: CategoricalMapping{
		CategoryRole: "Times",
		ValueRole:    "Values",
		Reduction:    Reduction{Kind: Top},
	},
	Objects: []ObjectDescriptor{{
		Name:        "general",
		DisplayName: "General",
		Properties: []PropertyDescriptor{
			{Name: "filter", Kind: FilterProperty},
		},
	}},
}
