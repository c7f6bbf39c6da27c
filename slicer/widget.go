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

package slicer

// SortField names a widget sort key.
type SortField string

// The widget sort keys.
const (
	SortByMatch SortField = "match"
	SortByValue SortField = "value"
)

// Widget is the rendering side of the slicer.  It owns layout, bars, and
// scroll state, but never selection truth: it is a sink for item lists and
// a source of user events, which it reports through the Controller's
// CanLoadMore, LoadMore, and OnSelectionChanged.
type Widget interface {
	// SetData replaces the widget's rendered item list.
	SetData(items []Item)
	// SetSelectedItems replaces the widget's selected item list.
	SetSelectedItems(items []Item)
	// SearchString returns the widget's current search term, empty when no
	// search is active.
	SearchString() string
	// SetSort pushes a sort order into the widget.
	SetSort(field SortField, descending bool)
}
