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

import (
	"time"

	"github.com/ohartman/slicerviz/dataview"
	"github.com/ohartman/slicerviz/debounce"
	"github.com/ohartman/slicerviz/host"
	"github.com/ohartman/slicerviz/paging"
)

// selectionDebounceWindow coalesces rapid selection events into one host
// write.
const selectionDebounceWindow = 100 * time.Millisecond

// Controller orchestrates the slicer's host lifecycle: it converts each
// DataView update into items, coordinates paging against the item cap,
// and reconciles widget selection events with the host's persisted state.
// The host serializes lifecycle callbacks, so Controller state is never
// mutated concurrently.
type Controller struct {
	host        host.Services
	selection   *host.SelectionManager
	widget      Widget
	coordinator *paging.Coordinator[Item]
	onSelection *debounce.Debouncer[[]Item]

	dataView *dataview.DataView
	data     []Item
	settings Settings
	// The query name of the most recently seen category column; selection
	// is only valid while it is unchanged.
	currentCategory string
	// Guards against selection events raised while data is being pushed
	// into the widget.
	loadingData bool
}

// NewController returns a Controller for the provided host services and
// widget.
func NewController(h host.Services, w Widget) *Controller {
	c := &Controller{
		host:      h,
		selection: host.NewSelectionManager(h),
		widget:    w,
		settings:  Settings{MaxItems: DefaultMaxItems},
	}
	c.coordinator = paging.NewCoordinator[Item](h.LoadMoreData)
	c.onSelection = debounce.New(selectionDebounceWindow, c.commitSelection)
	return c
}

// Update delivers a fresh DataView snapshot from the host.
func (c *Controller) Update(dv *dataview.DataView) {
	c.loadingData = true
	defer func() { c.loadingData = false }()
	c.dataView = dv
	if dv == nil {
		c.widget.SetData(nil)
		c.widget.SetSelectedItems(nil)
		return
	}
	c.settings = LoadSettings(dv)
	c.loadData(dv)
	c.loadSort(dv)
	if restored := restoreSelection(dv, c.selection); len(restored) > 0 {
		c.widget.SetSelectedItems(restored)
	}
}

// Close releases the controller's timers.  Call on visual dispose.
func (c *Controller) Close() {
	c.onSelection.Stop()
}

// Settings returns the controller's current configuration.
func (c *Controller) Settings() Settings {
	return c.settings
}

// Data returns the accumulated item cache.
func (c *Controller) Data() []Item {
	return c.data
}

// CanLoadMore reports whether a widget request for more data is
// serviceable: search requests always are, from cache; otherwise the
// accumulated items must be under the cap and the host must indicate more
// data segments exist.
func (c *Controller) CanLoadMore(isSearch bool) bool {
	if isSearch {
		return true
	}
	return len(c.data) < c.settings.MaxItems && c.dataView != nil && c.dataView.Metadata.Segment
}

// LoadMore services a widget request for more data.  Search requests with a
// non-empty cache resolve synchronously with the filtered cache, bypassing
// the host.  Otherwise, while under the cap with segments remaining, a host
// fetch is coordinated; the returned request settles when the host delivers
// the next segment, or rejects if superseded.  Returns nil when there is
// nothing to load.
func (c *Controller) LoadMore(isSearch bool) *paging.Request[Item] {
	if isSearch && len(c.data) > 0 {
		return paging.Resolved(c.filterBySearch(c.data))
	}
	if c.CanLoadMore(false) {
		return c.coordinator.Begin()
	}
	return nil
}

// OnSelectionChanged accepts a user-driven selection change from the
// widget.  Changes are debounced; the latest within the window wins.
func (c *Controller) OnSelectionChanged(items []Item) {
	if c.loadingData {
		return
	}
	c.onSelection.Trigger(items)
}

// FlushSelection commits a pending debounced selection immediately.
func (c *Controller) FlushSelection() {
	c.onSelection.Flush()
}

func (c *Controller) commitSelection(items []Item) {
	c.selection.Clear()
	for _, item := range items {
		c.selection.Select(item.Identity)
	}
	persistSelection(c.host, c.selection, items)
}

func (c *Controller) loadData(dv *dataview.DataView) {
	prevCount := len(c.data)
	oldData := c.data
	converted := Convert(dv)
	if len(converted) > c.settings.MaxItems {
		converted = converted[:c.settings.MaxItems]
	}
	c.data = converted

	if c.coordinator.Loading() {
		// A paged segment arrived: hand the outstanding request just the new
		// items beyond the previous count, search-filtered.
		delta := []Item{}
		if prevCount < len(c.data) {
			delta = c.data[prevCount:]
		}
		c.coordinator.ResolvePending(c.filterBySearch(delta))
	} else {
		filtered := c.filterBySearch(c.data)
		if !sameTail(oldData, c.data) {
			c.widget.SetData(filtered)
		} else if len(filtered) == 0 {
			c.widget.SetData(nil)
		}
	}

	category := dv.FirstCategory()
	categoryName := ""
	if category != nil && category.Source != nil {
		categoryName = category.Source.QueryName
	}
	// If the user has swapped the category column, the old selection no
	// longer refers to a valid column.
	if category == nil || (c.currentCategory != "" && c.currentCategory != categoryName) {
		c.widget.SetSelectedItems(nil)
		c.selection.Clear()
		persistSelection(c.host, c.selection, nil)
	}
	c.currentCategory = categoryName
}

// sameTail reports whether both item lists end in basically equal items.
func sameTail(a, b []Item) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return basicallyEqual(a[len(a)-1], b[len(b)-1])
}

func (c *Controller) filterBySearch(items []Item) []Item {
	return FilterItems(items, c.widget.SearchString(), c.settings.CaseInsensitive)
}

func (c *Controller) loadSort(dv *dataview.DataView) {
	var last *dataview.Column
	for _, col := range dv.Metadata.Columns {
		if col.Sort != dataview.Unsorted {
			last = col
		}
	}
	if last == nil {
		return
	}
	field := SortByValue
	if last.Roles["Category"] {
		field = SortByMatch
	}
	c.widget.SetSort(field, last.Sort != dataview.Ascending)
}
