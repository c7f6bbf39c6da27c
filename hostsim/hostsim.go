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

// Package hostsim provides a simulated visual host for demos and
// integration tests.  It serves a visual windowed pages of an in-memory
// dataset, stores persisted properties with merge/remove semantics, and
// records selections, honoring the host contract that lifecycle callbacks
// are serialized: a load-more request only marks a page pending, and
// DeliverPage pushes it as a fresh update.
package hostsim

import (
	"fmt"
	"sync"

	"github.com/ohartman/slicerviz/dataview"
	"github.com/ohartman/slicerviz/expr"
	"github.com/ohartman/slicerviz/host"
	"github.com/ohartman/slicerviz/identity"
)

// Row is one dataset row: a category cell and its measure.
type Row struct {
	Category *dataview.V
	Value    float64
}

// Dataset is an in-memory table served to a visual one window at a time.
type Dataset struct {
	Name string
	// Column is the category column's query name, e.g. "Sales.Region".
	Column string
	Rows   []Row
}

// Host simulates the visual host for a single visual instance.
type Host struct {
	mu      sync.Mutex
	dataset *Dataset
	// window is the number of rows delivered per page; non-positive means
	// the whole dataset arrives in the first update.
	window    int
	delivered int
	// pendingLoad is set by LoadMoreData and cleared by DeliverPage.
	pendingLoad bool
	visual      host.Visual
	objects     dataview.Objects
	selections  []host.Selection
}

// NewHost returns a Host serving dataset in pages of window rows.  Attach
// the visual before pushing updates; the visual's constructor usually
// needs the host first.
func NewHost(dataset *Dataset, window int) *Host {
	return &Host{
		dataset: dataset,
		window:  window,
		objects: dataview.Objects{},
	}
}

// Attach connects the hosted visual.
func (h *Host) Attach(v host.Visual) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.visual = v
}

// LoadMoreData marks the next page pending.  The real host delivers it in
// a later update cycle; call DeliverPage to do the same.
func (h *Host) LoadMoreData() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.delivered < len(h.dataset.Rows) {
		h.pendingLoad = true
	}
}

// PersistProperties applies merge and remove instances to the persisted
// object store.
func (h *Host) PersistProperties(p host.Persist) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, inst := range p.Merge {
		props, ok := h.objects[inst.ObjectName]
		if !ok {
			props = dataview.Properties{}
			h.objects[inst.ObjectName] = props
		}
		for k, v := range inst.Properties {
			props[k] = v
		}
	}
	for _, inst := range p.Remove {
		props, ok := h.objects[inst.ObjectName]
		if !ok {
			continue
		}
		for k := range inst.Properties {
			delete(props, k)
		}
	}
}

// OnSelect records the visual's selection notification.
func (h *Host) OnSelect(s host.Selection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.selections = append(h.selections, s)
}

// Selections returns all recorded selection notifications.
func (h *Host) Selections() []host.Selection {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]host.Selection(nil), h.selections...)
}

// Objects returns a snapshot of the persisted object store.
func (h *Host) Objects() dataview.Objects {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.objectsLocked()
}

func (h *Host) objectsLocked() dataview.Objects {
	snapshot := dataview.Objects{}
	for name, props := range h.objects {
		copied := dataview.Properties{}
		for k, v := range props {
			copied[k] = v
		}
		snapshot[name] = copied
	}
	return snapshot
}

// PushUpdate delivers the current accumulated view to the visual.  The
// first push delivers the initial page.
func (h *Host) PushUpdate() error {
	h.mu.Lock()
	if h.dataset == nil || h.visual == nil {
		h.mu.Unlock()
		return fmt.Errorf("host needs a dataset and an attached visual")
	}
	if h.delivered == 0 {
		h.delivered = h.pageSize()
	}
	dv := h.snapshotLocked()
	h.mu.Unlock()
	h.visual.Update(dv)
	return nil
}

// DeliverPage answers a pending load-more request: the window advances and
// the visual receives the accumulated view as a fresh update.  Reports
// whether a page was pending.
func (h *Host) DeliverPage() bool {
	h.mu.Lock()
	if !h.pendingLoad {
		h.mu.Unlock()
		return false
	}
	h.pendingLoad = false
	h.delivered += h.pageSize()
	if h.delivered > len(h.dataset.Rows) {
		h.delivered = len(h.dataset.Rows)
	}
	dv := h.snapshotLocked()
	h.mu.Unlock()
	h.visual.Update(dv)
	return true
}

func (h *Host) pageSize() int {
	if h.window <= 0 {
		return len(h.dataset.Rows)
	}
	if h.window > len(h.dataset.Rows) {
		return len(h.dataset.Rows)
	}
	return h.window
}

// snapshotLocked assembles the DataView for the first delivered rows,
// issuing a stable per-row identity scoped to equality on the category
// column.  Metadata.Segment signals undelivered rows remain.
func (h *Host) snapshotLocked() *dataview.DataView {
	column := expr.NewColumn(h.dataset.Column)
	category := &dataview.CategoryColumn{
		Source: &dataview.Column{
			QueryName: h.dataset.Column,
			Roles:     map[string]bool{"Category": true},
		},
		IdentityFields: []expr.Expr{column},
	}
	values := &dataview.ValueColumn{
		Source: &dataview.Column{
			QueryName: h.dataset.Column + ".Values",
			Roles:     map[string]bool{"Values": true},
		},
	}
	count := h.delivered
	if count > len(h.dataset.Rows) {
		count = len(h.dataset.Rows)
	}
	for _, row := range h.dataset.Rows[:count] {
		category.Values = append(category.Values, row.Category)
		category.Identity = append(category.Identity,
			identity.FromExpr(expr.NewEqual(column, literalFor(row.Category))))
		values.Values = append(values.Values, row.Value)
	}
	return &dataview.DataView{
		Categorical: &dataview.Categorical{
			Categories: []*dataview.CategoryColumn{category},
			Values:     []*dataview.ValueColumn{values},
		},
		Metadata: dataview.Metadata{
			Columns: []*dataview.Column{category.Source, values.Source},
			Objects: h.objectsLocked(),
			Segment: count < len(h.dataset.Rows),
		},
	}
}

// literalFor converts a category cell into the literal expression its
// row identity is scoped to.
func literalFor(v *dataview.V) expr.Expr {
	if v.IsUnset() {
		return expr.String("")
	}
	switch v.K {
	case dataview.StringKind:
		s, _ := v.ExpectString()
		return expr.String(s)
	case dataview.DoubleKind, dataview.IntegerKind:
		n, _ := v.AsNumber()
		return expr.Number(n)
	case dataview.BoolKind:
		b, _ := v.ExpectBool()
		return expr.Bool(b)
	case dataview.TimestampKind:
		t, _ := v.ExpectTimestamp()
		return expr.DateTime(t)
	}
	return expr.String(v.Display())
}
