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
	"fmt"

	"github.com/ohartman/slicerviz/dataview"
	"github.com/ohartman/slicerviz/expr"
	"github.com/ohartman/slicerviz/host"
	"github.com/ohartman/slicerviz/identity"
)

// fakeHost records host calls for inspection.
type fakeHost struct {
	loadMoreCalls int
	persists      []host.Persist
	selections    []host.Selection
	// objects simulates the persisted store across updates.
	objects dataview.Objects
}

func newFakeHost() *fakeHost {
	return &fakeHost{objects: dataview.Objects{}}
}

func (h *fakeHost) LoadMoreData() {
	h.loadMoreCalls++
}

func (h *fakeHost) PersistProperties(p host.Persist) {
	h.persists = append(h.persists, p)
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

func (h *fakeHost) OnSelect(s host.Selection) {
	h.selections = append(h.selections, s)
}

// fakeWidget records item pushes and supplies the active search term.
type fakeWidget struct {
	data           []Item
	setDataCalls   int
	selected       []Item
	setSelectCalls int
	search         string
	sortField      SortField
	sortDescending bool
	sortSet        bool
}

func (w *fakeWidget) SetData(items []Item) {
	w.data = items
	w.setDataCalls++
}

func (w *fakeWidget) SetSelectedItems(items []Item) {
	w.selected = items
	w.setSelectCalls++
}

func (w *fakeWidget) SearchString() string {
	return w.search
}

func (w *fakeWidget) SetSort(field SortField, descending bool) {
	w.sortField = field
	w.sortDescending = descending
	w.sortSet = true
}

// categoricalDataView assembles a single-category, single-measure DataView
// from alternating match/value pairs, issuing a scoped identity per row.
func categoricalDataView(queryName string, segment bool, objects dataview.Objects, pairs ...any) *dataview.DataView {
	column := expr.NewColumn(queryName)
	category := &dataview.CategoryColumn{
		Source:         &dataview.Column{QueryName: queryName, Roles: map[string]bool{"Category": true}},
		IdentityFields: []expr.Expr{column},
	}
	values := &dataview.ValueColumn{
		Source: &dataview.Column{QueryName: queryName + ".Values", Roles: map[string]bool{"Values": true}},
	}
	for i := 0; i < len(pairs); i += 2 {
		match := pairs[i].(string)
		category.Values = append(category.Values, dataview.StringValue(match))
		category.Identity = append(category.Identity,
			identity.FromExpr(expr.NewEqual(column, expr.String(match))))
		var value float64
		switch v := pairs[i+1].(type) {
		case int:
			value = float64(v)
		case float64:
			value = v
		default:
			panic(fmt.Sprintf("unsupported value type %T", pairs[i+1]))
		}
		values.Values = append(values.Values, value)
	}
	return &dataview.DataView{
		Categorical: &dataview.Categorical{
			Categories: []*dataview.CategoryColumn{category},
			Values:     []*dataview.ValueColumn{values},
		},
		Metadata: dataview.Metadata{
			Columns: []*dataview.Column{category.Source, values.Source},
			Objects: objects,
			Segment: segment,
		},
	}
}
