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
	"encoding/json"

	"github.com/ohartman/slicerviz/dataview"
	"github.com/ohartman/slicerviz/expr"
	"github.com/ohartman/slicerviz/host"
	"github.com/ohartman/slicerviz/identity"
)

const (
	generalObject     = "general"
	filterProperty    = "filter"
	selectionProperty = "selection"
)

// persistedItem is the JSON sidecar form of a selected item.  The semantic
// filter alone cannot round-trip display values, so the sidecar carries
// them, ordered in parallel with the filter's value rows.
type persistedItem struct {
	Match         string   `json:"match"`
	Value         float64  `json:"value"`
	RenderedValue *float64 `json:"renderedValue,omitempty"`
}

// persistSelection writes the current selection into the host's persisted
// objects: a semantic filter built from the selected identities' selectors,
// merged together with the JSON sidecar.  With nothing selected, both
// properties are removed instead.
func persistSelection(h host.Services, sm *host.SelectionManager, items []Item) {
	var filter *expr.SemanticFilter
	if sm.HasSelection() {
		selectors := []expr.Expr{}
		for _, id := range sm.SelectionIdentities() {
			if sel, ok := id.(identity.Selectable); ok {
				selectors = append(selectors, sel.Selector())
			}
		}
		filter = expr.FilterFromSelectors(selectors)
	}
	if filter == nil {
		h.PersistProperties(host.Persist{
			Remove: []host.ObjectInstance{{
				ObjectName: generalObject,
				Properties: map[string]any{filterProperty: nil},
			}, {
				ObjectName: generalObject,
				Properties: map[string]any{selectionProperty: nil},
			}},
		})
		return
	}
	sidecar := make([]persistedItem, 0, len(items))
	for _, item := range items {
		sidecar = append(sidecar, persistedItem{
			Match:         item.MatchText,
			Value:         item.Value,
			RenderedValue: item.RenderedValue,
		})
	}
	encoded, err := json.Marshal(sidecar)
	if err != nil {
		return
	}
	h.PersistProperties(host.Persist{
		Merge: []host.ObjectInstance{{
			ObjectName: generalObject,
			Properties: map[string]any{filterProperty: filter},
		}, {
			ObjectName: generalObject,
			Properties: map[string]any{selectionProperty: string(encoded)},
		}},
	})
}

// persistedFilter recovers the persisted semantic filter from the provided
// objects.  The host may hand the filter back live or in its serialized
// form; both are accepted.  Returns nil when the filter is absent or
// unreadable.
func persistedFilter(objects dataview.Objects) *expr.SemanticFilter {
	v, ok := objects.Value(generalObject, filterProperty)
	if !ok {
		return nil
	}
	switch filter := v.(type) {
	case *expr.SemanticFilter:
		return filter
	case string:
		parsed, err := expr.ParseFilter([]byte(filter))
		if err != nil {
			return nil
		}
		return parsed
	case []byte:
		parsed, err := expr.ParseFilter(filter)
		if err != nil {
			return nil
		}
		return parsed
	case json.RawMessage:
		parsed, err := expr.ParseFilter(filter)
		if err != nil {
			return nil
		}
		return parsed
	}
	return nil
}

// restoreSelection is the inverse of persistSelection: it rebuilds the
// in-memory selection from the persisted filter and sidecar.  Each value
// row of the filter's first in-condition yields an identity scoped to an
// equality against the condition's source column; identities are then
// zipped, by position, with the sidecar to recover display fields.
//
// Fails soft: absent or structurally incomplete persisted objects yield an
// empty selection and leave the selection manager untouched.
func restoreSelection(dv *dataview.DataView, sm *host.SelectionManager) []Item {
	if dv == nil {
		return nil
	}
	objects := dv.Metadata.Objects
	in := persistedFilter(objects).FirstIn()
	if in == nil || len(in.Args) == 0 || len(in.Values) == 0 {
		return nil
	}
	var sidecar []persistedItem
	if encoded, ok := objects.String(generalObject, selectionProperty); ok {
		if err := json.Unmarshal([]byte(encoded), &sidecar); err != nil {
			sidecar = nil
		}
	}
	source := in.Args[0]
	sm.Clear()
	for _, row := range in.Values {
		if len(row) == 0 {
			continue
		}
		sm.Select(identity.FromExpr(expr.NewEqual(source, row[0])))
	}
	ids := sm.SelectionIdentities()
	items := make([]Item, 0, len(ids))
	for i, id := range ids {
		item := Item{Identity: id, Selected: true}
		if i < len(sidecar) {
			item.MatchText = sidecar[i].Match
			item.Value = sidecar[i].Value
			item.RenderedValue = sidecar[i].RenderedValue
		}
		items = append(items, item)
	}
	return items
}
