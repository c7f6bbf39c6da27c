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
	"testing"

	"github.com/ohartman/slicerviz/dataview"
	"github.com/ohartman/slicerviz/expr"
	"github.com/ohartman/slicerviz/host"
	"github.com/stretchr/testify/require"
)

func TestPersistThenRestoreRoundTrips(t *testing.T) {
	h := newFakeHost()
	sm := host.NewSelectionManager(h)
	items := Convert(categoricalDataView("Table.Category", false, nil, "A", 5, "B", 10, "C", 0))
	require.Len(t, items, 3)

	// Select B.
	selected := []Item{items[1]}
	sm.Clear()
	sm.Select(items[1].Identity)
	persistSelection(h, sm, selected)

	// Both properties were merged.
	require.Len(t, h.persists, 1)
	require.Len(t, h.persists[0].Merge, 2)
	require.Empty(t, h.persists[0].Remove)

	// Reload against the same DataView shape with the persisted objects.
	dv := categoricalDataView("Table.Category", false, h.objects, "A", 5, "B", 10, "C", 0)
	restoreSM := host.NewSelectionManager(newFakeHost())
	restored := restoreSelection(dv, restoreSM)
	require.Len(t, restored, 1)
	require.True(t, restored[0].Selected)
	require.Equal(t, "B", restored[0].MatchText)
	require.Equal(t, 10.0, restored[0].Value)
	require.NotNil(t, restored[0].RenderedValue)
	require.Equal(t, 100.0, *restored[0].RenderedValue)
	require.True(t, restored[0].Identity.Equals(items[1].Identity))
	require.True(t, restoreSM.HasSelection())
}

func TestPersistSerializedFilterRoundTrips(t *testing.T) {
	h := newFakeHost()
	sm := host.NewSelectionManager(h)
	items := Convert(categoricalDataView("Table.Category", false, nil, "A", 5, "B", 10))
	sm.Select(items[0].Identity)
	persistSelection(h, sm, []Item{items[0]})

	// Simulate a store that serialized the filter to JSON before handing it
	// back.
	filter, ok := h.objects["general"]["filter"].(*expr.SemanticFilter)
	require.True(t, ok)
	encoded, err := json.Marshal(filter)
	require.NoError(t, err)
	h.objects["general"]["filter"] = string(encoded)

	dv := categoricalDataView("Table.Category", false, h.objects, "A", 5, "B", 10)
	restored := restoreSelection(dv, host.NewSelectionManager(newFakeHost()))
	require.Len(t, restored, 1)
	require.Equal(t, "A", restored[0].MatchText)
	require.True(t, restored[0].Identity.Equals(items[0].Identity))
}

func TestPersistEmptySelectionRemovesProperties(t *testing.T) {
	h := newFakeHost()
	h.objects["general"] = dataview.Properties{
		"filter":    "stale",
		"selection": "stale",
	}
	sm := host.NewSelectionManager(h)
	persistSelection(h, sm, nil)

	require.Len(t, h.persists, 1)
	require.Empty(t, h.persists[0].Merge)
	require.Len(t, h.persists[0].Remove, 2)
	_, ok := h.objects.Value("general", "filter")
	require.False(t, ok)
	_, ok = h.objects.Value("general", "selection")
	require.False(t, ok)

	// Restoring from the emptied store yields an empty selection.
	dv := categoricalDataView("Table.Category", false, h.objects, "A", 5)
	require.Empty(t, restoreSelection(dv, host.NewSelectionManager(newFakeHost())))
}

func TestRestoreFailsSoft(t *testing.T) {
	for _, test := range []struct {
		description string
		objects     dataview.Objects
	}{{
		description: "absent objects",
		objects:     nil,
	}, {
		description: "unreadable filter",
		objects: dataview.Objects{
			"general": dataview.Properties{"filter": "not json"},
		},
	}, {
		description: "filter without conditions",
		objects: dataview.Objects{
			"general": dataview.Properties{"filter": &expr.SemanticFilter{}},
		},
	}, {
		description: "in-condition with no values",
		objects: dataview.Objects{
			"general": dataview.Properties{"filter": &expr.SemanticFilter{
				Where: []expr.Condition{{Condition: &expr.In{
					Args: []expr.Expr{expr.NewColumn("Table.Category")},
				}}},
			}},
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			dv := categoricalDataView("Table.Category", false, test.objects, "A", 5)
			sm := host.NewSelectionManager(newFakeHost())
			require.Empty(t, restoreSelection(dv, sm))
			require.False(t, sm.HasSelection())
		})
	}
}

func TestRestoreWithMissingSidecarKeepsIdentities(t *testing.T) {
	h := newFakeHost()
	sm := host.NewSelectionManager(h)
	items := Convert(categoricalDataView("Table.Category", false, nil, "A", 5, "B", 10))
	sm.Select(items[0].Identity)
	sm.Select(items[1].Identity)
	persistSelection(h, sm, items)
	delete(h.objects["general"], "selection")

	dv := categoricalDataView("Table.Category", false, h.objects, "A", 5, "B", 10)
	restored := restoreSelection(dv, host.NewSelectionManager(newFakeHost()))
	require.Len(t, restored, 2)
	for i, item := range restored {
		require.True(t, item.Identity.Equals(items[i].Identity))
		require.Empty(t, item.MatchText)
	}
}
