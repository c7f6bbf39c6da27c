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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ohartman/slicerviz/dataview"
)

func TestLoadSettings(t *testing.T) {
	for _, test := range []struct {
		description string
		dv          *dataview.DataView
		want        Settings
	}{{
		description: "nil data view yields defaults",
		dv:          nil,
		want:        Settings{MaxItems: DefaultMaxItems},
	}, {
		description: "absent objects yield defaults",
		dv:          categoricalDataView("Table.Category", false, nil, "A", 1),
		want:        Settings{MaxItems: DefaultMaxItems, HasValues: true},
	}, {
		description: "persisted values are honored",
		dv: categoricalDataView("Table.Category", false, dataview.Objects{
			"search": dataview.Properties{"caseInsensitive": true},
			"data":   dataview.Properties{"limit": 250.0},
		}, "A", 1),
		want: Settings{CaseInsensitive: true, MaxItems: 250, HasValues: true},
	}, {
		description: "non-positive limit restores the default",
		dv: categoricalDataView("Table.Category", false, dataview.Objects{
			"data": dataview.Properties{"limit": -3.0},
		}, "A", 1),
		want: Settings{MaxItems: DefaultMaxItems, HasValues: true},
	}, {
		description: "non-numeric limit restores the default",
		dv: categoricalDataView("Table.Category", false, dataview.Objects{
			"data": dataview.Properties{"limit": "lots"},
		}, "A", 1),
		want: Settings{MaxItems: DefaultMaxItems, HasValues: true},
	}, {
		description: "hasValues is false without measure columns",
		dv: &dataview.DataView{Categorical: &dataview.Categorical{
			Categories: []*dataview.CategoryColumn{{
				Source: &dataview.Column{QueryName: "Table.Category"},
				Values: []*dataview.V{dataview.StringValue("A")},
			}},
		}},
		want: Settings{MaxItems: DefaultMaxItems},
	}} {
		t.Run(test.description, func(t *testing.T) {
			got := LoadSettings(test.dv)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("LoadSettings() diff (-want +got):\n%s", diff)
			}
		})
	}
}
