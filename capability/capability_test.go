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

package capability

import (
	"testing"
)

func TestDeclarationsAreSelfConsistent(t *testing.T) {
	for _, test := range []struct {
		description string
		caps        Capabilities
	}{{
		description: "attribute slicer",
		caps:        AttributeSlicer,
	}, {
		description: "time scale",
		caps:        TimeScale,
	}} {
		t.Run(test.description, func(t *testing.T) {
			roles := map[string]RoleKind{}
			for _, role := range test.caps.DataRoles {
				roles[role.Name] = role.Kind
			}
			if kind, ok := roles[test.caps.Mapping.CategoryRole]; !ok || kind != Grouping {
				t.Errorf("mapping category role %q is not a declared grouping role", test.caps.Mapping.CategoryRole)
			}
			if kind, ok := roles[test.caps.Mapping.ValueRole]; !ok || kind != Measure {
				t.Errorf("mapping value role %q is not a declared measure role", test.caps.Mapping.ValueRole)
			}
			for name := range test.caps.Mapping.Conditions {
				if _, ok := roles[name]; !ok {
					t.Errorf("condition names undeclared role %q", name)
				}
			}
		})
	}
}

func TestSlicerWindowsItsCategories(t *testing.T) {
	if got := AttributeSlicer.Mapping.Reduction; got.Kind != Window || got.Count != 500 {
		t.Errorf("got reduction %+v, want a window of 500", got)
	}
	if TimeScale.Mapping.Reduction.Kind != Top {
		t.Errorf("got reduction %+v, want top", TimeScale.Mapping.Reduction)
	}
}
