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
	"github.com/ohartman/slicerviz/dataview"
)

// DefaultMaxItems is the default cap on items loaded from the host.
const DefaultMaxItems = 10000

// Settings is the slicer's visual-level configuration, read from the
// persisted host objects on each update.
type Settings struct {
	// Whether search matching ignores case.
	CaseInsensitive bool
	// The maximum number of items to load from the host.
	MaxItems int
	// Whether the DataView carries measure values.  Derived from the
	// DataView shape, not persisted.
	HasValues bool
}

// LoadSettings reads the slicer settings from the provided DataView.
// Absent or invalid persisted values fall back to defaults; LoadSettings
// never fails.
func LoadSettings(dv *dataview.DataView) Settings {
	s := Settings{MaxItems: DefaultMaxItems}
	if dv == nil {
		return s
	}
	objects := dv.Metadata.Objects
	if v, ok := objects.Bool("search", "caseInsensitive"); ok {
		s.CaseInsensitive = v
	}
	if v, ok := objects.Number("data", "limit"); ok {
		s.MaxItems = int(v)
	}
	if s.MaxItems <= 0 {
		s.MaxItems = DefaultMaxItems
	}
	s.HasValues = dv.Categorical != nil && len(dv.Categorical.Values) > 0
	return s
}
