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

// Package timescale adapts host data updates and range selections for a
// time-brush widget.  Each category row becomes a dated item; brushing a
// range on the widget persists a between-filter on the time column back to
// the host.
package timescale

import (
	"time"

	"github.com/ohartman/slicerviz/identity"
)

// TimeItem is one dated point on the time scale.
type TimeItem struct {
	Date     time.Time
	Value    float64
	Identity identity.Identity
}

// hasDataChanged reports whether the two item lists differ by identity.
func hasDataChanged(newData, oldData []TimeItem) bool {
	if len(newData) != len(oldData) {
		return true
	}
	for i := range newData {
		a, b := newData[i].Identity, oldData[i].Identity
		if a == nil || b == nil {
			if a != b {
				return true
			}
			continue
		}
		if !a.Equals(b) {
			return true
		}
	}
	return false
}
