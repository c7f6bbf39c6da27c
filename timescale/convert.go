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

package timescale

import (
	"github.com/ohartman/slicerviz/dataview"
)

// ConvertTime maps a DataView onto time scale items.  The view must carry
// exactly one category column (the times) and at least one measure column
// (the values); anything else yields nil.
func ConvertTime(dv *dataview.DataView) []TimeItem {
	if dv == nil || dv.Categorical == nil {
		return nil
	}
	categorical := dv.Categorical
	if len(categorical.Categories) != 1 || len(categorical.Values) == 0 {
		return nil
	}
	category := categorical.Categories[0]
	measure := categorical.Values[0]
	items := make([]TimeItem, 0, len(category.Values))
	for i, v := range category.Values {
		item := TimeItem{Date: CoerceDate(v)}
		if i < len(measure.Values) {
			item.Value = measure.Values[i]
		}
		if i < len(category.Identity) {
			item.Identity = category.Identity[i]
		}
		items = append(items, item)
	}
	return items
}
