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
	"strings"

	"github.com/ohartman/slicerviz/dataview"
)

// Convert maps the provided DataView snapshot into slicer items.  Each
// category row pairs with the same-index value of the first measure column,
// defaulting to 0 where the measure is absent.  Returns nil when the
// DataView has no category column; that is not an error, since categories
// are legitimately absent before the user maps a field.
//
// Rendered values are normalized in a single pass over the entire converted
// set: value/max*100, left nil for zero-valued items.
func Convert(dv *dataview.DataView) []Item {
	category := dv.FirstCategory()
	if category == nil {
		return nil
	}
	var values []float64
	if len(dv.Categorical.Values) > 0 {
		values = dv.Categorical.Values[0].Values
	}
	items := make([]Item, 0, len(category.Values))
	max := 0.0
	for i, cell := range category.Values {
		item := Item{MatchText: cell.Display()}
		if i < len(values) {
			item.Value = values[i]
		}
		if i < len(category.Identity) {
			item.Identity = category.Identity[i]
		}
		if item.Value > max {
			max = item.Value
		}
		items = append(items, item)
	}
	if max > 0 {
		for i := range items {
			if items[i].Value == 0 {
				continue
			}
			rendered := items[i].Value / max * 100
			items[i].RenderedValue = &rendered
		}
	}
	return items
}

// FilterItems returns the items whose match text contains search, honoring
// the provided case sensitivity.  An empty search keeps everything.
func FilterItems(items []Item, search string, caseInsensitive bool) []Item {
	if search == "" {
		return items
	}
	if caseInsensitive {
		search = strings.ToLower(search)
	}
	ret := []Item{}
	for _, item := range items {
		match := item.MatchText
		if caseInsensitive {
			match = strings.ToLower(match)
		}
		if strings.Contains(match, search) {
			ret = append(ret, item)
		}
	}
	return ret
}
