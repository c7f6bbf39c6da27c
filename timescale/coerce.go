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
	"time"

	"github.com/ohartman/slicerviz/dataview"
)

// dateLayouts are the string forms CoerceDate will attempt, most specific
// first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// CoerceDate interprets a category value as a date.  Data sources rarely
// deliver real timestamps, so a small set of heuristics applies:
//
//   - an unset or zero value yields the current time;
//   - strings are parsed against common layouts, shifted forward one hour
//     to clear timezone boundary effects, falling back to the current time;
//   - numbers in (31, 10000] are treated as a year: January 1 of that year;
//   - numbers in (0, 31] are treated as a day of February this year;
//   - larger numbers are treated as milliseconds since the Unix epoch;
//   - timestamps pass through unchanged.
func CoerceDate(v *dataview.V) time.Time {
	now := time.Now()
	if v.IsUnset() {
		return now
	}
	switch v.K {
	case dataview.StringKind:
		s, _ := v.ExpectString()
		if s == "" {
			return now
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Add(time.Hour)
			}
		}
		return now
	case dataview.DoubleKind, dataview.IntegerKind:
		n, _ := v.AsNumber()
		switch {
		case n == 0:
			return now
		case n > 31 && n <= 10000:
			return time.Date(int(n), time.January, 1, 0, 0, 0, 0, time.Local)
		case n > 0 && n <= 31:
			return time.Date(now.Year(), time.February, int(n), 0, 0, 0, 0, time.Local)
		default:
			return time.UnixMilli(int64(n))
		}
	case dataview.TimestampKind:
		t, _ := v.ExpectTimestamp()
		return t
	}
	return now
}
