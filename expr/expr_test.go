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

package expr

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFilterFromSelectors(t *testing.T) {
	category := NewColumn("Table.Category")
	other := NewColumn("Table.Other")
	for _, test := range []struct {
		description string
		selectors   []Expr
		want        *SemanticFilter
	}{{
		description: "no selectors yields no filter",
		selectors:   nil,
		want:        nil,
	}, {
		description: "selectors over one column group into one in-condition",
		selectors: []Expr{
			NewEqual(category, String("apples")),
			NewEqual(category, String("pears")),
		},
		want: &SemanticFilter{
			Where: []Condition{{Condition: &In{
				Args: []Expr{category},
				Values: [][]Expr{
					{String("apples")},
					{String("pears")},
				},
			}}},
		},
	}, {
		description: "selectors over two columns group per column",
		selectors: []Expr{
			NewEqual(category, String("apples")),
			NewEqual(other, Number(3)),
			NewEqual(category, String("pears")),
		},
		want: &SemanticFilter{
			Where: []Condition{{Condition: &In{
				Args: []Expr{category},
				Values: [][]Expr{
					{String("apples")},
					{String("pears")},
				},
			}}, {Condition: &In{
				Args:   []Expr{other},
				Values: [][]Expr{{Number(3)}},
			}}},
		},
	}, {
		description: "non-equality selectors are skipped",
		selectors: []Expr{
			String("not a selector"),
			NewEqual(category, String("apples")),
		},
		want: &SemanticFilter{
			Where: []Condition{{Condition: &In{
				Args:   []Expr{category},
				Values: [][]Expr{{String("apples")}},
			}}},
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			got := FilterFromSelectors(test.selectors)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("FilterFromSelectors() diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterJSONRoundTrip(t *testing.T) {
	category := NewColumn("Table.Category")
	times := NewColumn("Table.Times")
	lower := time.Date(2020, time.March, 1, 12, 30, 0, 0, time.UTC)
	upper := time.Date(2020, time.April, 1, 0, 0, 0, 500, time.UTC)
	for _, test := range []struct {
		description string
		filter      *SemanticFilter
	}{{
		description: "in-condition filter",
		filter: FilterFromSelectors([]Expr{
			NewEqual(category, String("apples")),
			NewEqual(category, Number(12)),
			NewEqual(category, Bool(true)),
		}),
	}, {
		description: "between-condition filter",
		filter:      FilterFromCondition(BetweenDates(times, lower, upper)),
	}} {
		t.Run(test.description, func(t *testing.T) {
			encoded, err := test.filter.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() yielded unexpected error %s", err)
			}
			got, err := ParseFilter(encoded)
			if err != nil {
				t.Fatalf("ParseFilter() yielded unexpected error %s", err)
			}
			if diff := cmp.Diff(test.filter, got); diff != "" {
				t.Errorf("round trip diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFirstConditionAccessors(t *testing.T) {
	category := NewColumn("Table.Category")
	in := &In{Args: []Expr{category}, Values: [][]Expr{{String("apples")}}}
	between := BetweenDates(category, time.Unix(0, 0), time.Unix(100, 0))
	var nilFilter *SemanticFilter
	if got := nilFilter.FirstIn(); got != nil {
		t.Errorf("FirstIn() on nil filter = %v, want nil", got)
	}
	if got := nilFilter.FirstBetween(); got != nil {
		t.Errorf("FirstBetween() on nil filter = %v, want nil", got)
	}
	f := &SemanticFilter{Where: []Condition{
		{Condition: between},
		{Condition: in},
	}}
	if got := f.FirstIn(); got != in {
		t.Errorf("FirstIn() = %v, want %v", got, in)
	}
	if got := f.FirstBetween(); got != between {
		t.Errorf("FirstBetween() = %v, want %v", got, between)
	}
}

func TestKey(t *testing.T) {
	a := NewEqual(NewColumn("Table.Category"), String("apples"))
	b := NewEqual(NewColumn("Table.Category"), String("apples"))
	c := NewEqual(NewColumn("Table.Category"), String("pears"))
	if Key(a) != Key(b) {
		t.Errorf("equivalent expressions have differing keys %q and %q", Key(a), Key(b))
	}
	if Key(a) == Key(c) {
		t.Errorf("distinct expressions share key %q", Key(a))
	}
	if Key(nil) != "" {
		t.Errorf("Key(nil) = %q, want empty", Key(nil))
	}
}
