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

// Package expr models the host's semantic-filter expressions: column
// references, literals, and the comparison conditions a visual persists to
// re-apply its selection across reloads.
//
// An expression tree is assembled with the New* constructors, wrapped into a
// SemanticFilter, and handed to the host's property store.  The same tree
// comes back on reload, either as live *SemanticFilter values or as the
// JSON the store serialized it to; ParseFilter recovers the latter.
package expr

import (
	"fmt"
	"time"
)

// Kind enumerates expression node types.
type Kind int

// Enumerated expression kinds.
const (
	unsetKind Kind = iota
	ColumnKind
	StringKind
	NumberKind
	BoolKind
	DateTimeKind
	EqualKind
	InKind
	BetweenKind
)

// Expr is a node in a semantic-filter expression tree.
type Expr interface {
	Kind() Kind
}

// Column references a source column by its query name.
type Column struct {
	QueryName string
}

// Kind returns ColumnKind.
func (c *Column) Kind() Kind { return ColumnKind }

// NewColumn returns a reference to the column with the provided query name.
func NewColumn(queryName string) *Column {
	return &Column{QueryName: queryName}
}

// StringLit is a string literal.
type StringLit struct {
	Value string
}

// Kind returns StringKind.
func (s *StringLit) Kind() Kind { return StringKind }

// String returns a new string literal.
func String(v string) *StringLit {
	return &StringLit{Value: v}
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
}

// Kind returns NumberKind.
func (n *NumberLit) Kind() Kind { return NumberKind }

// Number returns a new numeric literal.
func Number(v float64) *NumberLit {
	return &NumberLit{Value: v}
}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
}

// Kind returns BoolKind.
func (b *BoolLit) Kind() Kind { return BoolKind }

// Bool returns a new boolean literal.
func Bool(v bool) *BoolLit {
	return &BoolLit{Value: v}
}

// DateTimeLit is a calendar-date literal.
type DateTimeLit struct {
	Value time.Time
}

// Kind returns DateTimeKind.
func (d *DateTimeLit) Kind() Kind { return DateTimeKind }

// DateTime returns a new calendar-date literal.
func DateTime(t time.Time) *DateTimeLit {
	return &DateTimeLit{Value: t}
}

// Equal compares its left operand against its right for equality.  A row
// identity's scope expression is an Equal of the row's source column against
// the row's category value.
type Equal struct {
	Left, Right Expr
}

// Kind returns EqualKind.
func (e *Equal) Kind() Kind { return EqualKind }

// NewEqual returns an equality comparison of left against right.
func NewEqual(left, right Expr) *Equal {
	return &Equal{Left: left, Right: right}
}

// In is a membership condition: Args lists the compared columns, Values holds
// one row of literals per filtered-in tuple.  A persisted attribute-slicer
// selection is a single In over the category column.
type In struct {
	Args   []Expr
	Values [][]Expr
}

// Kind returns InKind.
func (in *In) Kind() Kind { return InKind }

// Between is a closed-interval condition over a single operand.
type Between struct {
	Arg          Expr
	Lower, Upper Expr
}

// Kind returns BetweenKind.
func (b *Between) Kind() Kind { return BetweenKind }

// NewBetween returns a closed-interval condition bounding arg by lower and
// upper.
func NewBetween(arg, lower, upper Expr) *Between {
	return &Between{Arg: arg, Lower: lower, Upper: upper}
}

// BetweenDates returns a closed-interval condition bounding arg by the
// provided dates.
func BetweenDates(arg Expr, lower, upper time.Time) *Between {
	return NewBetween(arg, DateTime(lower), DateTime(upper))
}

// Condition is one where-item of a SemanticFilter.
type Condition struct {
	Condition Expr
}

// SemanticFilter is the host's serializable boolean-expression
// representation of a selection.
type SemanticFilter struct {
	Where []Condition
}

// FilterFromCondition returns a SemanticFilter with the provided expression
// as its only where-item.
func FilterFromCondition(cond Expr) *SemanticFilter {
	return &SemanticFilter{Where: []Condition{{Condition: cond}}}
}

// FilterFromSelectors assembles a SemanticFilter from the provided selector
// expressions.  Each selector is expected to be an equality of a column
// against a literal; selectors are grouped by column, in first-seen order,
// into one In condition per column.  Selectors of any other shape are
// skipped.  Returns nil if no usable selector was provided.
func FilterFromSelectors(selectors []Expr) *SemanticFilter {
	conditions := []*In{}
	byColumn := map[string]*In{}
	for _, sel := range selectors {
		eq, ok := sel.(*Equal)
		if !ok {
			continue
		}
		col, ok := eq.Left.(*Column)
		if !ok || eq.Right == nil {
			continue
		}
		in, ok := byColumn[col.QueryName]
		if !ok {
			in = &In{Args: []Expr{col}}
			byColumn[col.QueryName] = in
			conditions = append(conditions, in)
		}
		in.Values = append(in.Values, []Expr{eq.Right})
	}
	if len(conditions) == 0 {
		return nil
	}
	ret := &SemanticFilter{}
	for _, in := range conditions {
		ret.Where = append(ret.Where, Condition{Condition: in})
	}
	return ret
}

// FirstIn returns the first In condition among the receiver's where-items,
// or nil if there is none.  Safe on a nil receiver.
func (f *SemanticFilter) FirstIn() *In {
	if f == nil {
		return nil
	}
	for _, cond := range f.Where {
		if in, ok := cond.Condition.(*In); ok {
			return in
		}
	}
	return nil
}

// FirstBetween returns the first Between condition among the receiver's
// where-items, or nil if there is none.  Safe on a nil receiver.
func (f *SemanticFilter) FirstBetween() *Between {
	if f == nil {
		return nil
	}
	for _, cond := range f.Where {
		if b, ok := cond.Condition.(*Between); ok {
			return b
		}
	}
	return nil
}

// Key returns a canonical string form of the provided expression, suitable
// for use as an equality key.  A nil expression keys to the empty string.
func Key(e Expr) string {
	if e == nil {
		return ""
	}
	b, err := marshalExpr(e)
	if err != nil {
		return fmt.Sprintf("!%v", e)
	}
	return string(b)
}
