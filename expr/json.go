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
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// An expression node is encoded as the two-element array [kind, payload],
// where payload depends on the kind:
//
//	string                ; if column reference (the query name) or string
//	number                ; if number
//	bool                  ; if bool
//	[number, number]      ; if datetime ([secs, nanos] from epoch)
//	[Expr, Expr]          ; if equality ([left, right])
//	[Expr[], Expr[][]]    ; if in ([args, value rows])
//	[Expr, Expr, Expr]    ; if between ([arg, lower, upper])
//
// A SemanticFilter is encoded as the array of its where-item conditions.

func exprToAny(e Expr) (any, error) {
	switch v := e.(type) {
	case *Column:
		return [2]any{ColumnKind, v.QueryName}, nil
	case *StringLit:
		return [2]any{StringKind, v.Value}, nil
	case *NumberLit:
		return [2]any{NumberKind, v.Value}, nil
	case *BoolLit:
		return [2]any{BoolKind, v.Value}, nil
	case *DateTimeLit:
		return [2]any{DateTimeKind, [2]int64{v.Value.Unix(), int64(v.Value.Nanosecond())}}, nil
	case *Equal:
		left, err := exprToAny(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := exprToAny(v.Right)
		if err != nil {
			return nil, err
		}
		return [2]any{EqualKind, [2]any{left, right}}, nil
	case *In:
		args := make([]any, len(v.Args))
		for idx, arg := range v.Args {
			a, err := exprToAny(arg)
			if err != nil {
				return nil, err
			}
			args[idx] = a
		}
		rows := make([]any, len(v.Values))
		for idx, row := range v.Values {
			vals := make([]any, len(row))
			for vIdx, val := range row {
				a, err := exprToAny(val)
				if err != nil {
					return nil, err
				}
				vals[vIdx] = a
			}
			rows[idx] = vals
		}
		return [2]any{InKind, [2]any{args, rows}}, nil
	case *Between:
		arg, err := exprToAny(v.Arg)
		if err != nil {
			return nil, err
		}
		lower, err := exprToAny(v.Lower)
		if err != nil {
			return nil, err
		}
		upper, err := exprToAny(v.Upper)
		if err != nil {
			return nil, err
		}
		return [2]any{BetweenKind, [3]any{arg, lower, upper}}, nil
	default:
		return nil, fmt.Errorf("cannot encode expression of type %T", e)
	}
}

func marshalExpr(e Expr) ([]byte, error) {
	a, err := exprToAny(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(a)
}

func exprFromAny(got any) (Expr, error) {
	parts, ok := got.([]any)
	if !ok || len(parts) != 2 {
		return nil, fmt.Errorf("expression is improperly formed")
	}
	num, ok := parts[0].(json.Number)
	if !ok {
		return nil, fmt.Errorf("expression kind is improperly formed")
	}
	k, err := num.Int64()
	if err != nil {
		return nil, err
	}
	payload := parts[1]
	switch Kind(k) {
	case ColumnKind:
		queryName, ok := payload.(string)
		if !ok {
			return nil, fmt.Errorf("column reference requires a string payload")
		}
		return NewColumn(queryName), nil
	case StringKind:
		str, ok := payload.(string)
		if !ok {
			return nil, fmt.Errorf("string literal requires a string payload")
		}
		return String(str), nil
	case NumberKind:
		num, ok := payload.(json.Number)
		if !ok {
			return nil, fmt.Errorf("number literal requires a numeric payload")
		}
		f, err := num.Float64()
		if err != nil {
			return nil, err
		}
		return Number(f), nil
	case BoolKind:
		b, ok := payload.(bool)
		if !ok {
			return nil, fmt.Errorf("bool literal requires a boolean payload")
		}
		return Bool(b), nil
	case DateTimeKind:
		parts, ok := payload.([]any)
		if !ok || len(parts) != 2 {
			return nil, fmt.Errorf("datetime literal is improperly formed")
		}
		secs, err := parts[0].(json.Number).Int64()
		if err != nil {
			return nil, err
		}
		nanos, err := parts[1].(json.Number).Int64()
		if err != nil {
			return nil, err
		}
		return DateTime(time.Unix(secs, nanos)), nil
	case EqualKind:
		parts, ok := payload.([]any)
		if !ok || len(parts) != 2 {
			return nil, fmt.Errorf("equality is improperly formed")
		}
		left, err := exprFromAny(parts[0])
		if err != nil {
			return nil, err
		}
		right, err := exprFromAny(parts[1])
		if err != nil {
			return nil, err
		}
		return NewEqual(left, right), nil
	case InKind:
		parts, ok := payload.([]any)
		if !ok || len(parts) != 2 {
			return nil, fmt.Errorf("in-condition is improperly formed")
		}
		argIfs, ok := parts[0].([]any)
		if !ok {
			return nil, fmt.Errorf("in-condition args are improperly formed")
		}
		rowIfs, ok := parts[1].([]any)
		if !ok {
			return nil, fmt.Errorf("in-condition values are improperly formed")
		}
		in := &In{}
		for _, argIf := range argIfs {
			arg, err := exprFromAny(argIf)
			if err != nil {
				return nil, err
			}
			in.Args = append(in.Args, arg)
		}
		for _, rowIf := range rowIfs {
			valIfs, ok := rowIf.([]any)
			if !ok {
				return nil, fmt.Errorf("in-condition value row is improperly formed")
			}
			row := make([]Expr, len(valIfs))
			for idx, valIf := range valIfs {
				val, err := exprFromAny(valIf)
				if err != nil {
					return nil, err
				}
				row[idx] = val
			}
			in.Values = append(in.Values, row)
		}
		return in, nil
	case BetweenKind:
		parts, ok := payload.([]any)
		if !ok || len(parts) != 3 {
			return nil, fmt.Errorf("between-condition is improperly formed")
		}
		arg, err := exprFromAny(parts[0])
		if err != nil {
			return nil, err
		}
		lower, err := exprFromAny(parts[1])
		if err != nil {
			return nil, err
		}
		upper, err := exprFromAny(parts[2])
		if err != nil {
			return nil, err
		}
		return NewBetween(arg, lower, upper), nil
	default:
		return nil, fmt.Errorf("unknown expression kind %d", k)
	}
}

// MarshalJSON encodes the receiver as the array of its where-item
// conditions.
func (f *SemanticFilter) MarshalJSON() ([]byte, error) {
	conds := make([]any, len(f.Where))
	for idx, cond := range f.Where {
		a, err := exprToAny(cond.Condition)
		if err != nil {
			return nil, err
		}
		conds[idx] = a
	}
	return json.Marshal(conds)
}

// UnmarshalJSON decodes the provided JSON bytes into the receiving
// SemanticFilter.
func (f *SemanticFilter) UnmarshalJSON(data []byte) error {
	var got []any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&got); err != nil {
		return err
	}
	f.Where = nil
	for _, condIf := range got {
		cond, err := exprFromAny(condIf)
		if err != nil {
			return err
		}
		f.Where = append(f.Where, Condition{Condition: cond})
	}
	return nil
}

// ParseFilter decodes a SemanticFilter from its JSON encoding.
func ParseFilter(data []byte) (*SemanticFilter, error) {
	ret := &SemanticFilter{}
	if err := ret.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return ret, nil
}
