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

package dataview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ValueKind enumerates cell value types.
type ValueKind int

// Enumerated cell value kinds.
const (
	UnsetKind ValueKind = iota
	StringKind
	DoubleKind
	IntegerKind
	BoolKind
	TimestampKind
)

// V represents one cell value in a DataView column.  The zero V is unset,
// which is how a host renders null.
type V struct {
	K ValueKind
	V any
}

// StringValue returns a new V wrapping the provided string.
func StringValue(str string) *V {
	return &V{K: StringKind, V: str}
}

// DoubleValue returns a new V wrapping the provided float64.
func DoubleValue(f float64) *V {
	return &V{K: DoubleKind, V: f}
}

// IntegerValue returns a new V wrapping the provided int64.
func IntegerValue(i int64) *V {
	return &V{K: IntegerKind, V: i}
}

// BoolValue returns a new V wrapping the provided bool.
func BoolValue(b bool) *V {
	return &V{K: BoolKind, V: b}
}

// TimestampValue returns a new V wrapping the provided time.
func TimestampValue(t time.Time) *V {
	return &V{K: TimestampKind, V: t}
}

// UnsetValue returns a new unset V.
func UnsetValue() *V {
	return &V{}
}

// IsUnset reports whether the receiver holds no value.  A nil receiver is
// unset.
func (v *V) IsUnset() bool {
	return v == nil || v.K == UnsetKind
}

// ExpectString returns the receiver's string, or an error on a kind
// mismatch.
func (v *V) ExpectString() (string, error) {
	if v == nil || v.K != StringKind {
		return "", fmt.Errorf("expected value kind 'string'")
	}
	return v.V.(string), nil
}

// ExpectDouble returns the receiver's float64, or an error on a kind
// mismatch.
func (v *V) ExpectDouble() (float64, error) {
	if v == nil || v.K != DoubleKind {
		return 0, fmt.Errorf("expected value kind 'double'")
	}
	return v.V.(float64), nil
}

// ExpectInteger returns the receiver's int64, or an error on a kind
// mismatch.
func (v *V) ExpectInteger() (int64, error) {
	if v == nil || v.K != IntegerKind {
		return 0, fmt.Errorf("expected value kind 'integer'")
	}
	return v.V.(int64), nil
}

// ExpectBool returns the receiver's bool, or an error on a kind mismatch.
func (v *V) ExpectBool() (bool, error) {
	if v == nil || v.K != BoolKind {
		return false, fmt.Errorf("expected value kind 'bool'")
	}
	return v.V.(bool), nil
}

// ExpectTimestamp returns the receiver's time, or an error on a kind
// mismatch.
func (v *V) ExpectTimestamp() (time.Time, error) {
	if v == nil || v.K != TimestampKind {
		return time.Time{}, fmt.Errorf("expected value kind 'timestamp'")
	}
	return v.V.(time.Time), nil
}

// AsNumber returns the receiver's numeric value and true if the receiver is
// a double or integer, and 0 and false otherwise.
func (v *V) AsNumber() (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch v.K {
	case DoubleKind:
		return v.V.(float64), true
	case IntegerKind:
		return float64(v.V.(int64)), true
	}
	return 0, false
}

// Display returns the receiver's display-string form, as shown to the user
// in a widget item.
func (v *V) Display() string {
	if v == nil {
		return ""
	}
	switch v.K {
	case StringKind:
		return v.V.(string)
	case DoubleKind:
		return strconv.FormatFloat(v.V.(float64), 'g', -1, 64)
	case IntegerKind:
		return strconv.FormatInt(v.V.(int64), 10)
	case BoolKind:
		return strconv.FormatBool(v.V.(bool))
	case TimestampKind:
		return v.V.(time.Time).Format(time.RFC3339)
	}
	return ""
}

// Equal reports whether the receiver and other hold the same value.
func (v *V) Equal(other *V) bool {
	if v.IsUnset() || other.IsUnset() {
		return v.IsUnset() && other.IsUnset()
	}
	if v.K != other.K {
		return false
	}
	if v.K == TimestampKind {
		return v.V.(time.Time).Equal(other.V.(time.Time))
	}
	return v.V == other.V
}

// MarshalJSON encodes the receiver as the two-element array
// [kind, payload], where payload is:
//
//	null             ; if unset
//	string           ; if string
//	number           ; if double or integer
//	bool             ; if bool
//	[number, number] ; if timestamp ([secs, nanos] from epoch)
func (v *V) MarshalJSON() ([]byte, error) {
	payload := v.V
	if v.K == TimestampKind {
		t := v.V.(time.Time)
		payload = [2]int64{t.Unix(), int64(t.Nanosecond())}
	}
	return json.Marshal([2]any{v.K, payload})
}

// UnmarshalJSON decodes the provided JSON bytes into the receiving V.
func (v *V) UnmarshalJSON(data []byte) error {
	var got []any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&got); err != nil {
		return err
	}
	if len(got) != 2 {
		return fmt.Errorf("value is improperly formed")
	}
	k, err := got[0].(json.Number).Int64()
	if err != nil {
		return err
	}
	v.K = ValueKind(k)
	payload := got[1]
	switch v.K {
	case UnsetKind:
		v.V = nil
	case StringKind:
		str, ok := payload.(string)
		if !ok {
			return fmt.Errorf("string value requires a string payload")
		}
		v.V = str
	case DoubleKind:
		f, err := payload.(json.Number).Float64()
		if err != nil {
			return err
		}
		v.V = f
	case IntegerKind:
		i, err := payload.(json.Number).Int64()
		if err != nil {
			return err
		}
		v.V = i
	case BoolKind:
		b, ok := payload.(bool)
		if !ok {
			return fmt.Errorf("bool value requires a boolean payload")
		}
		v.V = b
	case TimestampKind:
		parts, ok := payload.([]any)
		if !ok || len(parts) != 2 {
			return fmt.Errorf("timestamp value is improperly formed")
		}
		secs, err := parts[0].(json.Number).Int64()
		if err != nil {
			return err
		}
		nanos, err := parts[1].(json.Number).Int64()
		if err != nil {
			return err
		}
		v.V = time.Unix(secs, nanos)
	default:
		return fmt.Errorf("unknown value kind %d", k)
	}
	return nil
}
