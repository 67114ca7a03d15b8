package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind tags which representation of a log value is meaningful.
type ValueKind string

const (
	ValueNumber ValueKind = "number"
	ValueBool   ValueKind = "bool"
	ValueText   ValueKind = "text"
)

// Value is a single observation logged against a metric. The wire format
// is a bare JSON scalar (number, boolean, or string); the kind tag records
// which one was supplied so round-trips are lossless.
type Value struct {
	kind ValueKind
	num  float64
	b    bool
	text string
}

// NumberValue constructs a numeric value.
func NumberValue(f float64) Value {
	return Value{kind: ValueNumber, num: f}
}

// BoolValue constructs a boolean value.
func BoolValue(v bool) Value {
	return Value{kind: ValueBool, b: v}
}

// TextValue constructs a text value.
func TextValue(s string) Value {
	return Value{kind: ValueText, text: s}
}

// Kind returns the value's representation tag.
func (v Value) Kind() ValueKind {
	if v.kind == "" {
		return ValueNumber
	}
	return v.kind
}

// Float coerces the value to a number: booleans map to 1/0, text to 0.
func (v Value) Float() float64 {
	switch v.kind {
	case ValueBool:
		if v.b {
			return 1
		}
		return 0
	case ValueText:
		return 0
	default:
		return v.num
	}
}

// Bool coerces the value to a boolean: numbers are true when non-zero,
// text is always false.
func (v Value) Bool() bool {
	switch v.kind {
	case ValueBool:
		return v.b
	case ValueText:
		return false
	default:
		return v.num != 0
	}
}

// Text returns the raw string for text values and a formatted scalar for
// the other kinds, suitable for use as a breakdown label.
func (v Value) Text() string {
	switch v.kind {
	case ValueText:
		return v.text
	case ValueBool:
		return strconv.FormatBool(v.b)
	default:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
}

// UnmarshalJSON accepts a bare JSON number, boolean, or string.
func (v *Value) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*v = NumberValue(num)
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolValue(b)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = TextValue(s)
		return nil
	}

	return fmt.Errorf("value must be a number, boolean, or string: %s", data)
}

// MarshalJSON emits the value as the scalar it was created from.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueBool:
		return json.Marshal(v.b)
	case ValueText:
		return json.Marshal(v.text)
	default:
		return json.Marshal(v.num)
	}
}

// Parts decomposes the value for flat storage (kind, number, text).
func (v Value) Parts() (ValueKind, float64, string) {
	return v.Kind(), v.Float(), v.text
}

// ValueFromParts rebuilds a Value from its stored representation.
func ValueFromParts(kind ValueKind, num float64, text string) Value {
	switch kind {
	case ValueBool:
		return BoolValue(num != 0)
	case ValueText:
		return TextValue(text)
	default:
		return NumberValue(num)
	}
}
