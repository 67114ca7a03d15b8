package models

import "encoding/json"

// NullableString represents a string field that can distinguish between:
// - Field absent in JSON: Set=false, Valid=false, Value=""
// - Field present with null: Set=true, Valid=false, Value=""
// - Field present with value: Set=true, Valid=true, Value="the value"
//
// This is needed because Go's standard JSON unmarshaling treats both
// "field absent" and "field: null" as nil for pointer types. Metric edits
// use it so a client can clear a color or unit by sending null.
type NullableString struct {
	Value string
	Valid bool // true if Value is not null
	Set   bool // true if field was present in JSON
}

// UnmarshalJSON implements custom JSON unmarshaling for NullableString.
func (ns *NullableString) UnmarshalJSON(data []byte) error {
	ns.Set = true

	if string(data) == "null" {
		ns.Valid = false
		ns.Value = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ns.Value = s
	ns.Valid = true
	return nil
}

// MarshalJSON implements custom JSON marshaling for NullableString.
func (ns NullableString) MarshalJSON() ([]byte, error) {
	if !ns.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ns.Value)
}

// NullableFloat represents a numeric field with the same absent/null/value
// distinction as NullableString. Sending "goal": null clears the goal.
type NullableFloat struct {
	Value float64
	Valid bool
	Set   bool
}

// UnmarshalJSON implements custom JSON unmarshaling for NullableFloat.
func (nf *NullableFloat) UnmarshalJSON(data []byte) error {
	nf.Set = true

	if string(data) == "null" {
		nf.Valid = false
		nf.Value = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	nf.Value = f
	nf.Valid = true
	return nil
}

// MarshalJSON implements custom JSON marshaling for NullableFloat.
func (nf NullableFloat) MarshalJSON() ([]byte, error) {
	if !nf.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(nf.Value)
}
