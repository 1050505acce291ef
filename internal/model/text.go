package model

import (
	"bytes"
	"encoding/json"
)

// Text is an optional string. The zero value is absent.
//
// It replaces the "NO_LEGISLATION" / "NO_TRANSCRIPT" style markers: real text
// that happens to equal a marker can never be mistaken for a missing value.
type Text struct {
	Value   string
	Present bool
}

// Some returns a present Text holding s.
func Some(s string) Text {
	return Text{Value: s, Present: true}
}

// None returns an absent Text.
func None() Text {
	return Text{}
}

// IsPresent reports whether the text holds a value
func (t Text) IsPresent() bool {
	return t.Present
}

// Or returns the value when present, fallback otherwise
func (t Text) Or(fallback string) string {
	if !t.Present {
		return fallback
	}
	return t.Value
}

// Accumulate replaces an absent value with s, or appends sep+s to a present one.
// Insertion order is preserved and nothing is ever overwritten.
func (t Text) Accumulate(s, sep string) Text {
	if !t.Present {
		return Some(s)
	}
	return Some(t.Value + sep + s)
}

// MarshalJSON encodes absent text as null
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Present {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

// UnmarshalJSON decodes null as absent and any string as present
func (t *Text) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = None()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = Some(s)
	return nil
}
