// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package contextcore

import (
	"encoding/json"
	"fmt"
	"sort"
)

// MetadataValue is a closed sum type holding either a string or a 64-bit
// signed integer. It serializes untagged: strings as JSON strings,
// integers as JSON numbers without a decimal point.
type MetadataValue struct {
	isString bool
	str      string
	num      int64
}

// StringValue constructs a string-kinded MetadataValue.
func StringValue(s string) MetadataValue { return MetadataValue{isString: true, str: s} }

// IntValue constructs an integer-kinded MetadataValue.
func IntValue(n int64) MetadataValue { return MetadataValue{num: n} }

// IsString reports whether v holds a string.
func (v MetadataValue) IsString() bool { return v.isString }

// String returns the string content of v and true, or "" and false if v
// holds an integer.
func (v MetadataValue) String() (string, bool) {
	if !v.isString {
		return "", false
	}
	return v.str, true
}

// Int returns the integer content of v and true, or 0 and false if v holds
// a string.
func (v MetadataValue) Int() (int64, bool) {
	if v.isString {
		return 0, false
	}
	return v.num, true
}

// MarshalJSON emits the value untagged: a JSON string or a bare JSON
// number, never wrapped in a discriminant object.
func (v MetadataValue) MarshalJSON() ([]byte, error) {
	if v.isString {
		return json.Marshal(v.str)
	}
	return json.Marshal(v.num)
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (v *MetadataValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = MetadataValue{isString: true, str: s}
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = MetadataValue{num: n}
		return nil
	}

	return fmt.Errorf("metadata value must be a string or an integer: %s", string(data))
}

// Metadata is an ordered mapping from string keys to MetadataValues.
// Serialization emits keys in lexicographic order regardless of insertion
// order. Metadata does not participate in a Document's version.
type Metadata struct {
	entries map[string]MetadataValue
}

// NewMetadata returns an empty Metadata.
func NewMetadata() Metadata {
	return Metadata{entries: make(map[string]MetadataValue)}
}

// SetString inserts or overwrites key with a string value.
func (m *Metadata) SetString(key, value string) {
	m.ensure()
	m.entries[key] = StringValue(value)
}

// SetInt inserts or overwrites key with an integer value.
func (m *Metadata) SetInt(key string, value int64) {
	m.ensure()
	m.entries[key] = IntValue(value)
}

func (m *Metadata) ensure() {
	if m.entries == nil {
		m.entries = make(map[string]MetadataValue)
	}
}

// Get returns the value stored at key, if any.
func (m Metadata) Get(key string) (MetadataValue, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Len returns the number of entries.
func (m Metadata) Len() int { return len(m.entries) }

// Keys returns the keys in lexicographic order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of m, used to preserve Document immutability
// when metadata is supplied by a caller that might mutate it afterward.
func (m Metadata) Clone() Metadata {
	if m.entries == nil {
		return Metadata{}
	}
	cloned := make(map[string]MetadataValue, len(m.entries))
	for k, v := range m.entries {
		cloned[k] = v
	}
	return Metadata{entries: cloned}
}

// Merge overwrites m's entries with other's on key collision: other wins.
func (m *Metadata) Merge(other Metadata) {
	m.ensure()
	for k, v := range other.entries {
		m.entries[k] = v
	}
}

// MarshalJSON emits the mapping as a plain JSON object with keys in
// lexicographic order (guaranteed by encoding/json's map-key sorting).
func (m Metadata) MarshalJSON() ([]byte, error) {
	if m.entries == nil {
		return json.Marshal(map[string]MetadataValue{})
	}
	return json.Marshal(m.entries)
}

// UnmarshalJSON reads a plain JSON object into the mapping.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var entries map[string]MetadataValue
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	m.entries = entries
	return nil
}
