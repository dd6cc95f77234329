package docmodel

import (
	"bytes"
	"encoding/json"
)

// Entry is a single named value of a Record.
type Entry struct {
	Key   string
	Value any
}

// Record is the ordered output of an extraction. Keys appear in field
// declaration order. Values are strings, string slices, nested Records,
// Record slices, nil, or whatever a clean function returned.
type Record []Entry

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	for _, e := range r {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the record keys in order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for _, e := range r {
		keys = append(keys, e.Key)
	}
	return keys
}

// Map converts the record, and any nested records, into plain maps.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r))
	for _, e := range r {
		m[e.Key] = plain(e.Value)
	}
	return m
}

func plain(v any) any {
	switch v := v.(type) {
	case Record:
		return v.Map()
	case []Record:
		out := make([]any, 0, len(v))
		for _, r := range v {
			if r == nil {
				out = append(out, nil)
				continue
			}
			out = append(out, r.Map())
		}
		return out
	}
	return v
}

// MarshalJSON encodes the record as a JSON object, preserving key order.
func (r Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
