package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Fields is a partial, JSON-shaped view of an entity.
// Edit drafts and update deltas are Fields so a missing key can be told apart from a zero value.
type Fields map[string]any

// FieldsOf flattens v into Fields using its JSON representation
func FieldsOf(v any) (Fields, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return decodeFields(raw)
}

func decodeFields(raw []byte) (Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	fields := Fields{}
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("failed to decode fields: %w", err)
	}
	return fields, nil
}

// Clone returns a shallow copy
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Has reports whether key is present with a non-nil value
func (f Fields) Has(key string) bool {
	v, ok := f[key]
	return ok && v != nil
}

// Set stores value under key
func (f Fields) Set(key string, value any) {
	f[key] = value
}

// String returns the value under key when it is a string
func (f Fields) String(key string) (string, bool) {
	s, ok := f[key].(string)
	return s, ok
}

// Int64 returns the numeric value under key. Form bindings may hand over
// numbers as strings, those are parsed too.
func (f Fields) Int64(key string) (int64, bool) {
	switch v := f[key].(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), v == float64(int64(v))
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// Pick returns only the listed keys that are present
func (f Fields) Pick(keys ...string) Fields {
	out := Fields{}
	for _, k := range keys {
		if v, ok := f[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Overlay copies base and writes every key of each patch over it, the way
// `{...base, ...patch}` does. Null or non-object patches are ignored.
func Overlay[T any](base T, patches ...json.RawMessage) (T, error) {
	var out T
	merged, err := FieldsOf(base)
	if err != nil {
		return out, err
	}
	for _, patch := range patches {
		trimmed := bytes.TrimSpace(patch)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			continue
		}
		fields, err := decodeFields(trimmed)
		if err != nil {
			return out, err
		}
		for k, v := range fields {
			merged[k] = v
		}
	}
	if err := merged.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

// Decode converts the fields into v through JSON
func (f Fields) Decode(v any) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal fields: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode fields into %T: %w", v, err)
	}
	return nil
}

// Raw marshals the fields so they can be used as an Overlay patch
func (f Fields) Raw() json.RawMessage {
	raw, err := json.Marshal(f)
	if err != nil {
		return nil
	}
	return raw
}
