// Package payload normalises untyped backend JSON into records and scalars.
//
// Backend responses are not trusted to carry a fixed shape: a collection may
// arrive as a bare array or wrapped in an object, and numbers may be missing,
// null, or strings. Every accessor here degrades to a zero value instead of
// failing.
package payload

import (
	"github.com/spf13/cast"
)

// Record is one decoded JSON object.
type Record map[string]any

// Records extracts a list of objects from v. v may be a bare array or an
// object holding the array under one of wrapperKeys (first match wins).
// Non-object elements are skipped.
func Records(v any, wrapperKeys ...string) []Record {
	switch t := v.(type) {
	case []any:
		return toRecords(t)
	case []map[string]any:
		out := make([]Record, 0, len(t))
		for _, m := range t {
			out = append(out, Record(m))
		}
		return out
	case map[string]any:
		for _, k := range wrapperKeys {
			if inner, ok := t[k]; ok {
				return Records(inner)
			}
		}
	}
	return nil
}

func toRecords(items []any) []Record {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// Object returns v as a Record, or an empty Record when v is not an object.
func Object(v any) Record {
	if m, ok := v.(map[string]any); ok {
		return Record(m)
	}
	return Record{}
}

// lookup returns the first present, non-nil value among keys.
func (r Record) lookup(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether any of keys is present with a non-nil value.
func (r Record) Has(keys ...string) bool {
	_, ok := r.lookup(keys...)
	return ok
}

// Float returns the first present key as float64. Missing or unparsable
// values are 0.
func (r Record) Float(keys ...string) float64 {
	v, ok := r.lookup(keys...)
	if !ok {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}

// Int returns the first present key as int. Missing or unparsable values are 0.
func (r Record) Int(keys ...string) int {
	v, ok := r.lookup(keys...)
	if !ok {
		return 0
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return int(f)
	}
	return 0
}

// String returns the first present key as a string, or "".
func (r Record) String(keys ...string) string {
	v, ok := r.lookup(keys...)
	if !ok {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

// Bool returns the first present key as a bool, or def when absent or
// unparsable.
func (r Record) Bool(def bool, keys ...string) bool {
	v, ok := r.lookup(keys...)
	if !ok {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}

// Strings returns the first present key as a string slice.
func (r Record) Strings(keys ...string) []string {
	v, ok := r.lookup(keys...)
	if !ok {
		return nil
	}
	s, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil
	}
	return s
}

// List returns the first present key as a list of records.
func (r Record) List(keys ...string) []Record {
	v, ok := r.lookup(keys...)
	if !ok {
		return nil
	}
	return Records(v)
}
