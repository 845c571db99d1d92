package diagram

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// Record is the serialized form of one element: a flat map of fields plus the
// "tag" key naming its kind. Values follow whatever the codec produced, so
// numbers may arrive as any Go numeric type.
type Record map[string]any

// Tag returns the record's tag, or "" when missing.
func (r Record) Tag() string {
	tag, _ := r["tag"].(string)
	return tag
}

// Without returns a shallow copy of r without key.
func (r Record) Without(key string) Record {
	out := make(Record, len(r))
	for k, v := range r {
		if k != key {
			out[k] = v
		}
	}
	return out
}

// Keys returns the record keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AsRecord converts the map shapes produced by the JSON, YAML and msgpack
// decoders into a Record.
func AsRecord(v any) (Record, bool) {
	switch m := v.(type) {
	case Record:
		return m, true
	case map[string]any:
		return Record(m), true
	case map[any]any:
		out := make(Record, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// RecordReader reads typed fields from a record and remembers the first
// failure, so decoders can read every field and check Err once.
type RecordReader struct {
	rec Record
	err error
}

// NewRecordReader wraps rec.
func NewRecordReader(rec Record) *RecordReader {
	return &RecordReader{rec: rec}
}

// Err returns the first error encountered, wrapped around ErrMalformed.
func (rd *RecordReader) Err() error {
	return rd.err
}

// Has reports whether key is present with a non-nil value.
func (rd *RecordReader) Has(key string) bool {
	v, ok := rd.rec[key]
	return ok && v != nil
}

func (rd *RecordReader) fail(key string, v any, want string) {
	if rd.err == nil {
		rd.err = fmt.Errorf("%w: field %q: expected %s, got %T", ErrMalformed, key, want, v)
	}
}

// Raw returns the value stored under key.
func (rd *RecordReader) Raw(key string) any {
	return rd.rec[key]
}

// String reads an optional string field.
func (rd *RecordReader) String(key string) string {
	v, ok := rd.rec[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		rd.fail(key, v, "string")
	}
	return s
}

// Bool reads an optional boolean field.
func (rd *RecordReader) Bool(key string) bool {
	v, ok := rd.rec[key]
	if !ok || v == nil {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		rd.fail(key, v, "bool")
	}
	return b
}

// Float reads an optional numeric field.
func (rd *RecordReader) Float(key string) float64 {
	v, ok := rd.rec[key]
	if !ok || v == nil {
		return 0
	}
	f, ok := toFloat(v)
	if !ok {
		rd.fail(key, v, "number")
	}
	return f
}

// Int reads an optional integer field.
func (rd *RecordReader) Int(key string) int {
	v, ok := rd.rec[key]
	if !ok || v == nil {
		return 0
	}
	n, err := ToInt(v)
	if err != nil {
		rd.fail(key, v, "integer")
	}
	return n
}

// OptionalInt reads an integer field that may be null.
func (rd *RecordReader) OptionalInt(key string) *int {
	if !rd.Has(key) {
		return nil
	}
	n := rd.Int(key)
	return &n
}

// Strings reads an optional list of strings.
func (rd *RecordReader) Strings(key string) []string {
	items := rd.List(key)
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			rd.fail(key, item, "string list")
			return nil
		}
		out = append(out, s)
	}
	return out
}

// List reads an optional list of arbitrary values.
func (rd *RecordReader) List(key string) []any {
	v, ok := rd.rec[key]
	if !ok || v == nil {
		return nil
	}
	switch l := v.(type) {
	case []any:
		return l
	case []Record:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out
	case []string:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out
	default:
		rd.fail(key, v, "list")
		return nil
	}
}

// Records reads an optional list of nested records.
func (rd *RecordReader) Records(key string) []Record {
	items := rd.List(key)
	out := make([]Record, 0, len(items))
	for _, item := range items {
		r, ok := AsRecord(item)
		if !ok {
			rd.fail(key, item, "record list")
			return nil
		}
		out = append(out, r)
	}
	return out
}

// Record reads an optional nested record.
func (rd *RecordReader) Record(key string) Record {
	v, ok := rd.rec[key]
	if !ok || v == nil {
		return Record{}
	}
	r, ok := AsRecord(v)
	if !ok {
		rd.fail(key, v, "record")
		return Record{}
	}
	return r
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// ToInt converts any decoded numeric value to int, rejecting values that do
// not fit and floats with a fractional part.
func ToInt(v any) (int, error) {
	var (
		n   int
		err error
	)
	switch x := v.(type) {
	case int:
		return x, nil
	case int8:
		n, err = safecast.Conv[int](x)
	case int16:
		n, err = safecast.Conv[int](x)
	case int32:
		n, err = safecast.Conv[int](x)
	case int64:
		n, err = safecast.Conv[int](x)
	case uint8:
		n, err = safecast.Conv[int](x)
	case uint16:
		n, err = safecast.Conv[int](x)
	case uint32:
		n, err = safecast.Conv[int](x)
	case uint64:
		n, err = safecast.Conv[int](x)
	case float32:
		n, err = safecast.Convert[int](x)
	case float64:
		n, err = safecast.Convert[int](x)
	default:
		return 0, fmt.Errorf("%w: %T is not a number", ErrMalformed, v)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v is not an integer: %w", ErrMalformed, v, err)
	}
	return n, nil
}
