package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// ErrUnsupportedType is returned by FromAny for values outside the document model.
var ErrUnsupportedType = errors.New("unsupported value type")

// Kind identifies the variant held by a Value.
type Kind uint8

// Value kinds.
const (
	KindAbsent Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindTimestamp
	KindSequence
	KindMap
)

var kindNames = [...]string{ //nolint:gochecknoglobals
	KindAbsent:    "absent",
	KindNull:      "null",
	KindBool:      "bool",
	KindNumber:    "number",
	KindString:    "string",
	KindTimestamp: "timestamp",
	KindSequence:  "sequence",
	KindMap:       "map",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a node of a decoded configuration document.
//
// The zero Value is Absent: the result of reading past the end of the data.
// Numbers keep the Go type the decoder produced (int64, uint64, float64),
// there is no normalization between formats.
type Value struct {
	kind   Kind
	scalar any
	seq    []Value
	fields map[string]Value
}

// Absent returns the absent value.
func Absent() Value { return Value{} }

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, scalar: b} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, scalar: s} }

// Timestamp returns a date/time value.
func Timestamp(t time.Time) Value { return Value{kind: KindTimestamp, scalar: t} }

// Int returns an integer number value.
func Int(n int64) Value { return Value{kind: KindNumber, scalar: n} }

// Uint returns an unsigned integer number value.
func Uint(n uint64) Value { return Value{kind: KindNumber, scalar: n} }

// Float returns a floating point number value.
func Float(f float64) Value { return Value{kind: KindNumber, scalar: f} }

// Sequence returns an ordered sequence of values.
func Sequence(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}

	return Value{kind: KindSequence, seq: items}
}

// Map returns a string keyed map value.
func Map(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}

	return Value{kind: KindMap, fields: fields}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the absent value.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Len returns the number of elements of a sequence or map, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMap:
		return len(v.fields)
	default:
		return 0
	}
}

// Field returns the member stored under key. The second result is false when
// v is not a map or the key is missing.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}

	field, ok := v.fields[key]

	return field, ok
}

// Item returns the element at index. The second result is false when v is not
// a sequence or the index is out of range.
func (v Value) Item(index int) (Value, bool) {
	if v.kind != KindSequence || index < 0 || index >= len(v.seq) {
		return Value{}, false
	}

	return v.seq[index], true
}

// Keys returns the map keys in sorted order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.fields))
	for key := range v.fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Interface returns the native Go representation of v: map[string]any, []any,
// string, bool, int64, uint64, float64, time.Time or nil. Absent and null both
// map to nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Interface()
		}

		return out
	case KindMap:
		out := make(map[string]any, len(v.fields))
		for key, field := range v.fields {
			out[key] = field.Interface()
		}

		return out
	case KindAbsent, KindNull:
		return nil
	default:
		return v.scalar
	}
}

// MarshalJSON renders v as JSON. Timestamps use RFC 3339, absent renders as null.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	err := enc.Encode(v.jsonable())
	if err != nil {
		return nil, fmt.Errorf("encoding %s value: %w", v.kind, err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (v Value) jsonable() any {
	switch v.kind {
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.jsonable()
		}

		return out
	case KindMap:
		out := make(map[string]any, len(v.fields))
		for key, field := range v.fields {
			out[key] = field.jsonable()
		}

		return out
	case KindTimestamp:
		t, _ := v.scalar.(time.Time)

		return t.Format(time.RFC3339Nano)
	case KindNumber:
		if f, ok := v.scalar.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			return nil
		}

		return v.scalar
	case KindAbsent, KindNull:
		return nil
	default:
		return v.scalar
	}
}

// String renders v for messages: JSON for present values and "undefined" for absent.
func (v Value) String() string {
	if v.kind == KindAbsent {
		return "undefined"
	}

	out, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%s>", v.kind)
	}

	return string(out)
}

// FromAny converts a decoded tree of Go values into a Value. Maps may use any
// key type, keys are rendered with fmt. Slices and arrays of any element type
// become sequences.
func FromAny(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Null(), nil
	case Value:
		return typed, nil
	case bool:
		return Bool(typed), nil
	case string:
		return String(typed), nil
	case float64:
		return Float(typed), nil
	case float32:
		return Float(float64(typed)), nil
	case int:
		return Int(int64(typed)), nil
	case int64:
		return Int(typed), nil
	case uint64:
		return Uint(typed), nil
	case json.Number:
		return numberFromJSON(typed)
	case time.Time:
		return Timestamp(typed), nil
	case []any:
		return sequenceFromAny(len(typed), func(i int) any { return typed[i] })
	case map[string]any:
		fields := make(map[string]Value, len(typed))

		for key, item := range typed {
			field, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}

			fields[key] = field
		}

		return Map(fields), nil
	}

	return fromReflect(reflect.ValueOf(raw))
}

func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() { //nolint:exhaustive // remaining kinds are unsupported
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}

		return FromAny(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Uint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Sequence(), nil
		}

		return sequenceFromAny(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	case reflect.Map:
		fields := make(map[string]Value, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			key := fmt.Sprint(iter.Key().Interface())

			field, err := FromAny(iter.Value().Interface())
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}

			fields[key] = field
		}

		return Map(fields), nil
	default:
		return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())
	}
}

func sequenceFromAny(n int, at func(int) any) (Value, error) {
	items := make([]Value, n)

	for i := range n {
		item, err := FromAny(at(i))
		if err != nil {
			return Value{}, fmt.Errorf("index %d: %w", i, err)
		}

		items[i] = item
	}

	return Sequence(items...), nil
}

func numberFromJSON(n json.Number) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return Int(i), nil
	}

	f, err := n.Float64()
	if err != nil {
		return Value{}, fmt.Errorf("number %q: %w", n.String(), err)
	}

	return Float(f), nil
}
