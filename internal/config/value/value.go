// Package value defines the generic configuration value tree.
//
// Every layer loader (TOML, JSON, YAML) produces a Value tree, and the
// typed accessor layer interprets Value trees under a strict typed
// contract. A Value is never specific to any option's expected type.
package value

import (
	"strconv"
	"strings"
)

// Kind identifies the structural shape of a Value.
type Kind uint8

const (
	// KindNil represents an explicit null or absent value.
	KindNil Kind = iota
	// KindBool represents a boolean.
	KindBool
	// KindInt represents a 64-bit integer.
	KindInt
	// KindFloat represents a 64-bit float.
	KindFloat
	// KindString represents a string.
	KindString
	// KindArray represents an ordered sequence of values.
	KindArray
	// KindTable represents an ordered string-keyed mapping.
	KindTable
)

// String returns the kind name used in diagnostic messages.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the shapes configuration data can take.
// The zero Value is nil-kinded.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	tab  *Table
}

// Nil returns the nil value.
func Nil() Value {
	return Value{kind: KindNil}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int returns an integer value.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float returns a float value.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Str returns a string value.
func Str(s string) Value {
	return Value{kind: KindString, s: s}
}

// Array returns an array value holding the given items.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: items}
}

// Strings returns an array value holding the given strings.
func Strings(items ...string) Value {
	arr := make([]Value, len(items))
	for i, s := range items {
		arr[i] = Str(s)
	}
	return Value{kind: KindArray, arr: arr}
}

// TableValue returns a table value wrapping t. A nil table is treated
// as an empty one.
func TableValue(t *Table) Value {
	if t == nil {
		t = NewTable()
	}
	return Value{kind: KindTable, tab: t}
}

// Kind returns the value's structural shape.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNil reports whether the value is nil-kinded.
func (v Value) IsNil() bool {
	return v.kind == KindNil
}

// IsTable reports whether the value is a table.
func (v Value) IsTable() bool {
	return v.kind == KindTable
}

// AsBool returns the boolean payload. The second result is false when
// the value is not a bool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsInt returns the integer payload. Floats are never converted.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// AsFloat returns the float payload. Integers are never converted.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// AsString returns the string payload.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsArray returns the array payload. The returned slice is shared, not
// copied; callers must not mutate it.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsTable returns the table payload.
func (v Value) AsTable() (*Table, bool) {
	if v.kind != KindTable {
		return nil, false
	}
	return v.tab, true
}

// String renders the value in its native textual form. The rendering is
// load-bearing for diagnostics: error messages quote it so users can see
// exactly what their configuration contained.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, item := range v.arr {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindTable:
		parts := make([]string, 0, v.tab.Len())
		for _, key := range v.tab.keys {
			item := v.tab.items[key]
			parts = append(parts, key+" = "+item.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "unknown"
	}
}

// Equal reports structural equality. Tables compare by key set and
// per-key values, independent of insertion order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindTable:
		return v.tab.Equal(other.tab)
	default:
		return false
	}
}

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		arr := make([]Value, len(v.arr))
		for i, item := range v.arr {
			arr[i] = item.Clone()
		}
		return Value{kind: KindArray, arr: arr}
	case KindTable:
		return Value{kind: KindTable, tab: v.tab.Clone()}
	default:
		return v
	}
}
