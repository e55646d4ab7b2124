package value

import (
	"fmt"
	"sort"
	"time"
)

// FromAny converts decoder output (nested maps, slices, and scalars as
// produced by encoding libraries) into a Value tree.
//
// Map keys are visited in sorted order so that trees built from
// unordered Go maps are deterministic. Loaders that know the document
// order (JSON, YAML) build tables directly instead.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Nil(), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return Int(int64(x)), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case string:
		return Str(x), nil
	case time.Time:
		return Str(x.Format(time.RFC3339)), nil
	case []any:
		arr := make([]Value, len(x))
		for i, item := range x {
			converted, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			arr[i] = converted
		}
		return Value{kind: KindArray, arr: arr}, nil
	case []string:
		return Strings(x...), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for key := range x {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		tab := NewTable()
		for _, key := range keys {
			converted, err := FromAny(x[key])
			if err != nil {
				return Value{}, err
			}
			tab.Set(key, converted)
		}
		return TableValue(tab), nil
	case fmt.Stringer:
		// Covers decoder-specific scalar types such as TOML dates.
		return Str(x.String()), nil
	default:
		return Value{}, fmt.Errorf("unsupported configuration value type %T", v)
	}
}

// ToAny converts a Value tree back into plain Go values, suitable for
// handing to an encoder. Table order is preserved only as far as the
// target map type allows.
func ToAny(v Value) any {
	switch v.kind {
	case KindNil:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = ToAny(item)
		}
		return out
	case KindTable:
		out := make(map[string]any, v.tab.Len())
		for _, key := range v.tab.keys {
			out[key] = ToAny(v.tab.items[key])
		}
		return out
	default:
		return nil
	}
}
