package webmanifest

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	j "github.com/goccy/go-json"
)

// FromAny converts a decoded Go value (as produced by json.Unmarshal into
// any) into a Value. Go maps carry no order, so map members are sorted by
// key; use ParseJSON when document order matters.
func FromAny(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case *Object:
		return ObjectValue(v), nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case j.Number:
		return Number(string(v)), nil
	case float64:
		return NumberFloat(v), nil
	case float32:
		return NumberFloat(float64(v)), nil
	case int:
		return NumberInt(int64(v)), nil
	case int32:
		return NumberInt(int64(v)), nil
	case int64:
		return NumberInt(v), nil
	case uint:
		return Number(strconv.FormatUint(uint64(v), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(v, 10)), nil
	case []any:
		items := make([]Value, len(v))
		for i, it := range v {
			iv, err := FromAny(it)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = iv
		}
		return Value{kind: KindArray, arr: items}, nil
	case map[string]any:
		o := &Object{}
		for _, k := range slices.Sorted(maps.Keys(v)) {
			mv, err := FromAny(v[k])
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			o.set(k, mv)
		}
		return ObjectValue(o), nil
	default:
		return Value{}, fmt.Errorf("webmanifest: unsupported type %T", x)
	}
}

// Interface converts the value back into plain Go values: map[string]any,
// []any, float64, string, bool and nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		f, _ := v.Float()
		return f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, it := range v.arr {
			out[i] = it.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for k, mv := range v.obj.All() {
			out[k] = mv.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON renders the value with object members in document order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	case KindNumber:
		return []byte(v.s), nil
	case KindString:
		return j.Marshal(v.s)
	case KindArray:
		buf := []byte{'['}
		for i, it := range v.arr {
			if i > 0 {
				buf = append(buf, ',')
			}
			b, err := it.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf = append(buf, b...)
		}
		return append(buf, ']'), nil
	default:
		buf := []byte{'{'}
		i := 0
		for k, mv := range v.obj.All() {
			if i > 0 {
				buf = append(buf, ',')
			}
			i++
			kb, err := j.Marshal(k)
			if err != nil {
				return nil, err
			}
			b, err := mv.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf = append(append(append(buf, kb...), ':'), b...)
		}
		return append(buf, '}'), nil
	}
}
