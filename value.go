package webmanifest

import (
	"errors"
	"iter"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind tags the shape of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable JSON-like value. The zero Value is null.
//
// A missing object member is not a Value: Object.Get reports it through its
// second result.
type Value struct {
	kind Kind
	b    bool
	s    string // string contents, or the number literal
	arr  []Value
	obj  *Object
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number wraps a JSON number literal such as "12" or "1.5e3". The literal is
// kept verbatim and is not validated.
func Number(lit string) Value { return Value{kind: KindNumber, s: lit} }

// NumberFloat wraps a float64.
func NumberFloat(f float64) Value {
	return Value{kind: KindNumber, s: strconv.FormatFloat(f, 'g', -1, 64)}
}

// NumberInt wraps an int64.
func NumberInt(i int64) Value { return Value{kind: KindNumber, s: strconv.FormatInt(i, 10)} }

// Array wraps a list of values. The slice is copied.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: slices.Clone(items)}
}

// ObjectValue wraps an object. A nil object becomes the empty object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsNumber returns the number literal.
func (v Value) AsNumber() (string, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return v.s, true
}

// Float returns the numeric value of a number.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil {
		// Out of range literals still carry a sign and magnitude.
		if errors.Is(err, strconv.ErrRange) {
			return f, true
		}
		return math.NaN(), true
	}
	return f, true
}

// AsArray returns a copy of the array items.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return slices.Clone(v.arr), true
}

// Len reports the number of array items or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	}
	return 0
}

// Items iterates over array items in order.
func (v Value) Items() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		if v.kind != KindArray {
			return
		}
		for i, it := range v.arr {
			if !yield(i, it) {
				return
			}
		}
	}
}

func (v Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// TypeOf returns the JavaScript typeof tag of the value. Arrays and null
// report "object".
func (v Value) TypeOf() string {
	switch v.kind {
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "object"
	}
}

// Text renders the value the way JavaScript's String(v) does.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		f, _ := v.Float()
		return jsNumberText(f)
	case KindString:
		return v.s
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, it := range v.arr {
			if it.kind != KindNull {
				parts[i] = it.Text()
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

func (v Value) truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		f, _ := v.Float()
		return f != 0 && !math.IsNaN(f)
	case KindString:
		return v.s != ""
	default:
		return true
	}
}

// isAbsentForValidation reports whether a member counts as missing for the
// string type checks: undefined, null, false, 0 and "" all do.
func isAbsentForValidation(v Value, present bool) bool {
	return !present || !v.truthy()
}

func jsNumberText(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// Member is a key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Field is shorthand for Member{Key: key, Value: v}.
func Field(key string, v Value) Member { return Member{Key: key, Value: v} }

// Object is an insertion-ordered mapping. It has no exported mutators, so a
// built Object never changes.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject builds an object from members in order. A repeated key keeps the
// position of its first occurrence and the value of its last.
func NewObject(members ...Member) *Object {
	o := &Object{}
	for _, m := range members {
		o.set(m.Key, m.Value)
	}
	return o
}

func (o *Object) set(key string, v Value) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Get returns the member value and whether the key is present.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.members[i].Value, true
}

func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns member keys in document order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// All iterates over members in document order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for _, m := range o.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}
