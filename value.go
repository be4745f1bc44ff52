package gson

import (
	"fmt"
	"sort"
	"strconv"
)

// ValueKind identifies the variant held by a Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name.
func (k ValueKind) String() string {
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
		return "invalid"
	}
}

// Member is a single key/value entry of an object Value.
type Member struct {
	Key   string
	Value *Value
}

// Value is the in-memory tree representation produced by encoding and
// consumed by decoding: a tagged union over null, bool, number, string,
// array, and object. Object members preserve insertion order. Numbers keep
// their literal form so integer precision survives a round trip.
//
// Containers are built with Append and Set and should be treated as
// immutable once handed to the engine or a formatter.
type Value struct {
	kind    ValueKind
	boolean bool
	lit     string // numeric literal
	str     string
	items   []*Value
	members []Member
	index   map[string]int
}

var nullValue = &Value{kind: KindNull}

// Null returns the null Value sentinel.
func Null() *Value { return nullValue }

// Bool returns a boolean Value.
func Bool(b bool) *Value { return &Value{kind: KindBool, boolean: b} }

// Int returns a numeric Value for a signed integer.
func Int(i int64) *Value {
	return &Value{kind: KindNumber, lit: strconv.FormatInt(i, 10)}
}

// Uint returns a numeric Value for an unsigned integer.
func Uint(u uint64) *Value {
	return &Value{kind: KindNumber, lit: strconv.FormatUint(u, 10)}
}

// Float returns a numeric Value for a float.
func Float(f float64) *Value {
	return &Value{kind: KindNumber, lit: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Num returns a numeric Value holding the given literal verbatim.
// The caller is responsible for the literal being a valid number;
// the parser uses this to preserve the source text exactly.
func Num(lit string) *Value { return &Value{kind: KindNumber, lit: lit} }

// Str returns a string Value.
func Str(s string) *Value { return &Value{kind: KindString, str: s} }

// NewArray returns an empty array Value.
func NewArray(items ...*Value) *Value {
	return &Value{kind: KindArray, items: items}
}

// NewObject returns an empty object Value.
func NewObject() *Value {
	return &Value{kind: KindObject, index: make(map[string]int)}
}

// Kind returns the variant tag.
func (v *Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is the null variant.
func (v *Value) IsNull() bool { return v == nil || v.kind == KindNull }

// Bool returns the boolean payload. It is zero for other kinds.
func (v *Value) Bool() bool { return v.boolean }

// Literal returns the numeric literal. It is empty for other kinds.
func (v *Value) Literal() string { return v.lit }

// Int64 converts the numeric payload to int64. Literals with a fractional
// part are truncated toward zero.
func (v *Value) Int64() (int64, error) {
	if i, err := strconv.ParseInt(v.lit, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(v.lit, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", v.lit)
	}
	return int64(f), nil
}

// Uint64 converts the numeric payload to uint64.
func (v *Value) Uint64() (uint64, error) {
	if u, err := strconv.ParseUint(v.lit, 10, 64); err == nil {
		return u, nil
	}
	f, err := strconv.ParseFloat(v.lit, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("not an unsigned number: %q", v.lit)
	}
	return uint64(f), nil
}

// Float64 converts the numeric payload to float64.
func (v *Value) Float64() (float64, error) {
	f, err := strconv.ParseFloat(v.lit, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", v.lit)
	}
	return f, nil
}

// Str returns the string payload. It is empty for other kinds.
func (v *Value) Str() string { return v.str }

// Len returns the number of elements or members of a container.
func (v *Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Append adds elements to an array Value. It panics on any other kind.
func (v *Value) Append(items ...*Value) *Value {
	if v.kind != KindArray {
		panic("gson: Append on " + v.kind.String() + " value")
	}
	v.items = append(v.items, items...)
	return v
}

// Items returns the elements of an array Value.
func (v *Value) Items() []*Value { return v.items }

// Index returns the i-th element of an array Value.
func (v *Value) Index(i int) *Value { return v.items[i] }

// Set adds or replaces a member of an object Value. Replacing an existing
// key keeps its original position. It panics on any other kind.
func (v *Value) Set(key string, val *Value) *Value {
	if v.kind != KindObject {
		panic("gson: Set on " + v.kind.String() + " value")
	}
	if val == nil {
		val = nullValue
	}
	if i, ok := v.index[key]; ok {
		v.members[i].Value = val
		return v
	}
	v.index[key] = len(v.members)
	v.members = append(v.members, Member{Key: key, Value: val})
	return v
}

// Member returns the value stored under key.
func (v *Value) Member(key string) (*Value, bool) {
	i, ok := v.index[key]
	if !ok {
		return nil, false
	}
	return v.members[i].Value, true
}

// Members returns the members of an object Value in insertion order.
func (v *Value) Members() []Member { return v.members }

// Keys returns the member keys in insertion order.
func (v *Value) Keys() []string {
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Equal reports deep structural equality. Numbers compare by numeric value,
// not literal text, so 1.0 equals 1.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == o.boolean
	case KindNumber:
		if v.lit == o.lit {
			return true
		}
		a, errA := v.Float64()
		b, errB := o.Float64()
		return errA == nil && errB == nil && a == b
	case KindString:
		return v.str == o.str
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(o.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != o.members[i].Key {
				return false
			}
			if !v.members[i].Value.Equal(o.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Native converts the tree into plain Go values: nil, bool, int64 or
// float64, string, []any, and map[string]any. Object member order is lost.
func (v *Value) Native() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boolean
	case KindNumber:
		if i, err := strconv.ParseInt(v.lit, 10, 64); err == nil {
			return i
		}
		f, _ := v.Float64()
		return f
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.items))
		for i, it := range v.items {
			out[i] = it.Native()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Native()
		}
		return out
	}
	return nil
}

// FromNative builds a tree from plain Go values as produced by generic
// decoders (yaml, msgpack): nil, bool, integer and float types, string,
// []any, map[string]any, and map[any]any. Map keys are sorted so the
// resulting member order is deterministic.
func FromNative(v any) (*Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
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
		return Uint(uint64(x)), nil
	case uint8:
		return Uint(uint64(x)), nil
	case uint16:
		return Uint(uint64(x)), nil
	case uint32:
		return Uint(uint64(x)), nil
	case uint64:
		return Uint(x), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case string:
		return Str(x), nil
	case []any:
		arr := NewArray()
		for _, e := range x {
			ev, err := FromNative(e)
			if err != nil {
				return nil, err
			}
			arr.Append(ev)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			mv, err := FromNative(x[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, mv)
		}
		return obj, nil
	case map[any]any:
		converted := make(map[string]any, len(x))
		for k, mv := range x {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			converted[ks] = mv
		}
		return FromNative(converted)
	default:
		return nil, fmt.Errorf("cannot build tree value from %T", v)
	}
}

// String renders the value as compact JSON.
func (v *Value) String() string {
	return string(Format(v))
}
