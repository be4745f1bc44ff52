package gson

import (
	"context"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// EncodeContext is the per-call traversal state of one encode operation.
// It holds only references to the engine's read-only registries plus the
// call-local recursion bookkeeping, so a context is cheap and never shared
// across calls.
type EncodeContext struct {
	e     *Engine
	depth int
	path  []string
}

// Path returns the member path of the node currently being encoded.
func (c *EncodeContext) Path() string { return strings.Join(c.path, ".") }

// Encode converts a value to its tree representation. Handlers use this to
// recurse into nested values.
func (c *EncodeContext) Encode(v any, t *TypeDescriptor) (*Value, error) {
	if v == nil {
		return Null(), nil
	}
	if t == nil {
		t = describeValue(v)
	}
	rv := reflect.ValueOf(v)
	if k := t.Kind(); k != TypeInterface && k != TypeAny &&
		rv.Type() != t.Reflect() && rv.Type().ConvertibleTo(t.Reflect()) {
		// Encode under the caller-supplied type, so handlers registered
		// for it apply.
		rv = rv.Convert(t.Reflect())
	}
	return c.encodeValue(rv)
}

func (c *EncodeContext) push(segment string) { c.path = append(c.path, segment) }
func (c *EncodeContext) pop()                { c.path = c.path[:len(c.path)-1] }

// encodeValue is the structural rule set: custom handler first, then
// decomposition by descriptor kind.
func (c *EncodeContext) encodeValue(rv reflect.Value) (*Value, error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.e.maxDepth {
		return nil, &DepthError{Limit: c.e.maxDepth, Path: c.Path()}
	}

	if !rv.IsValid() {
		return Null(), nil
	}
	rt := rv.Type()
	if rt.Kind() == reflect.Pointer || rt.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null(), nil
		}
	}

	if h, ok, chosen, ambiguous := c.e.encoders.resolve(rt); ok {
		if ambiguous != "" {
			emitHandlerAmbiguous(context.Background(), "encode", rt.String(), chosen, ambiguous)
		}
		out, err := h.EncodeTree(rv.Interface(), DescribeType(rt), c)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = Null()
		}
		return out, nil
	}

	t := DescribeType(rt)
	switch t.Kind() {
	case TypePointer, TypeInterface, TypeAny:
		return c.encodeValue(rv.Elem())
	case TypeBool:
		return Bool(rv.Bool()), nil
	case TypeInt:
		return Int(rv.Int()), nil
	case TypeUint:
		return Uint(rv.Uint()), nil
	case TypeFloat:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &UnsupportedTypeError{Target: t, Path: c.Path(), Detail: "non-finite float"}
		}
		return Float(f), nil
	case TypeString:
		return Str(rv.String()), nil
	case TypeSlice:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null(), nil
		}
		return c.encodeSequence(rv)
	case TypeMap:
		if rv.IsNil() {
			return Null(), nil
		}
		return c.encodeMap(rv, t)
	case TypeStruct:
		return c.encodeStruct(rv, rt)
	default:
		return nil, &UnsupportedTypeError{Target: t, Path: c.Path()}
	}
}

func (c *EncodeContext) encodeSequence(rv reflect.Value) (*Value, error) {
	arr := NewArray()
	for i := 0; i < rv.Len(); i++ {
		c.push(strconv.Itoa(i))
		item, err := c.encodeValue(rv.Index(i))
		c.pop()
		if err != nil {
			return nil, err
		}
		arr.Append(item)
	}
	return arr, nil
}

// encodeMap renders a map as an object keyed by the string form of each
// key, in sorted key order for deterministic output.
func (c *EncodeContext) encodeMap(rv reflect.Value, t *TypeDescriptor) (*Value, error) {
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := c.keyString(iter.Key(), t)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{key: key, val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	obj := NewObject()
	for _, e := range entries {
		c.push(e.key)
		val, err := c.encodeValue(e.val)
		c.pop()
		if err != nil {
			return nil, err
		}
		obj.Set(e.key, val)
	}
	return obj, nil
}

func (c *EncodeContext) keyString(key reflect.Value, t *TypeDescriptor) (string, error) {
	switch key.Kind() {
	case reflect.String:
		return key.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(key.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(key.Uint(), 10), nil
	case reflect.Bool:
		return strconv.FormatBool(key.Bool()), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(key.Float(), 'g', -1, 64), nil
	default:
		keyed, err := c.encodeValue(key)
		if err != nil {
			return "", err
		}
		if keyed.Kind() == KindString {
			return keyed.Str(), nil
		}
		return "", &UnsupportedTypeError{
			Target: DescribeType(key.Type()),
			Path:   c.Path(),
			Detail: "map key has no string form",
		}
	}
}

// encodeStruct assembles an object from the navigator's field enumeration.
// Null members are omitted unless the engine serializes nulls.
func (c *EncodeContext) encodeStruct(rv reflect.Value, rt reflect.Type) (*Value, error) {
	plan := c.e.nav.plan(rt)
	obj := NewObject()
	for _, f := range plan.fields {
		fv := fieldByIndex(rv, f.index)
		c.push(f.external)
		member, err := c.encodeValue(fv)
		c.pop()
		if err != nil {
			return nil, err
		}
		if member.IsNull() && !c.e.serializeNulls {
			continue
		}
		obj.Set(f.external, member)
	}
	return obj, nil
}
