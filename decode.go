package gson

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// DecodeContext is the per-call traversal state of one decode operation,
// holding references to the engine's read-only registries plus call-local
// recursion bookkeeping.
type DecodeContext struct {
	e     *Engine
	depth int
	path  []string
}

// Path returns the member path of the node currently being decoded.
func (c *DecodeContext) Path() string { return strings.Join(c.path, ".") }

// Decode converts a tree node into a value of the target type. Handlers
// use this to recurse into nested nodes.
func (c *DecodeContext) Decode(node *Value, t *TypeDescriptor) (any, error) {
	rv, err := c.decodeValue(node, t)
	if err != nil {
		return nil, err
	}
	if !rv.IsValid() {
		return nil, nil
	}
	return rv.Interface(), nil
}

func (c *DecodeContext) push(segment string) { c.path = append(c.path, segment) }
func (c *DecodeContext) pop()                { c.path = c.path[:len(c.path)-1] }

func (c *DecodeContext) decodeValue(node *Value, t *TypeDescriptor) (reflect.Value, error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.e.maxDepth {
		return reflect.Value{}, &DepthError{Limit: c.e.maxDepth, Path: c.Path()}
	}

	rt := t.Reflect()
	if node.IsNull() {
		return reflect.Zero(rt), nil
	}

	if h, ok, chosen, ambiguous := c.e.decoders.resolve(rt); ok {
		if ambiguous != "" {
			emitHandlerAmbiguous(context.Background(), "decode", rt.String(), chosen, ambiguous)
		}
		out, err := h.DecodeTree(node, t, c)
		if err != nil {
			return reflect.Value{}, err
		}
		return c.adoptHandlerResult(out, t)
	}

	switch t.Kind() {
	case TypePointer:
		p := reflect.New(rt.Elem())
		ev, err := c.decodeValue(node, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p.Elem().Set(ev)
		return p, nil
	case TypeBool:
		return c.decodeBool(node, t)
	case TypeInt:
		return c.decodeInt(node, t)
	case TypeUint:
		return c.decodeUint(node, t)
	case TypeFloat:
		return c.decodeFloat(node, t)
	case TypeString:
		return c.decodeString(node, t)
	case TypeSlice:
		return c.decodeSequence(node, t)
	case TypeMap:
		return c.decodeMap(node, t)
	case TypeStruct:
		return c.decodeStruct(node, t)
	case TypeInterface:
		return c.decodeInterface(node, t)
	case TypeAny:
		holder := reflect.New(anyReflectType).Elem()
		if native := node.Native(); native != nil {
			holder.Set(reflect.ValueOf(native))
		}
		return holder, nil
	default:
		return reflect.Value{}, &InstantiationError{Target: t, Path: c.Path()}
	}
}

// adoptHandlerResult converts a handler's result into the target type,
// accepting either the type itself or a pointer to it.
func (c *DecodeContext) adoptHandlerResult(out any, t *TypeDescriptor) (reflect.Value, error) {
	rt := t.Reflect()
	if out == nil {
		return reflect.Zero(rt), nil
	}
	rv := reflect.ValueOf(out)
	if rv.Type() != rt && rv.Kind() == reflect.Pointer && rv.Type().Elem() == rt {
		rv = rv.Elem()
	}
	if !rv.Type().AssignableTo(rt) {
		return reflect.Value{}, fmt.Errorf("decode handler for %s returned %T: %w",
			t.Name(), out, ErrBadConfig)
	}
	holder := reflect.New(rt).Elem()
	holder.Set(rv)
	return holder, nil
}

// Scalar targets accept the matching scalar node plus a best-effort string
// form, mirroring lenient primitive coercion. Anything else is a shape
// mismatch.

// scalar copies a converted scalar into a fresh value of the target type,
// so named scalar types decode without special cases.
func (c *DecodeContext) scalar(t *TypeDescriptor, v reflect.Value) reflect.Value {
	out := reflect.New(t.Reflect()).Elem()
	out.Set(v.Convert(t.Reflect()))
	return out
}

func (c *DecodeContext) decodeBool(node *Value, t *TypeDescriptor) (reflect.Value, error) {
	switch node.Kind() {
	case KindBool:
		return c.scalar(t, reflect.ValueOf(node.Bool())), nil
	case KindString:
		b, err := strconv.ParseBool(node.Str())
		if err != nil {
			return reflect.Value{}, newTypeError(t, node.Kind(), c.Path(), err.Error())
		}
		return c.scalar(t, reflect.ValueOf(b)), nil
	default:
		return reflect.Value{}, newTypeError(t, node.Kind(), c.Path(), "")
	}
}

func (c *DecodeContext) decodeInt(node *Value, t *TypeDescriptor) (reflect.Value, error) {
	lit, err := c.numericLiteral(node, t)
	if err != nil {
		return reflect.Value{}, err
	}
	i, perr := strconv.ParseInt(lit, 10, 64)
	if perr != nil {
		f, ferr := strconv.ParseFloat(lit, 64)
		if ferr != nil {
			return reflect.Value{}, newTypeError(t, node.Kind(), c.Path(), "not a number: "+lit)
		}
		i = int64(f)
	}
	if t.Reflect().OverflowInt(i) {
		return reflect.Value{}, newTypeError(t, node.Kind(), c.Path(), "overflow: "+lit)
	}
	out := reflect.New(t.Reflect()).Elem()
	out.SetInt(i)
	return out, nil
}

func (c *DecodeContext) decodeUint(node *Value, t *TypeDescriptor) (reflect.Value, error) {
	lit, err := c.numericLiteral(node, t)
	if err != nil {
		return reflect.Value{}, err
	}
	u, perr := strconv.ParseUint(lit, 10, 64)
	if perr != nil {
		f, ferr := strconv.ParseFloat(lit, 64)
		if ferr != nil || f < 0 {
			return reflect.Value{}, newTypeError(t, node.Kind(), c.Path(), "not an unsigned number: "+lit)
		}
		u = uint64(f)
	}
	if t.Reflect().OverflowUint(u) {
		return reflect.Value{}, newTypeError(t, node.Kind(), c.Path(), "overflow: "+lit)
	}
	out := reflect.New(t.Reflect()).Elem()
	out.SetUint(u)
	return out, nil
}

func (c *DecodeContext) decodeFloat(node *Value, t *TypeDescriptor) (reflect.Value, error) {
	lit, err := c.numericLiteral(node, t)
	if err != nil {
		return reflect.Value{}, err
	}
	f, perr := strconv.ParseFloat(lit, 64)
	if perr != nil {
		return reflect.Value{}, newTypeError(t, node.Kind(), c.Path(), "not a number: "+lit)
	}
	out := reflect.New(t.Reflect()).Elem()
	out.SetFloat(f)
	return out, nil
}

func (c *DecodeContext) numericLiteral(node *Value, t *TypeDescriptor) (string, error) {
	switch node.Kind() {
	case KindNumber:
		return node.Literal(), nil
	case KindString:
		return node.Str(), nil
	default:
		return "", newTypeError(t, node.Kind(), c.Path(), "")
	}
}

func (c *DecodeContext) decodeString(node *Value, t *TypeDescriptor) (reflect.Value, error) {
	var s string
	switch node.Kind() {
	case KindString:
		s = node.Str()
	case KindNumber:
		s = node.Literal()
	case KindBool:
		s = strconv.FormatBool(node.Bool())
	default:
		return reflect.Value{}, newTypeError(t, node.Kind(), c.Path(), "")
	}
	out := reflect.New(t.Reflect()).Elem()
	out.SetString(s)
	return out, nil
}

func (c *DecodeContext) decodeSequence(node *Value, t *TypeDescriptor) (reflect.Value, error) {
	if node.Kind() != KindArray {
		return reflect.Value{}, newTypeError(t, node.Kind(), c.Path(), "")
	}
	rt := t.Reflect()
	elem := t.Elem()
	n := node.Len()

	var out reflect.Value
	if rt.Kind() == reflect.Array {
		out = reflect.New(rt).Elem()
		if n > rt.Len() {
			n = rt.Len()
		}
	} else {
		out = reflect.MakeSlice(rt, node.Len(), node.Len())
	}
	for i := 0; i < n; i++ {
		c.push(strconv.Itoa(i))
		ev, err := c.decodeValue(node.Index(i), elem)
		c.pop()
		if err != nil {
			return reflect.Value{}, err
		}
		out.Index(i).Set(ev)
	}
	if rt.Kind() == reflect.Array {
		return out, nil
	}
	holder := reflect.New(rt).Elem()
	holder.Set(out)
	return holder, nil
}

func (c *DecodeContext) decodeMap(node *Value, t *TypeDescriptor) (reflect.Value, error) {
	if node.Kind() != KindObject {
		return reflect.Value{}, newTypeError(t, node.Kind(), c.Path(), "")
	}
	rt := t.Reflect()
	out := reflect.MakeMapWithSize(rt, node.Len())
	valDesc := t.Elem()
	for _, m := range node.Members() {
		key, err := c.decodeMapKey(m.Key, t)
		if err != nil {
			return reflect.Value{}, err
		}
		c.push(m.Key)
		mv, err := c.decodeValue(m.Value, valDesc)
		c.pop()
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetMapIndex(key, mv)
	}
	holder := reflect.New(rt).Elem()
	holder.Set(out)
	return holder, nil
}

// decodeMapKey reverses the string form a map key was encoded under.
func (c *DecodeContext) decodeMapKey(key string, t *TypeDescriptor) (reflect.Value, error) {
	kd := t.Key()
	return c.decodeValue(Str(key), kd)
}

func (c *DecodeContext) decodeStruct(node *Value, t *TypeDescriptor) (reflect.Value, error) {
	if node.Kind() != KindObject {
		return reflect.Value{}, newTypeError(t, node.Kind(), c.Path(), "")
	}
	inst, err := c.e.constructors.newInstance(t, c.Path())
	if err != nil {
		return reflect.Value{}, err
	}
	if err := c.populateStruct(inst, node); err != nil {
		return reflect.Value{}, err
	}
	return inst, nil
}

// populateStruct fills the navigator's fields from object members. Absent
// members leave the field at its current value.
func (c *DecodeContext) populateStruct(inst reflect.Value, node *Value) error {
	plan := c.e.nav.plan(inst.Type())
	for _, f := range plan.fields {
		child, ok := node.Member(f.external)
		if !ok {
			continue
		}
		c.push(f.external)
		fv, err := c.decodeValue(child, f.typ)
		if err != nil {
			c.pop()
			return err
		}
		fieldByIndexAlloc(inst, f.index).Set(fv)
		c.pop()
	}
	return nil
}

// decodeInterface decodes into an interface target. This requires a
// registered factory: the factory's concrete instance is populated from
// the node and returned behind the interface.
func (c *DecodeContext) decodeInterface(node *Value, t *TypeDescriptor) (reflect.Value, error) {
	inst, err := c.e.constructors.newInstance(t, c.Path())
	if err != nil {
		return reflect.Value{}, err
	}

	concrete := reflect.New(inst.Elem().Type()).Elem()
	concrete.Set(inst.Elem())

	target := concrete
	if target.Kind() == reflect.Pointer && target.Type().Elem().Kind() == reflect.Struct {
		if target.IsNil() {
			target.Set(reflect.New(target.Type().Elem()))
		}
		target = target.Elem()
	}
	if target.Kind() == reflect.Struct && node.Kind() == KindObject {
		if err := c.populateStruct(target, node); err != nil {
			return reflect.Value{}, err
		}
	} else {
		decoded, err := c.decodeValue(node, DescribeType(concrete.Type()))
		if err != nil {
			return reflect.Value{}, err
		}
		concrete = decoded
	}

	out := reflect.New(t.Reflect()).Elem()
	out.Set(concrete)
	return out, nil
}
