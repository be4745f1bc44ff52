package gson

import (
	"encoding"
	"fmt"
	"reflect"
	"time"
)

// Default handler overlay. Every engine seeds its registries from these
// before user registrations are applied, mirroring how the process-wide
// defaults stay immutable while each engine owns its overlay.
//
// Registration order matters for ties: TreeMarshaler registers after
// TextMarshaler so a type implementing both uses its tree form.

func seedEncodeDefaults(r *handlerRegistry[EncodeHandler]) {
	r.register(TypeFor[encoding.TextMarshaler](), EncodeFunc(encodeTextMarshaler))
	r.register(TypeFor[TreeMarshaler](), EncodeFunc(encodeTreeMarshaler))
	r.register(TypeFor[time.Duration](), EncodeFunc(encodeDuration))
}

func seedDecodeDefaults(r *handlerRegistry[DecodeHandler]) {
	r.register(TypeFor[encoding.TextUnmarshaler](), DecodeFunc(decodeTextUnmarshaler))
	r.register(TypeFor[TreeUnmarshaler](), DecodeFunc(decodeTreeUnmarshaler))
	r.register(TypeFor[time.Duration](), DecodeFunc(decodeDuration))
}

// addressableCopy returns v as an interface whose dynamic type is a
// pointer, so pointer-receiver methods are reachable from a plain value.
func addressableCopy(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		return v
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return p.Interface()
}

func encodeTextMarshaler(v any, t *TypeDescriptor, _ *EncodeContext) (*Value, error) {
	m, ok := v.(encoding.TextMarshaler)
	if !ok {
		m, ok = addressableCopy(v).(encoding.TextMarshaler)
	}
	if !ok {
		return nil, fmt.Errorf("%s does not implement encoding.TextMarshaler: %w", t.Name(), ErrBadConfig)
	}
	text, err := m.MarshalText()
	if err != nil {
		return nil, err
	}
	return Str(string(text)), nil
}

func encodeTreeMarshaler(v any, t *TypeDescriptor, _ *EncodeContext) (*Value, error) {
	m, ok := v.(TreeMarshaler)
	if !ok {
		m, ok = addressableCopy(v).(TreeMarshaler)
	}
	if !ok {
		return nil, fmt.Errorf("%s does not implement TreeMarshaler: %w", t.Name(), ErrBadConfig)
	}
	return m.MarshalTree()
}

// decodeTarget allocates a fresh instance to unmarshal into. A pointer
// target is satisfied by the allocation itself, so a *T field resolves the
// same handler as a T field does.
func decodeTarget(rt reflect.Type) (p reflect.Value, asPointer bool) {
	if rt.Kind() == reflect.Pointer {
		return reflect.New(rt.Elem()), true
	}
	return reflect.New(rt), false
}

func decodeTextUnmarshaler(node *Value, t *TypeDescriptor, ctx *DecodeContext) (any, error) {
	if node.Kind() != KindString {
		return nil, newTypeError(t, node.Kind(), ctx.Path(), "text form expected")
	}
	p, asPointer := decodeTarget(t.Reflect())
	u, ok := p.Interface().(encoding.TextUnmarshaler)
	if !ok {
		return nil, fmt.Errorf("%s does not implement encoding.TextUnmarshaler: %w", t.Name(), ErrBadConfig)
	}
	if err := u.UnmarshalText([]byte(node.Str())); err != nil {
		return nil, err
	}
	if asPointer {
		return p.Interface(), nil
	}
	return p.Elem().Interface(), nil
}

func decodeTreeUnmarshaler(node *Value, t *TypeDescriptor, _ *DecodeContext) (any, error) {
	p, asPointer := decodeTarget(t.Reflect())
	u, ok := p.Interface().(TreeUnmarshaler)
	if !ok {
		return nil, fmt.Errorf("%s does not implement TreeUnmarshaler: %w", t.Name(), ErrBadConfig)
	}
	if err := u.UnmarshalTree(node); err != nil {
		return nil, err
	}
	if asPointer {
		return p.Interface(), nil
	}
	return p.Elem().Interface(), nil
}

func encodeDuration(v any, _ *TypeDescriptor, _ *EncodeContext) (*Value, error) {
	return Str(v.(time.Duration).String()), nil
}

func decodeDuration(node *Value, t *TypeDescriptor, ctx *DecodeContext) (any, error) {
	switch node.Kind() {
	case KindString:
		d, err := time.ParseDuration(node.Str())
		if err != nil {
			return nil, newTypeError(t, node.Kind(), ctx.Path(), err.Error())
		}
		return d, nil
	case KindNumber:
		ns, err := node.Int64()
		if err != nil {
			return nil, newTypeError(t, node.Kind(), ctx.Path(), err.Error())
		}
		return time.Duration(ns), nil
	default:
		return nil, newTypeError(t, node.Kind(), ctx.Path(), "duration expected")
	}
}
