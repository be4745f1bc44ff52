package gson

import (
	"reflect"
)

// EncodeHandler overrides structural encoding for the types it is
// registered against. The handler's result is used verbatim; it may call
// back into the context to encode nested values.
type EncodeHandler interface {
	EncodeTree(v any, t *TypeDescriptor, ctx *EncodeContext) (*Value, error)
}

// EncodeFunc adapts a function to EncodeHandler.
type EncodeFunc func(v any, t *TypeDescriptor, ctx *EncodeContext) (*Value, error)

func (f EncodeFunc) EncodeTree(v any, t *TypeDescriptor, ctx *EncodeContext) (*Value, error) {
	return f(v, t, ctx)
}

// DecodeHandler overrides structural decoding for the types it is
// registered against. The returned value must be assignable to the
// requested type (or be a pointer to it).
type DecodeHandler interface {
	DecodeTree(node *Value, t *TypeDescriptor, ctx *DecodeContext) (any, error)
}

// DecodeFunc adapts a function to DecodeHandler.
type DecodeFunc func(node *Value, t *TypeDescriptor, ctx *DecodeContext) (any, error)

func (f DecodeFunc) DecodeTree(node *Value, t *TypeDescriptor, ctx *DecodeContext) (any, error) {
	return f(node, t, ctx)
}

// ifaceEntry is a handler registered for an interface type, kept in
// registration order.
type ifaceEntry[H any] struct {
	it      reflect.Type
	handler H
}

// handlerRegistry is a type-indexed handler lookup. Concrete types resolve
// by exact match; interface registrations resolve by specificity, where an
// interface whose method set implies another's is the more specific of the
// two. A registration for the empty interface is the wildcard: every other
// match beats it.
//
// The registry is populated during engine construction and read-only
// afterward.
type handlerRegistry[H any] struct {
	exact  map[reflect.Type]H
	ifaces []ifaceEntry[H]
}

func newHandlerRegistry[H any]() *handlerRegistry[H] {
	return &handlerRegistry[H]{exact: make(map[reflect.Type]H)}
}

// register stores a handler for t. It reports whether an earlier
// registration for the same exact type was replaced.
func (r *handlerRegistry[H]) register(t *TypeDescriptor, h H) (replaced bool) {
	rt := t.Reflect()
	if rt.Kind() == reflect.Interface {
		for i, e := range r.ifaces {
			if e.it == rt {
				// Drop the old entry so the replacement takes the
				// latest registration slot.
				r.ifaces = append(r.ifaces[:i], r.ifaces[i+1:]...)
				replaced = true
				break
			}
		}
		r.ifaces = append(r.ifaces, ifaceEntry[H]{it: rt, handler: h})
		return replaced
	}
	_, replaced = r.exact[rt]
	r.exact[rt] = h
	return replaced
}

// hasExact reports whether an exact registration exists for t.
func (r *handlerRegistry[H]) hasExact(t *TypeDescriptor) bool {
	rt := t.Reflect()
	if rt.Kind() == reflect.Interface {
		for _, e := range r.ifaces {
			if e.it == rt {
				return true
			}
		}
		return false
	}
	_, ok := r.exact[rt]
	return ok
}

// satisfies reports whether rt or *rt implements the interface it.
func satisfies(rt, it reflect.Type) bool {
	if rt.Implements(it) {
		return true
	}
	return rt.Kind() != reflect.Pointer && reflect.PointerTo(rt).Implements(it)
}

// resolve finds the handler for rt. Precedence: exact match, then the most
// specific satisfied interface registration (ties broken toward the latest
// registration), then the empty-interface wildcard, which falls out of the
// specificity rule. ambiguousWith carries the type name of a competing,
// unrelated registration of equal specificity, for diagnostics.
func (r *handlerRegistry[H]) resolve(rt reflect.Type) (h H, ok bool, chosen string, ambiguousWith string) {
	if exact, found := r.exact[rt]; found {
		return exact, true, rt.String(), ""
	}

	best := -1
	for i := len(r.ifaces) - 1; i >= 0; i-- {
		if !satisfies(rt, r.ifaces[i].it) {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		// A candidate whose interface implies the current best is
		// strictly more specific and wins regardless of order.
		cur, cand := r.ifaces[best].it, r.ifaces[i].it
		if cand.Implements(cur) && !cur.Implements(cand) {
			best = i
		}
	}
	if best < 0 {
		return h, false, "", ""
	}

	// Flag unrelated candidates of equal specificity: the chosen entry
	// was preferred only by registration order.
	cur := r.ifaces[best].it
	for i, e := range r.ifaces {
		if i == best || !satisfies(rt, e.it) {
			continue
		}
		if !e.it.Implements(cur) && !cur.Implements(e.it) {
			ambiguousWith = e.it.String()
			break
		}
	}
	return r.ifaces[best].handler, true, cur.String(), ambiguousWith
}
