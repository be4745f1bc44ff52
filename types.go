package gson

import (
	"reflect"
	"sync"
)

// TypeKind is the normalized classification of a Go type as the codec
// engine sees it.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypeBool
	TypeInt
	TypeUint
	TypeFloat
	TypeString
	TypeSlice // slices and arrays
	TypeMap
	TypeStruct
	TypePointer
	TypeInterface   // non-empty interface
	TypeAny         // empty interface; the degraded "unknown" descriptor
	TypeUnsupported // func, chan, complex, unsafe.Pointer
)

// String returns the kind name.
func (k TypeKind) String() string {
	switch k {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeUint:
		return "uint"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeSlice:
		return "slice"
	case TypeMap:
		return "map"
	case TypeStruct:
		return "struct"
	case TypePointer:
		return "pointer"
	case TypeInterface:
		return "interface"
	case TypeAny:
		return "any"
	case TypeUnsupported:
		return "unsupported"
	default:
		return "invalid"
	}
}

// TypeDescriptor is the normalized representation of a target type: its
// kind plus recursively derived element descriptors. Descriptors are
// interned, so two descriptors for the same reflect.Type are the same
// pointer and compare equal with ==.
//
// Go reifies instantiated generics in reflect.Type, so a descriptor for a
// parameterized type is always fully resolved. The one erased case is a
// value reaching the engine as a bare interface; it degrades to the
// object-like any descriptor rather than failing.
type TypeDescriptor struct {
	rt   reflect.Type
	kind TypeKind
}

var (
	descMu    sync.RWMutex
	descCache = make(map[reflect.Type]*TypeDescriptor)

	anyReflectType = reflect.TypeOf((*any)(nil)).Elem()
)

// TypeFor returns the descriptor for the fully reified type T. This is the
// way callers hand a complete generic type to the engine:
//
//	gson.TypeFor[map[string][]Point]()
func TypeFor[T any]() *TypeDescriptor {
	return DescribeType(reflect.TypeFor[T]())
}

// DescribeType returns the interned descriptor for rt. A nil rt yields the
// any descriptor.
func DescribeType(rt reflect.Type) *TypeDescriptor {
	if rt == nil {
		rt = anyReflectType
	}

	descMu.RLock()
	if d, ok := descCache[rt]; ok {
		descMu.RUnlock()
		return d
	}
	descMu.RUnlock()

	descMu.Lock()
	defer descMu.Unlock()
	if d, ok := descCache[rt]; ok {
		return d
	}
	d := &TypeDescriptor{rt: rt, kind: classify(rt)}
	descCache[rt] = d
	return d
}

// describeValue returns the descriptor for v's dynamic type. A nil v
// yields the any descriptor.
func describeValue(v any) *TypeDescriptor {
	if v == nil {
		return DescribeType(nil)
	}
	return DescribeType(reflect.TypeOf(v))
}

func classify(rt reflect.Type) TypeKind {
	switch rt.Kind() {
	case reflect.Bool:
		return TypeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return TypeInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return TypeUint
	case reflect.Float32, reflect.Float64:
		return TypeFloat
	case reflect.String:
		return TypeString
	case reflect.Slice, reflect.Array:
		return TypeSlice
	case reflect.Map:
		return TypeMap
	case reflect.Struct:
		return TypeStruct
	case reflect.Pointer:
		return TypePointer
	case reflect.Interface:
		if rt.NumMethod() == 0 {
			return TypeAny
		}
		return TypeInterface
	default:
		return TypeUnsupported
	}
}

// Kind returns the normalized kind.
func (t *TypeDescriptor) Kind() TypeKind { return t.kind }

// Reflect returns the underlying reflect.Type.
func (t *TypeDescriptor) Reflect() reflect.Type { return t.rt }

// Name returns a diagnostic name for the type.
func (t *TypeDescriptor) Name() string { return t.rt.String() }

// Elem returns the element descriptor of a slice, array, map, or pointer
// descriptor, and nil for every other kind.
func (t *TypeDescriptor) Elem() *TypeDescriptor {
	switch t.kind {
	case TypeSlice, TypeMap, TypePointer:
		return DescribeType(t.rt.Elem())
	default:
		return nil
	}
}

// Key returns the key descriptor of a map descriptor, and nil otherwise.
func (t *TypeDescriptor) Key() *TypeDescriptor {
	if t.kind != TypeMap {
		return nil
	}
	return DescribeType(t.rt.Key())
}

// Args returns the ordered type arguments: element for sequences and
// pointers, key then value for maps, nothing for other kinds.
func (t *TypeDescriptor) Args() []*TypeDescriptor {
	switch t.kind {
	case TypeSlice, TypePointer:
		return []*TypeDescriptor{t.Elem()}
	case TypeMap:
		return []*TypeDescriptor{t.Key(), t.Elem()}
	default:
		return nil
	}
}

// Equal reports whether two descriptors denote the same type. Interning
// makes this pointer equality, but Equal also accepts descriptors built
// elsewhere.
func (t *TypeDescriptor) Equal(o *TypeDescriptor) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	return t.rt == o.rt
}
