package gson

import (
	"reflect"
)

// InstanceFactory produces a fresh, empty instance of its registered type.
// It may return the value directly or a pointer to it.
type InstanceFactory func() any

// constructorRegistry resolves how decode obtains a fresh instance of a
// target type. Precedence: an explicitly registered factory, then zero
// construction for concrete kinds. Interfaces and unrepresentable kinds
// with no factory are the one fatal decode path.
//
// Populated during engine construction, read-only afterward.
type constructorRegistry struct {
	factories map[reflect.Type]InstanceFactory
}

func newConstructorRegistry() *constructorRegistry {
	return &constructorRegistry{factories: make(map[reflect.Type]InstanceFactory)}
}

// register stores a factory for t, reporting whether it replaced one.
func (r *constructorRegistry) register(t *TypeDescriptor, f InstanceFactory) (replaced bool) {
	_, replaced = r.factories[t.Reflect()]
	r.factories[t.Reflect()] = f
	return replaced
}

// newInstance returns an addressable value of type rt, ready for field
// population.
func (r *constructorRegistry) newInstance(t *TypeDescriptor, path string) (reflect.Value, error) {
	rt := t.Reflect()
	if factory, ok := r.factories[rt]; ok {
		produced := factory()
		if produced == nil {
			return reflect.Value{}, &InstantiationError{Target: t, Path: path}
		}
		pv := reflect.ValueOf(produced)
		// Accept either the type itself or a pointer to it.
		if pv.Kind() == reflect.Pointer && pv.Type() != rt && pv.Type().Elem() == rt {
			pv = pv.Elem()
		}
		if !pv.Type().AssignableTo(rt) {
			return reflect.Value{}, &InstantiationError{Target: t, Path: path}
		}
		holder := reflect.New(rt).Elem()
		holder.Set(pv)
		return holder, nil
	}

	switch t.Kind() {
	case TypeInterface, TypeUnsupported, TypeInvalid:
		return reflect.Value{}, &InstantiationError{Target: t, Path: path}
	case TypeMap:
		holder := reflect.New(rt).Elem()
		holder.Set(reflect.MakeMap(rt))
		return holder, nil
	default:
		return reflect.New(rt).Elem(), nil
	}
}
