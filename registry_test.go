package gson

import (
	"reflect"
	"testing"
)

type ruBase interface{ RuBase() }
type ruExtended interface {
	ruBase
	RuExtended()
}
type ruOther interface{ RuOther() }

type ruImpl struct{}

func (ruImpl) RuBase()     {}
func (ruImpl) RuExtended() {}

type ruDual struct{}

func (ruDual) RuBase()  {}
func (ruDual) RuOther() {}

func namedEncoder(name string) EncodeHandler {
	return EncodeFunc(func(any, *TypeDescriptor, *EncodeContext) (*Value, error) {
		return Str(name), nil
	})
}

func invoke(t *testing.T, h EncodeHandler) string {
	t.Helper()
	v, err := h.EncodeTree(nil, nil, nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return v.Str()
}

func TestRegistryExactMatch(t *testing.T) {
	r := newHandlerRegistry[EncodeHandler]()
	r.register(TypeFor[int](), namedEncoder("int"))
	r.register(TypeFor[ruBase](), namedEncoder("iface"))

	h, ok, _, _ := r.resolve(reflect.TypeFor[int]())
	if !ok {
		t.Fatal("expected exact match for int")
	}
	if got := invoke(t, h); got != "int" {
		t.Errorf("resolved %q, want exact handler", got)
	}
}

func TestRegistryExactBeatsInterface(t *testing.T) {
	r := newHandlerRegistry[EncodeHandler]()
	r.register(TypeFor[ruBase](), namedEncoder("iface"))
	r.register(TypeFor[ruImpl](), namedEncoder("exact"))

	h, ok, _, _ := r.resolve(reflect.TypeFor[ruImpl]())
	if !ok {
		t.Fatal("expected a match")
	}
	if got := invoke(t, h); got != "exact" {
		t.Errorf("resolved %q, want exact handler over interface", got)
	}
}

func TestRegistryMostSpecificInterfaceWins(t *testing.T) {
	r := newHandlerRegistry[EncodeHandler]()
	// The broader interface registers later; specificity still wins.
	r.register(TypeFor[ruExtended](), namedEncoder("extended"))
	r.register(TypeFor[ruBase](), namedEncoder("base"))

	h, ok, chosen, _ := r.resolve(reflect.TypeFor[ruImpl]())
	if !ok {
		t.Fatal("expected a match")
	}
	if got := invoke(t, h); got != "extended" {
		t.Errorf("resolved %q (chosen %s), want most specific interface", got, chosen)
	}
}

func TestRegistryWildcardIsLastResort(t *testing.T) {
	r := newHandlerRegistry[EncodeHandler]()
	r.register(TypeFor[any](), namedEncoder("wildcard"))
	r.register(TypeFor[ruBase](), namedEncoder("base"))

	h, ok, _, _ := r.resolve(reflect.TypeFor[ruImpl]())
	if !ok {
		t.Fatal("expected a match")
	}
	if got := invoke(t, h); got != "base" {
		t.Errorf("resolved %q, want interface handler over wildcard", got)
	}

	h, ok, _, _ = r.resolve(reflect.TypeFor[string]())
	if !ok {
		t.Fatal("expected wildcard match for string")
	}
	if got := invoke(t, h); got != "wildcard" {
		t.Errorf("resolved %q, want wildcard", got)
	}
}

func TestRegistryEqualSpecificityLastRegisteredWins(t *testing.T) {
	r := newHandlerRegistry[EncodeHandler]()
	r.register(TypeFor[ruBase](), namedEncoder("base"))
	r.register(TypeFor[ruOther](), namedEncoder("other"))

	h, ok, _, ambiguous := r.resolve(reflect.TypeFor[ruDual]())
	if !ok {
		t.Fatal("expected a match")
	}
	if got := invoke(t, h); got != "other" {
		t.Errorf("resolved %q, want the later registration", got)
	}
	if ambiguous == "" {
		t.Error("expected ambiguity diagnostic for unrelated equally specific interfaces")
	}
}

func TestRegistryReplaceReportsOverride(t *testing.T) {
	r := newHandlerRegistry[EncodeHandler]()
	if replaced := r.register(TypeFor[int](), namedEncoder("first")); replaced {
		t.Error("first registration should not report replacement")
	}
	if replaced := r.register(TypeFor[int](), namedEncoder("second")); !replaced {
		t.Error("re-registration should report replacement")
	}
	h, _, _, _ := r.resolve(reflect.TypeFor[int]())
	if got := invoke(t, h); got != "second" {
		t.Errorf("resolved %q, want the later registration to win", got)
	}

	if replaced := r.register(TypeFor[ruBase](), namedEncoder("i1")); replaced {
		t.Error("first interface registration should not report replacement")
	}
	if replaced := r.register(TypeFor[ruBase](), namedEncoder("i2")); !replaced {
		t.Error("interface re-registration should report replacement")
	}
}

func TestRegistryNoMatch(t *testing.T) {
	r := newHandlerRegistry[EncodeHandler]()
	r.register(TypeFor[ruBase](), namedEncoder("base"))

	if _, ok, _, _ := r.resolve(reflect.TypeFor[string]()); ok {
		t.Error("string should not resolve against an unrelated interface")
	}
}

func TestRegistryHasExact(t *testing.T) {
	r := newHandlerRegistry[EncodeHandler]()
	r.register(TypeFor[int](), namedEncoder("int"))
	r.register(TypeFor[ruBase](), namedEncoder("base"))

	if !r.hasExact(TypeFor[int]()) {
		t.Error("expected exact presence for int")
	}
	if !r.hasExact(TypeFor[ruBase]()) {
		t.Error("expected exact presence for registered interface")
	}
	if r.hasExact(TypeFor[string]()) {
		t.Error("unexpected exact presence for string")
	}
	if r.hasExact(TypeFor[ruImpl]()) {
		t.Error("interface satisfaction must not count as exact presence")
	}
}
