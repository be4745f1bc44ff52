package gson

import (
	"reflect"
	"strconv"
)

// Field is the view of a struct field handed to exclusion strategies and
// the naming policy.
type Field struct {
	Name     string            // Go field name
	Type     reflect.Type      // declared type
	Exported bool              // false for unexported fields
	Tags     map[string]string // extracted codec tags: "gson", "since", "until"
}

// ExclusionStrategy decides whether a field or a type is omitted from the
// codec. A true result from either method excludes.
type ExclusionStrategy interface {
	SkipField(f Field) bool
	SkipType(t reflect.Type) bool
}

// exclusionPolicy composes strategies with logical OR: a field or type is
// excluded when any strategy excludes it. Order only affects which strategy
// short-circuits first, never the outcome.
type exclusionPolicy []ExclusionStrategy

func (p exclusionPolicy) skipField(f Field) bool {
	for _, s := range p {
		if s.SkipField(f) {
			return true
		}
	}
	return false
}

func (p exclusionPolicy) skipType(t reflect.Type) bool {
	for _, s := range p {
		if s.SkipType(t) {
			return true
		}
	}
	return false
}

// modifierStrategy excludes fields the codec may not touch: unexported
// fields and fields tagged gson:"-".
type modifierStrategy struct{}

func (modifierStrategy) SkipField(f Field) bool {
	return !f.Exported || f.Tags[tagName] == "-"
}

func (modifierStrategy) SkipType(reflect.Type) bool { return false }

// unsupportedKindStrategy excludes fields whose type the tree value cannot
// carry: funcs, channels, complex numbers, and unsafe pointers.
type unsupportedKindStrategy struct{}

func unrepresentable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

func (unsupportedKindStrategy) SkipField(f Field) bool {
	return unrepresentable(f.Type)
}

func (unsupportedKindStrategy) SkipType(t reflect.Type) bool {
	return unrepresentable(t)
}

// versionStrategy excludes fields tagged with a version range outside the
// engine's configured version. A field tagged since:"N" is excluded while
// the engine's version is below N; a field tagged until:"N" is excluded
// once the engine's version reaches N. Malformed version tags exclude
// nothing.
type versionStrategy struct {
	version float64
}

func (s versionStrategy) SkipField(f Field) bool {
	if since, ok := f.Tags[tagSince]; ok {
		if v, err := strconv.ParseFloat(since, 64); err == nil && s.version < v {
			return true
		}
	}
	if until, ok := f.Tags[tagUntil]; ok {
		if v, err := strconv.ParseFloat(until, 64); err == nil && s.version >= v {
			return true
		}
	}
	return false
}

func (s versionStrategy) SkipType(reflect.Type) bool { return false }

// defaultExclusions are the strategies every engine starts with. User
// strategies are appended after these; the version strategy joins only
// when a version is configured.
func defaultExclusions() exclusionPolicy {
	return exclusionPolicy{modifierStrategy{}, unsupportedKindStrategy{}}
}
