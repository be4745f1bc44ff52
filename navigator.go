package gson

import (
	"reflect"
	"sync"

	"github.com/zoobzio/sentinel"
)

// Codec struct tags. "gson" names a field or opts it out; "since" and
// "until" bound a field to a version range.
const (
	tagName  = "gson"
	tagSince = "since"
	tagUntil = "until"
)

func init() {
	// Register codec tags with sentinel
	sentinel.Tag(tagName)
	sentinel.Tag(tagSince)
	sentinel.Tag(tagUntil)
}

// fieldPlan describes one codec-relevant field of a struct.
type fieldPlan struct {
	name     string // Go field name
	external string // member key in the tree value
	index    []int  // reflect.Value.FieldByIndex access path
	typ      *TypeDescriptor
}

// structPlan is the navigator's per-type field enumeration: non-excluded
// fields in declaration order, embedded structs flattened in place, each
// paired with its resolved descriptor and external name.
type structPlan struct {
	typeName   string
	fields     []fieldPlan
	byExternal map[string]int
}

// navigator derives and caches struct plans under the engine's exclusion
// policy and naming policy. Struct types are static for the engine's
// lifetime, so a plan is computed once.
type navigator struct {
	policy exclusionPolicy
	naming NamingPolicy

	mu    sync.RWMutex
	plans map[reflect.Type]*structPlan
}

func newNavigator(policy exclusionPolicy, naming NamingPolicy) *navigator {
	return &navigator{
		policy: policy,
		naming: naming,
		plans:  make(map[reflect.Type]*structPlan),
	}
}

// plan returns the cached field enumeration for a struct type.
func (n *navigator) plan(rt reflect.Type) *structPlan {
	// Fast path: read-lock cache check
	n.mu.RLock()
	if p, ok := n.plans[rt]; ok {
		n.mu.RUnlock()
		return p
	}
	n.mu.RUnlock()

	// Slow path: build and cache with write-lock
	n.mu.Lock()
	defer n.mu.Unlock()

	// Double-check pattern
	if p, ok := n.plans[rt]; ok {
		return p
	}

	p := &structPlan{typeName: rt.String(), byExternal: make(map[string]int)}
	n.collectFields(p, rt, nil)
	n.plans[rt] = p
	return p
}

// collectFields appends rt's codec-relevant fields to the plan in
// declaration order, recursing through embedded structs so their fields
// keep their declared position. Duplicate external names keep the first
// occurrence.
func (n *navigator) collectFields(p *structPlan, rt reflect.Type, prefix []int) {
	meta := scanMetadata(rt)

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		tags := fieldTags(meta, sf)
		index := append(append([]int{}, prefix...), i)

		// Embedded structs flatten in place regardless of the type name's
		// exportedness; their promoted exported fields stay reachable. A
		// gson tag on the embedded field opts out of flattening.
		if sf.Anonymous && tags[tagName] == "" {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				if n.policy.skipType(et) {
					continue
				}
				n.collectFields(p, et, index)
				continue
			}
		}

		f := Field{Name: sf.Name, Type: sf.Type, Exported: sf.IsExported(), Tags: tags}
		if n.policy.skipField(f) || n.policy.skipType(sf.Type) {
			continue
		}

		ext := externalName(f, n.naming)
		if _, dup := p.byExternal[ext]; dup {
			continue
		}
		p.byExternal[ext] = len(p.fields)
		p.fields = append(p.fields, fieldPlan{
			name:     sf.Name,
			external: ext,
			index:    index,
			typ:      DescribeType(sf.Type),
		})
	}
}

// scanMetadata returns sentinel metadata for a struct type, consulting the
// sentinel cache first and scanning via reflection for types discovered at
// runtime.
func scanMetadata(rt reflect.Type) *sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return &spec
	}

	if rt.Kind() != reflect.Struct {
		return nil
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseCodecTags(sf.Tag),
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return &spec
}

// fieldTags returns the codec tags for sf, preferring sentinel metadata.
func fieldTags(meta *sentinel.Metadata, sf reflect.StructField) map[string]string {
	if meta != nil {
		for _, fm := range meta.Fields {
			if fm.Name == sf.Name {
				return fm.Tags
			}
		}
	}
	return parseCodecTags(sf.Tag)
}

// parseCodecTags extracts this package's tags from a struct tag.
func parseCodecTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	for _, name := range []string{tagName, tagSince, tagUntil} {
		if val, ok := tag.Lookup(name); ok {
			tags[name] = val
		}
	}
	return tags
}

// fieldByIndex walks an access path for reading. It returns an invalid
// value when a nil embedded pointer makes the field unreachable.
func fieldByIndex(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 {
			if v.Kind() == reflect.Pointer {
				if v.IsNil() {
					return reflect.Value{}
				}
				v = v.Elem()
			}
		}
		v = v.Field(x)
	}
	return v
}

// fieldByIndexAlloc walks an access path for writing, allocating nil
// embedded pointers along the way.
func fieldByIndexAlloc(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 {
			if v.Kind() == reflect.Pointer {
				if v.IsNil() {
					v.Set(reflect.New(v.Type().Elem()))
				}
				v = v.Elem()
			}
		}
		v = v.Field(x)
	}
	return v
}
