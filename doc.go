// Package gson converts Go object graphs to a JSON-like tree value and
// back, without per-type marshaling code, while letting callers override
// behavior per type.
//
// The package is built around a type-directed engine: values are resolved
// to type descriptors, a specificity-ranked registry supplies custom
// handlers, and an object navigator walks struct fields under a composable
// exclusion policy. Encoding and decoding are symmetric traversals over
// the same shared, read-only configuration.
//
// # Basic Usage
//
//	type User struct {
//	    Name  string
//	    Age   int
//	    cache []byte // unexported: never encoded
//	}
//
//	engine := gson.New()
//	text, _ := engine.ToText(User{Name: "Ann", Age: 30})
//	// {"Name":"Ann","Age":30}
//
//	user, _ := gson.FromText[User](engine, text)
//
// # Tag Syntax
//
// Field behavior is declared via struct tags:
//
//	type Account struct {
//	    ID      string `gson:"id"`          // explicit member name
//	    Secret  string `gson:"-"`           // never encoded or decoded
//	    Balance float64 `since:"1.1"`       // only at engine version >= 1.1
//	    Legacy  string  `until:"2.0"`       // dropped at engine version >= 2.0
//	}
//
// # Naming
//
// A NamingPolicy computes external member names from Go field names; the
// explicit gson tag wins over any policy. Built-in policies: identity
// (default), lowerCamel, snake_case, kebab-case, and UpperCamel.
//
//	engine := gson.New(gson.WithNaming(gson.SnakeCaseNaming))
//
// # Custom Handlers
//
// Handlers registered for a type replace structural encoding or decoding
// for that type. A registration for an interface covers every
// implementation without a more specific registration; a registration for
// any is the fallback for everything else.
//
//	engine := gson.New(
//	    gson.RegisterDecoder(gson.TypeFor[Point](), gson.DecodeFunc(decodePoint)),
//	)
//
// Types can also implement TreeMarshaler or TreeUnmarshaler, or the
// standard encoding.TextMarshaler and encoding.TextUnmarshaler, which are
// wired in as default registrations.
//
// # Decoding Interfaces
//
// Decode needs a fresh instance of each object type it populates. Struct
// types are zero-constructed automatically; interface types require a
// registered factory:
//
//	engine := gson.New(
//	    gson.RegisterFactory(gson.TypeFor[Shape](), func() any { return &Circle{} }),
//	)
//
// Without one, decoding an interface type fails with ErrInstantiation.
//
// # Errors
//
// Failures match sentinel errors via errors.Is: ErrSyntax,
// ErrTypeMismatch, ErrInstantiation, ErrDepthExceeded, ErrUnsupportedType,
// ErrInternal. Each also matches ErrBadInput or ErrBadConfig, separating
// malformed data from misconfiguration.
//
// # Codec Providers
//
// The engine's text boundary is a Codec (format and parse a tree value).
// JSON is built in, compact by default and pretty with WithIndent. The
// following alternates are available as subpackages:
//
//   - yaml - YAML rendering (application/yaml)
//   - msgpack - MessagePack rendering (application/msgpack)
//
// # Concurrency
//
// An Engine is immutable after New and safe for concurrent use. Each call
// allocates its own traversal state; the only shared mutable state is the
// read-mostly struct plan cache.
package gson
