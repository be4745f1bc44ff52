package gson

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/zoobzio/sentinel"
)

// defaultMaxDepth bounds traversal before the goroutine stack does.
const defaultMaxDepth = 512

// Engine is the codec engine. Its registries and policies are fixed at
// construction, so a single Engine is safe for unsynchronized concurrent
// use; each encode or decode call carries its own traversal state.
type Engine struct {
	encoders     *handlerRegistry[EncodeHandler]
	decoders     *handlerRegistry[DecodeHandler]
	constructors *constructorRegistry
	nav          *navigator
	codec        Codec

	serializeNulls bool
	maxDepth       int
}

// config accumulates options before the engine freezes.
type config struct {
	naming         NamingPolicy
	strategies     []ExclusionStrategy
	version        float64
	hasVersion     bool
	serializeNulls bool
	maxDepth       int
	indent         string
	codec          Codec

	encoders  []registration[EncodeHandler]
	decoders  []registration[DecodeHandler]
	factories []registration[InstanceFactory]
}

type registration[H any] struct {
	t *TypeDescriptor
	h H
}

// Option configures an Engine under construction.
type Option func(*config)

// WithNaming sets the naming policy computing external member names.
func WithNaming(p NamingPolicy) Option {
	return func(c *config) { c.naming = p }
}

// WithExclusion appends exclusion strategies to the defaults. A field is
// excluded when any strategy excludes it.
func WithExclusion(strategies ...ExclusionStrategy) Option {
	return func(c *config) { c.strategies = append(c.strategies, strategies...) }
}

// WithVersion enables version-range exclusion: fields tagged since:"N"
// above this version, or until:"N" at or below it, are omitted.
func WithVersion(version float64) Option {
	return func(c *config) {
		c.version = version
		c.hasVersion = true
	}
}

// SerializeNulls keeps null-valued members in encoded objects instead of
// omitting them.
func SerializeNulls() Option {
	return func(c *config) { c.serializeNulls = true }
}

// WithMaxDepth overrides the traversal depth bound.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithIndent makes the built-in JSON codec pretty-print with the given
// indent unit. Ignored when WithCodec is also set.
func WithIndent(indent string) Option {
	return func(c *config) { c.indent = indent }
}

// WithCodec replaces the built-in JSON codec at the text boundary.
func WithCodec(codec Codec) Option {
	return func(c *config) { c.codec = codec }
}

// RegisterEncoder registers a custom encode handler for a type.
// Registering an interface type covers every implementation without a more
// specific registration. Re-registering an exact type replaces the earlier
// handler and emits a non-fatal diagnostic.
func RegisterEncoder(t *TypeDescriptor, h EncodeHandler) Option {
	return func(c *config) {
		c.encoders = append(c.encoders, registration[EncodeHandler]{t: t, h: h})
	}
}

// RegisterDecoder registers a custom decode handler for a type.
func RegisterDecoder(t *TypeDescriptor, h DecodeHandler) Option {
	return func(c *config) {
		c.decoders = append(c.decoders, registration[DecodeHandler]{t: t, h: h})
	}
}

// RegisterFactory registers an instance factory consulted before zero
// construction when decode needs a fresh value of t. This is the only way
// to decode into interface types.
func RegisterFactory(t *TypeDescriptor, f InstanceFactory) Option {
	return func(c *config) {
		c.factories = append(c.factories, registration[InstanceFactory]{t: t, h: f})
	}
}

// New constructs an Engine. System default handlers are seeded first, then
// user registrations overlay them; after New returns, all registries and
// policies are read-only.
func New(opts ...Option) *Engine {
	cfg := &config{
		naming:   IdentityNaming,
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	policy := defaultExclusions()
	if cfg.hasVersion {
		policy = append(policy, versionStrategy{version: cfg.version})
	}
	policy = append(policy, cfg.strategies...)

	e := &Engine{
		encoders:       newHandlerRegistry[EncodeHandler](),
		decoders:       newHandlerRegistry[DecodeHandler](),
		constructors:   newConstructorRegistry(),
		nav:            newNavigator(policy, cfg.naming),
		serializeNulls: cfg.serializeNulls,
		maxDepth:       cfg.maxDepth,
	}

	seedEncodeDefaults(e.encoders)
	seedDecodeDefaults(e.decoders)

	ctx := context.Background()
	for _, r := range cfg.encoders {
		if e.encoders.register(r.t, r.h) {
			emitHandlerReplaced(ctx, "encode", r.t.Name())
		}
	}
	for _, r := range cfg.decoders {
		if e.decoders.register(r.t, r.h) {
			emitHandlerReplaced(ctx, "decode", r.t.Name())
		}
	}
	for _, r := range cfg.factories {
		if e.constructors.register(r.t, r.h) {
			emitHandlerReplaced(ctx, "factory", r.t.Name())
		}
	}

	e.codec = cfg.codec
	if e.codec == nil {
		if cfg.indent != "" {
			e.codec = JSONIndentCodec(cfg.indent)
		} else {
			e.codec = JSONCodec()
		}
	}

	nullPolicy := "omit"
	if e.serializeNulls {
		nullPolicy = "serialize"
	}
	emitEngineCreated(ctx, nullPolicy)
	return e
}

// ToTree encodes a value under its dynamic type.
func (e *Engine) ToTree(v any) (*Value, error) {
	return e.ToTreeOf(v, describeValue(v))
}

// ToTreeOf encodes a value under an explicit type descriptor. Use this
// when the static type matters, such as a value held in an interface.
func (e *Engine) ToTreeOf(v any, t *TypeDescriptor) (out *Value, err error) {
	start := time.Now()
	ctx := context.Background()
	emitEncodeStart(ctx, t.Name())
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, &InternalError{Recovered: r}
		}
		emitEncodeComplete(ctx, t.Name(), time.Since(start), err)
	}()

	ec := &EncodeContext{e: e}
	return ec.Encode(v, t)
}

// FromTree decodes a tree value into the target type.
func (e *Engine) FromTree(node *Value, t *TypeDescriptor) (out any, err error) {
	start := time.Now()
	ctx := context.Background()
	emitDecodeStart(ctx, t.Name())
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, &InternalError{Recovered: r}
		}
		emitDecodeComplete(ctx, t.Name(), time.Since(start), err)
	}()

	dc := &DecodeContext{e: e}
	return dc.Decode(node, t)
}

// ToText encodes a value and formats it with the engine's codec.
func (e *Engine) ToText(v any) ([]byte, error) {
	return e.ToTextOf(v, describeValue(v))
}

// ToTextOf encodes a value under an explicit type descriptor and formats
// it with the engine's codec.
func (e *Engine) ToTextOf(v any, t *TypeDescriptor) ([]byte, error) {
	node, err := e.ToTreeOf(v, t)
	if err != nil {
		return nil, err
	}
	return e.codec.Format(node)
}

// FromText parses text with the engine's codec and decodes the tree into
// the target type.
func (e *Engine) FromText(data []byte, t *TypeDescriptor) (any, error) {
	node, err := e.codec.Parse(data)
	if err != nil {
		return nil, err
	}
	return e.FromTree(node, t)
}

// FromTree decodes a tree value into T.
func FromTree[T any](e *Engine, node *Value) (T, error) {
	if reflect.TypeFor[T]().Kind() == reflect.Struct {
		// Prime sentinel's metadata cache so the navigator sees
		// tag-extracted fields for the top-level type.
		sentinel.Scan[T]()
	}
	out, err := e.FromTree(node, TypeFor[T]())
	if err != nil {
		var zero T
		return zero, err
	}
	if out == nil {
		var zero T
		return zero, nil
	}
	return out.(T), nil
}

// FromText parses and decodes text into T.
func FromText[T any](e *Engine, data []byte) (T, error) {
	node, err := e.codec.Parse(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return FromTree[T](e, node)
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns the shared engine built with default options.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// Marshal encodes a value to JSON text with the default engine.
func Marshal(v any) ([]byte, error) {
	return Default().ToText(v)
}

// Unmarshal parses and decodes JSON text into T with the default engine.
func Unmarshal[T any](data []byte) (T, error) {
	return FromText[T](Default(), data)
}
