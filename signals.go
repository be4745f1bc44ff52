package gson

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for codec engine events.
var (
	SignalEngineCreated    = capitan.NewSignal("gson.engine.created", "Engine instantiated")
	SignalEncodeStart      = capitan.NewSignal("gson.encode.start", "Encode traversal beginning")
	SignalEncodeComplete   = capitan.NewSignal("gson.encode.complete", "Encode traversal finished")
	SignalDecodeStart      = capitan.NewSignal("gson.decode.start", "Decode traversal beginning")
	SignalDecodeComplete   = capitan.NewSignal("gson.decode.complete", "Decode traversal finished")
	SignalHandlerReplaced  = capitan.NewSignal("gson.registry.override", "Handler re-registered for an exact type")
	SignalHandlerAmbiguous = capitan.NewSignal("gson.registry.ambiguous", "Equally specific handler registrations matched")
)

// Keys for typed event data.
var (
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyDirection   = capitan.NewStringKey("direction") // "encode" or "decode"
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
	KeyHandlerType = capitan.NewStringKey("handler_type")
	KeyOtherType   = capitan.NewStringKey("other_type")
	KeyNullPolicy  = capitan.NewStringKey("null_policy")
)

// emitEngineCreated emits an event when an engine is constructed.
func emitEngineCreated(ctx context.Context, nullPolicy string) {
	capitan.Emit(ctx, SignalEngineCreated,
		KeyNullPolicy.Field(nullPolicy),
	)
}

// emitEncodeStart emits an event when an encode traversal begins.
func emitEncodeStart(ctx context.Context, typeName string) {
	capitan.Emit(ctx, SignalEncodeStart,
		KeyTypeName.Field(typeName),
	)
}

// emitEncodeComplete emits an event when an encode traversal finishes.
func emitEncodeComplete(ctx context.Context, typeName string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}

// emitDecodeStart emits an event when a decode traversal begins.
func emitDecodeStart(ctx context.Context, typeName string) {
	capitan.Emit(ctx, SignalDecodeStart,
		KeyTypeName.Field(typeName),
	)
}

// emitDecodeComplete emits an event when a decode traversal finishes.
func emitDecodeComplete(ctx context.Context, typeName string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}

// emitHandlerReplaced emits a non-fatal diagnostic when a registration
// replaces an existing handler for the same exact type.
func emitHandlerReplaced(ctx context.Context, direction, typeName string) {
	capitan.Emit(ctx, SignalHandlerReplaced,
		KeyDirection.Field(direction),
		KeyTypeName.Field(typeName),
	)
}

// emitHandlerAmbiguous emits a diagnostic when two unrelated, equally
// specific registrations both match a requested type. The later
// registration was used.
func emitHandlerAmbiguous(ctx context.Context, direction, typeName, chosen, other string) {
	capitan.Emit(ctx, SignalHandlerAmbiguous,
		KeyDirection.Field(direction),
		KeyTypeName.Field(typeName),
		KeyHandlerType.Field(chosen),
		KeyOtherType.Field(other),
	)
}
