package gson

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
//
// Every failure also matches one of the two category sentinels, so callers
// can distinguish bad input from bad configuration without enumerating the
// concrete kinds.
var (
	// ErrBadInput groups failures caused by the data being decoded.
	ErrBadInput = errors.New("bad input")

	// ErrBadConfig groups failures caused by engine configuration or by
	// the shape of the object graph.
	ErrBadConfig = errors.New("bad configuration")

	// ErrSyntax indicates malformed input text.
	ErrSyntax = errors.New("syntax error")

	// ErrTypeMismatch indicates a tree value whose shape is incompatible
	// with the requested target type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInstantiation indicates no path to construct an instance of the
	// target type. Register a factory for the type and retry.
	ErrInstantiation = errors.New("cannot instantiate type")

	// ErrDepthExceeded indicates the traversal depth bound was reached,
	// typically on a cyclic or pathologically deep object graph.
	ErrDepthExceeded = errors.New("recursion depth exceeded")

	// ErrUnsupportedType indicates a type the codec cannot represent,
	// such as a channel or function.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInternal indicates a panic was recovered mid-traversal.
	ErrInternal = errors.New("internal failure")
)

// SyntaxError reports malformed text with its location.
type SyntaxError struct {
	Msg  string
	Line int // 1-based
	Col  int // 1-based, in bytes
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

func (e *SyntaxError) Unwrap() []error {
	return []error{ErrSyntax, ErrBadInput}
}

// TypeError reports a tree value whose shape does not fit the target type
// during decode.
type TypeError struct {
	Target *TypeDescriptor // requested type
	Node   ValueKind       // what the tree actually held
	Path   string          // member path from the decode root, "" at root
	Detail string          // optional coercion detail
}

func (e *TypeError) Error() string {
	msg := fmt.Sprintf("cannot decode %s into %s", e.Node, e.Target.Name())
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *TypeError) Unwrap() []error {
	return []error{ErrTypeMismatch, ErrBadInput}
}

// InstantiationError reports that decode needed a fresh instance of a type
// and had no way to make one.
type InstantiationError struct {
	Target *TypeDescriptor
	Path   string
}

func (e *InstantiationError) Error() string {
	msg := fmt.Sprintf("no factory or zero constructor for %s", e.Target.Name())
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

func (e *InstantiationError) Unwrap() []error {
	return []error{ErrInstantiation, ErrBadConfig}
}

// DepthError reports traversal depth exhaustion.
type DepthError struct {
	Limit int
	Path  string
}

func (e *DepthError) Error() string {
	msg := fmt.Sprintf("traversal exceeded depth %d", e.Limit)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

func (e *DepthError) Unwrap() []error {
	return []error{ErrDepthExceeded, ErrBadConfig}
}

// UnsupportedTypeError reports an attempt to encode a type or value the
// tree value cannot represent.
type UnsupportedTypeError struct {
	Target *TypeDescriptor
	Path   string
	Detail string
}

func (e *UnsupportedTypeError) Error() string {
	msg := fmt.Sprintf("cannot encode %s", e.Target.Name())
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *UnsupportedTypeError) Unwrap() []error {
	return []error{ErrUnsupportedType, ErrBadConfig}
}

// InternalError wraps a panic recovered during traversal, including
// resource exhaustion the runtime surfaces that way.
type InternalError struct {
	Recovered any
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("panic during traversal: %v", e.Recovered)
}

func (e *InternalError) Unwrap() []error {
	return []error{ErrInternal, ErrBadConfig}
}

// newTypeError creates a TypeError for a shape mismatch at the given path.
func newTypeError(target *TypeDescriptor, node ValueKind, path, detail string) error {
	return &TypeError{Target: target, Node: node, Path: path, Detail: detail}
}
