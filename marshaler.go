package gson

// Override interfaces allow types to bypass structural encoding and
// decoding. They are wired into every engine as default handler
// registrations, so a user registration for the concrete type still wins.

// TreeMarshaler produces the type's own tree representation instead of the
// navigator-driven field walk.
type TreeMarshaler interface {
	MarshalTree() (*Value, error)
}

// TreeUnmarshaler populates the receiver from a tree value instead of the
// navigator-driven field walk. Implement it with a pointer receiver.
type TreeUnmarshaler interface {
	UnmarshalTree(node *Value) error
}
