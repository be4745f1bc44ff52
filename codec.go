package gson

// Codec turns tree values into wire text and back. The engine consumes a
// Codec at its text boundary only; the tree value itself is an in-memory
// structure with no owned wire format beyond the built-in JSON codec.
//
// Alternate implementations live in the yaml and msgpack subpackages.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Format renders a tree value as wire bytes.
	Format(v *Value) ([]byte, error)

	// Parse reads wire bytes into a tree value.
	Parse(data []byte) (*Value, error)
}

// jsonCodec is the built-in JSON codec. An indent unit selects the pretty
// form; empty means compact.
type jsonCodec struct {
	indent string
}

// JSONCodec returns the compact JSON codec.
func JSONCodec() Codec {
	return &jsonCodec{}
}

// JSONIndentCodec returns a JSON codec that pretty-prints with the given
// indent unit per nesting level.
func JSONIndentCodec(indent string) Codec {
	return &jsonCodec{indent: indent}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Format renders v as JSON text.
func (c *jsonCodec) Format(v *Value) ([]byte, error) {
	if c.indent != "" {
		return FormatIndent(v, c.indent), nil
	}
	return Format(v), nil
}

// Parse reads JSON text into a tree value.
func (c *jsonCodec) Parse(data []byte) (*Value, error) {
	return Parse(data)
}
