// Package yaml provides a YAML codec for the engine's text boundary.
package yaml

import (
	yamlv3 "gopkg.in/yaml.v3"

	gson "github.com/sharankruthi/google-gson"
)

// yamlCodec implements gson.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() gson.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Format renders a tree value as YAML. Member order is not preserved;
// mappings render in sorted key order.
func (c *yamlCodec) Format(v *gson.Value) ([]byte, error) {
	return yamlv3.Marshal(v.Native())
}

// Parse reads YAML into a tree value.
func (c *yamlCodec) Parse(data []byte) (*gson.Value, error) {
	var native any
	if err := yamlv3.Unmarshal(data, &native); err != nil {
		return nil, err
	}
	return gson.FromNative(native)
}
