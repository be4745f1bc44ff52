// Package msgpack provides a MessagePack codec for the engine's text
// boundary.
package msgpack

import (
	msgpackv5 "github.com/vmihailenco/msgpack/v5"

	gson "github.com/sharankruthi/google-gson"
)

// msgpackCodec implements gson.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec.
func New() gson.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Format renders a tree value as MessagePack. Member order is not
// preserved; maps re-enter the tree in sorted key order on Parse.
func (c *msgpackCodec) Format(v *gson.Value) ([]byte, error) {
	return msgpackv5.Marshal(v.Native())
}

// Parse reads MessagePack into a tree value.
func (c *msgpackCodec) Parse(data []byte) (*gson.Value, error) {
	var native any
	if err := msgpackv5.Unmarshal(data, &native); err != nil {
		return nil, err
	}
	return gson.FromNative(native)
}
