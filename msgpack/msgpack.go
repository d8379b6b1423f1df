// Package msgpack provides a MessagePack codec for mapper manifests.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/mapper"
)

// msgpackCodec implements mapper.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec.
func New() mapper.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes MessagePack data into v.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

// Export writes r's manifest as MessagePack.
func Export(r *mapper.Registry) ([]byte, error) {
	return r.Export(New())
}
