// Package bson provides a BSON codec for mapper manifests, suitable for
// storing configuration snapshots alongside MongoDB documents.
package bson

import (
	"github.com/zoobzio/mapper"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonCodec implements mapper.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() mapper.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as a BSON document.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes a BSON document into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}

// Export writes r's manifest as a BSON document.
func Export(r *mapper.Registry) ([]byte, error) {
	return r.Export(New())
}
