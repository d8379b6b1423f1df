// Package json provides a JSON codec for mapper manifests.
package json

import (
	"encoding/json"

	"github.com/zoobzio/mapper"
)

// jsonCodec implements mapper.Codec for JSON.
type jsonCodec struct {
	indent string
}

// New returns a compact JSON codec.
func New() mapper.Codec {
	return &jsonCodec{}
}

// Indented returns a JSON codec that indents nested values with indent.
func Indented(indent string) mapper.Codec {
	return &jsonCodec{indent: indent}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	if c.indent != "" {
		return json.MarshalIndent(v, "", c.indent)
	}
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Export writes r's manifest as indented JSON.
func Export(r *mapper.Registry) ([]byte, error) {
	return r.Export(Indented("  "))
}
