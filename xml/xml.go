// Package xml provides an XML codec for mapper manifests.
package xml

import (
	"encoding/xml"

	"github.com/zoobzio/mapper"
)

// xmlCodec implements mapper.Codec for XML.
type xmlCodec struct {
	indent string
}

// New returns a compact XML codec.
func New() mapper.Codec {
	return &xmlCodec{}
}

// Indented returns an XML codec that indents nested elements with indent.
func Indented(indent string) mapper.Codec {
	return &xmlCodec{indent: indent}
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as XML.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	if c.indent != "" {
		return xml.MarshalIndent(v, "", c.indent)
	}
	return xml.Marshal(v)
}

// Unmarshal decodes XML data into v.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}

// Export writes r's manifest as indented XML with a declaration header.
func Export(r *mapper.Registry) ([]byte, error) {
	data, err := r.Export(Indented("  "))
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}
