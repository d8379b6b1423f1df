// Package yaml provides a YAML codec for mapper manifests.
package yaml

import (
	"bytes"

	"github.com/zoobzio/mapper"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements mapper.Codec for YAML.
type yamlCodec struct {
	indent int
}

// New returns a YAML codec using yaml.v3's default indentation.
func New() mapper.Codec {
	return &yamlCodec{}
}

// Indented returns a YAML codec indenting by spaces.
func Indented(spaces int) mapper.Codec {
	return &yamlCodec{indent: spaces}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	if c.indent == 0 {
		return yaml.Marshal(v)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(c.indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes YAML data into v.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// Export writes r's manifest as YAML indented by two spaces.
func Export(r *mapper.Registry) ([]byte, error) {
	return r.Export(Indented(2))
}
