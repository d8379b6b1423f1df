package mapper

import "encoding/xml"

// Plan describes one registered map and its rules in execution order.
type Plan struct {
	Identifier  string `json:"identifier" yaml:"identifier" xml:"identifier,attr" msgpack:"identifier" bson:"identifier"`
	Source      string `json:"source" yaml:"source" xml:"source" msgpack:"source" bson:"source"`
	Destination string `json:"destination" yaml:"destination" xml:"destination" msgpack:"destination" bson:"destination"`
	Compiled    bool   `json:"compiled" yaml:"compiled" xml:"compiled" msgpack:"compiled" bson:"compiled"`
	Override    bool   `json:"override,omitempty" yaml:"override,omitempty" xml:"override,omitempty" msgpack:"override,omitempty" bson:"override,omitempty"`
	Rules       []Rule `json:"rules" yaml:"rules" xml:"rule" msgpack:"rules" bson:"rules"`
}

// Manifest is the exported form of a registry.
type Manifest struct {
	XMLName xml.Name `json:"-" yaml:"-" xml:"manifest" msgpack:"-" bson:"-"`
	Maps    []Plan   `json:"maps" yaml:"maps" xml:"map" msgpack:"maps" bson:"maps"`
}

// Plans returns a plan for every registered map, sorted by identifier.
func (r *Registry) Plans() []Plan {
	entries := r.entries()
	plans := make([]Plan, len(entries))
	for i, m := range entries {
		plans[i] = m.Plan()
	}
	return plans
}

// Manifest returns the registry's plans wrapped for export.
func (r *Registry) Manifest() Manifest {
	return Manifest{Maps: r.Plans()}
}

// Export marshals the registry manifest with codec, for review or
// snapshot tests of mapping configuration.
func (r *Registry) Export(codec Codec) ([]byte, error) {
	data, err := codec.Marshal(r.Manifest())
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// ReadManifest decodes a manifest previously written by Export.
func ReadManifest(codec Codec, data []byte) (Manifest, error) {
	var m Manifest
	if err := codec.Unmarshal(data, &m); err != nil {
		return Manifest{}, newCodecError(ErrUnmarshal, err)
	}
	return m, nil
}
