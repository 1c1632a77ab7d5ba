package bindings

import "encoding/json"

// Generic is a binding for any protocol whose object is carried as free-form properties.
// It is used for the protocols without a dedicated type and for bindings declared in
// configuration files.
type Generic struct {
	protocol   Protocol
	kind       Kind
	Properties map[string]interface{}
}

// NewGeneric creates a free-form binding.
func NewGeneric(protocol Protocol, kind Kind, properties map[string]interface{}) *Generic {
	if properties == nil {
		properties = map[string]interface{}{}
	}
	return &Generic{
		protocol:   protocol,
		kind:       kind,
		Properties: properties,
	}
}

func (g *Generic) Protocol() Protocol { return g.protocol }
func (g *Generic) Kind() Kind         { return g.kind }

// MarshalJSON writes the properties as the binding object.
func (g *Generic) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Properties)
}
