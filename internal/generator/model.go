package generator

import (
	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"github.com/neuroglia-io/asyncapi-sub001/internal/parser/marker"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
)

// apiModel is the version independent description of a marked type. Assembly
// of a 2.x or 3.x document reads it without touching the AST again.
type apiModel struct {
	def    *domain.TypeSpecDef
	info   *marker.TypeMarker
	doc    string
	schema schemaComponents

	channels []*channelModel
	messages []*messageModel
}

type channelModel struct {
	name       string
	marker     marker.ChannelMarker
	parameters []marker.ParameterMarker
	operations []*operationModel
}

type operationModel struct {
	id           string
	method       string
	action       string
	title        string
	summary      string
	description  string
	tags         []string
	externalDocs string
	bindings     string
	security     map[string][]string
	message      *messageModel
}

type messageModel struct {
	name         string
	title        string
	summary      string
	description  string
	contentType  string
	tags         []string
	externalDocs string
	bindings     string

	// payload is the resolved schema. When payloadComponent is set the message
	// refers to that schema component instead of inlining it.
	payload          *spec.Schema
	payloadComponent string
	headers          *spec.Schema
	examples         []asyncapi.MessageExample

	def *domain.TypeSpecDef
}

// schemaComponents keeps payload schemas keyed by component name in insertion order.
type schemaComponents struct {
	names   []string
	schemas map[string]*spec.Schema
	owners  map[string]*domain.TypeSpecDef
}

// add registers the schema of def and returns its component name. Types sharing a
// name across packages are told apart by their qualified name.
func (c *schemaComponents) add(def *domain.TypeSpecDef, schema *spec.Schema) string {
	if c.schemas == nil {
		c.schemas = map[string]*spec.Schema{}
		c.owners = map[string]*domain.TypeSpecDef{}
	}
	name := def.Name()
	if owner, ok := c.owners[name]; ok && owner != def {
		name = def.TypeName()
	}
	if owner, ok := c.owners[name]; ok && owner == def {
		return name
	}
	c.names = append(c.names, name)
	c.schemas[name] = schema
	c.owners[name] = def
	return name
}

func (m *apiModel) channel(name string) *channelModel {
	for _, c := range m.channels {
		if c.name == name {
			return c
		}
	}
	c := &channelModel{name: name}
	m.channels = append(m.channels, c)
	return c
}

func (m *apiModel) message(name string) *messageModel {
	for _, msg := range m.messages {
		if msg.name == name {
			return msg
		}
	}
	return nil
}

// mergeChannel folds the channel annotations of one method into c. The first
// non-empty scalar wins; lists are unioned.
func (c *channelModel) mergeChannel(in marker.ChannelMarker) {
	first := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	first(&c.marker.Address, in.Address)
	first(&c.marker.Title, in.Title)
	first(&c.marker.Summary, in.Summary)
	first(&c.marker.Description, in.Description)
	first(&c.marker.Bindings, in.Bindings)
	first(&c.marker.ExternalDocs, in.ExternalDocs)
	c.marker.Servers = union(c.marker.Servers, in.Servers)
	c.marker.Tags = union(c.marker.Tags, in.Tags)
	for _, p := range in.Parameters {
		c.addParameter(p)
	}
}

func (c *channelModel) addParameter(p marker.ParameterMarker) {
	for i, existing := range c.parameters {
		if existing.Name == p.Name {
			if existing.Description == "" {
				c.parameters[i].Description = p.Description
			}
			return
		}
	}
	c.parameters = append(c.parameters, p)
}

// address returns the channel address, defaulting to the channel name.
func (c *channelModel) address() string {
	if c.marker.Address != "" {
		return c.marker.Address
	}
	return c.name
}

func union(dst, src []string) []string {
	for _, s := range src {
		found := false
		for _, d := range dst {
			if d == s {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, s)
		}
	}
	return dst
}
