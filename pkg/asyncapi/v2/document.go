package v2

import (
	"fmt"

	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/bindings"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/builder"
)

// DocumentBuilder builds a Document, including its info block and components.
type DocumentBuilder struct {
	provider *Provider
	life     builder.Lifecycle
	draft    *Document
}

// NewDocument creates a document builder.
func (p *Provider) NewDocument() *DocumentBuilder {
	return &DocumentBuilder{
		provider: p,
		draft:    &Document{AsyncAPI: asyncapi.Version2},
	}
}

// WithAsyncAPI overrides the specification version, 2.6.0 by default.
func (b *DocumentBuilder) WithAsyncAPI(version string) *DocumentBuilder {
	if b.life.Guard("WithAsyncAPI") {
		b.draft.AsyncAPI = version
	}
	return b
}

// WithID sets the application identifier, a URI.
func (b *DocumentBuilder) WithID(id string) *DocumentBuilder {
	if b.life.Guard("WithID") {
		b.draft.ID = id
	}
	return b
}

// WithTitle sets info.title.
func (b *DocumentBuilder) WithTitle(title string) *DocumentBuilder {
	if b.life.Guard("WithTitle") {
		b.draft.Info.Title = title
	}
	return b
}

// WithVersion sets info.version.
func (b *DocumentBuilder) WithVersion(version string) *DocumentBuilder {
	if b.life.Guard("WithVersion") {
		b.draft.Info.Version = version
	}
	return b
}

// WithDescription sets info.description.
func (b *DocumentBuilder) WithDescription(description string) *DocumentBuilder {
	if b.life.Guard("WithDescription") {
		b.draft.Info.Description = description
	}
	return b
}

// WithTermsOfService sets info.termsOfService.
func (b *DocumentBuilder) WithTermsOfService(url string) *DocumentBuilder {
	if b.life.Guard("WithTermsOfService") {
		b.draft.Info.TermsOfService = url
	}
	return b
}

// WithContact sets info.contact.
func (b *DocumentBuilder) WithContact(name, url, email string) *DocumentBuilder {
	if b.life.Guard("WithContact") {
		b.draft.Info.Contact = &asyncapi.Contact{Name: name, URL: url, Email: email}
	}
	return b
}

// WithLicense sets info.license.
func (b *DocumentBuilder) WithLicense(name, url string) *DocumentBuilder {
	if b.life.Guard("WithLicense") {
		b.draft.Info.License = &asyncapi.License{Name: name, URL: url}
	}
	return b
}

// WithTag adds a document tag built by configure.
func (b *DocumentBuilder) WithTag(configure func(tag *builder.TagBuilder)) *DocumentBuilder {
	if !b.life.Guard("WithTag") {
		return b
	}
	if tag, ok := builder.Nested[*builder.TagBuilder, *asyncapi.Tag](&b.life, "tag", builder.NewTagBuilder(), configure); ok {
		b.draft.Tags = append(b.draft.Tags, *tag)
	}
	return b
}

// WithTags adds document tags by name.
func (b *DocumentBuilder) WithTags(names ...string) *DocumentBuilder {
	if !b.life.Guard("WithTags") {
		return b
	}
	for _, name := range names {
		if name != "" {
			b.draft.Tags = append(b.draft.Tags, asyncapi.Tag{Name: name})
		}
	}
	return b
}

// WithExternalDocumentation sets the document external documentation.
func (b *DocumentBuilder) WithExternalDocumentation(url, description string) *DocumentBuilder {
	if b.life.Guard("WithExternalDocumentation") {
		b.draft.ExternalDocs = &asyncapi.ExternalDocumentation{URL: url, Description: description}
	}
	return b
}

// WithDefaultContentType sets the content type used by messages that declare none.
func (b *DocumentBuilder) WithDefaultContentType(contentType string) *DocumentBuilder {
	if b.life.Guard("WithDefaultContentType") {
		b.draft.DefaultContentType = contentType
	}
	return b
}

// WithServer adds a server configured by setup.
func (b *DocumentBuilder) WithServer(name string, setup func(*ServerBuilder)) *DocumentBuilder {
	if !b.life.Guard("WithServer") {
		return b
	}
	if server, ok := builder.Nested[*ServerBuilder, *Server](&b.life, "server "+name, b.provider.NewServer(), setup); ok {
		if b.draft.Servers == nil {
			b.draft.Servers = make(map[string]*Server)
		}
		b.draft.Servers[name] = server
	}
	return b
}

// WithChannel adds a channel configured by setup.
func (b *DocumentBuilder) WithChannel(name string, setup func(*ChannelBuilder)) *DocumentBuilder {
	if !b.life.Guard("WithChannel") {
		return b
	}
	if channel, ok := builder.Nested[*ChannelBuilder, *Channel](&b.life, "channel "+name, b.provider.NewChannel(), setup); ok {
		if b.draft.Channels == nil {
			b.draft.Channels = make(map[string]*Channel)
		}
		b.draft.Channels[name] = channel
	}
	return b
}

func (b *DocumentBuilder) components() *Components {
	if b.draft.Components == nil {
		b.draft.Components = &Components{}
	}
	return b.draft.Components
}

// WithSchemaComponent adds a reusable schema.
func (b *DocumentBuilder) WithSchemaComponent(name string, schema *spec.Schema) *DocumentBuilder {
	if !b.life.Guard("WithSchemaComponent") {
		return b
	}
	if schema == nil {
		b.life.Record(fmt.Errorf("schema %q is nil: %w", name, asyncapi.ErrInvalidArgument))
		return b
	}
	c := b.components()
	if c.Schemas == nil {
		c.Schemas = make(map[string]*spec.Schema)
	}
	c.Schemas[name] = schema
	return b
}

// HasSchemaComponent reports whether a schema component named name exists.
func (b *DocumentBuilder) HasSchemaComponent(name string) bool {
	_, ok := b.components().Schemas[name]
	return ok
}

// WithMessageComponent adds a reusable message configured by setup.
func (b *DocumentBuilder) WithMessageComponent(name string, setup func(*MessageBuilder)) *DocumentBuilder {
	if !b.life.Guard("WithMessageComponent") {
		return b
	}
	if msg, ok := builder.Nested[*MessageBuilder, *Message](&b.life, "message "+name, b.provider.NewMessage(), setup); ok {
		c := b.components()
		if c.Messages == nil {
			c.Messages = make(map[string]*Message)
		}
		c.Messages[name] = msg
	}
	return b
}

// HasMessageComponent reports whether a message component named name exists.
func (b *DocumentBuilder) HasMessageComponent(name string) bool {
	_, ok := b.components().Messages[name]
	return ok
}

// WithSecuritySchemeComponent adds a reusable security scheme configured by setup.
func (b *DocumentBuilder) WithSecuritySchemeComponent(name string, setup func(*builder.SecuritySchemeBuilder)) *DocumentBuilder {
	if !b.life.Guard("WithSecuritySchemeComponent") {
		return b
	}
	if scheme, ok := builder.Nested[*builder.SecuritySchemeBuilder, *asyncapi.SecurityScheme](&b.life, "security scheme "+name, b.provider.NewSecurityScheme(), setup); ok {
		c := b.components()
		if c.SecuritySchemes == nil {
			c.SecuritySchemes = make(map[string]*asyncapi.SecurityScheme)
		}
		c.SecuritySchemes[name] = scheme
	}
	return b
}

// WithParameterComponent adds a reusable channel parameter configured by setup.
func (b *DocumentBuilder) WithParameterComponent(name string, setup func(*ParameterBuilder)) *DocumentBuilder {
	if !b.life.Guard("WithParameterComponent") {
		return b
	}
	if param, ok := builder.Nested[*ParameterBuilder, *Parameter](&b.life, "parameter "+name, b.provider.NewParameter(), setup); ok {
		c := b.components()
		if c.Parameters == nil {
			c.Parameters = make(map[string]*Parameter)
		}
		c.Parameters[name] = param
	}
	return b
}

// WithOperationTraitComponent adds a reusable operation trait configured by setup.
func (b *DocumentBuilder) WithOperationTraitComponent(name string, setup func(*OperationTraitBuilder)) *DocumentBuilder {
	if !b.life.Guard("WithOperationTraitComponent") {
		return b
	}
	if trait, ok := builder.Nested[*OperationTraitBuilder, *OperationTrait](&b.life, "operation trait "+name, b.provider.NewOperationTrait(), setup); ok {
		c := b.components()
		if c.OperationTraits == nil {
			c.OperationTraits = make(map[string]*OperationTrait)
		}
		c.OperationTraits[name] = trait
	}
	return b
}

// WithMessageTraitComponent adds a reusable message trait configured by setup.
func (b *DocumentBuilder) WithMessageTraitComponent(name string, setup func(*MessageTraitBuilder)) *DocumentBuilder {
	if !b.life.Guard("WithMessageTraitComponent") {
		return b
	}
	if trait, ok := builder.Nested[*MessageTraitBuilder, *MessageTrait](&b.life, "message trait "+name, b.provider.NewMessageTrait(), setup); ok {
		c := b.components()
		if c.MessageTraits == nil {
			c.MessageTraits = make(map[string]*MessageTrait)
		}
		c.MessageTraits[name] = trait
	}
	return b
}

// WithCorrelationIDComponent adds a reusable correlation id.
func (b *DocumentBuilder) WithCorrelationIDComponent(name, location, description string) *DocumentBuilder {
	if !b.life.Guard("WithCorrelationIDComponent") {
		return b
	}
	c := b.components()
	if c.CorrelationIDs == nil {
		c.CorrelationIDs = make(map[string]*asyncapi.CorrelationID)
	}
	c.CorrelationIDs[name] = &asyncapi.CorrelationID{Location: location, Description: description}
	return b
}

// WithBindingsComponent adds a reusable bindings collection under the components map
// of its kind.
func (b *DocumentBuilder) WithBindingsComponent(name string, collection *bindings.Collection) *DocumentBuilder {
	if !b.life.Guard("WithBindingsComponent") {
		return b
	}
	if collection == nil {
		b.life.Record(fmt.Errorf("bindings %q are nil: %w", name, asyncapi.ErrInvalidArgument))
		return b
	}
	c := b.components()
	var target *map[string]*bindings.Collection
	switch collection.Kind() {
	case bindings.KindServer:
		target = &c.ServerBindings
	case bindings.KindChannel:
		target = &c.ChannelBindings
	case bindings.KindOperation:
		target = &c.OperationBindings
	case bindings.KindMessage:
		target = &c.MessageBindings
	default:
		b.life.Record(fmt.Errorf("bindings %q have unknown kind %q: %w", name, collection.Kind(), asyncapi.ErrUnsupportedProtocol))
		return b
	}
	if *target == nil {
		*target = make(map[string]*bindings.Collection)
	}
	(*target)[name] = collection
	return b
}

// Build validates and returns the document.
func (b *DocumentBuilder) Build() (*Document, error) {
	if b.draft.Components.IsEmpty() {
		b.draft.Components = nil
	}
	if err := builder.Finish(&b.life, "document", b.draft, b.provider.document...); err != nil {
		return nil, err
	}
	return b.draft, nil
}
