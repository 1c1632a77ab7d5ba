package v3

import (
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/bindings"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/builder"
)

// ServerBuilder builds a Server.
type ServerBuilder struct {
	builder.TraitSetter[*ServerBuilder]

	provider *Provider
	life     builder.Lifecycle
	draft    *Server
}

// NewServer creates a server builder.
func (p *Provider) NewServer() *ServerBuilder {
	b := &ServerBuilder{
		provider: p,
		draft:    &Server{},
	}
	b.TraitSetter = builder.NewTraitSetter(b, &b.life, builder.TraitTarget{
		Title:        &b.draft.Title,
		Summary:      &b.draft.Summary,
		Description:  &b.draft.Description,
		Tags:         &b.draft.Tags,
		ExternalDocs: &b.draft.ExternalDocs,
		Bindings:     &b.draft.Bindings,
		BindingKind:  bindings.KindServer,
	})
	return b
}

// WithHost sets the server host, optionally with a port.
func (b *ServerBuilder) WithHost(host string) *ServerBuilder {
	if b.life.Guard("WithHost") {
		b.draft.Host = host
	}
	return b
}

// WithProtocol sets the protocol and its version.
func (b *ServerBuilder) WithProtocol(protocol, version string) *ServerBuilder {
	if b.life.Guard("WithProtocol") {
		b.draft.Protocol = protocol
		b.draft.ProtocolVersion = version
	}
	return b
}

// WithPathname sets the path to a resource in the host.
func (b *ServerBuilder) WithPathname(pathname string) *ServerBuilder {
	if b.life.Guard("WithPathname") {
		b.draft.Pathname = pathname
	}
	return b
}

// WithVariable adds a host or pathname template variable.
func (b *ServerBuilder) WithVariable(name string, variable asyncapi.ServerVariable) *ServerBuilder {
	if !b.life.Guard("WithVariable") {
		return b
	}
	if b.draft.Variables == nil {
		b.draft.Variables = make(map[string]*asyncapi.ServerVariable)
	}
	b.draft.Variables[name] = &variable
	return b
}

// WithSecurity requires the named security scheme component.
func (b *ServerBuilder) WithSecurity(name string) *ServerBuilder {
	if b.life.Guard("WithSecurity") {
		b.draft.Security = append(b.draft.Security, &asyncapi.SecurityScheme{
			Ref: asyncapi.ComponentRef(asyncapi.ComponentSecuritySchemes, name),
		})
	}
	return b
}

// Build validates and returns the server.
func (b *ServerBuilder) Build() (*Server, error) {
	if err := builder.Finish(&b.life, "server", b.draft, b.provider.server...); err != nil {
		return nil, err
	}
	return b.draft, nil
}
