package v2

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
		Description: &b.draft.Description,
		Tags:        &b.draft.Tags,
		Bindings:    &b.draft.Bindings,
		BindingKind: bindings.KindServer,
	})
	return b
}

// WithURL sets the server URL; it may contain {variables}.
func (b *ServerBuilder) WithURL(url string) *ServerBuilder {
	if b.life.Guard("WithURL") {
		b.draft.URL = url
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

// WithVariable adds a URL template variable.
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

// WithSecurity requires the named security scheme with scopes.
func (b *ServerBuilder) WithSecurity(name string, scopes ...string) *ServerBuilder {
	if b.life.Guard("WithSecurity") {
		b.draft.Security = append(b.draft.Security, securityRequirement(name, scopes))
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

func securityRequirement(name string, scopes []string) SecurityRequirement {
	if scopes == nil {
		scopes = []string{}
	}
	return SecurityRequirement{name: scopes}
}
