package v2

import (
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/builder"
)

// Provider creates the builders of one generation session. Every builder it creates,
// including the nested builders configured through setup callbacks, shares the same
// validators.
type Provider struct {
	defaults bool

	document       builder.Validators[*Document]
	server         builder.Validators[*Server]
	channel        builder.Validators[*Channel]
	parameter      builder.Validators[*Parameter]
	operation      builder.Validators[*Operation]
	operationTrait builder.Validators[*OperationTrait]
	message        builder.Validators[*Message]
	messageTrait   builder.Validators[*MessageTrait]
	securityScheme builder.Validators[*asyncapi.SecurityScheme]
}

// Option configures a Provider.
type Option func(*Provider)

// WithoutDefaultValidators drops the built-in validators.
func WithoutDefaultValidators() Option {
	return func(p *Provider) { p.defaults = false }
}

// WithDocumentValidator adds a document validator.
func WithDocumentValidator(v builder.Validator[*Document]) Option {
	return func(p *Provider) { p.document = append(p.document, v) }
}

// WithServerValidator adds a server validator.
func WithServerValidator(v builder.Validator[*Server]) Option {
	return func(p *Provider) { p.server = append(p.server, v) }
}

// WithChannelValidator adds a channel validator.
func WithChannelValidator(v builder.Validator[*Channel]) Option {
	return func(p *Provider) { p.channel = append(p.channel, v) }
}

// WithOperationValidator adds an operation validator.
func WithOperationValidator(v builder.Validator[*Operation]) Option {
	return func(p *Provider) { p.operation = append(p.operation, v) }
}

// WithMessageValidator adds a message validator.
func WithMessageValidator(v builder.Validator[*Message]) Option {
	return func(p *Provider) { p.message = append(p.message, v) }
}

// WithSecuritySchemeValidator adds a security scheme validator.
func WithSecuritySchemeValidator(v builder.Validator[*asyncapi.SecurityScheme]) Option {
	return func(p *Provider) { p.securityScheme = append(p.securityScheme, v) }
}

// NewProvider creates a Provider. The default validators run before the ones added
// through options.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{defaults: true}
	for _, opt := range opts {
		opt(p)
	}
	if p.defaults {
		p.document = DefaultDocumentValidators().With(p.document...)
		p.server = builder.Validators[*Server]{builder.ValidatorFunc[*Server](ValidateServer)}.With(p.server...)
		p.channel = builder.Validators[*Channel]{builder.ValidatorFunc[*Channel](ValidateChannel)}.With(p.channel...)
		p.parameter = builder.Validators[*Parameter]{builder.ValidatorFunc[*Parameter](ValidateParameter)}.With(p.parameter...)
		p.message = builder.Validators[*Message]{builder.ValidatorFunc[*Message](ValidateMessage)}.With(p.message...)
		p.messageTrait = builder.Validators[*MessageTrait]{builder.ValidatorFunc[*MessageTrait](ValidateMessageTrait)}.With(p.messageTrait...)
		p.securityScheme = builder.Validators[*asyncapi.SecurityScheme]{
			builder.ValidatorFunc[*asyncapi.SecurityScheme](builder.ValidateSecurityScheme),
		}.With(p.securityScheme...)
	}
	return p
}

// NewSecurityScheme creates a security scheme builder.
func (p *Provider) NewSecurityScheme() *builder.SecuritySchemeBuilder {
	return builder.NewSecuritySchemeBuilder(p.securityScheme...)
}
