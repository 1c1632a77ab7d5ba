package v3

import (
	"fmt"

	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/bindings"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/builder"
)

// OperationBuilder builds an Operation. Inline traits are merged onto the operation
// by Build.
type OperationBuilder struct {
	builder.TraitSetter[*OperationBuilder]

	provider *Provider
	life     builder.Lifecycle
	draft    *Operation
}

// NewOperation creates an operation builder.
func (p *Provider) NewOperation() *OperationBuilder {
	b := &OperationBuilder{
		provider: p,
		draft:    &Operation{},
	}
	b.TraitSetter = builder.NewTraitSetter(b, &b.life, builder.TraitTarget{
		Title:        &b.draft.Title,
		Summary:      &b.draft.Summary,
		Description:  &b.draft.Description,
		Tags:         &b.draft.Tags,
		ExternalDocs: &b.draft.ExternalDocs,
		Bindings:     &b.draft.Bindings,
		BindingKind:  bindings.KindOperation,
	})
	return b
}

// WithRef turns the operation into a reference.
func (b *OperationBuilder) WithRef(ref string) *OperationBuilder {
	if !b.life.Guard("WithRef") {
		return b
	}
	if err := asyncapi.ValidateRef(ref); err != nil {
		b.life.Record(err)
		return b
	}
	b.draft.Ref = ref
	return b
}

// WithAction sets the action, send or receive.
func (b *OperationBuilder) WithAction(action string) *OperationBuilder {
	if b.life.Guard("WithAction") {
		b.draft.Action = action
	}
	return b
}

// WithChannel binds the operation to the named document channel.
func (b *OperationBuilder) WithChannel(name string) *OperationBuilder {
	if b.life.Guard("WithChannel") {
		b.draft.Channel = asyncapi.NewReference(asyncapi.ChannelRef(name))
	}
	return b
}

// WithMessage adds a message reference. It must point to a message of the
// operation channel.
func (b *OperationBuilder) WithMessage(ref string) *OperationBuilder {
	if !b.life.Guard("WithMessage") {
		return b
	}
	if err := asyncapi.ValidateRef(ref); err != nil {
		b.life.Record(fmt.Errorf("message: %w", err))
		return b
	}
	b.draft.Messages = append(b.draft.Messages, asyncapi.Reference{Ref: ref})
	return b
}

// WithSecurity requires the named security scheme component.
func (b *OperationBuilder) WithSecurity(name string) *OperationBuilder {
	if b.life.Guard("WithSecurity") {
		b.draft.Security = append(b.draft.Security, securityRef(name))
	}
	return b
}

// WithTrait adds an inline trait configured by setup.
func (b *OperationBuilder) WithTrait(setup func(*OperationTraitBuilder)) *OperationBuilder {
	if !b.life.Guard("WithTrait") {
		return b
	}
	if trait, ok := builder.Nested[*OperationTraitBuilder, *OperationTrait](&b.life, "operation trait", b.provider.NewOperationTrait(), setup); ok {
		b.draft.Traits = append(b.draft.Traits, trait)
	}
	return b
}

// WithTraitRef adds a trait standing for the reference ref.
func (b *OperationBuilder) WithTraitRef(ref string) *OperationBuilder {
	if !b.life.Guard("WithTraitRef") {
		return b
	}
	if err := asyncapi.ValidateRef(ref); err != nil {
		b.life.Record(err)
		return b
	}
	b.draft.Traits = append(b.draft.Traits, &OperationTrait{Ref: ref})
	return b
}

// WithReply sets the reply of a request-reply operation.
func (b *OperationBuilder) WithReply(setup func(*OperationReplyBuilder)) *OperationBuilder {
	if !b.life.Guard("WithReply") {
		return b
	}
	if reply, ok := builder.Nested[*OperationReplyBuilder, *OperationReply](&b.life, "reply", b.provider.NewOperationReply(), setup); ok {
		b.draft.Reply = reply
	}
	return b
}

// Build merges the inline traits, validates and returns the operation.
func (b *OperationBuilder) Build() (*Operation, error) {
	if !b.life.Sealed() {
		mergeOperationTraits(b.draft)
	}
	if err := builder.Finish(&b.life, "operation", b.draft, b.provider.operation...); err != nil {
		return nil, err
	}
	return b.draft, nil
}

// OperationTraitBuilder builds an OperationTrait.
type OperationTraitBuilder struct {
	builder.TraitSetter[*OperationTraitBuilder]

	provider *Provider
	life     builder.Lifecycle
	draft    *OperationTrait
}

// NewOperationTrait creates an operation trait builder.
func (p *Provider) NewOperationTrait() *OperationTraitBuilder {
	b := &OperationTraitBuilder{
		provider: p,
		draft:    &OperationTrait{},
	}
	b.TraitSetter = builder.NewTraitSetter(b, &b.life, builder.TraitTarget{
		Title:        &b.draft.Title,
		Summary:      &b.draft.Summary,
		Description:  &b.draft.Description,
		Tags:         &b.draft.Tags,
		ExternalDocs: &b.draft.ExternalDocs,
		Bindings:     &b.draft.Bindings,
		BindingKind:  bindings.KindOperation,
	})
	return b
}

// WithSecurity requires the named security scheme component.
func (b *OperationTraitBuilder) WithSecurity(name string) *OperationTraitBuilder {
	if b.life.Guard("WithSecurity") {
		b.draft.Security = append(b.draft.Security, securityRef(name))
	}
	return b
}

// Build validates and returns the trait.
func (b *OperationTraitBuilder) Build() (*OperationTrait, error) {
	if err := builder.Finish(&b.life, "operation trait", b.draft, b.provider.operationTrait...); err != nil {
		return nil, err
	}
	return b.draft, nil
}

// OperationReplyBuilder builds an OperationReply.
type OperationReplyBuilder struct {
	provider *Provider
	life     builder.Lifecycle
	draft    *OperationReply
}

// NewOperationReply creates an operation reply builder.
func (p *Provider) NewOperationReply() *OperationReplyBuilder {
	return &OperationReplyBuilder{
		provider: p,
		draft:    &OperationReply{},
	}
}

// WithAddress sets the runtime expression of the reply address.
func (b *OperationReplyBuilder) WithAddress(location, description string) *OperationReplyBuilder {
	if b.life.Guard("WithAddress") {
		b.draft.Address = &OperationReplyAddress{Location: location, Description: description}
	}
	return b
}

// WithChannel sets the named document channel the reply is sent on.
func (b *OperationReplyBuilder) WithChannel(name string) *OperationReplyBuilder {
	if b.life.Guard("WithChannel") {
		b.draft.Channel = asyncapi.NewReference(asyncapi.ChannelRef(name))
	}
	return b
}

// WithMessage adds a reply message reference.
func (b *OperationReplyBuilder) WithMessage(ref string) *OperationReplyBuilder {
	if !b.life.Guard("WithMessage") {
		return b
	}
	if err := asyncapi.ValidateRef(ref); err != nil {
		b.life.Record(err)
		return b
	}
	b.draft.Messages = append(b.draft.Messages, asyncapi.Reference{Ref: ref})
	return b
}

// Build validates and returns the reply.
func (b *OperationReplyBuilder) Build() (*OperationReply, error) {
	if err := builder.Finish(&b.life, "operation reply", b.draft, b.provider.reply...); err != nil {
		return nil, err
	}
	return b.draft, nil
}

func securityRef(name string) *asyncapi.SecurityScheme {
	return &asyncapi.SecurityScheme{Ref: asyncapi.ComponentRef(asyncapi.ComponentSecuritySchemes, name)}
}
