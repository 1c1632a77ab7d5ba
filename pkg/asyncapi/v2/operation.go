package v2

import (
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/bindings"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/builder"
)

// OperationBuilder builds a publish or subscribe Operation. Inline traits are merged
// onto the operation by Build.
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
		Summary:      &b.draft.Summary,
		Description:  &b.draft.Description,
		Tags:         &b.draft.Tags,
		ExternalDocs: &b.draft.ExternalDocs,
		Bindings:     &b.draft.Bindings,
		BindingKind:  bindings.KindOperation,
	})
	return b
}

// WithOperationID sets the unique operation identifier.
func (b *OperationBuilder) WithOperationID(id string) *OperationBuilder {
	if b.life.Guard("WithOperationID") {
		b.draft.OperationID = id
	}
	return b
}

// WithSecurity requires the named security scheme with scopes.
func (b *OperationBuilder) WithSecurity(name string, scopes ...string) *OperationBuilder {
	if b.life.Guard("WithSecurity") {
		b.draft.Security = append(b.draft.Security, securityRequirement(name, scopes))
	}
	return b
}

// WithMessage adds a message configured by setup. A second message turns the
// operation message into a oneOf.
func (b *OperationBuilder) WithMessage(setup func(*MessageBuilder)) *OperationBuilder {
	if !b.life.Guard("WithMessage") {
		return b
	}
	if msg, ok := builder.Nested[*MessageBuilder, *Message](&b.life, "message", b.provider.NewMessage(), setup); ok {
		b.addMessage(msg)
	}
	return b
}

// WithMessageRef adds a message standing for the reference ref.
func (b *OperationBuilder) WithMessageRef(ref string) *OperationBuilder {
	if !b.life.Guard("WithMessageRef") {
		return b
	}
	if err := asyncapi.ValidateRef(ref); err != nil {
		b.life.Record(err)
		return b
	}
	b.addMessage(&Message{Ref: ref})
	return b
}

func (b *OperationBuilder) addMessage(msg *Message) {
	switch {
	case b.draft.Message == nil:
		b.draft.Message = msg
	case len(b.draft.Message.OneOf) > 0:
		b.draft.Message.OneOf = append(b.draft.Message.OneOf, msg)
	default:
		b.draft.Message = &Message{OneOf: []*Message{b.draft.Message, msg}}
	}
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
		Summary:      &b.draft.Summary,
		Description:  &b.draft.Description,
		Tags:         &b.draft.Tags,
		ExternalDocs: &b.draft.ExternalDocs,
		Bindings:     &b.draft.Bindings,
		BindingKind:  bindings.KindOperation,
	})
	return b
}

// WithOperationID sets the operation identifier applied by the trait.
func (b *OperationTraitBuilder) WithOperationID(id string) *OperationTraitBuilder {
	if b.life.Guard("WithOperationID") {
		b.draft.OperationID = id
	}
	return b
}

// WithSecurity requires the named security scheme with scopes.
func (b *OperationTraitBuilder) WithSecurity(name string, scopes ...string) *OperationTraitBuilder {
	if b.life.Guard("WithSecurity") {
		b.draft.Security = append(b.draft.Security, securityRequirement(name, scopes))
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
