package v3

import (
	"fmt"

	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/bindings"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/builder"
)

// MessageBuilder builds a Message. Inline traits are merged onto the message by Build.
type MessageBuilder struct {
	builder.TraitSetter[*MessageBuilder]
	builder.MessageTraitSetter[*MessageBuilder]

	provider *Provider
	life     builder.Lifecycle
	draft    *Message
}

// NewMessage creates a message builder.
func (p *Provider) NewMessage() *MessageBuilder {
	b := &MessageBuilder{
		provider: p,
		draft:    &Message{},
	}
	b.TraitSetter = builder.NewTraitSetter(b, &b.life, builder.TraitTarget{
		Title:        &b.draft.Title,
		Summary:      &b.draft.Summary,
		Description:  &b.draft.Description,
		Tags:         &b.draft.Tags,
		ExternalDocs: &b.draft.ExternalDocs,
		Bindings:     &b.draft.Bindings,
		BindingKind:  bindings.KindMessage,
	})
	b.MessageTraitSetter = builder.NewMessageTraitSetter(b, &b.life, builder.MessageTraitTarget{
		Name:          &b.draft.Name,
		ContentType:   &b.draft.ContentType,
		Headers:       &b.draft.Headers,
		CorrelationID: &b.draft.CorrelationID,
		Examples:      &b.draft.Examples,
	})
	return b
}

// WithRef turns the message into a reference.
func (b *MessageBuilder) WithRef(ref string) *MessageBuilder {
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

// WithPayload sets the payload schema.
func (b *MessageBuilder) WithPayload(schema *spec.Schema) *MessageBuilder {
	if !b.life.Guard("WithPayload") {
		return b
	}
	if schema == nil {
		b.life.Record(fmt.Errorf("payload schema is nil: %w", asyncapi.ErrInvalidArgument))
		return b
	}
	b.draft.Payload = schema
	return b
}

// WithPayloadRef sets the payload to a reference, usually to a schema component.
func (b *MessageBuilder) WithPayloadRef(ref string) *MessageBuilder {
	if !b.life.Guard("WithPayloadRef") {
		return b
	}
	if err := asyncapi.ValidateRef(ref); err != nil {
		b.life.Record(fmt.Errorf("payload: %w", err))
		return b
	}
	b.draft.Payload = spec.RefSchema(ref)
	return b
}

// WithTrait adds an inline trait configured by setup.
func (b *MessageBuilder) WithTrait(setup func(*MessageTraitBuilder)) *MessageBuilder {
	if !b.life.Guard("WithTrait") {
		return b
	}
	if trait, ok := builder.Nested[*MessageTraitBuilder, *MessageTrait](&b.life, "message trait", b.provider.NewMessageTrait(), setup); ok {
		b.draft.Traits = append(b.draft.Traits, trait)
	}
	return b
}

// WithTraitRef adds a trait standing for the reference ref.
func (b *MessageBuilder) WithTraitRef(ref string) *MessageBuilder {
	if !b.life.Guard("WithTraitRef") {
		return b
	}
	if err := asyncapi.ValidateRef(ref); err != nil {
		b.life.Record(err)
		return b
	}
	b.draft.Traits = append(b.draft.Traits, &MessageTrait{Ref: ref})
	return b
}

// Build merges the inline traits, validates and returns the message.
func (b *MessageBuilder) Build() (*Message, error) {
	if !b.life.Sealed() {
		mergeMessageTraits(b.draft)
	}
	if err := builder.Finish(&b.life, "message", b.draft, b.provider.message...); err != nil {
		return nil, err
	}
	return b.draft, nil
}

// MessageTraitBuilder builds a MessageTrait.
type MessageTraitBuilder struct {
	builder.TraitSetter[*MessageTraitBuilder]
	builder.MessageTraitSetter[*MessageTraitBuilder]

	provider *Provider
	life     builder.Lifecycle
	draft    *MessageTrait
}

// NewMessageTrait creates a message trait builder.
func (p *Provider) NewMessageTrait() *MessageTraitBuilder {
	b := &MessageTraitBuilder{
		provider: p,
		draft:    &MessageTrait{},
	}
	b.TraitSetter = builder.NewTraitSetter(b, &b.life, builder.TraitTarget{
		Title:        &b.draft.Title,
		Summary:      &b.draft.Summary,
		Description:  &b.draft.Description,
		Tags:         &b.draft.Tags,
		ExternalDocs: &b.draft.ExternalDocs,
		Bindings:     &b.draft.Bindings,
		BindingKind:  bindings.KindMessage,
	})
	b.MessageTraitSetter = builder.NewMessageTraitSetter(b, &b.life, builder.MessageTraitTarget{
		Name:          &b.draft.Name,
		ContentType:   &b.draft.ContentType,
		Headers:       &b.draft.Headers,
		CorrelationID: &b.draft.CorrelationID,
		Examples:      &b.draft.Examples,
	})
	return b
}

// Build validates and returns the trait.
func (b *MessageTraitBuilder) Build() (*MessageTrait, error) {
	if err := builder.Finish(&b.life, "message trait", b.draft, b.provider.messageTrait...); err != nil {
		return nil, err
	}
	return b.draft, nil
}
