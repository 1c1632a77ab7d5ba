package v3

import (
	"fmt"

	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/bindings"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/builder"
)

// ChannelBuilder builds a Channel.
type ChannelBuilder struct {
	builder.TraitSetter[*ChannelBuilder]

	provider *Provider
	life     builder.Lifecycle
	draft    *Channel
}

// NewChannel creates a channel builder.
func (p *Provider) NewChannel() *ChannelBuilder {
	b := &ChannelBuilder{
		provider: p,
		draft:    &Channel{},
	}
	b.TraitSetter = builder.NewTraitSetter(b, &b.life, builder.TraitTarget{
		Title:        &b.draft.Title,
		Summary:      &b.draft.Summary,
		Description:  &b.draft.Description,
		Tags:         &b.draft.Tags,
		ExternalDocs: &b.draft.ExternalDocs,
		Bindings:     &b.draft.Bindings,
		BindingKind:  bindings.KindChannel,
	})
	return b
}

// WithRef turns the channel into a reference.
func (b *ChannelBuilder) WithRef(ref string) *ChannelBuilder {
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

// WithAddress sets the channel address. Parameters are written as {name}.
func (b *ChannelBuilder) WithAddress(address string) *ChannelBuilder {
	if b.life.Guard("WithAddress") {
		b.draft.Address = &address
	}
	return b
}

// WithServers restricts the channel to the named document servers.
func (b *ChannelBuilder) WithServers(names ...string) *ChannelBuilder {
	if !b.life.Guard("WithServers") {
		return b
	}
	for _, name := range names {
		b.draft.Servers = append(b.draft.Servers, asyncapi.Reference{Ref: asyncapi.ServerRef(name)})
	}
	return b
}

// WithParameter adds an address parameter configured by setup.
func (b *ChannelBuilder) WithParameter(name string, setup func(*ParameterBuilder)) *ChannelBuilder {
	if !b.life.Guard("WithParameter") {
		return b
	}
	if param, ok := builder.Nested[*ParameterBuilder, *Parameter](&b.life, "parameter "+name, b.provider.NewParameter(), setup); ok {
		if b.draft.Parameters == nil {
			b.draft.Parameters = make(map[string]*Parameter)
		}
		b.draft.Parameters[name] = param
	}
	return b
}

// WithMessage adds a channel message configured by setup.
func (b *ChannelBuilder) WithMessage(name string, setup func(*MessageBuilder)) *ChannelBuilder {
	if !b.life.Guard("WithMessage") {
		return b
	}
	if msg, ok := builder.Nested[*MessageBuilder, *Message](&b.life, "message "+name, b.provider.NewMessage(), setup); ok {
		b.addMessage(name, msg)
	}
	return b
}

// WithMessageRef adds a channel message standing for the reference ref.
func (b *ChannelBuilder) WithMessageRef(name, ref string) *ChannelBuilder {
	if !b.life.Guard("WithMessageRef") {
		return b
	}
	if err := asyncapi.ValidateRef(ref); err != nil {
		b.life.Record(fmt.Errorf("message %s: %w", name, err))
		return b
	}
	b.addMessage(name, &Message{Ref: ref})
	return b
}

func (b *ChannelBuilder) addMessage(name string, msg *Message) {
	if b.draft.Messages == nil {
		b.draft.Messages = make(map[string]*Message)
	}
	b.draft.Messages[name] = msg
}

// Build validates and returns the channel.
func (b *ChannelBuilder) Build() (*Channel, error) {
	if err := builder.Finish(&b.life, "channel", b.draft, b.provider.channel...); err != nil {
		return nil, err
	}
	return b.draft, nil
}

// ParameterBuilder builds a channel Parameter.
type ParameterBuilder struct {
	provider *Provider
	life     builder.Lifecycle
	draft    *Parameter
}

// NewParameter creates a parameter builder.
func (p *Provider) NewParameter() *ParameterBuilder {
	return &ParameterBuilder{
		provider: p,
		draft:    &Parameter{},
	}
}

// WithRef turns the parameter into a reference.
func (b *ParameterBuilder) WithRef(ref string) *ParameterBuilder {
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

// WithDescription sets the parameter description.
func (b *ParameterBuilder) WithDescription(description string) *ParameterBuilder {
	if b.life.Guard("WithDescription") {
		b.draft.Description = description
	}
	return b
}

// WithEnum restricts the parameter to values.
func (b *ParameterBuilder) WithEnum(values ...string) *ParameterBuilder {
	if b.life.Guard("WithEnum") {
		b.draft.Enum = append(b.draft.Enum, values...)
	}
	return b
}

// WithDefault sets the default value.
func (b *ParameterBuilder) WithDefault(value string) *ParameterBuilder {
	if b.life.Guard("WithDefault") {
		b.draft.Default = value
	}
	return b
}

// WithExamples adds example values.
func (b *ParameterBuilder) WithExamples(values ...string) *ParameterBuilder {
	if b.life.Guard("WithExamples") {
		b.draft.Examples = append(b.draft.Examples, values...)
	}
	return b
}

// WithLocation sets the runtime expression locating the parameter value in messages.
func (b *ParameterBuilder) WithLocation(location string) *ParameterBuilder {
	if b.life.Guard("WithLocation") {
		b.draft.Location = location
	}
	return b
}

// Build validates and returns the parameter.
func (b *ParameterBuilder) Build() (*Parameter, error) {
	if err := builder.Finish(&b.life, "parameter", b.draft, b.provider.parameter...); err != nil {
		return nil, err
	}
	return b.draft, nil
}
