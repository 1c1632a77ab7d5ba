package v2

import (
	"fmt"

	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/bindings"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/builder"
)

// ChannelBuilder builds a Channel and its publish and subscribe operations.
type ChannelBuilder struct {
	provider *Provider
	life     builder.Lifecycle
	draft    *Channel
}

// NewChannel creates a channel builder.
func (p *Provider) NewChannel() *ChannelBuilder {
	return &ChannelBuilder{
		provider: p,
		draft:    &Channel{},
	}
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

// WithDescription sets the channel description.
func (b *ChannelBuilder) WithDescription(description string) *ChannelBuilder {
	if b.life.Guard("WithDescription") {
		b.draft.Description = description
	}
	return b
}

// WithServers restricts the channel to the named servers.
func (b *ChannelBuilder) WithServers(names ...string) *ChannelBuilder {
	if b.life.Guard("WithServers") {
		b.draft.Servers = append(b.draft.Servers, names...)
	}
	return b
}

// WithParameter adds a channel name parameter configured by setup.
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

// WithPublish sets the operation through which applications send messages to the channel.
func (b *ChannelBuilder) WithPublish(setup func(*OperationBuilder)) *ChannelBuilder {
	if !b.life.Guard("WithPublish") {
		return b
	}
	if op, ok := builder.Nested[*OperationBuilder, *Operation](&b.life, "publish", b.provider.NewOperation(), setup); ok {
		b.draft.Publish = op
	}
	return b
}

// WithSubscribe sets the operation through which applications receive messages from
// the channel.
func (b *ChannelBuilder) WithSubscribe(setup func(*OperationBuilder)) *ChannelBuilder {
	if !b.life.Guard("WithSubscribe") {
		return b
	}
	if op, ok := builder.Nested[*OperationBuilder, *Operation](&b.life, "subscribe", b.provider.NewOperation(), setup); ok {
		b.draft.Subscribe = op
	}
	return b
}

// WithBinding stores a channel binding, replacing any binding of the same protocol.
func (b *ChannelBuilder) WithBinding(binding bindings.Binding) *ChannelBuilder {
	if !b.life.Guard("WithBinding") {
		return b
	}
	if b.draft.Bindings == nil || b.draft.Bindings.Ref() != "" {
		b.draft.Bindings = bindings.NewChannelBindings()
	}
	b.life.Record(b.draft.Bindings.Add(binding))
	return b
}

// WithBindingsRef replaces the channel bindings by a reference.
func (b *ChannelBuilder) WithBindingsRef(ref string) *ChannelBuilder {
	if !b.life.Guard("WithBindingsRef") {
		return b
	}
	if err := asyncapi.ValidateRef(ref); err != nil {
		b.life.Record(err)
		return b
	}
	b.draft.Bindings = bindings.RefCollection(bindings.KindChannel, ref)
	return b
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

// WithSchema sets the parameter schema.
func (b *ParameterBuilder) WithSchema(schema *spec.Schema) *ParameterBuilder {
	if !b.life.Guard("WithSchema") {
		return b
	}
	if schema == nil {
		b.life.Record(fmt.Errorf("parameter schema is nil: %w", asyncapi.ErrInvalidArgument))
		return b
	}
	b.draft.Schema = schema
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
