package generator

import (
	"fmt"

	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"github.com/neuroglia-io/asyncapi-sub001/internal/parser/marker"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/builder"
	v2 "github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/v2"
)

// GenerateV2 builds the AsyncAPI 2.6 document of the marked type def. Receive
// operations become channel publish operations and send operations become
// subscribe operations. Several operations sharing a channel slot are folded
// into one whose message is a oneOf.
func (g *Generator) GenerateV2(def *domain.TypeSpecDef) (*v2.Document, error) {
	model, err := g.describe(def)
	if err != nil {
		return nil, err
	}
	servers, err := g.documentServers(model)
	if err != nil {
		return nil, err
	}
	components, err := bindingComponents(model.info.Bindings)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", def.TypeName(), err)
	}

	provider := v2.NewProvider(v2.WithDocumentValidator(builder.ValidatorFunc[*v2.Document](ValidateV2Schemas)))
	doc := provider.NewDocument().
		WithAsyncAPI(asyncapi.Version2).
		WithID(model.info.ID).
		WithTitle(g.documentTitle(model)).
		WithVersion(g.documentVersion(model)).
		WithDescription(g.documentDescription(model)).
		WithTermsOfService(model.info.TermsOfService).
		WithDefaultContentType(g.documentContentType(model))
	if model.info.ContactName != "" || model.info.ContactURL != "" || model.info.ContactEmail != "" {
		doc.WithContact(model.info.ContactName, model.info.ContactURL, model.info.ContactEmail)
	}
	if model.info.LicenseName != "" {
		doc.WithLicense(model.info.LicenseName, model.info.LicenseURL)
	}
	if len(model.info.Tags) > 0 {
		doc.WithTags(model.info.Tags...)
	}
	if model.info.ExternalDocs != "" {
		doc.WithExternalDocumentation(model.info.ExternalDocs, "")
	}

	for _, s := range servers {
		s := s
		doc.WithServer(s.Name, func(b *v2.ServerBuilder) {
			b.WithURL(s.Host+s.Pathname).WithProtocol(s.Protocol, s.ProtocolVersion)
			if s.Description != "" {
				b.WithDescription(s.Description)
			}
			for _, name := range s.Security {
				b.WithSecurity(name)
			}
			if s.bindings != nil {
				for _, binding := range s.bindings.Enumerate() {
					b.WithBinding(binding)
				}
			}
		})
	}
	for _, s := range g.documentSecuritySchemes(model) {
		doc.WithSecuritySchemeComponent(s.Name, securitySchemeSetup(s, 2))
	}
	for _, c := range components {
		doc.WithBindingsComponent(c.name, c.collection)
	}
	for _, name := range model.schema.names {
		doc.WithSchemaComponent(name, model.schema.schemas[name])
	}
	for _, msg := range model.messages {
		msg := msg
		doc.WithMessageComponent(msg.name, func(b *v2.MessageBuilder) { message2(b, msg) })
	}
	// 2.x channels are keyed by their address.
	addressed := make(map[string]string, len(model.channels))
	for _, ch := range model.channels {
		ch := ch
		address := ch.address()
		if other, ok := addressed[address]; ok {
			return nil, fmt.Errorf("%s: channels %q and %q share the address %q: %w",
				def.TypeName(), other, ch.name, address, asyncapi.ErrConfiguration)
		}
		addressed[address] = ch.name
		doc.WithChannel(address, func(b *v2.ChannelBuilder) { g.channel2(b, ch) })
	}

	built, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", def.TypeName(), err)
	}
	return built, nil
}

func (g *Generator) channel2(b *v2.ChannelBuilder, ch *channelModel) {
	if ch.marker.Description != "" {
		b.WithDescription(ch.marker.Description)
	}
	if len(ch.marker.Servers) > 0 {
		b.WithServers(ch.marker.Servers...)
	}
	if ch.marker.Bindings != "" {
		b.WithBindingsRef(asyncapi.ComponentRef(asyncapi.ComponentChannelBindings, ch.marker.Bindings))
	}
	for _, p := range ch.parameters {
		p := p
		b.WithParameter(p.Name, func(pb *v2.ParameterBuilder) {
			if p.Description != "" {
				pb.WithDescription(p.Description)
			}
			s := &spec.Schema{}
			s.Typed(domain.STRING, "")
			pb.WithSchema(s)
		})
	}

	var publish, subscribe []*operationModel
	for _, op := range ch.operations {
		if op.action == marker.ActionReceive {
			publish = append(publish, op)
		} else {
			subscribe = append(subscribe, op)
		}
	}
	if len(publish) > 0 {
		b.WithPublish(func(ob *v2.OperationBuilder) { g.operation2(ob, ch, publish) })
	}
	if len(subscribe) > 0 {
		b.WithSubscribe(func(ob *v2.OperationBuilder) { g.operation2(ob, ch, subscribe) })
	}
}

// operation2 writes ops into a single channel slot. The first operation names
// the slot; the others contribute their message and tags.
func (g *Generator) operation2(b *v2.OperationBuilder, ch *channelModel, ops []*operationModel) {
	first := ops[0]
	b.WithOperationID(first.id)
	if first.summary != "" {
		b.WithSummary(first.summary)
	}
	if first.description != "" {
		b.WithDescription(first.description)
	}
	if first.externalDocs != "" {
		b.WithExternalDocumentation(first.externalDocs, "")
	}
	if first.bindings != "" {
		b.WithBindingsRef(asyncapi.ComponentRef(asyncapi.ComponentOperationBindings, first.bindings))
	}
	var tags []string
	seen := map[*messageModel]bool{}
	for _, op := range ops {
		tags = union(tags, op.tags)
		for _, name := range asyncapi.SortedKeys(op.security) {
			b.WithSecurity(name, op.security[name]...)
		}
		if op.message != nil && !seen[op.message] {
			seen[op.message] = true
			b.WithMessageRef(asyncapi.ComponentRef(asyncapi.ComponentMessages, op.message.name))
		}
	}
	if len(ops) > 1 {
		g.debug.Printf("channel %s: operations %s share one %s slot", ch.name, operationIDs(ops), first.action)
	}
	if len(tags) > 0 {
		b.WithTags(tags...)
	}
}

func message2(b *v2.MessageBuilder, msg *messageModel) {
	b.WithMessageID(msg.name).WithName(msg.name).WithTitle(msg.title)
	if msg.payloadComponent != "" {
		b.WithPayloadRef(asyncapi.ComponentRef(asyncapi.ComponentSchemas, msg.payloadComponent))
	} else {
		b.WithPayload(msg.payload)
	}
	if msg.headers != nil {
		b.WithHeaders(msg.headers)
	}
	if msg.summary != "" {
		b.WithSummary(msg.summary)
	}
	if msg.description != "" {
		b.WithDescription(msg.description)
	}
	if msg.contentType != "" {
		b.WithContentType(msg.contentType)
	}
	if len(msg.tags) > 0 {
		b.WithTags(msg.tags...)
	}
	if msg.externalDocs != "" {
		b.WithExternalDocumentation(msg.externalDocs, "")
	}
	if msg.bindings != "" {
		b.WithBindingsRef(asyncapi.ComponentRef(asyncapi.ComponentMessageBindings, msg.bindings))
	}
	for _, ex := range msg.examples {
		b.WithExample(ex)
	}
}

func operationIDs(ops []*operationModel) []string {
	out := make([]string, 0, len(ops))
	for _, op := range ops {
		out = append(out, op.id)
	}
	return out
}
