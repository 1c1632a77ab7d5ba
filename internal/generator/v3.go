package generator

import (
	"fmt"

	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/builder"
	v3 "github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/v3"
)

// GenerateV3 builds the AsyncAPI 3.0 document of the marked type def. Messages are
// message components referenced by their channels; named payload types are
// schema components.
func (g *Generator) GenerateV3(def *domain.TypeSpecDef) (*v3.Document, error) {
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

	provider := v3.NewProvider(v3.WithDocumentValidator(builder.ValidatorFunc[*v3.Document](ValidateV3Schemas)))
	doc := provider.NewDocument().
		WithAsyncAPI(asyncapi.Version3).
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
		doc.WithServer(s.Name, func(b *v3.ServerBuilder) {
			b.WithHost(s.Host).WithProtocol(s.Protocol, s.ProtocolVersion).WithPathname(s.Pathname)
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
		doc.WithSecuritySchemeComponent(s.Name, securitySchemeSetup(s, 3))
	}
	for _, c := range components {
		doc.WithBindingsComponent(c.name, c.collection)
	}
	for _, name := range model.schema.names {
		doc.WithSchemaComponent(name, model.schema.schemas[name])
	}
	for _, msg := range model.messages {
		msg := msg
		doc.WithMessageComponent(msg.name, func(b *v3.MessageBuilder) { message3(b, msg) })
	}

	for _, ch := range model.channels {
		ch := ch
		doc.WithChannel(ch.name, func(b *v3.ChannelBuilder) { channel3(b, ch) })
		for _, op := range ch.operations {
			op := op
			doc.WithOperation(op.id, func(b *v3.OperationBuilder) { operation3(b, ch, op) })
		}
	}

	built, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", def.TypeName(), err)
	}
	return built, nil
}

func channel3(b *v3.ChannelBuilder, ch *channelModel) {
	b.WithAddress(ch.address())
	if ch.marker.Title != "" {
		b.WithTitle(ch.marker.Title)
	}
	if ch.marker.Summary != "" {
		b.WithSummary(ch.marker.Summary)
	}
	if ch.marker.Description != "" {
		b.WithDescription(ch.marker.Description)
	}
	if len(ch.marker.Servers) > 0 {
		b.WithServers(ch.marker.Servers...)
	}
	if len(ch.marker.Tags) > 0 {
		b.WithTags(ch.marker.Tags...)
	}
	if ch.marker.ExternalDocs != "" {
		b.WithExternalDocumentation(ch.marker.ExternalDocs, "")
	}
	if ch.marker.Bindings != "" {
		b.WithBindingsRef(asyncapi.ComponentRef(asyncapi.ComponentChannelBindings, ch.marker.Bindings))
	}
	for _, p := range ch.parameters {
		p := p
		b.WithParameter(p.Name, func(pb *v3.ParameterBuilder) {
			if p.Description != "" {
				pb.WithDescription(p.Description)
			}
		})
	}
	for _, msg := range channelMessages(ch) {
		b.WithMessageRef(msg.name, asyncapi.ComponentRef(asyncapi.ComponentMessages, msg.name))
	}
}

func operation3(b *v3.OperationBuilder, ch *channelModel, op *operationModel) {
	b.WithAction(op.action).WithChannel(ch.name)
	if op.message != nil {
		b.WithMessage(asyncapi.ChannelMessageRef(ch.name, op.message.name))
	}
	if op.title != "" {
		b.WithTitle(op.title)
	}
	if op.summary != "" {
		b.WithSummary(op.summary)
	}
	if op.description != "" {
		b.WithDescription(op.description)
	}
	if len(op.tags) > 0 {
		b.WithTags(op.tags...)
	}
	if op.externalDocs != "" {
		b.WithExternalDocumentation(op.externalDocs, "")
	}
	if op.bindings != "" {
		b.WithBindingsRef(asyncapi.ComponentRef(asyncapi.ComponentOperationBindings, op.bindings))
	}
	for _, name := range asyncapi.SortedKeys(op.security) {
		b.WithSecurity(name)
	}
}

func message3(b *v3.MessageBuilder, msg *messageModel) {
	b.WithName(msg.name).WithTitle(msg.title)
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
