package generator

import (
	"fmt"
	"regexp"

	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"github.com/neuroglia-io/asyncapi-sub001/internal/parser/marker"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
)

var addressParameter = regexp.MustCompile(`\{([^}]+)\}`)

// describe reads the annotations of def and of its methods. It fails with
// ErrConfiguration when def is not marked with @AsyncAPI.
func (g *Generator) describe(def *domain.TypeSpecDef) (*apiModel, error) {
	if def == nil || def.TypeSpec == nil {
		return nil, fmt.Errorf("type definition is nil: %w", asyncapi.ErrInvalidArgument)
	}
	info, err := marker.ParseType(def.Doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", def.TypeName(), err)
	}
	if !info.Marked {
		return nil, fmt.Errorf("type %s has no @AsyncAPI marker: %w", def.TypeName(), asyncapi.ErrConfiguration)
	}

	model := &apiModel{
		def:  def,
		info: info,
		doc:  marker.DocText(def.Doc),
	}

	type messageRef struct {
		op   *operationModel
		name string
	}
	var refs []messageRef
	ids := map[string]string{}

	for _, method := range g.registry.MethodsOf(def) {
		mm, err := marker.ParseMethod(method.Decl.Doc)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", def.Name(), method.Name(), err)
		}
		if mm.Operation == nil {
			if mm.Channel.Name != "" {
				g.debug.Printf("%s.%s: @Channel without @Operation, skipped", def.Name(), method.Name())
			}
			continue
		}
		channelName := mm.ChannelName()
		if channelName == "" {
			return nil, fmt.Errorf("%s.%s: operation has no channel: %w", def.Name(), method.Name(), asyncapi.ErrConfiguration)
		}

		op := newOperationModel(method, mm)
		if other, ok := ids[op.id]; ok {
			return nil, fmt.Errorf("%s.%s: operation id %q already used by %s: %w",
				def.Name(), method.Name(), op.id, other, asyncapi.ErrConfiguration)
		}
		ids[op.id] = method.Name()

		ch := model.channel(channelName)
		ch.mergeChannel(mm.Channel)
		ch.operations = append(ch.operations, op)

		if mm.Operation.Message != "" {
			refs = append(refs, messageRef{op: op, name: mm.Operation.Message})
			continue
		}
		msg, err := g.messageFor(model, method, mm, op)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", def.Name(), method.Name(), err)
		}
		op.message = msg
	}

	for _, ref := range refs {
		msg := model.message(ref.name)
		if msg == nil {
			return nil, fmt.Errorf("%s.%s: message %q is not inferred by any operation: %w",
				def.Name(), ref.op.method, ref.name, asyncapi.ErrConfiguration)
		}
		ref.op.message = msg
	}

	if len(model.channels) == 0 {
		return nil, fmt.Errorf("type %s declares no operation: %w", def.TypeName(), asyncapi.ErrConfiguration)
	}
	for _, ch := range model.channels {
		for _, m := range addressParameter.FindAllStringSubmatch(ch.address(), -1) {
			ch.addParameter(marker.ParameterMarker{Name: m[1]})
		}
	}
	return model, nil
}

func newOperationModel(method *domain.MethodDef, mm *marker.MethodMarker) *operationModel {
	o := mm.Operation
	op := &operationModel{
		id:           o.ID,
		method:       method.Name(),
		action:       o.Action,
		title:        o.Title,
		summary:      o.Summary,
		description:  o.Description,
		tags:         o.Tags,
		externalDocs: o.ExternalDocs,
		bindings:     o.Bindings,
		security:     o.Security,
	}
	if op.id == "" {
		op.id = OperationID(method.Name())
	}
	if op.description == "" {
		op.description = mm.Doc
	}
	if op.summary == "" {
		op.summary = op.description
	}
	return op
}

// messageFor infers the message of an operation method. Identity comes from the
// method annotations, then from the payload type annotations, then from the
// payload type name.
func (g *Generator) messageFor(model *apiModel, method *domain.MethodDef, mm *marker.MethodMarker, op *operationModel) (*messageModel, error) {
	p, err := g.inferPayload(method, mm)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}

	msg := &messageModel{payload: p.schema, def: p.def}
	var typeMessage *marker.MessageMarker
	if p.def != nil {
		tm, err := marker.ParseType(p.def.Doc)
		if err != nil {
			return nil, fmt.Errorf("payload type %s: %w", p.def.TypeName(), err)
		}
		typeMessage = tm.Message
		if g.registry.CheckTypeSpec(p.def) {
			g.debug.Printf("%s: payload type %s customizes its JSON encoding", op.id, p.def.TypeName())
		}
	}
	msg.apply(typeMessage)
	msg.apply(mm.Message)

	if msg.name == "" {
		if p.def != nil {
			msg.name = MessageName(p.def.Name())
		} else {
			msg.name = op.id + "Message"
		}
	}
	if msg.title == "" {
		if p.def != nil {
			msg.title = Humanize(p.def.Name())
		} else {
			msg.title = Humanize(op.method)
		}
	}

	if existing := model.message(msg.name); existing != nil {
		if existing.def != nil && existing.def == msg.def {
			return existing, nil
		}
		return nil, fmt.Errorf("message name %q is inferred twice from different payloads: %w", msg.name, asyncapi.ErrConfiguration)
	}

	switch {
	case mm.Operation.Headers != "":
		msg.headers, err = g.headersSchema(mm.Operation.Headers, method.File)
	case mm.Message != nil && mm.Message.Headers != "":
		msg.headers, err = g.headersSchema(mm.Message.Headers, method.File)
	case typeMessage != nil && typeMessage.Headers != "":
		msg.headers, err = g.headersSchema(typeMessage.Headers, p.def.File)
	}
	if err != nil {
		return nil, err
	}

	if p.def != nil {
		msg.payloadComponent = model.schema.add(p.def, p.schema)
	}
	if err := g.addExamples(msg); err != nil {
		return nil, err
	}
	model.messages = append(model.messages, msg)
	return msg, nil
}

// apply copies the non-empty annotations of m onto msg.
func (msg *messageModel) apply(m *marker.MessageMarker) {
	if m.IsZero() {
		return
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&msg.name, m.Name)
	set(&msg.title, m.Title)
	set(&msg.summary, m.Summary)
	set(&msg.description, m.Description)
	set(&msg.contentType, m.ContentType)
	set(&msg.externalDocs, m.ExternalDocs)
	set(&msg.bindings, m.Bindings)
	msg.tags = union(msg.tags, m.Tags)
}
