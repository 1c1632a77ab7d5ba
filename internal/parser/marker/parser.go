package marker

import (
	"fmt"
	"go/ast"
	"strconv"
	"strings"

	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/bindings"
)

var bindingKinds = map[string]bindings.Kind{
	"@serverbindings":    bindings.KindServer,
	"@channelbindings":   bindings.KindChannel,
	"@operationbindings": bindings.KindOperation,
	"@messagebindings":   bindings.KindMessage,
}

// IsMarked reports whether doc carries the @AsyncAPI marker, without reading the
// other annotations.
func IsMarked(doc *ast.CommentGroup) bool {
	for _, commentLine := range commentLines(doc) {
		if !strings.HasPrefix(commentLine, "@") {
			continue
		}
		if strings.EqualFold(fieldsByAnySpace(commentLine, 2)[0], "@asyncapi") {
			return true
		}
	}
	return false
}

// ParseType parses the type-level annotations of doc.
func ParseType(doc *ast.CommentGroup) (*TypeMarker, error) {
	m := &TypeMarker{}
	msg := &MessageMarker{}
	previousAttribute := ""

	for _, commentLine := range commentLines(doc) {
		if !strings.HasPrefix(commentLine, "@") {
			continue
		}
		fields := fieldsByAnySpace(commentLine, 2)
		attribute := strings.ToLower(fields[0])
		var value string
		if len(fields) > 1 {
			value = fields[1]
		}

		switch attribute {
		case "@asyncapi":
			m.Marked = true
			m.ID = value
		case "@title":
			m.Title = value
		case "@version":
			m.Version = value
		case "@description":
			if previousAttribute == attribute {
				m.Description = appendDescription(m.Description, value)
			} else {
				m.Description = value
			}
		case "@termsofservice":
			m.TermsOfService = value
		case "@license.name":
			m.LicenseName = value
		case "@license.url":
			m.LicenseURL = value
		case "@contact.name":
			m.ContactName = value
		case "@contact.url":
			m.ContactURL = value
		case "@contact.email":
			m.ContactEmail = value
		case "@tags":
			m.Tags = append(m.Tags, splitList(value)...)
		case "@externaldocs":
			m.ExternalDocs = value
		case "@defaultcontenttype":
			contentType, ok := parseMimeType(value)
			if !ok {
				return nil, fmt.Errorf("%s: unknown content type %q: %w", fields[0], value, asyncapi.ErrConfiguration)
			}
			m.DefaultContentType = contentType
		case "@server":
			parts := fieldsByAnySpace(value, 4)
			if len(parts) < 3 {
				return nil, fmt.Errorf("%s needs a name, a protocol and a host: %w", fields[0], asyncapi.ErrConfiguration)
			}
			server := ServerMarker{Name: parts[0], Protocol: parts[1], Host: parts[2]}
			if len(parts) > 3 {
				server.Description = parts[3]
			}
			m.Servers = append(m.Servers, server)
		case "@securityscheme":
			parts := fieldsByAnySpace(value, 3)
			if len(parts) < 2 {
				return nil, fmt.Errorf("%s needs a name and a type: %w", fields[0], asyncapi.ErrConfiguration)
			}
			if !asyncapi.IsSecuritySchemeType(parts[1]) {
				return nil, fmt.Errorf("%s: unknown security scheme type %q: %w", fields[0], parts[1], asyncapi.ErrConfiguration)
			}
			scheme := SecuritySchemeMarker{Name: parts[0], Type: parts[1]}
			if len(parts) > 2 {
				scheme.Description = parts[2]
			}
			m.SecuritySchemes = append(m.SecuritySchemes, scheme)
		case "@serverbindings", "@channelbindings", "@operationbindings", "@messagebindings":
			binding, err := parseBinding(bindingKinds[attribute], fields[0], value)
			if err != nil {
				return nil, err
			}
			m.Bindings = append(m.Bindings, binding)
		default:
			if strings.HasPrefix(attribute, "@message.") {
				if err := setMessage(msg, attribute, fields[0], value); err != nil {
					return nil, err
				}
			}
		}
		previousAttribute = attribute
	}

	if !msg.IsZero() {
		m.Message = msg
	}
	return m, nil
}

// ParseMethod parses the method-level annotations of doc. A method without
// @Operation yields a marker whose Operation is nil.
func ParseMethod(doc *ast.CommentGroup) (*MethodMarker, error) {
	m := &MethodMarker{
		Excluded: map[string]bool{},
		Required: map[string]bool{},
		Defaults: map[string]string{},
		Doc:      DocText(doc),
	}
	msg := &MessageMarker{}
	var op *OperationMarker
	operation := func() *OperationMarker {
		if op == nil {
			op = &OperationMarker{}
		}
		return op
	}
	previousAttribute := ""

	for _, commentLine := range commentLines(doc) {
		if !strings.HasPrefix(commentLine, "@") {
			continue
		}
		fields := fieldsByAnySpace(commentLine, 2)
		attribute := strings.ToLower(fields[0])
		var value string
		if len(fields) > 1 {
			value = fields[1]
		}

		switch {
		case attribute == "@channel" || strings.HasPrefix(attribute, "@channel."):
			if err := setChannel(&m.Channel, attribute, previousAttribute, fields[0], value); err != nil {
				return nil, err
			}
		case attribute == "@operation":
			action, err := ParseAction(value)
			if err != nil {
				return nil, err
			}
			operation().Action = action
		case strings.HasPrefix(attribute, "@operation."):
			if err := setOperation(operation(), attribute, previousAttribute, fields[0], value); err != nil {
				return nil, err
			}
		case strings.HasPrefix(attribute, "@message."):
			if err := setMessage(msg, attribute, fields[0], value); err != nil {
				return nil, err
			}
		case attribute == "@param.exclude":
			m.Excluded[value] = true
		case attribute == "@param.required":
			m.Required[value] = true
		case attribute == "@param.default":
			parts := fieldsByAnySpace(value, 2)
			if len(parts) < 2 {
				return nil, fmt.Errorf("%s needs a parameter and a value: %w", fields[0], asyncapi.ErrConfiguration)
			}
			m.Defaults[parts[0]] = parts[1]
		}
		previousAttribute = attribute
	}

	if op != nil && op.Action == "" {
		return nil, fmt.Errorf("operation attributes without @Operation action: %w", asyncapi.ErrConfiguration)
	}
	m.Operation = op
	if !msg.IsZero() {
		m.Message = msg
	}
	return m, nil
}

// ParseAction normalizes an operation action. 2.x publish is what the application
// receives; 2.x subscribe is what it sends.
func ParseAction(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "send", "subscribe":
		return ActionSend, nil
	case "receive", "publish":
		return ActionReceive, nil
	}
	return "", fmt.Errorf("unsupported operation action %q: %w", value, asyncapi.ErrConfiguration)
}

func setChannel(c *ChannelMarker, attribute, previousAttribute, raw, value string) error {
	switch attribute {
	case "@channel":
		c.Name = value
	case "@channel.address":
		c.Address = value
	case "@channel.title":
		c.Title = value
	case "@channel.summary":
		c.Summary = value
	case "@channel.description":
		if previousAttribute == attribute {
			c.Description = appendDescription(c.Description, value)
		} else {
			c.Description = value
		}
	case "@channel.servers":
		c.Servers = append(c.Servers, splitList(value)...)
	case "@channel.bindings":
		c.Bindings = value
	case "@channel.tags":
		c.Tags = append(c.Tags, splitList(value)...)
	case "@channel.externaldocs":
		c.ExternalDocs = value
	case "@channel.parameter":
		parts := fieldsByAnySpace(value, 2)
		if len(parts) == 0 {
			return fmt.Errorf("%s needs a name: %w", raw, asyncapi.ErrConfiguration)
		}
		p := ParameterMarker{Name: parts[0]}
		if len(parts) > 1 {
			p.Description = parts[1]
		}
		c.Parameters = append(c.Parameters, p)
	default:
		return fmt.Errorf("unknown channel attribute %s: %w", raw, asyncapi.ErrConfiguration)
	}
	return nil
}

func setOperation(op *OperationMarker, attribute, previousAttribute, raw, value string) error {
	switch attribute {
	case "@operation.id":
		op.ID = value
	case "@operation.title":
		op.Title = value
	case "@operation.summary":
		op.Summary = value
	case "@operation.description":
		if previousAttribute == attribute {
			op.Description = appendDescription(op.Description, value)
		} else {
			op.Description = value
		}
	case "@operation.channel":
		op.Channel = value
	case "@operation.message":
		op.Message = value
	case "@operation.payload":
		op.Payload = value
	case "@operation.headers":
		op.Headers = value
	case "@operation.bindings":
		op.Bindings = value
	case "@operation.tags":
		op.Tags = append(op.Tags, splitList(value)...)
	case "@operation.externaldocs":
		op.ExternalDocs = value
	case "@operation.security":
		if op.Security == nil {
			op.Security = map[string][]string{}
		}
		for name, scopes := range parseSecurity(value) {
			if existing, ok := op.Security[name]; ok {
				scopes = append(existing, scopes...)
			}
			op.Security[name] = scopes
		}
	default:
		return fmt.Errorf("unknown operation attribute %s: %w", raw, asyncapi.ErrConfiguration)
	}
	if op.Message != "" && op.Payload != "" {
		return fmt.Errorf("@Operation.Message and @Operation.Payload are exclusive: %w", asyncapi.ErrConfiguration)
	}
	return nil
}

func setMessage(m *MessageMarker, attribute, raw, value string) error {
	switch attribute {
	case "@message.name":
		m.Name = value
	case "@message.title":
		m.Title = value
	case "@message.summary":
		m.Summary = value
	case "@message.description":
		m.Description = appendDescription(m.Description, value)
	case "@message.contenttype":
		contentType, ok := parseMimeType(value)
		if !ok {
			return fmt.Errorf("%s: unknown content type %q: %w", raw, value, asyncapi.ErrConfiguration)
		}
		m.ContentType = contentType
	case "@message.payload":
		m.Payload = value
	case "@message.headers":
		m.Headers = value
	case "@message.bindings":
		m.Bindings = value
	case "@message.tags":
		m.Tags = append(m.Tags, splitList(value)...)
	case "@message.externaldocs":
		m.ExternalDocs = value
	default:
		return fmt.Errorf("unknown message attribute %s: %w", raw, asyncapi.ErrConfiguration)
	}
	return nil
}

// parseBinding parses "<component> <protocol> key=value...".
func parseBinding(kind bindings.Kind, raw, value string) (BindingMarker, error) {
	parts := strings.Fields(value)
	if len(parts) < 2 {
		return BindingMarker{}, fmt.Errorf("%s needs a component name and a protocol: %w", raw, asyncapi.ErrConfiguration)
	}
	protocol, ok := bindings.ParseProtocol(parts[1])
	if !ok {
		return BindingMarker{}, fmt.Errorf("%s: protocol %q: %w", raw, parts[1], asyncapi.ErrUnsupportedProtocol)
	}
	b := BindingMarker{
		Kind:       kind,
		Name:       parts[0],
		Protocol:   protocol,
		Properties: map[string]interface{}{},
	}
	for _, pair := range parts[2:] {
		key, val, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return BindingMarker{}, fmt.Errorf("%s: malformed property %q: %w", raw, pair, asyncapi.ErrConfiguration)
		}
		b.Properties[key] = propertyValue(val)
	}
	return b, nil
}

func propertyValue(s string) interface{} {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
