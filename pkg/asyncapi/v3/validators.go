package v3

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/builder"
)

var (
	supportedVersions = mustConstraint(">= 3.0.0, < 4.0.0")
	addressParameter  = regexp.MustCompile(`\{([^{}]+)\}`)
)

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}

// DefaultDocumentValidators returns the validators every document runs by default.
func DefaultDocumentValidators() builder.Validators[*Document] {
	return builder.Validators[*Document]{
		builder.ValidatorFunc[*Document](ValidateDocumentVersion),
		builder.ValidatorFunc[*Document](ValidateDocumentInfo),
		builder.ValidatorFunc[*Document](ValidateDocumentChannels),
		builder.ValidatorFunc[*Document](ValidateDocumentOperations),
		builder.ValidatorFunc[*Document](ValidateComponentKeys),
		builder.ValidatorFunc[*Document](ValidateReferences),
	}
}

// ValidateDocumentVersion requires a 3.x semantic version.
func ValidateDocumentVersion(doc *Document) []asyncapi.Violation {
	v, err := semver.NewVersion(doc.AsyncAPI)
	if err != nil {
		return []asyncapi.Violation{asyncapi.Violationf("asyncapi", "%q is not a semantic version", doc.AsyncAPI)}
	}
	if !supportedVersions.Check(v) {
		return []asyncapi.Violation{asyncapi.Violationf("asyncapi", "version %s is not a 3.x version", v)}
	}
	return nil
}

// ValidateDocumentInfo requires the info title and version.
func ValidateDocumentInfo(doc *Document) []asyncapi.Violation {
	var out []asyncapi.Violation
	if strings.TrimSpace(doc.Info.Title) == "" {
		out = append(out, asyncapi.Violationf("info.title", "is required"))
	}
	if strings.TrimSpace(doc.Info.Version) == "" {
		out = append(out, asyncapi.Violationf("info.version", "is required"))
	}
	return out
}

// ValidateDocumentChannels requires at least one channel.
func ValidateDocumentChannels(doc *Document) []asyncapi.Violation {
	if len(doc.Channels) == 0 {
		return []asyncapi.Violation{asyncapi.Violationf("channels", "at least one channel is required")}
	}
	return nil
}

// ValidateDocumentOperations requires at least one operation and checks that every
// operation message belongs to the operation channel.
func ValidateDocumentOperations(doc *Document) []asyncapi.Violation {
	if len(doc.Operations) == 0 {
		return []asyncapi.Violation{asyncapi.Violationf("operations", "at least one operation is required")}
	}
	var out []asyncapi.Violation
	for _, name := range asyncapi.SortedKeys(doc.Operations) {
		op := doc.Operations[name]
		if op.Ref != "" || op.Channel == nil || !strings.HasPrefix(op.Channel.Ref, "#/channels/") {
			continue
		}
		prefix := op.Channel.Ref + "/messages/"
		for i, msg := range op.Messages {
			if !strings.HasPrefix(msg.Ref, prefix) {
				out = append(out, asyncapi.Violationf("operations."+name+".messages."+strconv.Itoa(i),
					"message %q is not a message of channel %q", msg.Ref, op.Channel.Ref))
			}
		}
	}
	return out
}

// ValidateComponentKeys requires every component key to match ^[a-zA-Z0-9.\-_]+$.
func ValidateComponentKeys(doc *Document) []asyncapi.Violation {
	if doc.Components == nil {
		return nil
	}
	var out []asyncapi.Violation
	keys := doc.Components.keys()
	for _, kind := range asyncapi.SortedKeys(keys) {
		for _, key := range keys[kind] {
			if !asyncapi.IsValidComponentKey(key) {
				out = append(out, asyncapi.Violationf("components."+kind+"."+key, "invalid component key"))
			}
		}
	}
	return out
}

// ValidateReferences requires every reference token to resolve.
func ValidateReferences(doc *Document) []asyncapi.Violation {
	return asyncapi.UnresolvedRefs(doc)
}

// ValidateServer requires the host and the protocol.
func ValidateServer(s *Server) []asyncapi.Violation {
	if s.Ref != "" {
		return nil
	}
	var out []asyncapi.Violation
	if s.Host == "" {
		out = append(out, asyncapi.Violationf("host", "is required"))
	}
	if s.Protocol == "" {
		out = append(out, asyncapi.Violationf("protocol", "is required"))
	}
	return out
}

// ValidateChannel checks message keys and requires every address parameter to be declared.
func ValidateChannel(c *Channel) []asyncapi.Violation {
	if c.Ref != "" {
		return nil
	}
	var out []asyncapi.Violation
	for _, name := range asyncapi.SortedKeys(c.Messages) {
		if !asyncapi.IsValidComponentKey(name) {
			out = append(out, asyncapi.Violationf("messages."+name, "invalid message key"))
		}
	}
	if c.Address != nil {
		for _, m := range addressParameter.FindAllStringSubmatch(*c.Address, -1) {
			if _, ok := c.Parameters[m[1]]; !ok {
				out = append(out, asyncapi.Violationf("parameters."+m[1], "address parameter is not declared"))
			}
		}
	}
	return out
}

// ValidateParameter checks the location runtime expression.
func ValidateParameter(p *Parameter) []asyncapi.Violation {
	if p.Location != "" && !strings.HasPrefix(p.Location, "$message.") {
		return []asyncapi.Violation{asyncapi.Violationf("location", "%q is not a $message runtime expression", p.Location)}
	}
	return nil
}

// ValidateOperation requires a send or receive action and a channel reference.
func ValidateOperation(op *Operation) []asyncapi.Violation {
	if op.Ref != "" {
		return nil
	}
	var out []asyncapi.Violation
	if op.Action != ActionSend && op.Action != ActionReceive {
		out = append(out, asyncapi.Violationf("action", "must be %s or %s, got %q", ActionSend, ActionReceive, op.Action))
	}
	if op.Channel == nil || op.Channel.Ref == "" {
		out = append(out, asyncapi.Violationf("channel", "is required"))
	}
	return out
}

// ValidateOperationReply checks the reply address runtime expression.
func ValidateOperationReply(r *OperationReply) []asyncapi.Violation {
	if r.Address != nil && !strings.HasPrefix(r.Address.Location, "$message.") {
		return []asyncapi.Violation{asyncapi.Violationf("address.location", "%q is not a $message runtime expression", r.Address.Location)}
	}
	return nil
}

// ValidateMessage requires a payload and a well formed content type.
func ValidateMessage(m *Message) []asyncapi.Violation {
	if m.Ref != "" {
		return nil
	}
	var out []asyncapi.Violation
	if m.Payload == nil {
		out = append(out, asyncapi.Violationf("payload", "is required"))
	}
	return append(out, builder.ValidateContentType("contentType", m.ContentType)...)
}

// ValidateMessageTrait checks the content type.
func ValidateMessageTrait(m *MessageTrait) []asyncapi.Violation {
	return builder.ValidateContentType("contentType", m.ContentType)
}
