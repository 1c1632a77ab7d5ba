package v2

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/builder"
)

var supportedVersions = func() *semver.Constraints {
	c, err := semver.NewConstraint(">= 2.0.0, < 3.0.0")
	if err != nil {
		panic(err)
	}
	return c
}()

// DefaultDocumentValidators returns the validators every document runs by default.
func DefaultDocumentValidators() builder.Validators[*Document] {
	return builder.Validators[*Document]{
		builder.ValidatorFunc[*Document](ValidateDocumentVersion),
		builder.ValidatorFunc[*Document](ValidateDocumentInfo),
		builder.ValidatorFunc[*Document](ValidateDocumentChannels),
		builder.ValidatorFunc[*Document](ValidateOperationIDs),
		builder.ValidatorFunc[*Document](ValidateComponentKeys),
		builder.ValidatorFunc[*Document](ValidateReferences),
	}
}

// ValidateDocumentVersion requires a 2.x semantic version.
func ValidateDocumentVersion(doc *Document) []asyncapi.Violation {
	v, err := semver.NewVersion(doc.AsyncAPI)
	if err != nil {
		return []asyncapi.Violation{asyncapi.Violationf("asyncapi", "%q is not a semantic version", doc.AsyncAPI)}
	}
	if !supportedVersions.Check(v) {
		return []asyncapi.Violation{asyncapi.Violationf("asyncapi", "version %s is not a 2.x version", v)}
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

// ValidateOperationIDs requires operation identifiers to be unique in the document.
func ValidateOperationIDs(doc *Document) []asyncapi.Violation {
	var out []asyncapi.Violation
	seen := make(map[string]string)
	ops := doc.Operations()
	for _, key := range asyncapi.SortedKeys(ops) {
		id := ops[key].OperationID
		if id == "" {
			continue
		}
		if first, ok := seen[id]; ok {
			out = append(out, asyncapi.Violationf("channels."+key+".operationId", "%q is already used by %s", id, first))
			continue
		}
		seen[id] = key
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

// ValidateServer requires the URL and the protocol.
func ValidateServer(s *Server) []asyncapi.Violation {
	if s.Ref != "" {
		return nil
	}
	var out []asyncapi.Violation
	if s.URL == "" {
		out = append(out, asyncapi.Violationf("url", "is required"))
	}
	if s.Protocol == "" {
		out = append(out, asyncapi.Violationf("protocol", "is required"))
	}
	return out
}

// ValidateChannel requires a publish or a subscribe operation.
func ValidateChannel(c *Channel) []asyncapi.Violation {
	if c.Ref != "" {
		return nil
	}
	if c.Publish == nil && c.Subscribe == nil {
		return []asyncapi.Violation{asyncapi.Violationf("", "publish or subscribe is required")}
	}
	return nil
}

// ValidateParameter checks the location runtime expression.
func ValidateParameter(p *Parameter) []asyncapi.Violation {
	if p.Location != "" && !strings.HasPrefix(p.Location, "$message.") {
		return []asyncapi.Violation{asyncapi.Violationf("location", "%q is not a $message runtime expression", p.Location)}
	}
	return nil
}

// ValidateMessage requires a payload and a well formed content type.
func ValidateMessage(m *Message) []asyncapi.Violation {
	if m.Ref != "" || len(m.OneOf) > 0 {
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
