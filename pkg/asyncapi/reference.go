package asyncapi

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-openapi/spec"
)

// Component kinds as they appear in reference tokens.
const (
	ComponentSchemas           = "schemas"
	ComponentServers           = "servers"
	ComponentServerVariables   = "serverVariables"
	ComponentChannels          = "channels"
	ComponentOperations        = "operations"
	ComponentMessages          = "messages"
	ComponentSecuritySchemes   = "securitySchemes"
	ComponentParameters        = "parameters"
	ComponentCorrelationIDs    = "correlationIds"
	ComponentReplies           = "replies"
	ComponentReplyAddresses    = "replyAddresses"
	ComponentExternalDocs      = "externalDocs"
	ComponentTags              = "tags"
	ComponentOperationTraits   = "operationTraits"
	ComponentMessageTraits     = "messageTraits"
	ComponentServerBindings    = "serverBindings"
	ComponentChannelBindings   = "channelBindings"
	ComponentOperationBindings = "operationBindings"
	ComponentMessageBindings   = "messageBindings"
)

// componentKeyPattern is the key pattern the AsyncAPI specification mandates for
// every components map.
var componentKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9.\-_]+$`)

// Reference is a bare reference object.
type Reference struct {
	Ref string `json:"$ref"`
}

// NewReference creates a reference object for the given token.
func NewReference(ref string) *Reference {
	return &Reference{Ref: ref}
}

// ComponentRef returns the reference token of a named component.
func ComponentRef(kind, name string) string {
	return "#/components/" + kind + "/" + escapeToken(name)
}

// ChannelRef returns the reference token of a channel (3.x only).
func ChannelRef(name string) string {
	return "#/channels/" + escapeToken(name)
}

// ServerRef returns the reference token of a server (3.x only).
func ServerRef(name string) string {
	return "#/servers/" + escapeToken(name)
}

// OperationRef returns the reference token of an operation (3.x only).
func OperationRef(name string) string {
	return "#/operations/" + escapeToken(name)
}

// ChannelMessageRef returns the reference token of a message owned by a channel (3.x only).
func ChannelMessageRef(channel, message string) string {
	return ChannelRef(channel) + "/messages/" + escapeToken(message)
}

// IsValidComponentKey reports whether name can be used as a components map key.
func IsValidComponentKey(name string) bool {
	return componentKeyPattern.MatchString(name)
}

// ValidateRef checks the syntactic shape of a reference token. Tokens are never
// dereferenced here; resolution is performed by document validators.
func ValidateRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("empty reference: %w", ErrInvalidArgument)
	}
	parsed, err := spec.NewRef(ref)
	if err != nil {
		return fmt.Errorf("malformed reference %q: %v: %w", ref, err, ErrInvalidArgument)
	}
	if parsed.HasFragmentOnly && !strings.HasPrefix(ref, "#/") {
		return fmt.Errorf("malformed reference %q: fragment must be a JSON pointer: %w", ref, ErrInvalidArgument)
	}
	return nil
}

// IsLocalRef reports whether ref points inside the current document.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "#/")
}

// RefSegments splits a local reference token into its unescaped JSON pointer segments.
func RefSegments(ref string) []string {
	path := strings.TrimPrefix(ref, "#/")
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = unescapeToken(p)
	}
	return parts
}

func escapeToken(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

func unescapeToken(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
