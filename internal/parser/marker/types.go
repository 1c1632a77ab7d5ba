// Package marker parses the AsyncAPI annotations written in Go doc comments on
// types and methods.
package marker

import "github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/bindings"

// Operation actions.
const (
	ActionSend    = "send"
	ActionReceive = "receive"
)

// TypeMarker holds the type-level annotations of a declaration.
type TypeMarker struct {
	// Marked reports whether the type carries @AsyncAPI.
	Marked bool

	ID                 string
	Title              string
	Version            string
	Description        string
	TermsOfService     string
	LicenseName        string
	LicenseURL         string
	ContactName        string
	ContactURL         string
	ContactEmail       string
	Tags               []string
	ExternalDocs       string
	DefaultContentType string

	Servers         []ServerMarker
	SecuritySchemes []SecuritySchemeMarker
	Bindings        []BindingMarker

	// Message identity declared on a payload type.
	Message *MessageMarker
}

// ServerMarker declares a server of the document.
type ServerMarker struct {
	Name        string
	Protocol    string
	Host        string
	Description string
}

// SecuritySchemeMarker declares a security scheme component.
type SecuritySchemeMarker struct {
	Name        string
	Type        string
	Description string
}

// BindingMarker declares one binding of a bindings component.
type BindingMarker struct {
	Kind       bindings.Kind
	Name       string
	Protocol   bindings.Protocol
	Properties map[string]interface{}
}

// ChannelMarker holds the channel membership of a method.
type ChannelMarker struct {
	Name         string
	Address      string
	Title        string
	Summary      string
	Description  string
	Servers      []string
	Bindings     string
	Tags         []string
	ExternalDocs string
	Parameters   []ParameterMarker
}

// ParameterMarker declares a channel address parameter.
type ParameterMarker struct {
	Name        string
	Description string
}

// OperationMarker holds the operation membership of a method.
type OperationMarker struct {
	// Action is normalized to send or receive.
	Action       string
	ID           string
	Title        string
	Summary      string
	Description  string
	Channel      string
	Message      string
	Payload      string
	Headers      string
	Bindings     string
	Tags         []string
	ExternalDocs string
	Security     map[string][]string
}

// MessageMarker holds message identity annotations.
type MessageMarker struct {
	Name         string
	Title        string
	Summary      string
	Description  string
	ContentType  string
	Payload      string
	Headers      string
	Bindings     string
	Tags         []string
	ExternalDocs string
}

// IsZero reports whether no message annotation was given.
func (m *MessageMarker) IsZero() bool {
	return m == nil || (m.Name == "" && m.Title == "" && m.Summary == "" && m.Description == "" &&
		m.ContentType == "" && m.Payload == "" && m.Headers == "" && m.Bindings == "" &&
		len(m.Tags) == 0 && m.ExternalDocs == "")
}

// MethodMarker holds the annotations of a method.
type MethodMarker struct {
	Channel   ChannelMarker
	Operation *OperationMarker
	Message   *MessageMarker

	Excluded map[string]bool
	Required map[string]bool
	Defaults map[string]string

	// Doc is the comment text without annotation lines.
	Doc string
}

// ChannelName returns the channel the operation belongs to.
func (m *MethodMarker) ChannelName() string {
	if m.Operation != nil && m.Operation.Channel != "" {
		return m.Operation.Channel
	}
	return m.Channel.Name
}
