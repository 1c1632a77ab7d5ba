// Package v2 models AsyncAPI 2.6 documents and provides the builders that assemble
// and validate them.
package v2

import (
	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/bindings"
)

// SecurityRequirement maps security scheme names to the scopes they require.
type SecurityRequirement map[string][]string

// Document is the root of an AsyncAPI 2.x document.
type Document struct {
	AsyncAPI           string                          `json:"asyncapi"`
	ID                 string                          `json:"id,omitempty"`
	Info               Info                            `json:"info"`
	Servers            map[string]*Server              `json:"servers,omitempty"`
	DefaultContentType string                          `json:"defaultContentType,omitempty"`
	Channels           map[string]*Channel             `json:"channels"`
	Components         *Components                     `json:"components,omitempty"`
	Tags               []asyncapi.Tag                  `json:"tags,omitempty"`
	ExternalDocs       *asyncapi.ExternalDocumentation `json:"externalDocs,omitempty"`
}

// Info provides metadata about the API.
type Info struct {
	Title          string            `json:"title"`
	Version        string            `json:"version"`
	Description    string            `json:"description,omitempty"`
	TermsOfService string            `json:"termsOfService,omitempty"`
	Contact        *asyncapi.Contact `json:"contact,omitempty"`
	License        *asyncapi.License `json:"license,omitempty"`
}

// Server represents a message broker or any other program the API connects to.
type Server struct {
	Ref             string                              `json:"$ref,omitempty"`
	URL             string                              `json:"url,omitempty"`
	Protocol        string                              `json:"protocol,omitempty"`
	ProtocolVersion string                              `json:"protocolVersion,omitempty"`
	Description     string                              `json:"description,omitempty"`
	Variables       map[string]*asyncapi.ServerVariable `json:"variables,omitempty"`
	Security        []SecurityRequirement               `json:"security,omitempty"`
	Tags            []asyncapi.Tag                      `json:"tags,omitempty"`
	Bindings        *bindings.Collection                `json:"bindings,omitempty"`
}

// Channel describes the operations available on a single channel.
type Channel struct {
	Ref         string                `json:"$ref,omitempty"`
	Description string                `json:"description,omitempty"`
	Servers     []string              `json:"servers,omitempty"`
	Subscribe   *Operation            `json:"subscribe,omitempty"`
	Publish     *Operation            `json:"publish,omitempty"`
	Parameters  map[string]*Parameter `json:"parameters,omitempty"`
	Bindings    *bindings.Collection  `json:"bindings,omitempty"`
}

// Parameter describes a parameter included in a channel name.
type Parameter struct {
	Ref         string       `json:"$ref,omitempty"`
	Description string       `json:"description,omitempty"`
	Schema      *spec.Schema `json:"schema,omitempty"`
	Location    string       `json:"location,omitempty"`
}

// Operation describes a publish or a subscribe operation.
type Operation struct {
	OperationID  string                          `json:"operationId,omitempty"`
	Summary      string                          `json:"summary,omitempty"`
	Description  string                          `json:"description,omitempty"`
	Security     []SecurityRequirement           `json:"security,omitempty"`
	Tags         []asyncapi.Tag                  `json:"tags,omitempty"`
	ExternalDocs *asyncapi.ExternalDocumentation `json:"externalDocs,omitempty"`
	Bindings     *bindings.Collection            `json:"bindings,omitempty"`
	Traits       []*OperationTrait               `json:"traits,omitempty"`
	Message      *Message                        `json:"message,omitempty"`
}

// OperationTrait describes a trait that may be applied to an operation.
type OperationTrait struct {
	Ref          string                          `json:"$ref,omitempty"`
	OperationID  string                          `json:"operationId,omitempty"`
	Summary      string                          `json:"summary,omitempty"`
	Description  string                          `json:"description,omitempty"`
	Security     []SecurityRequirement           `json:"security,omitempty"`
	Tags         []asyncapi.Tag                  `json:"tags,omitempty"`
	ExternalDocs *asyncapi.ExternalDocumentation `json:"externalDocs,omitempty"`
	Bindings     *bindings.Collection            `json:"bindings,omitempty"`
}

// Message describes a message received on a given channel and operation. A message
// with OneOf set stands for any of the listed messages.
type Message struct {
	Ref           string                          `json:"$ref,omitempty"`
	OneOf         []*Message                      `json:"oneOf,omitempty"`
	MessageID     string                          `json:"messageId,omitempty"`
	Headers       *spec.Schema                    `json:"headers,omitempty"`
	Payload       *spec.Schema                    `json:"payload,omitempty"`
	CorrelationID *asyncapi.CorrelationID         `json:"correlationId,omitempty"`
	SchemaFormat  string                          `json:"schemaFormat,omitempty"`
	ContentType   string                          `json:"contentType,omitempty"`
	Name          string                          `json:"name,omitempty"`
	Title         string                          `json:"title,omitempty"`
	Summary       string                          `json:"summary,omitempty"`
	Description   string                          `json:"description,omitempty"`
	Tags          []asyncapi.Tag                  `json:"tags,omitempty"`
	ExternalDocs  *asyncapi.ExternalDocumentation `json:"externalDocs,omitempty"`
	Bindings      *bindings.Collection            `json:"bindings,omitempty"`
	Examples      []asyncapi.MessageExample       `json:"examples,omitempty"`
	Traits        []*MessageTrait                 `json:"traits,omitempty"`
}

// MessageTrait describes a trait that may be applied to a message.
type MessageTrait struct {
	Ref           string                          `json:"$ref,omitempty"`
	MessageID     string                          `json:"messageId,omitempty"`
	Headers       *spec.Schema                    `json:"headers,omitempty"`
	CorrelationID *asyncapi.CorrelationID         `json:"correlationId,omitempty"`
	SchemaFormat  string                          `json:"schemaFormat,omitempty"`
	ContentType   string                          `json:"contentType,omitempty"`
	Name          string                          `json:"name,omitempty"`
	Title         string                          `json:"title,omitempty"`
	Summary       string                          `json:"summary,omitempty"`
	Description   string                          `json:"description,omitempty"`
	Tags          []asyncapi.Tag                  `json:"tags,omitempty"`
	ExternalDocs  *asyncapi.ExternalDocumentation `json:"externalDocs,omitempty"`
	Bindings      *bindings.Collection            `json:"bindings,omitempty"`
	Examples      []asyncapi.MessageExample       `json:"examples,omitempty"`
}

// Components holds the reusable objects of the document.
type Components struct {
	Schemas           map[string]*spec.Schema             `json:"schemas,omitempty"`
	Servers           map[string]*Server                  `json:"servers,omitempty"`
	ServerVariables   map[string]*asyncapi.ServerVariable `json:"serverVariables,omitempty"`
	Channels          map[string]*Channel                 `json:"channels,omitempty"`
	Messages          map[string]*Message                 `json:"messages,omitempty"`
	SecuritySchemes   map[string]*asyncapi.SecurityScheme `json:"securitySchemes,omitempty"`
	Parameters        map[string]*Parameter               `json:"parameters,omitempty"`
	CorrelationIDs    map[string]*asyncapi.CorrelationID  `json:"correlationIds,omitempty"`
	OperationTraits   map[string]*OperationTrait          `json:"operationTraits,omitempty"`
	MessageTraits     map[string]*MessageTrait            `json:"messageTraits,omitempty"`
	ServerBindings    map[string]*bindings.Collection     `json:"serverBindings,omitempty"`
	ChannelBindings   map[string]*bindings.Collection     `json:"channelBindings,omitempty"`
	OperationBindings map[string]*bindings.Collection     `json:"operationBindings,omitempty"`
	MessageBindings   map[string]*bindings.Collection     `json:"messageBindings,omitempty"`
}

// IsEmpty reports whether no component is declared.
func (c *Components) IsEmpty() bool {
	if c == nil {
		return true
	}
	for _, keys := range c.keys() {
		if len(keys) > 0 {
			return false
		}
	}
	return true
}

func (c *Components) keys() map[string][]string {
	return map[string][]string{
		asyncapi.ComponentSchemas:           asyncapi.SortedKeys(c.Schemas),
		asyncapi.ComponentServers:           asyncapi.SortedKeys(c.Servers),
		asyncapi.ComponentServerVariables:   asyncapi.SortedKeys(c.ServerVariables),
		asyncapi.ComponentChannels:          asyncapi.SortedKeys(c.Channels),
		asyncapi.ComponentMessages:          asyncapi.SortedKeys(c.Messages),
		asyncapi.ComponentSecuritySchemes:   asyncapi.SortedKeys(c.SecuritySchemes),
		asyncapi.ComponentParameters:        asyncapi.SortedKeys(c.Parameters),
		asyncapi.ComponentCorrelationIDs:    asyncapi.SortedKeys(c.CorrelationIDs),
		asyncapi.ComponentOperationTraits:   asyncapi.SortedKeys(c.OperationTraits),
		asyncapi.ComponentMessageTraits:     asyncapi.SortedKeys(c.MessageTraits),
		asyncapi.ComponentServerBindings:    asyncapi.SortedKeys(c.ServerBindings),
		asyncapi.ComponentChannelBindings:   asyncapi.SortedKeys(c.ChannelBindings),
		asyncapi.ComponentOperationBindings: asyncapi.SortedKeys(c.OperationBindings),
		asyncapi.ComponentMessageBindings:   asyncapi.SortedKeys(c.MessageBindings),
	}
}

// Operations returns the operations of the document keyed by "<channel>.<publish|subscribe>".
func (d *Document) Operations() map[string]*Operation {
	out := make(map[string]*Operation)
	for name, ch := range d.Channels {
		if ch.Publish != nil {
			out[name+".publish"] = ch.Publish
		}
		if ch.Subscribe != nil {
			out[name+".subscribe"] = ch.Subscribe
		}
	}
	return out
}
