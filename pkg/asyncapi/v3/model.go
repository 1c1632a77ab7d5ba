// Package v3 models AsyncAPI 3.0 documents and provides the builders that assemble
// and validate them.
package v3

import (
	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/bindings"
)

// Operation actions.
const (
	ActionSend    = "send"
	ActionReceive = "receive"
)

// Document is the root of an AsyncAPI 3.0 document.
type Document struct {
	AsyncAPI           string                `json:"asyncapi"`
	ID                 string                `json:"id,omitempty"`
	Info               Info                  `json:"info"`
	Servers            map[string]*Server    `json:"servers,omitempty"`
	DefaultContentType string                `json:"defaultContentType,omitempty"`
	Channels           map[string]*Channel   `json:"channels,omitempty"`
	Operations         map[string]*Operation `json:"operations,omitempty"`
	Components         *Components           `json:"components,omitempty"`
}

// Info provides metadata about the API.
type Info struct {
	Title          string                          `json:"title"`
	Version        string                          `json:"version"`
	Description    string                          `json:"description,omitempty"`
	TermsOfService string                          `json:"termsOfService,omitempty"`
	Contact        *asyncapi.Contact               `json:"contact,omitempty"`
	License        *asyncapi.License               `json:"license,omitempty"`
	Tags           []asyncapi.Tag                  `json:"tags,omitempty"`
	ExternalDocs   *asyncapi.ExternalDocumentation `json:"externalDocs,omitempty"`
}

// Server describes a message broker, a server or any other kind of computer program
// capable of sending and/or receiving data.
type Server struct {
	Ref             string                              `json:"$ref,omitempty"`
	Host            string                              `json:"host,omitempty"`
	Protocol        string                              `json:"protocol,omitempty"`
	ProtocolVersion string                              `json:"protocolVersion,omitempty"`
	Pathname        string                              `json:"pathname,omitempty"`
	Description     string                              `json:"description,omitempty"`
	Title           string                              `json:"title,omitempty"`
	Summary         string                              `json:"summary,omitempty"`
	Variables       map[string]*asyncapi.ServerVariable `json:"variables,omitempty"`
	Security        []*asyncapi.SecurityScheme          `json:"security,omitempty"`
	Tags            []asyncapi.Tag                      `json:"tags,omitempty"`
	ExternalDocs    *asyncapi.ExternalDocumentation     `json:"externalDocs,omitempty"`
	Bindings        *bindings.Collection                `json:"bindings,omitempty"`
}

// Channel describes a shared communication channel.
type Channel struct {
	Ref          string                          `json:"$ref,omitempty"`
	Address      *string                         `json:"address,omitempty"`
	Messages     map[string]*Message             `json:"messages,omitempty"`
	Title        string                          `json:"title,omitempty"`
	Summary      string                          `json:"summary,omitempty"`
	Description  string                          `json:"description,omitempty"`
	Servers      []asyncapi.Reference            `json:"servers,omitempty"`
	Parameters   map[string]*Parameter           `json:"parameters,omitempty"`
	Tags         []asyncapi.Tag                  `json:"tags,omitempty"`
	ExternalDocs *asyncapi.ExternalDocumentation `json:"externalDocs,omitempty"`
	Bindings     *bindings.Collection            `json:"bindings,omitempty"`
}

// Parameter describes a parameter included in a channel address.
type Parameter struct {
	Ref         string   `json:"$ref,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Default     string   `json:"default,omitempty"`
	Description string   `json:"description,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	Location    string   `json:"location,omitempty"`
}

// Operation describes a specific operation.
type Operation struct {
	Ref          string                          `json:"$ref,omitempty"`
	Action       string                          `json:"action,omitempty"`
	Channel      *asyncapi.Reference             `json:"channel,omitempty"`
	Title        string                          `json:"title,omitempty"`
	Summary      string                          `json:"summary,omitempty"`
	Description  string                          `json:"description,omitempty"`
	Security     []*asyncapi.SecurityScheme      `json:"security,omitempty"`
	Tags         []asyncapi.Tag                  `json:"tags,omitempty"`
	ExternalDocs *asyncapi.ExternalDocumentation `json:"externalDocs,omitempty"`
	Bindings     *bindings.Collection            `json:"bindings,omitempty"`
	Traits       []*OperationTrait               `json:"traits,omitempty"`
	Messages     []asyncapi.Reference            `json:"messages,omitempty"`
	Reply        *OperationReply                 `json:"reply,omitempty"`
}

// OperationTrait describes a trait that may be applied to an operation.
type OperationTrait struct {
	Ref          string                          `json:"$ref,omitempty"`
	Title        string                          `json:"title,omitempty"`
	Summary      string                          `json:"summary,omitempty"`
	Description  string                          `json:"description,omitempty"`
	Security     []*asyncapi.SecurityScheme      `json:"security,omitempty"`
	Tags         []asyncapi.Tag                  `json:"tags,omitempty"`
	ExternalDocs *asyncapi.ExternalDocumentation `json:"externalDocs,omitempty"`
	Bindings     *bindings.Collection            `json:"bindings,omitempty"`
}

// OperationReply describes the reply part of a request-reply operation.
type OperationReply struct {
	Ref      string                 `json:"$ref,omitempty"`
	Address  *OperationReplyAddress `json:"address,omitempty"`
	Channel  *asyncapi.Reference    `json:"channel,omitempty"`
	Messages []asyncapi.Reference   `json:"messages,omitempty"`
}

// OperationReplyAddress is the runtime expression locating the reply address.
type OperationReplyAddress struct {
	Ref         string `json:"$ref,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// Message describes a message received on a given channel and operation.
type Message struct {
	Ref           string                          `json:"$ref,omitempty"`
	Headers       *spec.Schema                    `json:"headers,omitempty"`
	Payload       *spec.Schema                    `json:"payload,omitempty"`
	CorrelationID *asyncapi.CorrelationID         `json:"correlationId,omitempty"`
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
	Headers       *spec.Schema                    `json:"headers,omitempty"`
	CorrelationID *asyncapi.CorrelationID         `json:"correlationId,omitempty"`
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
	Schemas           map[string]*spec.Schema                    `json:"schemas,omitempty"`
	Servers           map[string]*Server                         `json:"servers,omitempty"`
	Channels          map[string]*Channel                        `json:"channels,omitempty"`
	Operations        map[string]*Operation                      `json:"operations,omitempty"`
	Messages          map[string]*Message                        `json:"messages,omitempty"`
	SecuritySchemes   map[string]*asyncapi.SecurityScheme        `json:"securitySchemes,omitempty"`
	ServerVariables   map[string]*asyncapi.ServerVariable        `json:"serverVariables,omitempty"`
	Parameters        map[string]*Parameter                      `json:"parameters,omitempty"`
	CorrelationIDs    map[string]*asyncapi.CorrelationID         `json:"correlationIds,omitempty"`
	Replies           map[string]*OperationReply                 `json:"replies,omitempty"`
	ReplyAddresses    map[string]*OperationReplyAddress          `json:"replyAddresses,omitempty"`
	ExternalDocs      map[string]*asyncapi.ExternalDocumentation `json:"externalDocs,omitempty"`
	Tags              map[string]*asyncapi.Tag                   `json:"tags,omitempty"`
	OperationTraits   map[string]*OperationTrait                 `json:"operationTraits,omitempty"`
	MessageTraits     map[string]*MessageTrait                   `json:"messageTraits,omitempty"`
	ServerBindings    map[string]*bindings.Collection            `json:"serverBindings,omitempty"`
	ChannelBindings   map[string]*bindings.Collection            `json:"channelBindings,omitempty"`
	OperationBindings map[string]*bindings.Collection            `json:"operationBindings,omitempty"`
	MessageBindings   map[string]*bindings.Collection            `json:"messageBindings,omitempty"`
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

// keys returns every declared component key, sorted, grouped by kind.
func (c *Components) keys() map[string][]string {
	return map[string][]string{
		asyncapi.ComponentSchemas:           asyncapi.SortedKeys(c.Schemas),
		asyncapi.ComponentServers:           asyncapi.SortedKeys(c.Servers),
		asyncapi.ComponentChannels:          asyncapi.SortedKeys(c.Channels),
		asyncapi.ComponentOperations:        asyncapi.SortedKeys(c.Operations),
		asyncapi.ComponentMessages:          asyncapi.SortedKeys(c.Messages),
		asyncapi.ComponentSecuritySchemes:   asyncapi.SortedKeys(c.SecuritySchemes),
		asyncapi.ComponentServerVariables:   asyncapi.SortedKeys(c.ServerVariables),
		asyncapi.ComponentParameters:        asyncapi.SortedKeys(c.Parameters),
		asyncapi.ComponentCorrelationIDs:    asyncapi.SortedKeys(c.CorrelationIDs),
		asyncapi.ComponentReplies:           asyncapi.SortedKeys(c.Replies),
		asyncapi.ComponentReplyAddresses:    asyncapi.SortedKeys(c.ReplyAddresses),
		asyncapi.ComponentExternalDocs:      asyncapi.SortedKeys(c.ExternalDocs),
		asyncapi.ComponentTags:              asyncapi.SortedKeys(c.Tags),
		asyncapi.ComponentOperationTraits:   asyncapi.SortedKeys(c.OperationTraits),
		asyncapi.ComponentMessageTraits:     asyncapi.SortedKeys(c.MessageTraits),
		asyncapi.ComponentServerBindings:    asyncapi.SortedKeys(c.ServerBindings),
		asyncapi.ComponentChannelBindings:   asyncapi.SortedKeys(c.ChannelBindings),
		asyncapi.ComponentOperationBindings: asyncapi.SortedKeys(c.OperationBindings),
		asyncapi.ComponentMessageBindings:   asyncapi.SortedKeys(c.MessageBindings),
	}
}
