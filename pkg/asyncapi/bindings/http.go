package bindings

import "github.com/go-openapi/spec"

// HTTPOperationBinding describes HTTP-specific information for an operation.
type HTTPOperationBinding struct {
	Method         string       `json:"method,omitempty"`
	Query          *spec.Schema `json:"query,omitempty"`
	BindingVersion string       `json:"bindingVersion,omitempty"`
}

func (*HTTPOperationBinding) Protocol() Protocol { return HTTP }
func (*HTTPOperationBinding) Kind() Kind         { return KindOperation }

// HTTPMessageBinding describes HTTP-specific information for a message.
type HTTPMessageBinding struct {
	Headers        *spec.Schema `json:"headers,omitempty"`
	StatusCode     int          `json:"statusCode,omitempty"`
	BindingVersion string       `json:"bindingVersion,omitempty"`
}

func (*HTTPMessageBinding) Protocol() Protocol { return HTTP }
func (*HTTPMessageBinding) Kind() Kind         { return KindMessage }

// WebSocketsChannelBinding describes the WebSockets handshake of a channel.
type WebSocketsChannelBinding struct {
	Method         string       `json:"method,omitempty"`
	Query          *spec.Schema `json:"query,omitempty"`
	Headers        *spec.Schema `json:"headers,omitempty"`
	BindingVersion string       `json:"bindingVersion,omitempty"`
}

func (*WebSocketsChannelBinding) Protocol() Protocol { return WebSockets }
func (*WebSocketsChannelBinding) Kind() Kind         { return KindChannel }
