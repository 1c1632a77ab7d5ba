package bindings

import "github.com/go-openapi/spec"

// MQTTLastWill describes the last will and testament of a client.
type MQTTLastWill struct {
	Topic   string `json:"topic,omitempty"`
	QoS     int    `json:"qos,omitempty"`
	Message string `json:"message,omitempty"`
	Retain  bool   `json:"retain,omitempty"`
}

// MQTTServerBinding describes MQTT-specific information for a server.
type MQTTServerBinding struct {
	ClientID              string        `json:"clientId,omitempty"`
	CleanSession          bool          `json:"cleanSession,omitempty"`
	LastWill              *MQTTLastWill `json:"lastWill,omitempty"`
	KeepAlive             int           `json:"keepAlive,omitempty"`
	SessionExpiryInterval int           `json:"sessionExpiryInterval,omitempty"`
	MaximumPacketSize     int           `json:"maximumPacketSize,omitempty"`
	BindingVersion        string        `json:"bindingVersion,omitempty"`
}

func (*MQTTServerBinding) Protocol() Protocol { return MQTT }
func (*MQTTServerBinding) Kind() Kind         { return KindServer }

// MQTTOperationBinding describes MQTT-specific information for an operation.
type MQTTOperationBinding struct {
	QoS                   int    `json:"qos,omitempty"`
	Retain                bool   `json:"retain,omitempty"`
	MessageExpiryInterval int    `json:"messageExpiryInterval,omitempty"`
	BindingVersion        string `json:"bindingVersion,omitempty"`
}

func (*MQTTOperationBinding) Protocol() Protocol { return MQTT }
func (*MQTTOperationBinding) Kind() Kind         { return KindOperation }

// MQTTMessageBinding describes MQTT-specific information for a message.
type MQTTMessageBinding struct {
	PayloadFormatIndicator int          `json:"payloadFormatIndicator,omitempty"`
	CorrelationData        *spec.Schema `json:"correlationData,omitempty"`
	ContentType            string       `json:"contentType,omitempty"`
	ResponseTopic          string       `json:"responseTopic,omitempty"`
	BindingVersion         string       `json:"bindingVersion,omitempty"`
}

func (*MQTTMessageBinding) Protocol() Protocol { return MQTT }
func (*MQTTMessageBinding) Kind() Kind         { return KindMessage }

// MQTT5ServerBinding describes MQTT 5 specific information for a server.
type MQTT5ServerBinding struct {
	SessionExpiryInterval int    `json:"sessionExpiryInterval,omitempty"`
	BindingVersion        string `json:"bindingVersion,omitempty"`
}

func (*MQTT5ServerBinding) Protocol() Protocol { return MQTT5 }
func (*MQTT5ServerBinding) Kind() Kind         { return KindServer }
