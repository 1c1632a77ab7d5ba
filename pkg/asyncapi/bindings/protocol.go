// Package bindings provides the protocol-specific binding objects attached to AsyncAPI
// servers, channels, operations and messages, and the single-slot-per-protocol
// collection that holds them.
package bindings

import "strings"

// Protocol identifies a wire protocol binding slot.
type Protocol string

// Supported protocols, in declaration order. Collections enumerate in this order.
const (
	HTTP         Protocol = "http"
	WebSockets   Protocol = "ws"
	Kafka        Protocol = "kafka"
	AnypointMQ   Protocol = "anypointmq"
	AMQP         Protocol = "amqp"
	AMQP1        Protocol = "amqp1"
	MQTT         Protocol = "mqtt"
	MQTT5        Protocol = "mqtt5"
	NATS         Protocol = "nats"
	JMS          Protocol = "jms"
	SNS          Protocol = "sns"
	Solace       Protocol = "solace"
	SQS          Protocol = "sqs"
	STOMP        Protocol = "stomp"
	Redis        Protocol = "redis"
	Mercure      Protocol = "mercure"
	IBMMQ        Protocol = "ibmmq"
	GooglePubSub Protocol = "googlepubsub"
	Pulsar       Protocol = "pulsar"
)

var declarationOrder = []Protocol{
	HTTP, WebSockets, Kafka, AnypointMQ, AMQP, AMQP1, MQTT, MQTT5, NATS, JMS,
	SNS, Solace, SQS, STOMP, Redis, Mercure, IBMMQ, GooglePubSub, Pulsar,
}

var protocolIndex = func() map[Protocol]int {
	idx := make(map[Protocol]int, len(declarationOrder))
	for i, p := range declarationOrder {
		idx[p] = i
	}
	return idx
}()

// Protocols returns every supported protocol in declaration order.
func Protocols() []Protocol {
	out := make([]Protocol, len(declarationOrder))
	copy(out, declarationOrder)
	return out
}

// IsSupported reports whether p has a slot.
func (p Protocol) IsSupported() bool {
	_, ok := protocolIndex[p]
	return ok
}

func (p Protocol) String() string {
	return string(p)
}

// ParseProtocol resolves a protocol name, accepting the usual aliases
// (websocket, wss, https, secure-mqtt, ...).
func ParseProtocol(name string) (Protocol, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "https":
		return HTTP, true
	case "websocket", "websockets", "wss":
		return WebSockets, true
	case "kafka-secure":
		return Kafka, true
	case "amqps":
		return AMQP, true
	case "secure-mqtt", "mqtts":
		return MQTT, true
	}
	p := Protocol(n)
	return p, p.IsSupported()
}

// Kind identifies which entity a binding configures.
type Kind string

// Binding kinds.
const (
	KindServer    Kind = "server"
	KindChannel   Kind = "channel"
	KindOperation Kind = "operation"
	KindMessage   Kind = "message"
)

// Binding is implemented by every protocol binding object.
type Binding interface {
	Protocol() Protocol
	Kind() Kind
}
