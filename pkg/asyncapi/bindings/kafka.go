package bindings

import "github.com/go-openapi/spec"

// KafkaServerBinding describes Kafka-specific information for a server.
type KafkaServerBinding struct {
	SchemaRegistryURL    string `json:"schemaRegistryUrl,omitempty"`
	SchemaRegistryVendor string `json:"schemaRegistryVendor,omitempty"`
	BindingVersion       string `json:"bindingVersion,omitempty"`
}

func (*KafkaServerBinding) Protocol() Protocol { return Kafka }
func (*KafkaServerBinding) Kind() Kind         { return KindServer }

// KafkaTopicConfiguration holds the topic configuration properties relevant for the API.
type KafkaTopicConfiguration struct {
	CleanupPolicy        []string `json:"cleanup.policy,omitempty"`
	RetentionMs          int64    `json:"retention.ms,omitempty"`
	RetentionBytes       int64    `json:"retention.bytes,omitempty"`
	DeleteRetentionMs    int64    `json:"delete.retention.ms,omitempty"`
	MaxMessageBytes      int32    `json:"max.message.bytes,omitempty"`
	ConfluentKeySchema   *bool    `json:"confluent.key.schema.validation,omitempty"`
	ConfluentValueSchema *bool    `json:"confluent.value.schema.validation,omitempty"`
}

// KafkaChannelBinding describes Kafka-specific information for a channel.
type KafkaChannelBinding struct {
	Topic              string                   `json:"topic,omitempty"`
	Partitions         int                      `json:"partitions,omitempty"`
	Replicas           int                      `json:"replicas,omitempty"`
	TopicConfiguration *KafkaTopicConfiguration `json:"topicConfiguration,omitempty"`
	BindingVersion     string                   `json:"bindingVersion,omitempty"`
}

func (*KafkaChannelBinding) Protocol() Protocol { return Kafka }
func (*KafkaChannelBinding) Kind() Kind         { return KindChannel }

// KafkaOperationBinding describes Kafka-specific information for an operation.
type KafkaOperationBinding struct {
	GroupID        *spec.Schema `json:"groupId,omitempty"`
	ClientID       *spec.Schema `json:"clientId,omitempty"`
	BindingVersion string       `json:"bindingVersion,omitempty"`
}

func (*KafkaOperationBinding) Protocol() Protocol { return Kafka }
func (*KafkaOperationBinding) Kind() Kind         { return KindOperation }

// KafkaMessageBinding describes Kafka-specific information for a message.
type KafkaMessageBinding struct {
	Key                     *spec.Schema `json:"key,omitempty"`
	SchemaIDLocation        string       `json:"schemaIdLocation,omitempty"`
	SchemaIDPayloadEncoding string       `json:"schemaIdPayloadEncoding,omitempty"`
	SchemaLookupStrategy    string       `json:"schemaLookupStrategy,omitempty"`
	BindingVersion          string       `json:"bindingVersion,omitempty"`
}

func (*KafkaMessageBinding) Protocol() Protocol { return Kafka }
func (*KafkaMessageBinding) Kind() Kind         { return KindMessage }
