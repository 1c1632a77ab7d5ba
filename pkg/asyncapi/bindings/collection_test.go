package bindings

import (
	"encoding/json"
	"testing"

	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_Add(t *testing.T) {
	t.Parallel()

	t.Run("second binding of the same protocol replaces the first", func(t *testing.T) {
		c := NewOperationBindings()
		first := &HTTPOperationBinding{Method: "GET"}
		second := &HTTPOperationBinding{Method: "POST"}

		require.NoError(t, c.Add(first))
		require.NoError(t, c.Add(second))

		all := c.Enumerate()
		require.Len(t, all, 1)
		assert.Same(t, second, all[0])
	})

	t.Run("bindings of different protocols coexist", func(t *testing.T) {
		c := NewOperationBindings()
		require.NoError(t, c.Add(&HTTPOperationBinding{Method: "GET"}))
		require.NoError(t, c.Add(&MQTTOperationBinding{QoS: 1}))

		assert.Equal(t, 2, c.Len())
		_, err := c.Get(HTTP)
		assert.NoError(t, err)
		_, err = c.Get(MQTT)
		assert.NoError(t, err)
	})

	t.Run("nil binding", func(t *testing.T) {
		c := NewMessageBindings()
		assert.ErrorIs(t, c.Add(nil), asyncapi.ErrInvalidArgument)

		var typed *KafkaMessageBinding
		assert.ErrorIs(t, c.Add(typed), asyncapi.ErrInvalidArgument)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("unknown protocol", func(t *testing.T) {
		c := NewChannelBindings()
		err := c.Add(NewGeneric(Protocol("carrier-pigeon"), KindChannel, nil))
		assert.ErrorIs(t, err, asyncapi.ErrUnsupportedProtocol)
	})

	t.Run("binding of another kind", func(t *testing.T) {
		c := NewChannelBindings()
		err := c.Add(&KafkaServerBinding{})
		assert.ErrorIs(t, err, asyncapi.ErrUnsupportedProtocol)
	})
}

func TestCollection_Enumerate(t *testing.T) {
	t.Parallel()

	a := NewMessageBindings()
	require.NoError(t, a.Add(&MQTTMessageBinding{}))
	require.NoError(t, a.Add(&KafkaMessageBinding{}))
	require.NoError(t, a.Add(&HTTPMessageBinding{}))

	b := NewMessageBindings()
	require.NoError(t, b.Add(&HTTPMessageBinding{}))
	require.NoError(t, b.Add(&MQTTMessageBinding{}))
	require.NoError(t, b.Add(&KafkaMessageBinding{}))

	protocols := func(c *Collection) []Protocol {
		var out []Protocol
		for _, binding := range c.Enumerate() {
			out = append(out, binding.Protocol())
		}
		return out
	}

	assert.Equal(t, []Protocol{HTTP, Kafka, MQTT}, protocols(a))
	assert.Equal(t, protocols(a), protocols(b))
}

func TestCollection_GetRemove(t *testing.T) {
	t.Parallel()

	c := NewServerBindings()
	require.NoError(t, c.Add(&KafkaServerBinding{SchemaRegistryURL: "http://registry"}))

	_, err := c.Get(MQTT)
	assert.ErrorIs(t, err, asyncapi.ErrNotFound)

	assert.True(t, c.Remove(Kafka))
	assert.False(t, c.Remove(Kafka))
	assert.True(t, c.IsEmpty())
}

func TestCollection_MergeMissing(t *testing.T) {
	t.Parallel()

	own := &HTTPOperationBinding{Method: "POST"}
	c := NewOperationBindings()
	require.NoError(t, c.Add(own))

	trait := NewOperationBindings()
	require.NoError(t, trait.Add(&HTTPOperationBinding{Method: "GET"}))
	require.NoError(t, trait.Add(&NATSOperationBinding{Queue: "workers"}))

	c.MergeMissing(trait)

	got, err := c.Get(HTTP)
	require.NoError(t, err)
	assert.Same(t, own, got)
	assert.Equal(t, 2, c.Len())
}

func TestCollection_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("keyed by protocol in declaration order", func(t *testing.T) {
		c := NewOperationBindings()
		require.NoError(t, c.Add(&MQTTOperationBinding{QoS: 1}))
		require.NoError(t, c.Add(&HTTPOperationBinding{Method: "POST"}))
		require.NoError(t, c.Add(NewGeneric(Solace, KindOperation, map[string]interface{}{"bindingVersion": "0.4.0"})))

		data, err := json.Marshal(c)
		require.NoError(t, err)
		assert.Equal(t, `{"http":{"method":"POST"},"mqtt":{"qos":1},"solace":{"bindingVersion":"0.4.0"}}`, string(data))
	})

	t.Run("reference", func(t *testing.T) {
		c := RefCollection(KindChannel, asyncapi.ComponentRef(asyncapi.ComponentChannelBindings, "kafka"))

		data, err := json.Marshal(c)
		require.NoError(t, err)
		assert.Equal(t, `{"$ref":"#/components/channelBindings/kafka"}`, string(data))
		assert.False(t, c.IsEmpty())
	})

	t.Run("empty amqp1 binding", func(t *testing.T) {
		c := NewChannelBindings()
		require.NoError(t, c.Add(NewAMQP1Binding(KindChannel)))

		data, err := json.Marshal(c)
		require.NoError(t, err)
		assert.Equal(t, `{"amqp1":{}}`, string(data))
	})
}

func TestCollection_KindedBindings(t *testing.T) {
	t.Parallel()

	c := NewChannelBindings()
	require.NoError(t, c.Add(NewAMQP1Binding(KindChannel)))
	require.NoError(t, c.Add(&RedisBinding{kind: KindChannel, BindingVersion: "0.1.0"}))
	assert.Equal(t, 2, c.Len())

	got, err := c.Get(Redis)
	require.NoError(t, err)
	assert.Equal(t, KindChannel, got.Kind())

	err = c.Add(NewRedisBinding(KindServer))
	assert.ErrorIs(t, err, asyncapi.ErrUnsupportedProtocol)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amqp1":{},"redis":{"bindingVersion":"0.1.0"}}`, string(data))
}

func TestParseProtocol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected Protocol
		ok       bool
	}{
		{"kafka", Kafka, true},
		{"WSS", WebSockets, true},
		{"secure-mqtt", MQTT, true},
		{"https", HTTP, true},
		{"googlepubsub", GooglePubSub, true},
		{"smtp", Protocol("smtp"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseProtocol(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}
