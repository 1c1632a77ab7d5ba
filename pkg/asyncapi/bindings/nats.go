package bindings

// NATSOperationBinding describes NATS-specific information for an operation.
type NATSOperationBinding struct {
	Queue          string `json:"queue,omitempty"`
	BindingVersion string `json:"bindingVersion,omitempty"`
}

func (*NATSOperationBinding) Protocol() Protocol { return NATS }
func (*NATSOperationBinding) Kind() Kind         { return KindOperation }

// RedisBinding is the Redis binding. The binding defines no fields beyond its version.
type RedisBinding struct {
	kind           Kind
	BindingVersion string `json:"bindingVersion,omitempty"`
}

// NewRedisBinding creates a Redis binding of the given kind.
func NewRedisBinding(kind Kind) *RedisBinding {
	return &RedisBinding{kind: kind}
}

func (*RedisBinding) Protocol() Protocol { return Redis }
func (b *RedisBinding) Kind() Kind       { return b.kind }
