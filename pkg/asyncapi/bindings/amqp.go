package bindings

// AMQPExchange describes the exchange a channel is bound to.
type AMQPExchange struct {
	Name       string `json:"name,omitempty"`
	Type       string `json:"type,omitempty"`
	Durable    *bool  `json:"durable,omitempty"`
	AutoDelete *bool  `json:"autoDelete,omitempty"`
	VHost      string `json:"vhost,omitempty"`
}

// AMQPQueue describes the queue a channel is bound to.
type AMQPQueue struct {
	Name       string `json:"name,omitempty"`
	Durable    *bool  `json:"durable,omitempty"`
	Exclusive  *bool  `json:"exclusive,omitempty"`
	AutoDelete *bool  `json:"autoDelete,omitempty"`
	VHost      string `json:"vhost,omitempty"`
}

// AMQPChannelBinding describes AMQP 0-9-1 information for a channel.
type AMQPChannelBinding struct {
	Is             string        `json:"is,omitempty"`
	Exchange       *AMQPExchange `json:"exchange,omitempty"`
	Queue          *AMQPQueue    `json:"queue,omitempty"`
	BindingVersion string        `json:"bindingVersion,omitempty"`
}

func (*AMQPChannelBinding) Protocol() Protocol { return AMQP }
func (*AMQPChannelBinding) Kind() Kind         { return KindChannel }

// AMQPOperationBinding describes AMQP 0-9-1 information for an operation.
type AMQPOperationBinding struct {
	Expiration     int      `json:"expiration,omitempty"`
	UserID         string   `json:"userId,omitempty"`
	CC             []string `json:"cc,omitempty"`
	Priority       int      `json:"priority,omitempty"`
	DeliveryMode   int      `json:"deliveryMode,omitempty"`
	Mandatory      bool     `json:"mandatory,omitempty"`
	BCC            []string `json:"bcc,omitempty"`
	Timestamp      bool     `json:"timestamp,omitempty"`
	Ack            bool     `json:"ack,omitempty"`
	BindingVersion string   `json:"bindingVersion,omitempty"`
}

func (*AMQPOperationBinding) Protocol() Protocol { return AMQP }
func (*AMQPOperationBinding) Kind() Kind         { return KindOperation }

// AMQPMessageBinding describes AMQP 0-9-1 information for a message.
type AMQPMessageBinding struct {
	ContentEncoding string `json:"contentEncoding,omitempty"`
	MessageType     string `json:"messageType,omitempty"`
	BindingVersion  string `json:"bindingVersion,omitempty"`
}

func (*AMQPMessageBinding) Protocol() Protocol { return AMQP }
func (*AMQPMessageBinding) Kind() Kind         { return KindMessage }

// AMQP1Binding is the AMQP 1.0 binding. The binding defines no fields yet, so it
// serializes as an empty object for every kind.
type AMQP1Binding struct {
	kind Kind
}

// NewAMQP1Binding creates an AMQP 1.0 binding of the given kind.
func NewAMQP1Binding(kind Kind) *AMQP1Binding {
	return &AMQP1Binding{kind: kind}
}

func (*AMQP1Binding) Protocol() Protocol { return AMQP1 }
func (b *AMQP1Binding) Kind() Kind       { return b.kind }
