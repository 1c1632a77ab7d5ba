package bindings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
)

// Collection holds at most one binding per protocol for a single binding kind.
// Adding a binding whose protocol slot is already occupied replaces the occupant.
// A collection may instead be a reference to a bindings component.
type Collection struct {
	kind  Kind
	ref   string
	slots map[Protocol]Binding
}

// NewCollection creates an empty collection for the given kind.
func NewCollection(kind Kind) *Collection {
	return &Collection{
		kind:  kind,
		slots: make(map[Protocol]Binding),
	}
}

// NewServerBindings creates an empty server bindings collection.
func NewServerBindings() *Collection { return NewCollection(KindServer) }

// NewChannelBindings creates an empty channel bindings collection.
func NewChannelBindings() *Collection { return NewCollection(KindChannel) }

// NewOperationBindings creates an empty operation bindings collection.
func NewOperationBindings() *Collection { return NewCollection(KindOperation) }

// NewMessageBindings creates an empty message bindings collection.
func NewMessageBindings() *Collection { return NewCollection(KindMessage) }

// RefCollection creates a collection standing for a reference token.
func RefCollection(kind Kind, ref string) *Collection {
	c := NewCollection(kind)
	c.ref = ref
	return c
}

// Kind returns the binding kind the collection accepts.
func (c *Collection) Kind() Kind {
	return c.kind
}

// Ref returns the reference token, if the collection is a reference.
func (c *Collection) Ref() string {
	return c.ref
}

// Add stores binding in the slot of its protocol, replacing any prior occupant.
func (c *Collection) Add(binding Binding) error {
	if isNil(binding) {
		return fmt.Errorf("binding is nil: %w", asyncapi.ErrInvalidArgument)
	}
	protocol := binding.Protocol()
	if !protocol.IsSupported() {
		return fmt.Errorf("no binding slot for protocol %q: %w", protocol, asyncapi.ErrUnsupportedProtocol)
	}
	if binding.Kind() != c.kind {
		return fmt.Errorf("%s binding %q cannot be stored in %s bindings: %w",
			binding.Kind(), protocol, c.kind, asyncapi.ErrUnsupportedProtocol)
	}
	if c.slots == nil {
		c.slots = make(map[Protocol]Binding)
	}
	c.slots[protocol] = binding
	return nil
}

// Get returns the binding occupying the slot of protocol.
func (c *Collection) Get(protocol Protocol) (Binding, error) {
	if b, ok := c.slots[protocol]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("no %s binding for protocol %q: %w", c.kind, protocol, asyncapi.ErrNotFound)
}

// Remove empties the slot of protocol and reports whether it was occupied.
func (c *Collection) Remove(protocol Protocol) bool {
	if _, ok := c.slots[protocol]; !ok {
		return false
	}
	delete(c.slots, protocol)
	return true
}

// Len returns the number of occupied slots.
func (c *Collection) Len() int {
	return len(c.slots)
}

// IsEmpty reports whether the collection holds neither bindings nor a reference.
func (c *Collection) IsEmpty() bool {
	return c == nil || (c.ref == "" && len(c.slots) == 0)
}

// Enumerate returns the occupied slots in protocol declaration order, independent of
// insertion order.
func (c *Collection) Enumerate() []Binding {
	out := make([]Binding, 0, len(c.slots))
	for _, p := range declarationOrder {
		if b, ok := c.slots[p]; ok {
			out = append(out, b)
		}
	}
	return out
}

// MergeMissing copies every binding of other whose slot is empty in c.
func (c *Collection) MergeMissing(other *Collection) {
	if other == nil || other.kind != c.kind {
		return
	}
	for _, b := range other.Enumerate() {
		if _, ok := c.slots[b.Protocol()]; !ok {
			_ = c.Add(b)
		}
	}
}

// Clone returns a shallow copy of the collection.
func (c *Collection) Clone() *Collection {
	if c == nil {
		return nil
	}
	out := NewCollection(c.kind)
	out.ref = c.ref
	for p, b := range c.slots {
		out.slots[p] = b
	}
	return out
}

// MarshalJSON writes the collection as an object keyed by protocol name.
func (c *Collection) MarshalJSON() ([]byte, error) {
	if c.ref != "" {
		return json.Marshal(asyncapi.Reference{Ref: c.ref})
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range c.Enumerate() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(b.Protocol()))
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("marshal %s binding: %w", b.Protocol(), err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func isNil(b Binding) bool {
	if b == nil {
		return true
	}
	v := reflect.ValueOf(b)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
