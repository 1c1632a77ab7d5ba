package builder

import (
	"fmt"

	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/bindings"
)

// TraitTarget points at the draft fields shared by entities and their traits.
// Nil fields are not supported by the target entity.
type TraitTarget struct {
	Title        *string
	Summary      *string
	Description  *string
	Tags         *[]asyncapi.Tag
	ExternalDocs **asyncapi.ExternalDocumentation
	Bindings     **bindings.Collection
	BindingKind  bindings.Kind
}

// TraitSetter implements the shared trait configuration once for both full entity
// builders and trait-only builders. B is the builder returned for chaining.
type TraitSetter[B any] struct {
	self   B
	life   *Lifecycle
	target TraitTarget
}

// NewTraitSetter binds a setter to the draft of the builder self.
func NewTraitSetter[B any](self B, life *Lifecycle, target TraitTarget) TraitSetter[B] {
	return TraitSetter[B]{
		self:   self,
		life:   life,
		target: target,
	}
}

// supports guards a configuration call and records an error when the target entity
// has no such field.
func (s *TraitSetter[B]) supports(method, field string, ok bool) bool {
	if !s.life.Guard(method) {
		return false
	}
	if !ok {
		s.life.Record(fmt.Errorf("%s: field %s is not supported: %w", method, field, asyncapi.ErrInvalidArgument))
		return false
	}
	return true
}

// WithTitle sets the human-friendly title.
func (s *TraitSetter[B]) WithTitle(title string) B {
	if s.supports("WithTitle", "title", s.target.Title != nil) {
		*s.target.Title = title
	}
	return s.self
}

// WithSummary sets the short summary.
func (s *TraitSetter[B]) WithSummary(summary string) B {
	if s.supports("WithSummary", "summary", s.target.Summary != nil) {
		*s.target.Summary = summary
	}
	return s.self
}

// WithDescription sets the verbose description.
func (s *TraitSetter[B]) WithDescription(description string) B {
	if s.supports("WithDescription", "description", s.target.Description != nil) {
		*s.target.Description = description
	}
	return s.self
}

// WithTag adds a tag built by configure.
func (s *TraitSetter[B]) WithTag(configure func(tag *TagBuilder)) B {
	if !s.supports("WithTag", "tags", s.target.Tags != nil) {
		return s.self
	}
	tb := NewTagBuilder()
	if configure != nil {
		configure(tb)
	}
	tag, err := tb.Build()
	if err != nil {
		s.life.Record(err)
		return s.self
	}
	*s.target.Tags = append(*s.target.Tags, *tag)
	return s.self
}

// WithTags adds tags by name.
func (s *TraitSetter[B]) WithTags(names ...string) B {
	if !s.supports("WithTags", "tags", s.target.Tags != nil) {
		return s.self
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		*s.target.Tags = append(*s.target.Tags, asyncapi.Tag{Name: name})
	}
	return s.self
}

// WithExternalDocumentation sets the external documentation.
func (s *TraitSetter[B]) WithExternalDocumentation(url, description string) B {
	if s.supports("WithExternalDocumentation", "externalDocs", s.target.ExternalDocs != nil) {
		*s.target.ExternalDocs = &asyncapi.ExternalDocumentation{
			URL:         url,
			Description: description,
		}
	}
	return s.self
}

// WithBinding stores a protocol binding, replacing any binding of the same protocol.
func (s *TraitSetter[B]) WithBinding(binding bindings.Binding) B {
	if !s.supports("WithBinding", "bindings", s.target.Bindings != nil) {
		return s.self
	}
	if *s.target.Bindings == nil || (*s.target.Bindings).Ref() != "" {
		*s.target.Bindings = bindings.NewCollection(s.target.BindingKind)
	}
	s.life.Record((*s.target.Bindings).Add(binding))
	return s.self
}

// WithBindingsRef replaces the bindings by a reference to a bindings component.
func (s *TraitSetter[B]) WithBindingsRef(ref string) B {
	if !s.supports("WithBindingsRef", "bindings", s.target.Bindings != nil) {
		return s.self
	}
	if err := asyncapi.ValidateRef(ref); err != nil {
		s.life.Record(err)
		return s.self
	}
	*s.target.Bindings = bindings.RefCollection(s.target.BindingKind, ref)
	return s.self
}

// MessageTraitTarget points at the message draft fields shared with message traits.
type MessageTraitTarget struct {
	Name          *string
	ContentType   *string
	Headers       **spec.Schema
	CorrelationID **asyncapi.CorrelationID
	Examples      *[]asyncapi.MessageExample
}

// MessageTraitSetter implements the message specific trait configuration.
type MessageTraitSetter[B any] struct {
	self   B
	life   *Lifecycle
	target MessageTraitTarget
}

// NewMessageTraitSetter binds a message setter to the draft of the builder self.
func NewMessageTraitSetter[B any](self B, life *Lifecycle, target MessageTraitTarget) MessageTraitSetter[B] {
	return MessageTraitSetter[B]{
		self:   self,
		life:   life,
		target: target,
	}
}

// WithName sets the machine-friendly message name.
func (s *MessageTraitSetter[B]) WithName(name string) B {
	if s.life.Guard("WithName") {
		*s.target.Name = name
	}
	return s.self
}

// WithContentType sets the content type of the payload.
func (s *MessageTraitSetter[B]) WithContentType(contentType string) B {
	if s.life.Guard("WithContentType") {
		*s.target.ContentType = contentType
	}
	return s.self
}

// WithHeaders sets the headers schema.
func (s *MessageTraitSetter[B]) WithHeaders(schema *spec.Schema) B {
	if !s.life.Guard("WithHeaders") {
		return s.self
	}
	if schema == nil {
		s.life.Record(errNil("headers schema"))
		return s.self
	}
	*s.target.Headers = schema
	return s.self
}

// WithCorrelationID sets the correlation id location, a runtime expression.
func (s *MessageTraitSetter[B]) WithCorrelationID(location, description string) B {
	if !s.life.Guard("WithCorrelationID") {
		return s.self
	}
	if location == "" {
		s.life.Record(errNil("correlation id location"))
		return s.self
	}
	*s.target.CorrelationID = &asyncapi.CorrelationID{
		Location:    location,
		Description: description,
	}
	return s.self
}

// WithExample appends a message example.
func (s *MessageTraitSetter[B]) WithExample(example asyncapi.MessageExample) B {
	if s.life.Guard("WithExample") {
		*s.target.Examples = append(*s.target.Examples, example)
	}
	return s.self
}

// TraitConfigurable is the configuration shared by entity and trait builders.
type TraitConfigurable[B any] interface {
	WithTitle(title string) B
	WithSummary(summary string) B
	WithDescription(description string) B
	WithTag(configure func(tag *TagBuilder)) B
	WithTags(names ...string) B
	WithExternalDocumentation(url, description string) B
	WithBinding(binding bindings.Binding) B
	WithBindingsRef(ref string) B
}

// OperationTraitConfigurable is satisfied by operation builders and operation trait builders.
type OperationTraitConfigurable[B any] interface {
	TraitConfigurable[B]
}

// MessageTraitConfigurable is satisfied by message builders and message trait builders.
type MessageTraitConfigurable[B any] interface {
	TraitConfigurable[B]
	WithName(name string) B
	WithContentType(contentType string) B
	WithHeaders(schema *spec.Schema) B
	WithCorrelationID(location, description string) B
	WithExample(example asyncapi.MessageExample) B
}
