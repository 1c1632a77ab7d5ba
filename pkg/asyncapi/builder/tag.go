package builder

import (
	"fmt"

	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
)

// TagBuilder builds a Tag.
type TagBuilder struct {
	life  Lifecycle
	draft asyncapi.Tag
}

// NewTagBuilder creates a TagBuilder.
func NewTagBuilder() *TagBuilder {
	return &TagBuilder{}
}

// WithName sets the tag name.
func (b *TagBuilder) WithName(name string) *TagBuilder {
	if b.life.Guard("WithName") {
		b.draft.Name = name
	}
	return b
}

// WithDescription sets the tag description.
func (b *TagBuilder) WithDescription(description string) *TagBuilder {
	if b.life.Guard("WithDescription") {
		b.draft.Description = description
	}
	return b
}

// WithExternalDocumentation sets the tag external documentation.
func (b *TagBuilder) WithExternalDocumentation(url, description string) *TagBuilder {
	if b.life.Guard("WithExternalDocumentation") {
		b.draft.ExternalDocs = &asyncapi.ExternalDocumentation{URL: url, Description: description}
	}
	return b
}

// Build validates and returns the tag.
func (b *TagBuilder) Build() (*asyncapi.Tag, error) {
	err := Finish[*asyncapi.Tag](&b.life, "tag", &b.draft, ValidatorFunc[*asyncapi.Tag](validateTag))
	if err != nil {
		return nil, err
	}
	tag := b.draft
	return &tag, nil
}

func validateTag(tag *asyncapi.Tag) []asyncapi.Violation {
	var out []asyncapi.Violation
	if tag.Name == "" {
		out = append(out, asyncapi.Violationf("name", "is required"))
	}
	if tag.ExternalDocs != nil && tag.ExternalDocs.URL == "" {
		out = append(out, asyncapi.Violationf("externalDocs.url", "is required"))
	}
	return out
}

func errNil(what string) error {
	return fmt.Errorf("%s is nil: %w", what, asyncapi.ErrInvalidArgument)
}
