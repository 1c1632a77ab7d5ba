package v3

import (
	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/bindings"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/builder"
)

// mergeOperationTraits applies the inline traits of op and drops them. Referenced
// traits are kept for consumers to resolve.
func mergeOperationTraits(op *Operation) {
	var inline, refs []*OperationTrait
	for _, t := range op.Traits {
		if t.Ref != "" {
			refs = append(refs, t)
		} else {
			inline = append(inline, t)
		}
	}
	if len(inline) == 0 {
		return
	}

	op.Title = builder.Overlay(op.Title, builder.Pluck(inline, func(t *OperationTrait) string { return t.Title })...)
	op.Summary = builder.Overlay(op.Summary, builder.Pluck(inline, func(t *OperationTrait) string { return t.Summary })...)
	op.Description = builder.Overlay(op.Description, builder.Pluck(inline, func(t *OperationTrait) string { return t.Description })...)
	op.ExternalDocs = builder.OverlayPtr(op.ExternalDocs, builder.Pluck(inline, func(t *OperationTrait) *asyncapi.ExternalDocumentation { return t.ExternalDocs })...)
	op.Security = builder.OverlaySlice(op.Security, builder.Pluck(inline, func(t *OperationTrait) []*asyncapi.SecurityScheme { return t.Security })...)
	op.Tags = builder.MergeTags(append([][]asyncapi.Tag{op.Tags}, builder.Pluck(inline, func(t *OperationTrait) []asyncapi.Tag { return t.Tags })...)...)
	op.Bindings = builder.MergeBindings(bindings.KindOperation, op.Bindings, builder.Pluck(inline, func(t *OperationTrait) *bindings.Collection { return t.Bindings })...)
	op.Traits = refs
}

// mergeMessageTraits applies the inline traits of msg and drops them.
func mergeMessageTraits(msg *Message) {
	var inline, refs []*MessageTrait
	for _, t := range msg.Traits {
		if t.Ref != "" {
			refs = append(refs, t)
		} else {
			inline = append(inline, t)
		}
	}
	if len(inline) == 0 {
		return
	}

	msg.Name = builder.Overlay(msg.Name, builder.Pluck(inline, func(t *MessageTrait) string { return t.Name })...)
	msg.Title = builder.Overlay(msg.Title, builder.Pluck(inline, func(t *MessageTrait) string { return t.Title })...)
	msg.Summary = builder.Overlay(msg.Summary, builder.Pluck(inline, func(t *MessageTrait) string { return t.Summary })...)
	msg.Description = builder.Overlay(msg.Description, builder.Pluck(inline, func(t *MessageTrait) string { return t.Description })...)
	msg.ContentType = builder.Overlay(msg.ContentType, builder.Pluck(inline, func(t *MessageTrait) string { return t.ContentType })...)
	msg.Headers = builder.OverlayPtr(msg.Headers, builder.Pluck(inline, func(t *MessageTrait) *spec.Schema { return t.Headers })...)
	msg.CorrelationID = builder.OverlayPtr(msg.CorrelationID, builder.Pluck(inline, func(t *MessageTrait) *asyncapi.CorrelationID { return t.CorrelationID })...)
	msg.ExternalDocs = builder.OverlayPtr(msg.ExternalDocs, builder.Pluck(inline, func(t *MessageTrait) *asyncapi.ExternalDocumentation { return t.ExternalDocs })...)
	msg.Tags = builder.MergeTags(append([][]asyncapi.Tag{msg.Tags}, builder.Pluck(inline, func(t *MessageTrait) []asyncapi.Tag { return t.Tags })...)...)
	msg.Examples = builder.MergeExamples(append([][]asyncapi.MessageExample{msg.Examples}, builder.Pluck(inline, func(t *MessageTrait) []asyncapi.MessageExample { return t.Examples })...)...)
	msg.Bindings = builder.MergeBindings(bindings.KindMessage, msg.Bindings, builder.Pluck(inline, func(t *MessageTrait) *bindings.Collection { return t.Bindings })...)
	msg.Traits = refs
}
