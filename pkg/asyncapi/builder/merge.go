package builder

import (
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/bindings"
)

// Overlay returns own when it is set, else the last set value of traits.
// Traits are folded left to right, so a later trait overwrites an earlier one.
func Overlay[T comparable](own T, traits ...T) T {
	var zero T
	if own != zero {
		return own
	}
	out := zero
	for _, v := range traits {
		if v != zero {
			out = v
		}
	}
	return out
}

// OverlayPtr is Overlay for pointer fields.
func OverlayPtr[T any](own *T, traits ...*T) *T {
	if own != nil {
		return own
	}
	var out *T
	for _, v := range traits {
		if v != nil {
			out = v
		}
	}
	return out
}

// MergeTags concatenates tag lists, keeping the first tag of every name.
func MergeTags(lists ...[]asyncapi.Tag) []asyncapi.Tag {
	var out []asyncapi.Tag
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, tag := range list {
			key := tag.Name
			if key == "" {
				key = "$ref:" + tag.Ref
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// MergeExamples concatenates example lists.
func MergeExamples(lists ...[]asyncapi.MessageExample) []asyncapi.MessageExample {
	var out []asyncapi.MessageExample
	for _, list := range lists {
		out = append(out, list...)
	}
	return out
}

// Pluck maps every trait to one of its fields.
func Pluck[T, V any](traits []T, field func(T) V) []V {
	out := make([]V, 0, len(traits))
	for _, t := range traits {
		out = append(out, field(t))
	}
	return out
}

// MergeBindings folds trait bindings left to right, a later trait replacing the
// binding of an earlier one, then fills the slots own leaves empty. A reference
// collection on the entity is kept untouched and trait references are skipped.
func MergeBindings(kind bindings.Kind, own *bindings.Collection, traits ...*bindings.Collection) *bindings.Collection {
	if own != nil && own.Ref() != "" {
		return own
	}
	acc := bindings.NewCollection(kind)
	for _, c := range traits {
		if c == nil || c.Ref() != "" {
			continue
		}
		for _, b := range c.Enumerate() {
			_ = acc.Add(b)
		}
	}
	if acc.Len() == 0 {
		return own
	}
	if own == nil {
		return acc
	}
	merged := own.Clone()
	merged.MergeMissing(acc)
	return merged
}

// OverlaySlice is Overlay for slice fields; an empty slice counts as unset.
func OverlaySlice[T any](own []T, traits ...[]T) []T {
	if len(own) > 0 {
		return own
	}
	var out []T
	for _, v := range traits {
		if len(v) > 0 {
			out = v
		}
	}
	return out
}
