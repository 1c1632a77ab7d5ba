package builder

import "github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"

// Validator inspects an entity and reports every violation it finds.
type Validator[T any] interface {
	Validate(value T) []asyncapi.Violation
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc[T any] func(value T) []asyncapi.Violation

// Validate calls f(value).
func (f ValidatorFunc[T]) Validate(value T) []asyncapi.Violation {
	return f(value)
}

// Validate runs every validator against value and aggregates all violations into a
// single *asyncapi.ValidationError. It returns nil when there is none.
func Validate[T any](entity string, value T, validators ...Validator[T]) error {
	var violations []asyncapi.Violation
	for _, v := range validators {
		if v == nil {
			continue
		}
		violations = append(violations, v.Validate(value)...)
	}
	if len(violations) == 0 {
		return nil
	}
	return asyncapi.NewValidationError(entity, violations)
}

// Validators is an ordered set of validators for one entity kind.
type Validators[T any] []Validator[T]

// With returns a copy of the set extended with more validators.
func (vs Validators[T]) With(more ...Validator[T]) Validators[T] {
	out := make(Validators[T], 0, len(vs)+len(more))
	out = append(out, vs...)
	return append(out, more...)
}
