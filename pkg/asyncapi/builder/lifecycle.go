// Package builder holds the infrastructure shared by the versioned AsyncAPI builders:
// the Draft to Built lifecycle, pluggable validators with aggregated reporting, and
// the trait configuration capability embedded in operation and message builders.
package builder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
)

// Lifecycle tracks the Draft -> Built state of a builder. Configuration calls made
// after Build are ignored and recorded, and a second Build fails.
type Lifecycle struct {
	built  bool
	misuse []string
	errs   []error
}

// Sealed reports whether Build has been called.
func (l *Lifecycle) Sealed() bool {
	return l.built
}

// Guard reports whether a configuration call may mutate the draft. Calls on a sealed
// builder are recorded and must be ignored by the caller.
func (l *Lifecycle) Guard(method string) bool {
	if l.built {
		l.misuse = append(l.misuse, method)
		return false
	}
	return true
}

// Record keeps an error raised by a configuration call; it is returned by Build.
func (l *Lifecycle) Record(err error) {
	if err != nil && !l.built {
		l.errs = append(l.errs, err)
	}
}

// Err returns the recorded configuration errors, joined.
func (l *Lifecycle) Err() error {
	return errors.Join(l.errs...)
}

// Seal moves the builder to Built. It fails with asyncapi.ErrBuilderSealed when the
// builder was already built.
func (l *Lifecycle) Seal(entity string) error {
	if l.built {
		if len(l.misuse) > 0 {
			return fmt.Errorf("%s builder: ignored %s: %w", entity, strings.Join(l.misuse, ", "), asyncapi.ErrBuilderSealed)
		}
		return fmt.Errorf("%s builder: %w", entity, asyncapi.ErrBuilderSealed)
	}
	l.built = true
	return nil
}

// Misuse returns the configuration calls ignored because the builder was sealed.
func (l *Lifecycle) Misuse() []string {
	return l.misuse
}

// Finish seals life and validates value. It returns the configuration errors recorded
// on the builder together with every violation reported by validators.
func Finish[T any](life *Lifecycle, entity string, value T, validators ...Validator[T]) error {
	if err := life.Seal(entity); err != nil {
		return err
	}
	verr := Validate(entity, value, validators...)
	if len(life.errs) == 0 {
		return verr
	}
	errs := append([]error{}, life.errs...)
	if verr != nil {
		errs = append(errs, verr)
	}
	return fmt.Errorf("%s builder: %w", entity, errors.Join(errs...))
}

// Buildable is implemented by every builder.
type Buildable[E any] interface {
	Build() (E, error)
}

// Nested configures child through setup and builds it. Failures are recorded on the
// parent lifecycle life and reported by the parent Build.
func Nested[B Buildable[E], E any](life *Lifecycle, what string, child B, setup func(B)) (E, bool) {
	var zero E
	if setup == nil {
		life.Record(fmt.Errorf("%s: setup is nil: %w", what, asyncapi.ErrInvalidArgument))
		return zero, false
	}
	setup(child)
	entity, err := child.Build()
	if err != nil {
		life.Record(fmt.Errorf("%s: %w", what, err))
		return zero, false
	}
	return entity, true
}
