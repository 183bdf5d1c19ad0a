package accessor

import (
	"errors"

	"fastreflect/internal/emit"
)

var (
	ErrNilField = errors.New("nil field")
	// ErrIllegalArgument is returned by entry points that do not accept the
	// requested sort, value or receiver, and by FieldOf and StaticOf for
	// arguments that do not describe a field.
	ErrIllegalArgument = emit.ErrIllegalArgument
	ErrNilReceiver     = emit.ErrNilReceiver
)

// ConstructionError reports a unit that could not be materialized.
type ConstructionError struct {
	Name string
	Err  error
}

func (e *ConstructionError) Error() string {
	return "construct " + e.Name + ": " + e.Err.Error()
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}
