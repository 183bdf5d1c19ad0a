package emit

import (
	"errors"

	"fastreflect/internal/diagnostic"
)

var (
	// ErrIllegalArgument is returned by an entry point invoked with an access
	// sort, value or receiver the field does not accept.
	ErrIllegalArgument = errors.New("illegal argument")
	// ErrNilReceiver is returned by instance entry points given a nil receiver.
	ErrNilReceiver = errors.New("nil receiver")
	// ErrVerify is returned when a program fails verification or linking.
	ErrVerify = errors.New("verification failed")
)

// EntryError reports a failure raised by one entry point of a unit.
type EntryError struct {
	Unit   string
	Method string
	Err    error
}

func (e *EntryError) Error() string {
	return e.Unit + "." + e.Method + ": " + e.Err.Error()
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// VerifyError carries the diagnostics of a rejected program.
type VerifyError struct {
	Unit        string
	Diagnostics diagnostic.Diagnostics
}

func (e *VerifyError) Error() string {
	return e.Unit + ": " + ErrVerify.Error() + ": " + e.Diagnostics.Error().Error()
}

func (e *VerifyError) Unwrap() error {
	return ErrVerify
}
