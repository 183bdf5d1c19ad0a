package loader

import "errors"

var (
	// ErrDuplicateDefinition is returned when a name is defined twice in the
	// same context.
	ErrDuplicateDefinition = errors.New("duplicate definition")
	// ErrUnresolvedType is returned when code requires a type its scope does
	// not declare.
	ErrUnresolvedType = errors.New("unresolved type")
	ErrNilScope       = errors.New("nil scope")
	// ErrInvalidDefinition is returned for an empty name or nil code.
	ErrInvalidDefinition = errors.New("invalid definition")
)
