package models

import "errors"

// Error taxonomy shared across the editing engine, adapters, and handlers.
// Wrap with fmt.Errorf("%w: ...", ...) and test with errors.Is.
var (
	// ErrNotFound marks an unknown template, layer, or property id.
	ErrNotFound = errors.New("not found")

	// ErrIndexOutOfRange marks invalid layer reorder arguments.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidTemplate marks a structural validation failure on an
	// externally supplied replacement template.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrServiceUnavailable marks a transport or upstream failure talking to
	// an external collaborator.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrConfiguration marks a missing required credential, distinct from a
	// transport failure.
	ErrConfiguration = errors.New("configuration error")
)
