package schema

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName         = errors.New("schema: invalid identifier")
	ErrDuplicateField      = errors.New("schema: duplicate field name")
	ErrDuplicateObject     = errors.New("schema: duplicate object name")
	ErrDuplicateKind       = errors.New("schema: duplicate kind")
	ErrUnknownKind         = errors.New("schema: unknown field kind")
	ErrIncompleteKind      = errors.New("schema: kind is missing a handler")
	ErrMissingElement      = errors.New("schema: collection field has no element")
	ErrInvalidLength       = errors.New("schema: invalid array length")
	ErrMissingReference    = errors.New("schema: reference field has no target")
	ErrUnresolvedReference = errors.New("schema: unresolved reference")
)

// FieldError ties a failure to the object and field it was raised for.
type FieldError struct {
	Object string
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("schema: object=%s field=%s: %v", e.Object, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
