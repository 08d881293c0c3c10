package project

import "errors"

var (
	// ErrEntityNotFound indicates a lookup by key or name failed.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrDuplicateEntity indicates a name collision within the entity's scope.
	ErrDuplicateEntity = errors.New("duplicate entity")
	// ErrInvalid indicates a structurally invalid model value.
	ErrInvalid = errors.New("invalid value")
)
