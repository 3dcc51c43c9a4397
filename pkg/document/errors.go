// pkg/document/errors.go

package document

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no document matches a business id.
var ErrNotFound = errors.New("document not found")

// NotFoundError names the kind and business id that could not be resolved.
type NotFoundError struct {
	Kind Kind
	ID   string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind.Title(), e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound builds a *NotFoundError.
func NotFound(kind Kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}
