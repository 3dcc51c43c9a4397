// pkg/store/errors.go

package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNilDatabase is returned when a Postgres store is built without a connection.
	ErrNilDatabase = errors.New("nil database connection")

	// ErrDuplicateID is returned when a business id is already taken.
	ErrDuplicateID = errors.New("duplicate business id")
)

// StorageError wraps a persistence failure with the operation that failed.
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// wrap returns err as a *StorageError unless it is nil or already one.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
