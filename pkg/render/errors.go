// pkg/render/errors.go

package render

import (
	"errors"
	"fmt"
)

var (
	// ErrRender is matched by every failure to produce or store a PDF.
	ErrRender = errors.New("render failed")

	ErrUnknownKind = errors.New("unknown document kind")
)

// RenderError records the step and file involved in a failed render.
type RenderError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("render: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("render: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRender.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}
