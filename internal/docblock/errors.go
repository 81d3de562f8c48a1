// SPDX-License-Identifier: MPL-2.0

package docblock

import (
	"errors"
	"fmt"
)

// ErrUnparsableMarkup is returned when raw markup cannot be split into
// top-level elements.
var ErrUnparsableMarkup = errors.New("unparsable documentation markup")

type (
	// ParseError reports where the element parser gave up. It matches both
	// ErrUnparsableMarkup and the underlying decoder error.
	ParseError struct {
		// Offset is the byte offset into the raw markup of the failing token.
		Offset int64
		Err    error
	}

	// ElementError attributes an assembly failure to one element. The wrapped
	// error is usually a *reflow.MalformedMarkupError.
	ElementError struct {
		Name string
		Err  error
	}
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", ErrUnparsableMarkup, e.Offset, e.Err)
}

// Unwrap returns ErrUnparsableMarkup and the decoder error.
func (e *ParseError) Unwrap() []error { return []error{ErrUnparsableMarkup, e.Err} }

// Error implements the error interface.
func (e *ElementError) Error() string {
	return fmt.Sprintf("<%s>: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ElementError) Unwrap() error { return e.Err }
