// SPDX-License-Identifier: MPL-2.0

package reflow

import (
	"errors"
	"fmt"
)

// ErrMalformedMarkup is the sentinel wrapped by MalformedMarkupError.
var ErrMalformedMarkup = errors.New("malformed markup")

// MalformedMarkupError reports an inline tag whose matching delimiter could
// not be found. It wraps ErrMalformedMarkup for errors.Is() compatibility.
type MalformedMarkupError struct {
	// Offset is the byte offset in the trimmed paragraph where the search started.
	Offset int
	// Reason names the delimiter that was missing.
	Reason string
}

// Error implements the error interface.
func (e *MalformedMarkupError) Error() string {
	return fmt.Sprintf("malformed markup at offset %d: %s", e.Offset, e.Reason)
}

// Unwrap returns ErrMalformedMarkup for errors.Is() compatibility.
func (e *MalformedMarkupError) Unwrap() error { return ErrMalformedMarkup }
