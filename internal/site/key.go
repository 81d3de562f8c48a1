// SPDX-License-Identifier: MPL-2.0

package site

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is the sentinel error wrapped by InvalidKeyError.
var ErrInvalidKey = errors.New("invalid documentation identifier")

type (
	// Key is a documentation identifier: a kind letter (T, M, P, F or E), a
	// colon and a fully qualified, signature-disambiguated name, e.g.
	// "M:System.Globalization.Calendar.AddDays(System.DateTime,System.Int32)".
	Key string

	// InvalidKeyError is returned when a Key does not have the identifier shape.
	InvalidKeyError struct {
		Value  Key
		Reason string
	}
)

// String returns the string representation of the Key.
func (k Key) String() string { return string(k) }

// Letter returns the kind letter of the key, or 0 if the key is empty.
func (k Key) Letter() byte {
	if k == "" {
		return 0
	}
	return k[0]
}

// Name returns the qualified name after the kind prefix.
func (k Key) Name() string {
	if len(k) < 2 || k[1] != ':' {
		return string(k)
	}
	return string(k[2:])
}

// IsValid returns whether the key has the identifier shape.
func (k Key) IsValid() (bool, []error) {
	invalid := func(reason string) (bool, []error) {
		return false, []error{&InvalidKeyError{Value: k, Reason: reason}}
	}

	if len(k) < 2 || k[1] != ':' {
		return invalid("must start with a kind letter and a colon")
	}
	if !strings.ContainsRune("TMPFE", rune(k[0])) {
		return invalid("kind letter must be one of T, M, P, F, E")
	}
	name := k.Name()
	if strings.TrimSpace(name) == "" {
		return invalid("qualified name must not be empty")
	}
	if strings.ContainsAny(name, " \t\r\n") {
		return invalid("qualified name must not contain whitespace")
	}
	return true, nil
}

// Error implements the error interface for InvalidKeyError.
func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid documentation identifier %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidKey for errors.Is() compatibility.
func (e *InvalidKeyError) Unwrap() error { return ErrInvalidKey }
