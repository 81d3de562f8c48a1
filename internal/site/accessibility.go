// SPDX-License-Identifier: MPL-2.0

package site

import (
	"errors"
	"fmt"
)

// Accessibility levels.
const (
	AccessPublic            Accessibility = "public"
	AccessProtected         Accessibility = "protected"
	AccessProtectedInternal Accessibility = "protected_internal"
	AccessPrivateProtected  Accessibility = "private_protected"
	AccessInternal          Accessibility = "internal"
	AccessPrivate           Accessibility = "private"
)

// ErrInvalidAccessibility is the sentinel error wrapped by InvalidAccessibilityError.
var ErrInvalidAccessibility = errors.New("invalid accessibility")

type (
	// Accessibility is the declared accessibility of a declaration.
	Accessibility string

	// InvalidAccessibilityError is returned when an Accessibility value is
	// not one of the declared levels.
	InvalidAccessibilityError struct {
		Value Accessibility
	}
)

// String returns the string representation of the Accessibility.
func (a Accessibility) String() string { return string(a) }

// IsValid returns whether the Accessibility is one of the declared levels.
func (a Accessibility) IsValid() (bool, []error) {
	switch a {
	case AccessPublic, AccessProtected, AccessProtectedInternal,
		AccessPrivateProtected, AccessInternal, AccessPrivate:
		return true, nil
	default:
		return false, []error{&InvalidAccessibilityError{Value: a}}
	}
}

// IsPublicSurface reports whether declarations with this accessibility are
// visible outside their assembly. Private and internal declarations are not.
func (a Accessibility) IsPublicSurface() bool {
	return a != AccessPrivate && a != AccessInternal
}

// Error implements the error interface for InvalidAccessibilityError.
func (e *InvalidAccessibilityError) Error() string {
	return fmt.Sprintf("invalid accessibility %q", e.Value)
}

// Unwrap returns ErrInvalidAccessibility for errors.Is() compatibility.
func (e *InvalidAccessibilityError) Unwrap() error { return ErrInvalidAccessibility }
