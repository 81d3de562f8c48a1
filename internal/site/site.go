// SPDX-License-Identifier: MPL-2.0

package site

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrKindMismatch is the sentinel error wrapped by KindMismatchError.
var ErrKindMismatch = errors.New("identifier does not match declaration kind")

type (
	// DeclarationSite is one declaration that may receive a documentation
	// comment.
	DeclarationSite struct {
		Kind          Kind
		Key           Key
		Accessibility Accessibility
		// ExistingComment is the comment the declaration already carries, if any.
		ExistingComment string
		// File and Line locate the declaration for reporting only.
		File string
		Line int
	}

	// KindMismatchError is returned when a site's key letter does not belong
	// to its declaration kind.
	KindMismatchError struct {
		Kind Kind
		Key  Key
	}
)

// IsValid validates the kind, key and accessibility of the site and that the
// key's kind letter matches the declaration kind.
func (s DeclarationSite) IsValid() (bool, []error) {
	var errs []error
	kindOK, kindErrs := s.Kind.IsValid()
	errs = append(errs, kindErrs...)
	keyOK, keyErrs := s.Key.IsValid()
	errs = append(errs, keyErrs...)
	if _, accessErrs := s.Accessibility.IsValid(); len(accessErrs) > 0 {
		errs = append(errs, accessErrs...)
	}
	if kindOK && keyOK && s.Key.Letter() != s.Kind.Letter() {
		errs = append(errs, &KindMismatchError{Kind: s.Kind, Key: s.Key})
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// Documentable reports whether the importer should attach documentation to
// the site. Private and internal declarations are skipped unless
// includeNonPublic is set.
func (s DeclarationSite) Documentable(includeNonPublic bool) bool {
	return includeNonPublic || s.Accessibility.IsPublicSurface()
}

// HasComment reports whether the declaration already carries a comment.
func (s DeclarationSite) HasComment() bool { return s.ExistingComment != "" }

// Location returns "file:line", "file" or "" depending on what is known.
func (s DeclarationSite) Location() string {
	switch {
	case s.File == "":
		return ""
	case s.Line > 0:
		return s.File + ":" + strconv.Itoa(s.Line)
	default:
		return s.File
	}
}

// Error implements the error interface for KindMismatchError.
func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("identifier %q has kind letter %q but a %s needs %q",
		e.Key, string(e.Key.Letter()), e.Kind, string(e.Kind.Letter()))
}

// Unwrap returns ErrKindMismatch for errors.Is() compatibility.
func (e *KindMismatchError) Unwrap() error { return ErrKindMismatch }
