// SPDX-License-Identifier: MPL-2.0

package site

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Declaration kinds.
const (
	KindClass              Kind = "class"
	KindStruct             Kind = "struct"
	KindInterface          Kind = "interface"
	KindEnum               Kind = "enum"
	KindDelegate           Kind = "delegate"
	KindConstructor        Kind = "constructor"
	KindDestructor         Kind = "destructor"
	KindMethod             Kind = "method"
	KindOperator           Kind = "operator"
	KindConversionOperator Kind = "conversion_operator"
	KindProperty           Kind = "property"
	KindIndexer            Kind = "indexer"
	KindField              Kind = "field"
	KindEnumMember         Kind = "enum_member"
	KindEvent              Kind = "event"
)

// ErrInvalidKind is the sentinel error wrapped by InvalidKindError.
var ErrInvalidKind = errors.New("invalid declaration kind")

// kindLetters maps every declaration kind to its identifier kind letter.
var kindLetters = map[Kind]byte{
	KindClass:              'T',
	KindStruct:             'T',
	KindInterface:          'T',
	KindEnum:               'T',
	KindDelegate:           'T',
	KindConstructor:        'M',
	KindDestructor:         'M',
	KindMethod:             'M',
	KindOperator:           'M',
	KindConversionOperator: 'M',
	KindProperty:           'P',
	KindIndexer:            'P',
	KindField:              'F',
	KindEnumMember:         'F',
	KindEvent:              'E',
}

type (
	// Kind is the syntactic kind of a declaration. The set is closed.
	Kind string

	// InvalidKindError is returned when a Kind is not one of the declared kinds.
	InvalidKindError struct {
		Value Kind
	}
)

// Kinds returns every declaration kind, sorted.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindLetters))
	for k := range kindLetters {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// String returns the string representation of the Kind.
func (k Kind) String() string { return string(k) }

// Letter returns the identifier kind letter (T, M, P, F or E) for k, or 0
// when k is invalid.
func (k Kind) Letter() byte { return kindLetters[k] }

// IsValid returns whether the Kind is one of the declared kinds.
func (k Kind) IsValid() (bool, []error) {
	if _, ok := kindLetters[k]; !ok {
		return false, []error{&InvalidKindError{Value: k}}
	}
	return true, nil
}

// Error implements the error interface for InvalidKindError.
func (e *InvalidKindError) Error() string {
	names := make([]string, 0, len(kindLetters))
	for _, k := range Kinds() {
		names = append(names, string(k))
	}
	return fmt.Sprintf("invalid declaration kind %q (valid: %s)", e.Value, strings.Join(names, ", "))
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }
