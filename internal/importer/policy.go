// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"errors"
	"fmt"
)

// Malformed markup policies.
const (
	// PolicySkipElement drops the failing element and keeps the rest of the block.
	PolicySkipElement Policy = "skip-element"
	// PolicySkipSite leaves the site without a comment.
	PolicySkipSite Policy = "skip-site"
	// PolicyAbort fails the whole run.
	PolicyAbort Policy = "abort"

	// DefaultPolicy is used when no policy is configured.
	DefaultPolicy = PolicySkipSite
)

// ErrInvalidPolicy is the sentinel error wrapped by InvalidPolicyError.
var ErrInvalidPolicy = errors.New("invalid malformed-markup policy")

type (
	// Policy selects what happens when a site's markup is malformed.
	Policy string

	// InvalidPolicyError is returned when a Policy value is not recognized.
	InvalidPolicyError struct {
		Value Policy
	}
)

// Policies returns every valid policy.
func Policies() []Policy {
	return []Policy{PolicySkipElement, PolicySkipSite, PolicyAbort}
}

// String returns the string representation of the Policy.
func (p Policy) String() string { return string(p) }

// IsValid returns whether the Policy is one of the defined policies.
func (p Policy) IsValid() (bool, []error) {
	switch p {
	case PolicySkipElement, PolicySkipSite, PolicyAbort:
		return true, nil
	default:
		return false, []error{&InvalidPolicyError{Value: p}}
	}
}

// ParsePolicy converts s into a Policy. An empty string yields DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	if s == "" {
		return DefaultPolicy, nil
	}
	p := Policy(s)
	if ok, errs := p.IsValid(); !ok {
		return "", errs[0]
	}
	return p, nil
}

// Error implements the error interface for InvalidPolicyError.
func (e *InvalidPolicyError) Error() string {
	return fmt.Sprintf("invalid malformed-markup policy %q (valid: %s, %s, %s)",
		e.Value, PolicySkipElement, PolicySkipSite, PolicyAbort)
}

// Unwrap returns ErrInvalidPolicy for errors.Is() compatibility.
func (e *InvalidPolicyError) Unwrap() error { return ErrInvalidPolicy }
