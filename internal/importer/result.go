// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"github.com/docimport/docimport/internal/site"
)

// Site outcomes.
const (
	// StatusGenerated means a complete comment block was produced.
	StatusGenerated Status = "generated"
	// StatusPartial means some elements were dropped under PolicySkipElement.
	StatusPartial Status = "partial"
	// StatusMissing means the identifier has no documentation.
	StatusMissing Status = "missing"
	// StatusSkipped means the site was not processed, e.g. it is not public.
	StatusSkipped Status = "skipped"
	// StatusInvalid means the site itself failed validation.
	StatusInvalid Status = "invalid"
	// StatusMalformed means the markup could not be rendered.
	StatusMalformed Status = "malformed"
)

// Diagnostic severities.
const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic codes.
const (
	CodeInvalidSite      = "invalid_site"
	CodeNotPublic        = "not_public"
	CodeLookupMiss       = "lookup_miss"
	CodeNoElements       = "no_elements"
	CodeUnparsableMarkup = "unparsable_markup"
	CodeMalformedElement = "malformed_element"
	CodeElementSkipped   = "element_skipped"
	CodeReplacesComment  = "replaces_comment"
)

type (
	// Status is the outcome for one site.
	Status string

	// Severity represents diagnostic severity.
	Severity string

	// Diagnostic is a structured note about one site, returned to callers
	// rather than written to a log so that the report decides how to render it.
	Diagnostic struct {
		Severity Severity
		// Code is a machine-readable identifier (e.g., "lookup_miss").
		Code    string
		Message string
		// Element names the documentation element concerned, if any.
		Element string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}

	// Result is the outcome for one site.
	Result struct {
		Site    site.DeclarationSite
		Status  Status
		Comment string
		// Source is the documentation file the markup came from, when known.
		Source      string
		Diagnostics []Diagnostic
	}

	// Results are the outcomes of one run, in input order.
	Results []Result
)

// HasComment reports whether the result carries a comment to insert.
func (r Result) HasComment() bool {
	return r.Status == StatusGenerated || r.Status == StatusPartial
}

// Count returns the number of results with status s.
func (rs Results) Count(s Status) int {
	n := 0
	for _, r := range rs {
		if r.Status == s {
			n++
		}
	}
	return n
}

// Counts returns the number of results per status.
func (rs Results) Counts() map[Status]int {
	counts := make(map[Status]int)
	for _, r := range rs {
		counts[r.Status]++
	}
	return counts
}

// Statuses returns every status in report order.
func Statuses() []Status {
	return []Status{StatusGenerated, StatusPartial, StatusMissing, StatusSkipped, StatusInvalid, StatusMalformed}
}
