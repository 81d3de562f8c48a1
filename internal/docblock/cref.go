// SPDX-License-Identifier: MPL-2.0

package docblock

import "regexp"

// inlineCref matches the start of a cref attribute whose value carries a
// member kind prefix.
var inlineCref = regexp.MustCompile(`(cref\s*=\s*")[TMPFE]:`)

// NormalizeCref strips a leading member kind prefix (T:, M:, P:, F: or E:)
// from a cross-reference. Any other value is returned unchanged.
func NormalizeCref(v string) string {
	if len(v) < 2 || v[1] != ':' {
		return v
	}
	switch v[0] {
	case 'T', 'M', 'P', 'F', 'E':
		return v[2:]
	default:
		return v
	}
}

// NormalizeInlineCrefs applies NormalizeCref to every cref attribute found in
// markup.
func NormalizeInlineCrefs(markup string) string {
	return inlineCref.ReplaceAllString(markup, "${1}")
}
