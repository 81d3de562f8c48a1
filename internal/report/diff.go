// SPDX-License-Identifier: MPL-2.0

package report

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff from the existing comment to the generated one,
// or "" when they are identical. Line endings are normalized to "\n" first.
func Diff(existing, generated string) (string, error) {
	a := strings.ReplaceAll(existing, "\r\n", "\n")
	b := strings.ReplaceAll(generated, "\r\n", "\n")
	if a == b {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: "existing",
		ToFile:   "generated",
		Context:  3,
	})
}
