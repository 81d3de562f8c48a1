// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. Errors may link to an Issue, a Markdown page rendered with
// glamour that the CLI prints when a command fails in verbose mode.
package issue
