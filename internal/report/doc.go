// SPDX-License-Identifier: MPL-2.0

// Package report renders importer results as styled text, YAML or JSON,
// optionally with a unified diff between each declaration's existing comment
// and the generated one.
package report
