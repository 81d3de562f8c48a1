// SPDX-License-Identifier: MPL-2.0

// Package manifest reads the YAML list of declaration sites that drives a
// render run. Manifests are produced by an external source walker.
package manifest
