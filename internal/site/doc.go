// SPDX-License-Identifier: MPL-2.0

// Package site models documentable declaration sites: the declaration kind,
// its documentation identifier, its accessibility and the comment it already
// carries. Sites are produced by an external source walker and consumed by
// the importer.
package site
