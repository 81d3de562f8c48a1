// SPDX-License-Identifier: MPL-2.0

// Package importer attaches imported documentation to declaration sites.
//
// For every site it decides whether the declaration is documentable, looks
// its identifier up, assembles the comment block and applies the configured
// policy when the markup is malformed. Sites are processed concurrently;
// results keep the order of the input.
//
// Run and Process report per-site results for tools such as the render
// command. Comment is the entry point for callers that splice one comment at a
// time into a source tree: it returns the block or nothing, and malformed
// markup is an error regardless of the policy.
package importer
