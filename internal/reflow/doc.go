// SPDX-License-Identifier: MPL-2.0

// Package reflow wraps one paragraph of documentation markup into
// comment-prefixed lines without ever splitting an inline tag.
//
// The engine scans the trimmed paragraph left to right and cuts at the first
// whitespace at or after the current lower bound. When that whitespace falls
// inside an inline tag (for example <see cref="T:System.DateTime" />), the
// boundary resolver picks a legal cut instead: right after the tag's closing
// '>' (pulling trailing punctuation along) when the tag closes within the tag
// limit, or right before the tag's '<' when it does not. Both bounds move 100
// columns further after every produced line.
//
// All functions are pure and safe for concurrent use.
package reflow
