// SPDX-License-Identifier: MPL-2.0

// Package docblock turns the raw markup of one documented member into a
// comment block.
//
// Raw markup is split into its top-level elements (summary, typeparam,
// param, returns, exception and any pass-through element such as remarks).
// Each element is rendered either as a single line or, when it is too long,
// as an opening tag line, a body wrapped by package reflow and a closing tag
// line. Elements are emitted in a fixed order regardless of source order.
package docblock
