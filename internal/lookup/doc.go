// SPDX-License-Identifier: MPL-2.0

// Package lookup maps documentation identifiers to raw documentation markup.
//
// The importer only depends on the Lookup interface. Map is a trivial
// in-memory implementation; Loader builds an Index from a directory of
// IntelliSense XML files, where every <member name="ID"> element contributes
// its inner markup under ID.
package lookup
