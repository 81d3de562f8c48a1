// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Helpers cover file operations (MustWriteFile, MustReadFile, MustMkdirAll)
// and builders for IntelliSense documentation fixtures (IntelliSense,
// WriteIntelliSense).
package testutil
