// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

// IntelliSense returns an IntelliSense XML document for the given assembly.
// pairs alternates documentation identifiers and their raw member markup.
func IntelliSense(assembly string, pairs ...string) string {
	if len(pairs)%2 != 0 {
		panic("testutil.IntelliSense: odd number of id/markup arguments")
	}

	var b strings.Builder
	b.WriteString("\xef\xbb\xbf<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<doc>\n")
	fmt.Fprintf(&b, "  <assembly>\n    <name>%s</name>\n  </assembly>\n  <members>\n", assembly)
	for i := 0; i < len(pairs); i += 2 {
		fmt.Fprintf(&b, "    <member name=\"%s\">%s</member>\n", pairs[i], pairs[i+1])
	}
	b.WriteString("  </members>\n</doc>\n")
	return b.String()
}

// WriteIntelliSense writes an IntelliSense document to dir/name and returns
// its path.
func WriteIntelliSense(t testing.TB, dir, name, assembly string, pairs ...string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	MustWriteFile(t, path, IntelliSense(assembly, pairs...))
	return path
}
