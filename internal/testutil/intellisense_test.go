// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestIntelliSense(t *testing.T) {
	t.Parallel()

	doc := IntelliSense("System.Runtime", "T:A", "<summary>A.</summary>")
	for _, want := range []string{
		"<name>System.Runtime</name>",
		`<member name="T:A"><summary>A.</summary></member>`,
		"</doc>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("IntelliSense() missing %q:\n%s", want, doc)
		}
	}
}

func TestIntelliSense_OddPairsPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("IntelliSense() with an odd number of pairs should panic")
		}
	}()
	IntelliSense("x", "T:A")
}

func TestWriteIntelliSense(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := WriteIntelliSense(t, dir, "nested/System.Runtime.xml", "System.Runtime", "T:A", "<summary>A.</summary>")
	if path != filepath.Join(dir, "nested", "System.Runtime.xml") {
		t.Errorf("WriteIntelliSense() = %q", path)
	}
	if got := MustReadFile(t, path); !strings.Contains(got, `name="T:A"`) {
		t.Errorf("written file = %q", got)
	}
}
