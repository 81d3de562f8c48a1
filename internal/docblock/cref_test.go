// SPDX-License-Identifier: MPL-2.0

package docblock

import "testing"

func TestNormalizeCref(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"T:System.DateTime", "System.DateTime"},
		{"M:System.Globalization.Calendar.AddDays(System.DateTime,System.Int32)", "System.Globalization.Calendar.AddDays(System.DateTime,System.Int32)"},
		{"P:System.Globalization.Calendar.Eras", "System.Globalization.Calendar.Eras"},
		{"F:System.Globalization.Calendar.CurrentEra", "System.Globalization.Calendar.CurrentEra"},
		{"E:System.AppDomain.UnhandledException", "System.AppDomain.UnhandledException"},
		{"N:System.Globalization", "N:System.Globalization"},
		{"t:lowercase", "t:lowercase"},
		{"System.DateTime", "System.DateTime"},
		{"T", "T"},
		{"", ""},
		{"T:", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeCref(tt.in); got != tt.want {
				t.Errorf("NormalizeCref(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeInlineCrefs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single",
			in:   `Returns a <see cref="T:System.DateTime" /> value.`,
			want: `Returns a <see cref="System.DateTime" /> value.`,
		},
		{
			name: "spaced attribute",
			in:   `See <see cref = "M:A.B" /> and <seealso cref="P:A.C"/>.`,
			want: `See <see cref = "A.B" /> and <seealso cref="A.C"/>.`,
		},
		{
			name: "space after prefix",
			in:   `<see cref="T: System.Globalization.RegionInfo" />`,
			want: `<see cref=" System.Globalization.RegionInfo" />`,
		},
		{
			name: "other attributes untouched",
			in:   `<paramref name="T:x" /> <see langword="null" />`,
			want: `<paramref name="T:x" /> <see langword="null" />`,
		},
		{
			name: "unknown prefix untouched",
			in:   `<see cref="N:System" />`,
			want: `<see cref="N:System" />`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeInlineCrefs(tt.in); got != tt.want {
				t.Errorf("NormalizeInlineCrefs() = %q, want %q", got, tt.want)
			}
		})
	}
}
