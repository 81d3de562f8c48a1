// SPDX-License-Identifier: MPL-2.0

package site

import (
	"errors"
	"testing"
)

func TestKind_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind   Kind
		valid  bool
		letter byte
	}{
		{KindClass, true, 'T'},
		{KindDelegate, true, 'T'},
		{KindConstructor, true, 'M'},
		{KindConversionOperator, true, 'M'},
		{KindIndexer, true, 'P'},
		{KindEnumMember, true, 'F'},
		{KindEvent, true, 'E'},
		{"namespace", false, 0},
		{"", false, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.kind.IsValid()
			if ok != tt.valid {
				t.Fatalf("IsValid() = %v, want %v", ok, tt.valid)
			}
			if !tt.valid {
				if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidKind) {
					t.Errorf("IsValid() errors = %v, want one ErrInvalidKind", errs)
				}
			}
			if got := tt.kind.Letter(); got != tt.letter {
				t.Errorf("Letter() = %q, want %q", got, tt.letter)
			}
		})
	}

	if n := len(Kinds()); n != 15 {
		t.Errorf("Kinds() returned %d kinds, want 15", n)
	}
}

func TestAccessibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		access Accessibility
		valid  bool
		public bool
	}{
		{AccessPublic, true, true},
		{AccessProtected, true, true},
		{AccessProtectedInternal, true, true},
		{AccessPrivateProtected, true, true},
		{AccessInternal, true, false},
		{AccessPrivate, true, false},
		{"friend", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.access), func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.access.IsValid()
			if ok != tt.valid {
				t.Fatalf("IsValid() = %v, want %v", ok, tt.valid)
			}
			if !tt.valid && !errors.Is(errs[0], ErrInvalidAccessibility) {
				t.Errorf("IsValid() error = %v, want ErrInvalidAccessibility", errs[0])
			}
			if got := tt.access.IsPublicSurface(); got != tt.public {
				t.Errorf("IsPublicSurface() = %v, want %v", got, tt.public)
			}
		})
	}
}

func TestKey_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key   Key
		valid bool
		name  string
	}{
		{"T:System.Globalization.Calendar", true, "System.Globalization.Calendar"},
		{"M:System.Globalization.Calendar.AddDays(System.DateTime,System.Int32)", true, "System.Globalization.Calendar.AddDays(System.DateTime,System.Int32)"},
		{"E:System.AppDomain.UnhandledException", true, "System.AppDomain.UnhandledException"},
		{"N:System", false, "System"},
		{"T:", false, ""},
		{"T:System. Calendar", false, "System. Calendar"},
		{"System.Calendar", false, "System.Calendar"},
		{"", false, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.key.IsValid()
			if ok != tt.valid {
				t.Fatalf("IsValid() = %v (%v), want %v", ok, errs, tt.valid)
			}
			if !tt.valid {
				var kErr *InvalidKeyError
				if !errors.As(errs[0], &kErr) || kErr.Reason == "" {
					t.Errorf("IsValid() error = %v, want *InvalidKeyError with a reason", errs[0])
				}
			}
			if got := tt.key.Name(); got != tt.name {
				t.Errorf("Name() = %q, want %q", got, tt.name)
			}
		})
	}
}

func TestDeclarationSite_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		site     DeclarationSite
		wantErrs []error
	}{
		{
			name: "valid method",
			site: DeclarationSite{Kind: KindMethod, Key: "M:A.B.C", Accessibility: AccessPublic},
		},
		{
			name: "valid enum member",
			site: DeclarationSite{Kind: KindEnumMember, Key: "F:A.Color.Red", Accessibility: AccessPublic},
		},
		{
			name:     "letter mismatch",
			site:     DeclarationSite{Kind: KindProperty, Key: "M:A.B.C", Accessibility: AccessPublic},
			wantErrs: []error{ErrKindMismatch},
		},
		{
			name:     "everything wrong",
			site:     DeclarationSite{Kind: "module", Key: "A.B", Accessibility: ""},
			wantErrs: []error{ErrInvalidKind, ErrInvalidKey, ErrInvalidAccessibility},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.site.IsValid()
			if ok != (len(tt.wantErrs) == 0) {
				t.Fatalf("IsValid() = %v, errs %v", ok, errs)
			}
			if len(errs) != len(tt.wantErrs) {
				t.Fatalf("IsValid() returned %d errors (%v), want %d", len(errs), errs, len(tt.wantErrs))
			}
			for i, want := range tt.wantErrs {
				if !errors.Is(errs[i], want) {
					t.Errorf("error[%d] = %v, want %v", i, errs[i], want)
				}
			}
		})
	}
}

func TestDeclarationSite_Documentable(t *testing.T) {
	t.Parallel()

	private := DeclarationSite{Kind: KindField, Key: "F:A.b", Accessibility: AccessPrivate}
	public := DeclarationSite{Kind: KindField, Key: "F:A.B", Accessibility: AccessPublic}

	if private.Documentable(false) {
		t.Error("private site should not be documentable by default")
	}
	if !private.Documentable(true) {
		t.Error("private site should be documentable when non-public sites are included")
	}
	if !public.Documentable(false) {
		t.Error("public site should be documentable")
	}
}

func TestDeclarationSite_Location(t *testing.T) {
	t.Parallel()

	tests := []struct {
		site DeclarationSite
		want string
	}{
		{DeclarationSite{}, ""},
		{DeclarationSite{Line: 3}, ""},
		{DeclarationSite{File: "src/Calendar.cs"}, "src/Calendar.cs"},
		{DeclarationSite{File: "src/Calendar.cs", Line: 120}, "src/Calendar.cs:120"},
	}
	for _, tt := range tests {
		if got := tt.site.Location(); got != tt.want {
			t.Errorf("Location() = %q, want %q", got, tt.want)
		}
	}
}
