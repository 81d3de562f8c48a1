// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      Config
		wantErrs int
	}{
		{
			name: "zero value is valid",
			cfg:  Config{},
		},
		{
			name: "all valid fields",
			cfg: Config{
				BaseDir:  "/srv/docs/xml",
				Patterns: []string{"**/*.xml", "System.*.xml"},
				Ignore:   []string{"**/drafts/**"},
				Files:    []string{"sites.yaml"},
			},
		},
		{
			name: "non-path fields do not affect validity",
			cfg:  Config{ClearScreen: true, Patterns: []string{"**/*.xml"}},
		},
		{
			name:     "empty watch pattern",
			cfg:      Config{Patterns: []string{""}},
			wantErrs: 1,
		},
		{
			name:     "empty ignore pattern",
			cfg:      Config{Ignore: []string{""}},
			wantErrs: 1,
		},
		{
			name:     "whitespace-only base dir",
			cfg:      Config{BaseDir: "   "},
			wantErrs: 1,
		},
		{
			name:     "invalid pattern syntax",
			cfg:      Config{Patterns: []string{"[invalid"}},
			wantErrs: 1,
		},
		{
			name:     "empty watched file",
			cfg:      Config{Files: []string{" "}},
			wantErrs: 1,
		},
		{
			name: "every invalid field is reported",
			cfg: Config{
				BaseDir:  " ",
				Patterns: []string{"", "[x"},
				Ignore:   []string{""},
				Files:    []string{""},
			},
			wantErrs: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErrs == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, ErrInvalidWatchConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidWatchConfig", err)
			}
			var cfgErr *InvalidWatchConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() error type = %T, want *InvalidWatchConfigError", err)
			}
			if len(cfgErr.FieldErrors) != tt.wantErrs {
				t.Errorf("len(FieldErrors) = %d, want %d: %v", len(cfgErr.FieldErrors), tt.wantErrs, cfgErr.FieldErrors)
			}
		})
	}
}
