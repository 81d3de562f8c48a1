// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/docimport/docimport/internal/importer"
	"github.com/docimport/docimport/internal/lookup"
	"github.com/docimport/docimport/internal/report"
)

const (
	// LineEndingLF terminates comment lines with "\n".
	LineEndingLF LineEnding = "lf"
	// LineEndingCRLF terminates comment lines with "\r\n".
	LineEndingCRLF LineEnding = "crlf"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// MaxWorkers bounds import.workers.
	MaxWorkers WorkerCount = 256
)

var (
	// ErrInvalidLineEnding is returned when a LineEnding value is not recognized.
	ErrInvalidLineEnding = errors.New("invalid line ending")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidWorkerCount is returned when a WorkerCount is out of range.
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	// ErrInvalidDocsDir is returned when a DocsDir value is whitespace-only.
	ErrInvalidDocsDir = errors.New("invalid docs dir")
	// ErrInvalidDocsPattern is returned when a DocsPattern is not a valid glob.
	ErrInvalidDocsPattern = errors.New("invalid docs pattern")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LineEnding selects the terminator of generated comment lines.
	LineEnding string

	// InvalidLineEndingError is returned when a LineEnding value is not recognized.
	// It wraps ErrInvalidLineEnding for errors.Is() compatibility.
	InvalidLineEndingError struct {
		Value LineEnding
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// WorkerCount is the number of sites processed concurrently.
	WorkerCount int

	// InvalidWorkerCountError is returned when a WorkerCount is below 1 or
	// above MaxWorkers.
	InvalidWorkerCountError struct {
		Value WorkerCount
	}

	// DocsDir is the directory holding IntelliSense documentation files.
	// The zero value ("") is valid and means "not configured".
	DocsDir string

	// InvalidDocsDirError is returned when a DocsDir is non-empty but
	// whitespace-only.
	InvalidDocsDirError struct {
		Value DocsDir
	}

	// DocsPattern is a doublestar pattern selecting documentation files,
	// relative to the docs directory.
	DocsPattern string

	// InvalidDocsPatternError is returned when a DocsPattern is empty or not a
	// valid glob.
	InvalidDocsPatternError struct {
		Value DocsPattern
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sections.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Docs locates the documentation files
		Docs DocsConfig `json:"docs" mapstructure:"docs"`
		// Format configures comment rendering
		Format FormatConfig `json:"format" mapstructure:"format"`
		// Import configures site processing
		Import ImportConfig `json:"import" mapstructure:"import"`
		// Output configures the report
		Output OutputConfig `json:"output" mapstructure:"output"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// DocsConfig locates the IntelliSense documentation files.
	DocsConfig struct {
		Dir      DocsDir       `json:"dir" mapstructure:"dir"`
		Patterns []DocsPattern `json:"patterns" mapstructure:"patterns"`
	}

	// FormatConfig configures comment rendering.
	FormatConfig struct {
		LineEnding LineEnding `json:"line_ending" mapstructure:"line_ending"`
	}

	// ImportConfig configures how declaration sites are processed.
	ImportConfig struct {
		// IncludeNonPublic documents private and internal declarations too
		IncludeNonPublic bool `json:"include_non_public" mapstructure:"include_non_public"`
		// OnMalformed is the malformed markup policy
		OnMalformed importer.Policy `json:"on_malformed" mapstructure:"on_malformed"`
		// Workers bounds concurrent site processing
		Workers WorkerCount `json:"workers" mapstructure:"workers"`
	}

	// OutputConfig configures the report.
	OutputConfig struct {
		Format report.Format `json:"format" mapstructure:"format"`
		// Diff adds unified diffs against existing comments
		Diff bool `json:"diff" mapstructure:"diff"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging and error chains
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// String returns the string representation of the LineEnding.
func (l LineEnding) String() string { return string(l) }

// IsValid returns whether the LineEnding is one of the defined line endings.
func (l LineEnding) IsValid() (bool, []error) {
	switch l {
	case LineEndingLF, LineEndingCRLF:
		return true, nil
	default:
		return false, []error{&InvalidLineEndingError{Value: l}}
	}
}

// Terminator returns the characters ending each comment line.
func (l LineEnding) Terminator() string {
	if l == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// Error implements the error interface for InvalidLineEndingError.
func (e *InvalidLineEndingError) Error() string {
	return fmt.Sprintf("invalid line ending %q (valid: lf, crlf)", e.Value)
}

// Unwrap returns ErrInvalidLineEnding for errors.Is() compatibility.
func (e *InvalidLineEndingError) Unwrap() error { return ErrInvalidLineEnding }

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// IsValid returns whether the ColorScheme is one of the defined color schemes.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// GlamourStyle returns the glamour style name for the scheme.
func (c ColorScheme) GlamourStyle() string {
	switch c {
	case ColorSchemeDark, ColorSchemeLight:
		return string(c)
	default:
		return "auto"
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// IsValid returns whether the WorkerCount is within [1, MaxWorkers].
func (w WorkerCount) IsValid() (bool, []error) {
	if w < 1 || w > MaxWorkers {
		return false, []error{&InvalidWorkerCountError{Value: w}}
	}
	return true, nil
}

// Error implements the error interface for InvalidWorkerCountError.
func (e *InvalidWorkerCountError) Error() string {
	return fmt.Sprintf("invalid worker count %d: must be between 1 and %d", e.Value, MaxWorkers)
}

// Unwrap returns ErrInvalidWorkerCount for errors.Is() compatibility.
func (e *InvalidWorkerCountError) Unwrap() error { return ErrInvalidWorkerCount }

// String returns the string representation of the DocsDir.
func (d DocsDir) String() string { return string(d) }

// IsValid returns whether the DocsDir is valid.
// The zero value is valid; non-zero values must not be whitespace-only.
func (d DocsDir) IsValid() (bool, []error) {
	if d != "" && strings.TrimSpace(string(d)) == "" {
		return false, []error{&InvalidDocsDirError{Value: d}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDocsDirError.
func (e *InvalidDocsDirError) Error() string {
	return fmt.Sprintf("invalid docs dir %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidDocsDir for errors.Is() compatibility.
func (e *InvalidDocsDirError) Unwrap() error { return ErrInvalidDocsDir }

// String returns the string representation of the DocsPattern.
func (p DocsPattern) String() string { return string(p) }

// IsValid returns whether the DocsPattern is a non-empty, valid doublestar
// pattern.
func (p DocsPattern) IsValid() (bool, []error) {
	if p == "" || !doublestar.ValidatePattern(string(p)) {
		return false, []error{&InvalidDocsPatternError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDocsPatternError.
func (e *InvalidDocsPatternError) Error() string {
	return fmt.Sprintf("invalid docs pattern %q", e.Value)
}

// Unwrap returns ErrInvalidDocsPattern for errors.Is() compatibility.
func (e *InvalidDocsPatternError) Unwrap() error { return ErrInvalidDocsPattern }

// PatternStrings returns the patterns as plain strings, falling back to
// lookup.DefaultPatterns when none are configured.
func (d DocsConfig) PatternStrings() []string {
	if len(d.Patterns) == 0 {
		return append([]string(nil), lookup.DefaultPatterns...)
	}
	out := make([]string, len(d.Patterns))
	for i, p := range d.Patterns {
		out[i] = string(p)
	}
	return out
}

// IsValid returns whether the Config has valid fields. It delegates to the
// IsValid method of every typed field and wraps all failures in one
// *InvalidConfigError.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Docs.Dir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, p := range c.Docs.Patterns {
		if valid, fieldErrs := p.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.Format.LineEnding.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Import.OnMalformed.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Import.Workers.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Output.Format.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %d field error(s): %s", len(e.FieldErrors), strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is()
// compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Docs: DocsConfig{
			Dir:      "",
			Patterns: []DocsPattern{DocsPattern(lookup.DefaultPatterns[0])},
		},
		Format: FormatConfig{
			LineEnding: LineEndingLF,
		},
		Import: ImportConfig{
			IncludeNonPublic: false,
			OnMalformed:      importer.DefaultPolicy,
			Workers:          4,
		},
		Output: OutputConfig{
			Format: report.FormatText,
			Diff:   false,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
