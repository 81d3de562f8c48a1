// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/docimport/docimport/internal/importer"
	"github.com/docimport/docimport/internal/issue"
	"github.com/docimport/docimport/internal/report"
	"github.com/docimport/docimport/internal/testutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), content)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Docs.Dir != "" {
		t.Errorf("Docs.Dir = %q, want empty", cfg.Docs.Dir)
	}
	if got := cfg.Docs.PatternStrings(); !reflect.DeepEqual(got, []string{"**/*.xml"}) {
		t.Errorf("Docs.Patterns = %v, want [**/*.xml]", got)
	}
	if cfg.Format.LineEnding != LineEndingLF {
		t.Errorf("Format.LineEnding = %q, want lf", cfg.Format.LineEnding)
	}
	if cfg.Import.IncludeNonPublic {
		t.Error("Import.IncludeNonPublic should default to false")
	}
	if cfg.Import.OnMalformed != importer.PolicySkipSite {
		t.Errorf("Import.OnMalformed = %q, want skip-site", cfg.Import.OnMalformed)
	}
	if cfg.Import.Workers != 4 {
		t.Errorf("Import.Workers = %d, want 4", cfg.Import.Workers)
	}
	if cfg.Output.Format != report.FormatText || cfg.Output.Diff {
		t.Errorf("Output = %+v, want text without diff", cfg.Output)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto || cfg.UI.Verbose {
		t.Errorf("UI = %+v, want auto and not verbose", cfg.UI)
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("DefaultConfig().IsValid() = %v", errs)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, path, err := NewProvider().LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("LoadWithSource() error = %v", err)
	}
	if path != "" {
		t.Errorf("source = %q, want empty", path)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, `
docs: {
	dir: "ref/xml"
	patterns: ["System.*.xml"]
}
format: line_ending: "crlf"
import: workers: 8
ui: verbose: true
`)

	cfg, path, err := NewProvider().LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("LoadWithSource() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("source = %q", path)
	}

	if cfg.Docs.Dir != "ref/xml" {
		t.Errorf("Docs.Dir = %q", cfg.Docs.Dir)
	}
	if got := cfg.Docs.PatternStrings(); !reflect.DeepEqual(got, []string{"System.*.xml"}) {
		t.Errorf("Docs.Patterns = %v", got)
	}
	if cfg.Format.LineEnding.Terminator() != "\r\n" {
		t.Errorf("Format.LineEnding = %q, want crlf", cfg.Format.LineEnding)
	}
	if cfg.Import.Workers != 8 || !cfg.UI.Verbose {
		t.Errorf("Import.Workers = %d, UI.Verbose = %v", cfg.Import.Workers, cfg.UI.Verbose)
	}
	// Unset keys keep their defaults.
	if cfg.Import.OnMalformed != importer.PolicySkipSite || cfg.Output.Format != report.FormatText {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, `output: {format: "json", diff: true}`)
	path := filepath.Join(dir, "config.cue")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Format != report.FormatJSON || !cfg.Output.Diff {
		t.Errorf("Output = %+v", cfg.Output)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		missing  bool
		contains string
	}{
		{name: "missing explicit file", missing: true, contains: "config file not found"},
		{name: "syntax error", content: `import: {workers: `, contains: "config.cue"},
		{name: "out of range", content: `import: workers: 0`, contains: "import.workers"},
		{name: "unknown policy", content: `import: on_malformed: "ignore"`, contains: "import.on_malformed"},
		{name: "unknown field", content: `docs: root: "x"`, contains: "docs.root"},
		{name: "wrong type", content: `output: diff: "yes"`, contains: "output.diff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var path string
			if tt.missing {
				path = filepath.Join(t.TempDir(), "nope.cue")
			} else {
				path = filepath.Join(writeConfig(t, tt.content), "config.cue")
			}

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q should contain %q", err, tt.contains)
			}

			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("error should be an *issue.ActionableError, got %T", err)
			}
			if ae.Issue != issue.ConfigLoadFailedId || !ae.HasSuggestions() {
				t.Errorf("ActionableError = %+v", ae)
			}
		})
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, `import: workers: 8`)
	t.Setenv("DOCIMPORT_IMPORT_WORKERS", "12")
	t.Setenv("DOCIMPORT_OUTPUT_FORMAT", "yaml")
	t.Setenv("DOCIMPORT_DOCS_DIR", "/srv/docs")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Import.Workers != 12 {
		t.Errorf("Import.Workers = %d, want 12 from the environment", cfg.Import.Workers)
	}
	if cfg.Output.Format != report.FormatYAML {
		t.Errorf("Output.Format = %q, want yaml", cfg.Output.Format)
	}
	if cfg.Docs.Dir != "/srv/docs" {
		t.Errorf("Docs.Dir = %q", cfg.Docs.Dir)
	}
}

func TestLoad_InvalidEnvOverride(t *testing.T) {
	t.Setenv("DOCIMPORT_FORMAT_LINE_ENDING", "cr")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, ErrInvalidLineEnding) || !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidLineEnding", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Docs:   DocsConfig{Dir: "ref/xml", Patterns: []DocsPattern{"a/*.xml", "b/**/*.xml"}},
		Format: FormatConfig{LineEnding: LineEndingCRLF},
		Import: ImportConfig{IncludeNonPublic: true, OnMalformed: importer.PolicyAbort, Workers: 7},
		Output: OutputConfig{Format: report.FormatYAML, Diff: true},
		UI:     UIConfig{ColorScheme: ColorSchemeDark, Verbose: true},
	}

	dir := writeConfig(t, GenerateCUE(cfg))
	got, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() of generated CUE error = %v\n%s", err, GenerateCUE(cfg))
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	path, created, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if !created || path != filepath.Join(dir, "config.cue") {
		t.Errorf("CreateDefaultConfig() = (%q, %v)", path, created)
	}

	testutil.MustWriteFile(t, path, "ui: verbose: true\n")
	if _, created, err = CreateDefaultConfig(); err != nil || created {
		t.Errorf("second CreateDefaultConfig() = (created %v, %v), want existing file kept", created, err)
	}
	if got := testutil.MustReadFile(t, path); got != "ui: verbose: true\n" {
		t.Errorf("existing config overwritten: %q", got)
	}

	fp, err := FilePath()
	if err != nil || fp != path {
		t.Errorf("FilePath() = (%q, %v), want %q", fp, err, path)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME applies to Linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("ConfigDir() = %q", dir)
	}
}
