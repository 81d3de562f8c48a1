// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/docimport/docimport/internal/site"
	"github.com/docimport/docimport/pkg/cueutil"
)

// MaxFileSize bounds the manifest size read by Load.
const MaxFileSize = 16 << 20

// ErrInvalidManifest is the sentinel error wrapped by InvalidManifestError.
var ErrInvalidManifest = errors.New("invalid manifest")

type (
	// Manifest is the decoded manifest document.
	Manifest struct {
		Sites []Entry `json:"sites" yaml:"sites"`
	}

	// Entry is one declaration site as written in the manifest.
	Entry struct {
		Kind            site.Kind          `json:"kind" yaml:"kind"`
		Key             site.Key           `json:"key" yaml:"key"`
		Accessibility   site.Accessibility `json:"accessibility,omitempty" yaml:"accessibility,omitempty"`
		File            string             `json:"file,omitempty" yaml:"file,omitempty"`
		Line            int                `json:"line,omitempty" yaml:"line,omitempty"`
		ExistingComment string             `json:"existing_comment,omitempty" yaml:"existing_comment,omitempty"`
	}

	// EntryError attributes validation errors to one manifest entry.
	EntryError struct {
		// Index is the zero-based position of the entry.
		Index int
		Key   site.Key
		Errs  []error
	}

	// InvalidManifestError collects every invalid entry of a manifest.
	InvalidManifestError struct {
		Path    string
		Entries []EntryError
	}
)

// Site converts the entry into a declaration site. A missing accessibility
// defaults to public.
func (e Entry) Site() site.DeclarationSite {
	access := e.Accessibility
	if access == "" {
		access = site.AccessPublic
	}
	return site.DeclarationSite{
		Kind:            e.Kind,
		Key:             e.Key,
		Accessibility:   access,
		ExistingComment: e.ExistingComment,
		File:            e.File,
		Line:            e.Line,
	}
}

// DeclarationSites returns the declaration sites of the manifest in document
// order.
func (m *Manifest) DeclarationSites() []site.DeclarationSite {
	sites := make([]site.DeclarationSite, len(m.Sites))
	for i, e := range m.Sites {
		sites[i] = e.Site()
	}
	return sites
}

// Validate checks every entry and returns an *InvalidManifestError listing
// all invalid ones, or nil.
func (m *Manifest) Validate() error {
	var bad []EntryError
	for i, e := range m.Sites {
		if ok, errs := e.Site().IsValid(); !ok {
			bad = append(bad, EntryError{Index: i, Key: e.Key, Errs: errs})
		}
	}
	if len(bad) > 0 {
		return &InvalidManifestError{Entries: bad}
	}
	return nil
}

// Decode reads a manifest from r. Unknown fields are rejected. The manifest
// is not validated; see Validate.
func Decode(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

// Load reads, decodes and validates the manifest at path. Files with a .cue
// extension are read as CUE, everything else as YAML.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	if err := cueutil.CheckFileSize(data, MaxFileSize, path); err != nil {
		return nil, err
	}

	var m *Manifest
	if filepath.Ext(path) == ".cue" {
		m, err = DecodeCUE(data, path)
	} else {
		m, err = Decode(bytes.NewReader(data))
		if err != nil {
			err = fmt.Errorf("%s: %w", path, err)
		}
	}
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		var invalid *InvalidManifestError
		if errors.As(err, &invalid) {
			invalid.Path = path
		}
		return nil, err
	}
	return m, nil
}

// Encode writes the manifest as YAML.
func (m *Manifest) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return enc.Close()
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("sites[%d] (%s): %s", e.Index, e.Key, strings.Join(msgs, "; "))
}

// Unwrap returns the validation errors of the entry.
func (e *EntryError) Unwrap() []error { return e.Errs }

// Error implements the error interface.
func (e *InvalidManifestError) Error() string {
	var b bytes.Buffer
	b.WriteString(ErrInvalidManifest.Error())
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	fmt.Fprintf(&b, ": %d invalid site(s)", len(e.Entries))
	for i := range e.Entries {
		fmt.Fprintf(&b, "\n  %s", e.Entries[i].Error())
	}
	return b.String()
}

// Unwrap returns ErrInvalidManifest and every entry error.
func (e *InvalidManifestError) Unwrap() []error {
	errs := make([]error, 0, len(e.Entries)+1)
	errs = append(errs, ErrInvalidManifest)
	for i := range e.Entries {
		errs = append(errs, &e.Entries[i])
	}
	return errs
}
