// SPDX-License-Identifier: MPL-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/docimport/docimport/internal/importer"
)

type (
	// Options controls rendering.
	Options struct {
		Format Format
		// Diff adds a unified diff against the existing comment for every site
		// that received a comment.
		Diff bool
	}

	// Document is the serializable form of a run, used by the YAML and JSON
	// formats.
	Document struct {
		Summary Summary      `json:"summary" yaml:"summary"`
		Sites   []SiteReport `json:"sites" yaml:"sites"`
	}

	// Summary counts sites per status.
	Summary struct {
		Total     int `json:"total" yaml:"total"`
		Generated int `json:"generated" yaml:"generated"`
		Partial   int `json:"partial" yaml:"partial"`
		Missing   int `json:"missing" yaml:"missing"`
		Skipped   int `json:"skipped" yaml:"skipped"`
		Invalid   int `json:"invalid" yaml:"invalid"`
		Malformed int `json:"malformed" yaml:"malformed"`
	}

	// SiteReport is the outcome for one site.
	SiteReport struct {
		Key           string             `json:"key" yaml:"key"`
		Kind          string             `json:"kind" yaml:"kind"`
		Accessibility string             `json:"accessibility" yaml:"accessibility"`
		Location      string             `json:"location,omitempty" yaml:"location,omitempty"`
		Status        string             `json:"status" yaml:"status"`
		Source        string             `json:"source,omitempty" yaml:"source,omitempty"`
		Comment       string             `json:"comment,omitempty" yaml:"comment,omitempty"`
		Diff          string             `json:"diff,omitempty" yaml:"diff,omitempty"`
		Diagnostics   []DiagnosticReport `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	}

	// DiagnosticReport is the serializable form of an importer.Diagnostic.
	DiagnosticReport struct {
		Severity string `json:"severity" yaml:"severity"`
		Code     string `json:"code" yaml:"code"`
		Message  string `json:"message" yaml:"message"`
		Element  string `json:"element,omitempty" yaml:"element,omitempty"`
	}
)

// Build converts results into a Document.
func Build(results importer.Results, withDiff bool) (*Document, error) {
	counts := results.Counts()
	doc := &Document{
		Summary: Summary{
			Total:     len(results),
			Generated: counts[importer.StatusGenerated],
			Partial:   counts[importer.StatusPartial],
			Missing:   counts[importer.StatusMissing],
			Skipped:   counts[importer.StatusSkipped],
			Invalid:   counts[importer.StatusInvalid],
			Malformed: counts[importer.StatusMalformed],
		},
		Sites: make([]SiteReport, 0, len(results)),
	}

	for _, r := range results {
		sr := SiteReport{
			Key:           r.Site.Key.String(),
			Kind:          r.Site.Kind.String(),
			Accessibility: r.Site.Accessibility.String(),
			Location:      r.Site.Location(),
			Status:        string(r.Status),
			Source:        r.Source,
			Comment:       r.Comment,
		}
		if withDiff && r.HasComment() {
			d, err := Diff(r.Site.ExistingComment, r.Comment)
			if err != nil {
				return nil, fmt.Errorf("diff %s: %w", r.Site.Key, err)
			}
			sr.Diff = d
		}
		for _, d := range r.Diagnostics {
			sr.Diagnostics = append(sr.Diagnostics, DiagnosticReport{
				Severity: string(d.Severity),
				Code:     d.Code,
				Message:  d.Message,
				Element:  d.Element,
			})
		}
		doc.Sites = append(doc.Sites, sr)
	}
	return doc, nil
}

// Write renders results to w in the requested format.
func Write(w io.Writer, results importer.Results, opts Options) error {
	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if ok, errs := format.IsValid(); !ok {
		return errs[0]
	}

	doc, err := Build(results, opts.Diff)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		return enc.Close()
	default:
		return writeText(w, doc)
	}
}
