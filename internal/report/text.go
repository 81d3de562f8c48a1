// SPDX-License-Identifier: MPL-2.0

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/docimport/docimport/internal/importer"
)

// Palette shared with the CLI.
const (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorMuted     = lipgloss.Color("#6B7280")
	colorSuccess   = lipgloss.Color("#10B981")
	colorError     = lipgloss.Color("#EF4444")
	colorWarning   = lipgloss.Color("#F59E0B")
	colorHighlight = lipgloss.Color("#3B82F6")
)

const indent = "    "

// textStyles are bound to the renderer of the output writer so that color is
// only emitted to terminals.
type textStyles struct {
	title     lipgloss.Style
	key       lipgloss.Style
	muted     lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
	failure   lipgloss.Style
	highlight lipgloss.Style
}

func newTextStyles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	return textStyles{
		title:     r.NewStyle().Bold(true).Foreground(colorPrimary),
		key:       r.NewStyle().Bold(true),
		muted:     r.NewStyle().Foreground(colorMuted),
		success:   r.NewStyle().Foreground(colorSuccess),
		warning:   r.NewStyle().Foreground(colorWarning),
		failure:   r.NewStyle().Bold(true).Foreground(colorError),
		highlight: r.NewStyle().Foreground(colorHighlight),
	}
}

func (s textStyles) status(st string) string {
	label := fmt.Sprintf("%-9s", st)
	switch importer.Status(st) {
	case importer.StatusGenerated:
		return s.success.Render(label)
	case importer.StatusPartial, importer.StatusMissing:
		return s.warning.Render(label)
	case importer.StatusInvalid, importer.StatusMalformed:
		return s.failure.Render(label)
	default:
		return s.muted.Render(label)
	}
}

func (s textStyles) severity(sev string) lipgloss.Style {
	switch importer.Severity(sev) {
	case importer.SeverityError:
		return s.failure
	case importer.SeverityWarning:
		return s.warning
	default:
		return s.muted
	}
}

func (s textStyles) diffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return s.key.Render(line)
	case strings.HasPrefix(line, "@@"):
		return s.highlight.Render(line)
	case strings.HasPrefix(line, "+"):
		return s.success.Render(line)
	case strings.HasPrefix(line, "-"):
		return s.failure.Render(line)
	default:
		return line
	}
}

func writeText(w io.Writer, doc *Document) error {
	st := newTextStyles(w)
	var b strings.Builder

	for _, sr := range doc.Sites {
		fmt.Fprintf(&b, "%s %s", st.status(sr.Status), st.key.Render(sr.Key))
		if sr.Location != "" {
			fmt.Fprintf(&b, "  %s", st.muted.Render(sr.Location))
		}
		b.WriteByte('\n')

		if sr.Comment != "" && sr.Diff == "" {
			for _, line := range splitLines(sr.Comment) {
				b.WriteString(indent + line + "\n")
			}
		}
		for _, line := range splitLines(sr.Diff) {
			b.WriteString(indent + st.diffLine(line) + "\n")
		}
		for _, d := range sr.Diagnostics {
			label := d.Code
			if d.Element != "" {
				label += " <" + d.Element + ">"
			}
			fmt.Fprintf(&b, "  %s %s: %s\n", st.severity(d.Severity).Render(d.Severity), label, d.Message)
		}
	}

	if len(doc.Sites) > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(st.title.Render("Summary") + " " + summaryLine(doc.Summary) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func summaryLine(s Summary) string {
	parts := []string{fmt.Sprintf("%d sites", s.Total)}
	for _, c := range []struct {
		n     int
		label importer.Status
	}{
		{s.Generated, importer.StatusGenerated},
		{s.Partial, importer.StatusPartial},
		{s.Missing, importer.StatusMissing},
		{s.Skipped, importer.StatusSkipped},
		{s.Invalid, importer.StatusInvalid},
		{s.Malformed, importer.StatusMalformed},
	} {
		if c.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.n, c.label))
		}
	}
	return strings.Join(parts, ", ")
}

// splitLines splits text into lines without their terminators and without a
// trailing empty line.
func splitLines(text string) []string {
	text = strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
