// SPDX-License-Identifier: MPL-2.0

package reflow

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

func TestReflow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []Line
	}{
		{
			name: "short text with tag stays on one line",
			in:   `Initializes a new instance of the <see cref = "T:System.Globalization.Calendar" /> class.`,
			want: []Line{`Initializes a new instance of the <see cref = "T:System.Globalization.Calendar" /> class.`},
		},
		{
			name: "short text is trimmed",
			in:   "   Gets the era.\t ",
			want: []Line{"Gets the era."},
		},
		{
			name: "two lines without tags",
			in:   "Indicates that the first week of the year begins on the first occurrence of the designated first day of the week on or after the first day of the year. The value is 1.",
			want: []Line{
				"Indicates that the first week of the year begins on the first occurrence of the designated",
				"first day of the week on or after the first day of the year. The value is 1.",
			},
		},
		{
			name: "three lines without tags",
			in:   "Searches for the specified character and returns the zero - based index of the first occurrence within the section of the source string that starts at the specified index and contains the specified number of elements.",
			want: []Line{
				"Searches for the specified character and returns the zero - based index of the first occurrence",
				"within the section of the source string that starts at the specified index and contains the specified",
				"number of elements.",
			},
		},
		{
			name: "cut after whitespace outside of a tag",
			in:   `Initializes a new instance of the <see cref="T: System.Globalization.RegionInfo" /> class based on the country/region or specific culture, specified by name.`,
			want: []Line{
				`Initializes a new instance of the <see cref="T: System.Globalization.RegionInfo" /> class based`,
				"on the country/region or specific culture, specified by name.",
			},
		},
		{
			name: "tag beyond the limit moves to the next line",
			in:   `Determines whether the specified object is the same instance as the current <see cref="T: System.Globalization.RegionInfo" />.`,
			want: []Line{
				"Determines whether the specified object is the same instance as the current",
				`<see cref="T: System.Globalization.RegionInfo" />.`,
			},
		},
		{
			name: "tag closing just past the limit moves to the next line",
			in:   `When overridden in a derived class, returns the day of the week in the specified <see cref="T: System.DateTime" />.`,
			want: []Line{
				"When overridden in a derived class, returns the day of the week in the specified",
				`<see cref="T: System.DateTime" />.`,
			},
		},
		{
			name: "tag within the limit of a later line stays on it",
			in:   `Searches for the specified character and returns the zero-based index of the last occurrence within the entire source string using the specified <see cref="T: System.Globalization.CompareOptions" /> value.`,
			want: []Line{
				"Searches for the specified character and returns the zero-based index of the last occurrence",
				`within the entire source string using the specified <see cref="T: System.Globalization.CompareOptions" />`,
				"value.",
			},
		},
		{
			name: "empty input yields no lines",
			in:   " \t\n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Reflow(tt.in)
			if err != nil {
				t.Fatalf("Reflow() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Reflow() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestReflow_ScenarioA(t *testing.T) {
	t.Parallel()

	in := `Initializes a new instance of the <see cref="T:System.Globalization.Calendar" /> class.`
	got, err := Reflow(in)
	if err != nil {
		t.Fatalf("Reflow() error = %v", err)
	}
	if len(got) != 1 || string(got[0]) != in {
		t.Fatalf("Reflow() = %q, want the input on a single line", got)
	}
	if got[0].String() != "/// "+in {
		t.Errorf("Line.String() = %q", got[0].String())
	}
}

func TestReflow_ScenarioB(t *testing.T) {
	t.Parallel()

	in := "Gets the list of calendars that can be used by the specific culture, including the default calendar for it. " +
		"The first element of the returned array is always identical to System.Globalization.CultureInfo.InvariantCulture.Calendar."
	if len(in) != 230 {
		t.Fatalf("fixture length = %d, want 230", len(in))
	}

	got, err := Reflow(in)
	if err != nil {
		t.Fatalf("Reflow() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Reflow() returned %d lines, want 2: %q", len(got), got)
	}

	firstBreak := strings.IndexByte(in[InitialLowerBound:], ' ') + InitialLowerBound
	if string(got[0]) != in[:firstBreak] {
		t.Errorf("first line = %q, want %q", got[0], in[:firstBreak])
	}
}

func TestReflow_PunctuationStaysWithTag(t *testing.T) {
	t.Parallel()

	punctuation := []string{".", ",", "!", "?", ";"}
	for _, p := range punctuation {
		t.Run(p, func(t *testing.T) {
			t.Parallel()
			// The only whitespace at or after offset 90 is inside the tag, and the
			// tag closes before the limit.
			in := strings.Repeat("a", 80) + ` <see cref="T:A.B" />` + p + " trailing words follow here"
			got, err := Reflow(in)
			if err != nil {
				t.Fatalf("Reflow() error = %v", err)
			}
			if len(got) < 2 {
				t.Fatalf("Reflow() = %q, want a wrapped paragraph", got)
			}
			if !strings.HasSuffix(string(got[0]), `/>`+p) {
				t.Errorf("first line = %q, want it to end with the tag and %q", got[0], p)
			}
			if strings.HasPrefix(string(got[1]), p) {
				t.Errorf("second line = %q starts with the punctuation", got[1])
			}
		})
	}
}

func TestReflow_TextAfterTagStartsNextLine(t *testing.T) {
	t.Parallel()

	in := strings.Repeat("b", 80) + ` <see cref="T:A.B" /> and then more words here`
	got, err := Reflow(in)
	if err != nil {
		t.Fatalf("Reflow() error = %v", err)
	}
	want := []Line{Line(strings.Repeat("b", 80) + ` <see cref="T:A.B" />`), "and then more words here"}
	if !slices.Equal(got, want) {
		t.Errorf("Reflow() = %q, want %q", got, want)
	}
}

func TestReflow_LongTagCutBeforeOpen(t *testing.T) {
	t.Parallel()

	tag := `<see cref="M:System.Globalization.CultureInfo.GetCultures(System.Globalization.CultureTypes)" />`
	in := strings.Repeat("c", 70) + " prefix " + tag + " suffix"
	got, err := Reflow(in)
	if err != nil {
		t.Fatalf("Reflow() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Reflow() = %q, want 2 lines", got)
	}
	if strings.Contains(string(got[0]), "<") {
		t.Errorf("first line = %q, want the tag moved to the next line", got[0])
	}
	if !strings.HasPrefix(string(got[1]), tag) {
		t.Errorf("second line = %q, want it to start with the tag", got[1])
	}
}

func TestReflow_TagOpeningLineIsKept(t *testing.T) {
	t.Parallel()

	// The second line starts with a tag that closes beyond its limit. Cutting
	// before it would produce an empty line, so the tag stays.
	tag := `<see cref="M:` + strings.Repeat("X", 150) + `" />`
	in := strings.Repeat("d", 95) + " " + tag + ". done"
	got, err := Reflow(in)
	if err != nil {
		t.Fatalf("Reflow() error = %v", err)
	}
	want := []Line{Line(strings.Repeat("d", 95)), Line(tag + "."), "done"}
	if !slices.Equal(got, want) {
		t.Errorf("Reflow() = %q, want %q", got, want)
	}
}

func TestReflow_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"long unclosed tag", "Returns the value for the specified culture as described by the entry in " + `<see cref="X"` + " which never ends in this paragraph at all"},
		{"short unclosed tag", `Gets the <see cref="X"`},
		{"unclosed after closed", `A <see cref="Y" /> then <see cref="X"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Reflow(tt.in)
			if err == nil {
				t.Fatalf("Reflow() = %q, want error", got)
			}
			if got != nil {
				t.Errorf("Reflow() returned lines %q alongside error", got)
			}
			if !errors.Is(err, ErrMalformedMarkup) {
				t.Errorf("error %v should wrap ErrMalformedMarkup", err)
			}
			var mErr *MalformedMarkupError
			if !errors.As(err, &mErr) {
				t.Fatalf("error %T should be *MalformedMarkupError", err)
			}
			if tt.in[mErr.Offset] != '<' {
				t.Errorf("Offset = %d points at %q, want the unclosed '<'", mErr.Offset, tt.in[mErr.Offset])
			}
		})
	}
}

func TestReflow_StrayClosingBracketIsText(t *testing.T) {
	t.Parallel()

	got, err := Reflow("Returns true when a > b.")
	if err != nil {
		t.Fatalf("Reflow() error = %v", err)
	}
	if len(got) != 1 || got[0] != "Returns true when a > b." {
		t.Errorf("Reflow() = %q", got)
	}
}

func TestReflow_ShortWithoutTagIsOneLine(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	for range 200 {
		in := randomParagraph(rng, false)
		for len(strings.TrimSpace(in)) >= MinWrapLength {
			in = in[:len(in)/2]
		}
		in = "  " + in + " "
		got, err := Reflow(in)
		if err != nil {
			t.Fatalf("Reflow(%q) error = %v", in, err)
		}
		trimmed := strings.TrimSpace(in)
		if trimmed == "" {
			continue
		}
		if len(got) != 1 || string(got[0]) != trimmed {
			t.Fatalf("Reflow(%q) = %q, want one line", in, got)
		}
	}
}

func TestReflow_RoundTripAndIdempotence(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(42, 1024))
	for range 500 {
		in := randomParagraph(rng, rng.IntN(2) == 0)

		first, err := Reflow(in)
		if err != nil {
			t.Fatalf("Reflow(%q) error = %v", in, err)
		}

		joined := joinLines(first)
		if joined != collapseSpaces(in) {
			t.Fatalf("round trip mismatch\n in: %q\nout: %q", in, joined)
		}

		for _, line := range first {
			if line == "" {
				t.Fatalf("Reflow(%q) produced an empty line", in)
			}
			if err := Check(string(line)); err != nil {
				t.Fatalf("line %q has an unmatched '<': %v", line, err)
			}
			if strings.Count(string(line), "<") != strings.Count(string(line), ">") {
				t.Fatalf("line %q splits an inline tag", line)
			}
		}

		second, err := Reflow(joined)
		if err != nil {
			t.Fatalf("Reflow(joined) error = %v", err)
		}
		if !slices.Equal(first, second) {
			t.Fatalf("reflow is not idempotent\nfirst:  %q\nsecond: %q", first, second)
		}
	}
}

func TestNext_ThresholdAdvancesPerLine(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("word ", 60)
	text = strings.TrimSpace(text)

	th := InitialThreshold()
	line, next, nextTh, err := Next(text, 0, th)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if line == "" || next <= InitialLowerBound-1 {
		t.Fatalf("Next() = (%q, %d), want a cut at or after %d", line, next, InitialLowerBound)
	}
	if nextTh != th.Next() {
		t.Errorf("Next() threshold = %+v, want %+v", nextTh, th.Next())
	}
	if th != InitialThreshold() {
		t.Errorf("input threshold was modified: %+v", th)
	}

	// The remainder after the last window is flushed unchanged.
	_, end, lastTh, err := Next(text, len(text)-4, Threshold{LowerBound: 10_000, TagLimit: 10_020})
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if end != len(text) || lastTh.LowerBound != 10_000 {
		t.Errorf("Next() at tail = (%d, %+v), want (%d, unchanged)", end, lastTh, len(text))
	}
}

func TestNext_UnclosedTag(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("word ", 20) + `see <see cref="T:System.DateTime" and more words after it`
	_, next, th, err := Next(text, 5, InitialThreshold())

	var mErr *MalformedMarkupError
	if !errors.As(err, &mErr) {
		t.Fatalf("Next() error = %v, want a *MalformedMarkupError", err)
	}
	if want := strings.IndexByte(text, '<'); mErr.Offset != want {
		t.Errorf("Offset = %d, want %d", mErr.Offset, want)
	}
	if next != 5 || th != InitialThreshold() {
		t.Errorf("Next() = (%d, %+v), want the input position and window", next, th)
	}
}

func TestReflow_CountsCharacters(t *testing.T) {
	t.Parallel()

	// Each word is 5 characters but 6 bytes, so byte offsets would reach
	// the lower bound three words early.
	text := strings.TrimSpace(strings.Repeat("naïve ", 20))
	got, err := Reflow(text)
	if err != nil {
		t.Fatalf("Reflow() error = %v", err)
	}
	want := []Line{
		Line(strings.TrimSpace(strings.Repeat("naïve ", 16))),
		Line(strings.TrimSpace(strings.Repeat("naïve ", 4))),
	}
	if !slices.Equal(got, want) {
		t.Errorf("Reflow() = %q, want %q", got, want)
	}

	if NeedsWrap(strings.Repeat("é", 89)) {
		t.Error("NeedsWrap() should count characters, not bytes")
	}
}

func TestReflow_UnicodeSpaceIsCutPoint(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("a", 95) + "\u00a0tail"
	got, err := Reflow(text)
	if err != nil {
		t.Fatalf("Reflow() error = %v", err)
	}
	want := []Line{Line(strings.Repeat("a", 95)), "tail"}
	if !slices.Equal(got, want) {
		t.Errorf("Reflow() = %q, want %q", got, want)
	}
}

func TestThreshold(t *testing.T) {
	t.Parallel()

	th := InitialThreshold()
	if th.LowerBound != 90 || th.TagLimit != 110 {
		t.Fatalf("InitialThreshold() = %+v, want {90 110}", th)
	}
	next := th.Next().Next()
	if next.LowerBound != 290 || next.TagLimit != 310 {
		t.Errorf("two steps = %+v, want {290 310}", next)
	}
}

// randomParagraph builds single-spaced text from words and, optionally,
// inline tags that are preceded by a space and followed by a space or one
// punctuation mark and a space.
func randomParagraph(rng *rand.Rand, withTags bool) string {
	words := []string{
		"the", "culture", "calendar", "returns", "specified", "index", "of", "a",
		"value", "that", "represents", "zero-based", "occurrence", "within", "string",
		"System.Globalization.CultureInfo.CurrentCulture", "era", "week", "is", "and",
	}
	tags := []string{
		`<see cref="T:System.DateTime" />`,
		`<see cref="M:System.Globalization.Calendar.AddDays(System.DateTime,System.Int32)" />`,
		`<paramref name="index" />`,
		`<see langword="null" />`,
		`<c>true</c>`,
	}
	punctuation := []string{"", "", "", ".", ",", "!", "?", ";"}

	n := 5 + rng.IntN(80)
	parts := make([]string, 0, n)
	for range n {
		if withTags && rng.IntN(6) == 0 {
			parts = append(parts, tags[rng.IntN(len(tags))]+punctuation[rng.IntN(len(punctuation))])
			continue
		}
		parts = append(parts, words[rng.IntN(len(words))])
	}
	return strings.Join(parts, " ")
}

func joinLines(lines []Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, " ")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
