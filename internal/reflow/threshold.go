// SPDX-License-Identifier: MPL-2.0

package reflow

const (
	// InitialLowerBound is the earliest offset at which the first line may be cut.
	InitialLowerBound = 90
	// InitialTagLimit is the latest offset at which an inline tag may close and
	// still stay on the first line.
	InitialTagLimit = 110
	// ThresholdStep is added to both bounds after every produced line.
	ThresholdStep = 100
)

// Threshold is the window in which the next cut point is sought. Offsets are
// absolute character (rune) positions in the trimmed paragraph. A Threshold is never mutated;
// Next derives the window for the following line.
type Threshold struct {
	LowerBound int
	TagLimit   int
}

// InitialThreshold returns the window used for the first line of a paragraph.
func InitialThreshold() Threshold {
	return Threshold{LowerBound: InitialLowerBound, TagLimit: InitialTagLimit}
}

// Next returns the window for the line after the one cut with t.
func (t Threshold) Next() Threshold {
	return Threshold{
		LowerBound: t.LowerBound + ThresholdStep,
		TagLimit:   t.TagLimit + ThresholdStep,
	}
}
