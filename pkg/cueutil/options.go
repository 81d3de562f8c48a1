// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize bounds the documents read by ParseAndDecode and DecodeMap (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// Option adjusts how a document is read and validated.
type Option func(*settings)

type settings struct {
	maxFileSize int64
	// concrete requires every field to hold a final value after unification.
	concrete bool
	filename string
}

func newSettings(opts []Option) settings {
	s := settings{maxFileSize: DefaultMaxFileSize, concrete: true, filename: "<input>"}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(s *settings) { s.maxFileSize = size }
}

// WithConcrete(false) accepts documents that leave optional fields open,
// which is what partial files such as config.cue need.
func WithConcrete(concrete bool) Option {
	return func(s *settings) { s.concrete = concrete }
}

// WithFilename labels positions in errors. Empty names are ignored.
func WithFilename(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.filename = name
		}
	}
}
