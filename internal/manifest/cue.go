// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	_ "embed"

	"github.com/docimport/docimport/pkg/cueutil"
)

//go:embed manifest_schema.cue
var manifestSchema []byte

// DecodeCUE decodes a manifest written in CUE. The document is checked
// against the #Manifest schema, so unknown fields and unknown kinds fail with
// the path of the offending value. filename only labels errors.
func DecodeCUE(data []byte, filename string) (*Manifest, error) {
	return cueutil.ParseAndDecode[Manifest](manifestSchema, data, "#Manifest",
		cueutil.WithFilename(filename),
		cueutil.WithMaxFileSize(MaxFileSize),
	)
}
