// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema
// definition and decodes them into Go values.
//
// Both the site manifest and the configuration file go through it:
//
//	//go:embed manifest_schema.cue
//	var schema []byte
//
//	m, err := cueutil.ParseAndDecode[Manifest](schema, data, "#Manifest",
//	    cueutil.WithFilename("sites.cue"))
//
// Errors are *ValidationError values (or ValidationErrors when CUE reports
// several) carrying the file name and the CUE path of the offending value.
package cueutil
