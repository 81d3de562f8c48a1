// SPDX-License-Identifier: MPL-2.0

// Package config handles docimport configuration using Viper with CUE as the
// file format.
//
// Configuration is loaded from config.cue in the platform config directory
// ($XDG_CONFIG_HOME/docimport on Linux, ~/Library/Application Support/docimport
// on macOS, %APPDATA%\docimport on Windows) or from config.cue in the current
// directory. The file is validated against the embedded #Config schema
// (config_schema.cue), merged over the defaults, and may be overridden by
// DOCIMPORT_* environment variables such as DOCIMPORT_IMPORT_WORKERS.
package config
