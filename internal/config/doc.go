// SPDX-License-Identifier: MPL-2.0

// Package config handles gamesync configuration using Viper with CUE as the file format.
//
// Values are layered, lowest precedence first: built-in defaults, a CUE config
// file (--config, then ~/.config/gamesync/config.cue or the platform
// equivalent, then ./gamesync.cue), GAMESYNC_* keys from a .env file in the
// working directory, and GAMESYNC_* environment variables.
//
// Config files are validated against the embedded #Config schema
// (config_schema.cue) before they are merged, so unknown fields and
// ill-typed values are rejected with the offending CUE path.
package config
