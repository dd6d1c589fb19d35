// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for gamesync.
//
// The root command takes exactly two positional arguments, the source and
// target directories, and runs one synchronization. The config and inspect
// subcommands are read-only.
package cmd
