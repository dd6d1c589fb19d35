// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the path involved and
// remediation hints. The issue catalog holds Markdown guidance for each
// fatal failure mode of a gamesync run, rendered with glamour by the CLI.
package issue
