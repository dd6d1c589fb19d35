// SPDX-License-Identifier: MPL-2.0

// Package syncdir replaces a destination directory with a fresh recursive
// copy of a source directory.
package syncdir
