// SPDX-License-Identifier: MPL-2.0

// Package discovery finds game directories under a source root and derives
// the names they are copied to.
//
// Discovery looks only at the immediate children of the root. A child is a
// game when it is a directory (or a symlink to one) whose name contains the
// configured pattern, compared case-insensitively. Results keep the lexical
// order of os.ReadDir, which is also the order of the metadata file.
//
// Normalization removes every occurrence of a literal token from the
// directory name. It does not deduplicate or reject empty results; Check
// reports those cases as diagnostics and the caller decides how to react.
package discovery
