// SPDX-License-Identifier: MPL-2.0

// Package pipeline drives one synchronization run: discover game directories
// in the source tree, copy each into the target tree under its normalized
// name, build it, then write the metadata summary.
//
// Games are processed one at a time in discovery order. A fatal error stops
// the run where it happened; copies already made are left in place.
package pipeline
