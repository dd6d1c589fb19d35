// SPDX-License-Identifier: MPL-2.0

// Package build compiles the source file found in a copied game directory.
//
// The build command runs with its working directory set on the subprocess
// itself, so the caller's process-wide working directory is never changed.
// A failing build is reported on the Result rather than returned as an error;
// callers decide whether a failure is fatal.
package build
