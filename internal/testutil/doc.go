// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Tree helpers (WriteTree, ReadTree) build and snapshot small source and
// target directories; MustChdir and MustMkdirAll cover the remaining
// process and filesystem setup.
package testutil
