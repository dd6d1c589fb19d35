// SPDX-License-Identifier: MPL-2.0

package syncdir

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/gamesync/gamesync/internal/issue"
	"github.com/gamesync/gamesync/internal/testutil"
)

func TestSync_CopiesTree(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	tree := map[string]string{
		"main.go":           "package main\n",
		"assets/":           "",
		"assets/level1.txt": "####",
		"empty/":            "",
	}
	testutil.WriteTree(t, src, tree)

	dst := filepath.Join(t.TempDir(), "out", "pong")
	if err := Sync(src, dst); err != nil {
		t.Fatalf("Sync() returned error: %v", err)
	}

	if got, want := testutil.ReadTree(t, dst), testutil.ReadTree(t, src); !reflect.DeepEqual(got, want) {
		t.Errorf("copied tree = %v, want %v", got, want)
	}
}

func TestSync_ReplacesExistingDestination(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	testutil.WriteTree(t, src, map[string]string{"main.go": "new"})

	dst := t.TempDir()
	testutil.WriteTree(t, dst, map[string]string{
		"main.go":       "old",
		"stale.txt":     "left over",
		"old_dir/x.bin": "y",
	})

	if err := Sync(src, dst); err != nil {
		t.Fatalf("Sync() returned error: %v", err)
	}

	want := map[string]string{"main.go": "new"}
	if got := testutil.ReadTree(t, dst); !reflect.DeepEqual(got, want) {
		t.Errorf("destination = %v, want %v", got, want)
	}
}

func TestSync_PreservesPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on Windows")
	}
	t.Parallel()

	src := t.TempDir()
	script := filepath.Join(src, "run.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(script, 0o755); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), "game")
	if err := Sync(src, dst); err != nil {
		t.Fatalf("Sync() returned error: %v", err)
	}

	info, err := os.Stat(filepath.Join(dst, "run.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("mode = %v, want 0755", info.Mode().Perm())
	}
}

func TestSync_KeepsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on Windows")
	}
	t.Parallel()

	src := t.TempDir()
	testutil.WriteTree(t, src, map[string]string{"data.txt": "x"})
	if err := os.Symlink("data.txt", filepath.Join(src, "link.txt")); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), "game")
	if err := Sync(src, dst); err != nil {
		t.Fatalf("Sync() returned error: %v", err)
	}

	target, err := os.Readlink(filepath.Join(dst, "link.txt"))
	if err != nil {
		t.Fatalf("link.txt is not a symlink: %v", err)
	}
	if target != "data.txt" {
		t.Errorf("link target = %q, want %q", target, "data.txt")
	}
}

func TestSync_MissingSource(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "gone")
	dst := filepath.Join(t.TempDir(), "game")

	err := Sync(src, dst)
	if err == nil {
		t.Fatal("Sync() of a missing source should fail")
	}
	if id, ok := issue.IssueOf(err); !ok || id != issue.CopyFailedId {
		t.Errorf("IssueOf(err) = (%d, %v), want CopyFailedId", id, ok)
	}
}

func TestSync_ResolvesSymlinkedRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on Windows")
	}
	t.Parallel()

	elsewhere := t.TempDir()
	testutil.WriteTree(t, elsewhere, map[string]string{"real/main.go": "package main\n"})

	src := filepath.Join(t.TempDir(), "linked_game")
	if err := os.Symlink(filepath.Join(elsewhere, "real"), src); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), "linked")
	if err := Sync(src, dst); err != nil {
		t.Fatalf("Sync() returned error: %v", err)
	}

	info, err := os.Lstat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink != 0 || !info.IsDir() {
		t.Fatalf("destination mode = %v, want a real directory", info.Mode())
	}

	// Writing into the copy must not reach the linked source.
	testutil.WriteTree(t, dst, map[string]string{"main": "binary"})
	if _, err := os.Stat(filepath.Join(elsewhere, "real", "main")); !errors.Is(err, os.ErrNotExist) {
		t.Error("file written into the copy appeared in the source directory")
	}
}
