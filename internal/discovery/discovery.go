// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gamesync/gamesync/internal/issue"
)

type (
	// GamePath is the absolute path of a discovered game directory.
	GamePath string

	// Game pairs a discovered directory with its normalized target name.
	Game struct {
		Path GamePath
		Name string
	}
)

// String returns the path as a plain string.
func (p GamePath) String() string { return string(p) }

// Base returns the final path segment.
func (p GamePath) Base() string { return filepath.Base(string(p)) }

// Discover returns the immediate child directories of root whose name
// contains pattern, case-insensitively. A root that does not exist yields an
// empty result; any other read failure is returned.
func Discover(root, pattern string) ([]GamePath, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, issue.WrapWithContext(err, "resolve source directory", root)
	}

	entries, err := os.ReadDir(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, issue.NewErrorContext().
			WithOperation("discover games").
			WithResource(absRoot).
			WithIssue(issue.SourceUnreadableId).
			WithSuggestion("Check that the source path is a readable directory").
			Wrap(err).
			BuildError()
	}

	needle := strings.ToLower(pattern)
	var paths []GamePath
	for _, entry := range entries {
		if !strings.Contains(strings.ToLower(entry.Name()), needle) {
			continue
		}
		full := filepath.Join(absRoot, entry.Name())
		if !isDir(entry, full) {
			continue
		}
		paths = append(paths, GamePath(full))
	}

	return paths, nil
}

// isDir reports whether entry is a directory, following a symlink one hop.
func isDir(entry fs.DirEntry, full string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && info.IsDir()
}
