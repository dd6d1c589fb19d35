// SPDX-License-Identifier: MPL-2.0

// Package metadata writes and reads the summary file placed in the target root.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gamesync/gamesync/internal/issue"
)

// DefaultFileName is the metadata file written when none is configured.
const DefaultFileName = "metadata.json"

// Record is the serialized summary of one run.
type Record struct {
	GameNames     []string `json:"gameNames"`
	NumberOfGames int      `json:"numberOfGames"`
}

// New returns a Record for names, in order. The count always matches the
// list and a nil list becomes empty so it encodes as [].
func New(names []string) *Record {
	list := make([]string, len(names))
	copy(list, names)
	return &Record{GameNames: list, NumberOfGames: len(list)}
}

// Write serializes a Record for names to path as compact JSON, replacing
// any existing file. The content is written to a temporary file in the same
// directory and renamed into place.
func Write(path string, names []string) error {
	data, err := json.Marshal(New(names))
	if err != nil {
		return writeError(path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return writeError(path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return writeError(path, err)
	}
	if err := tmp.Close(); err != nil {
		return writeError(path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return writeError(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return writeError(path, err)
	}
	return nil
}

// Read decodes the metadata file at path.
func Read(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode metadata %s: %w", path, err)
	}
	if rec.GameNames == nil {
		rec.GameNames = []string{}
	}
	return &rec, nil
}

func writeError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("write metadata").
		WithResource(path).
		WithIssue(issue.MetadataWriteFailedId).
		WithSuggestion("Check that the target directory exists and is writable").
		Wrap(err).
		BuildError()
}
