// SPDX-License-Identifier: MPL-2.0

package pipeline

const (
	// StageInit is the state before any work.
	StageInit Stage = iota
	// StageDiscovering lists and names game directories.
	StageDiscovering
	// StageCopying synchronizes one game into the target tree.
	StageCopying
	// StageBuilding compiles the game just copied.
	StageBuilding
	// StageWritingMetadata writes the summary file.
	StageWritingMetadata
	// StageDone is the terminal success state.
	StageDone
	// StageFailed is the terminal state after a fatal error.
	StageFailed
)

// Stage is a state of a run.
type Stage int

var stageNames = [...]string{
	StageInit:            "init",
	StageDiscovering:     "discovering",
	StageCopying:         "copying",
	StageBuilding:        "building",
	StageWritingMetadata: "writing_metadata",
	StageDone:            "done",
	StageFailed:          "failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// IsTerminal reports whether no further transition can happen.
func (s Stage) IsTerminal() bool { return s == StageDone || s == StageFailed }

// canTransition reports whether a run may move from s to next.
func (s Stage) canTransition(next Stage) bool {
	if next == StageFailed {
		return !s.IsTerminal()
	}
	switch s {
	case StageInit:
		return next == StageDiscovering
	case StageDiscovering:
		return next == StageCopying || next == StageWritingMetadata
	case StageCopying:
		return next == StageBuilding || next == StageCopying || next == StageWritingMetadata
	case StageBuilding:
		return next == StageCopying || next == StageWritingMetadata
	case StageWritingMetadata:
		return next == StageDone
	default:
		return false
	}
}
