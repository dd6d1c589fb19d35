// SPDX-License-Identifier: MPL-2.0

package pipeline

import "testing"

func TestStage_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stage Stage
		want  string
	}{
		{StageInit, "init"},
		{StageDiscovering, "discovering"},
		{StageCopying, "copying"},
		{StageBuilding, "building"},
		{StageWritingMetadata, "writing_metadata"},
		{StageDone, "done"},
		{StageFailed, "failed"},
		{Stage(99), "unknown"},
		{Stage(-1), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", int(tt.stage), got, tt.want)
		}
	}
}

func TestStage_Transitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to Stage
		want     bool
	}{
		{StageInit, StageDiscovering, true},
		{StageInit, StageCopying, false},
		{StageDiscovering, StageCopying, true},
		{StageDiscovering, StageWritingMetadata, true},
		{StageCopying, StageBuilding, true},
		{StageBuilding, StageCopying, true},
		{StageBuilding, StageWritingMetadata, true},
		{StageBuilding, StageDone, false},
		{StageWritingMetadata, StageDone, true},
		{StageInit, StageFailed, true},
		{StageBuilding, StageFailed, true},
		{StageDone, StageFailed, false},
		{StageFailed, StageFailed, false},
		{StageDone, StageDiscovering, false},
	}
	for _, tt := range tests {
		if got := tt.from.canTransition(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
