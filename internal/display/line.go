package display

import (
	"strings"

	"stagedtimer/internal/duration"
	"stagedtimer/internal/schedule"
)

// Line renders the countdown view for snap, prefixed with ClearLine.
// Completed stages show 0, the active stage its remaining time rounded up to
// the second and later stages their full duration.
func Line(plan schedule.Plan, snap schedule.Snapshot, colorize bool) string {
	kind := snap.Phase.Kind()
	pos := snap.Phase.Position()
	frozen := kind == schedule.PhaseCancelled

	parts := make([]string, 0, len(plan.Stages)+1)
	if kind == schedule.PhasePreWait || (frozen && pos < 0) {
		parts = append(parts, paint(waitStyle, "wait: "+duration.FromStd(snap.Remaining).String(), colorize))
	}
	for i, stage := range plan.Stages {
		remaining := stage.Duration
		active := false
		switch {
		case i < pos:
			remaining = 0
		case i == pos && (kind == schedule.PhaseStage || frozen):
			remaining = duration.FromStd(snap.Remaining)
			active = kind == schedule.PhaseStage
		}
		label := stage.Name + ": " + remaining.String()
		if active {
			parts = append(parts, paint(activeStyle, label, colorize))
		} else {
			parts = append(parts, paint(idleStyle, label, colorize))
		}
	}

	var b strings.Builder
	b.WriteString(ClearLine)
	b.WriteString(strings.Join(parts, " | "))
	switch snap.State {
	case schedule.StatePaused:
		b.WriteString(paint(noticeStyle, " [paused]", colorize))
	case schedule.StateCancelled:
		b.WriteString(paint(noticeStyle, " [cancelled]", colorize))
	}
	return b.String()
}
