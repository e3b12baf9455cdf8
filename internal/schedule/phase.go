package schedule

import "strconv"

// PhaseKind enumerates the scheduler phases.
type PhaseKind int

const (
	PhasePreWait PhaseKind = iota + 1
	PhaseStage
	PhaseFinished
	PhaseCancelled
)

func (k PhaseKind) String() string {
	switch k {
	case PhasePreWait:
		return "pre-wait"
	case PhaseStage:
		return "stage"
	case PhaseFinished:
		return "finished"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Phase is the scheduler's position in the plan. The stage index is only
// reachable through StageIndex, which reports false outside PhaseStage.
type Phase struct {
	kind PhaseKind
	// position is -1 during pre-wait, the stage index in a stage, len(stages)
	// when finished and the position at cancellation when cancelled.
	position int
}

func preWaitPhase() Phase          { return Phase{kind: PhasePreWait, position: -1} }
func stagePhase(i int) Phase       { return Phase{kind: PhaseStage, position: i} }
func finishedPhase(n int) Phase    { return Phase{kind: PhaseFinished, position: n} }
func cancelledPhase(pos int) Phase { return Phase{kind: PhaseCancelled, position: pos} }

// Kind returns the phase kind.
func (p Phase) Kind() PhaseKind { return p.kind }

// StageIndex returns the active stage index.
func (p Phase) StageIndex() (int, bool) {
	if p.kind != PhaseStage {
		return 0, false
	}
	return p.position, true
}

// Position orders phases along the plan: -1 for pre-wait, the stage index for
// a stage, the stage count once finished. A cancelled phase keeps the position
// at which it was cancelled.
func (p Phase) Position() int { return p.position }

// Terminal reports whether the phase accepts no more time.
func (p Phase) Terminal() bool {
	return p.kind == PhaseFinished || p.kind == PhaseCancelled
}

func (p Phase) String() string {
	if p.kind == PhaseStage {
		return "stage " + strconv.Itoa(p.position+1)
	}
	return p.kind.String()
}

// RunState is the coarse lifecycle state exposed to callers.
type RunState string

const (
	StateRunning   RunState = "running"
	StatePaused    RunState = "paused"
	StateFinished  RunState = "finished"
	StateCancelled RunState = "cancelled"
)
