package schedule

import (
	"fmt"
	"time"

	"stagedtimer/internal/apperr"
)

// Scheduler is the countdown state machine for one plan.
type Scheduler struct {
	plan      Plan
	phase     Phase
	elapsed   time.Duration // accumulated in the current phase
	consumed  time.Duration // sum of completed phase durations
	paused    bool
	announced bool
}

// Snapshot is a point-in-time view of the scheduler for rendering.
//
// Remaining is the time left in the active phase. For a cancelled run it keeps
// the value frozen at cancellation; Scheduler.Remaining reports zero instead.
type Snapshot struct {
	State     RunState
	Phase     Phase
	Remaining time.Duration
	Elapsed   time.Duration
}

// New creates a scheduler positioned at the start of plan. The plan must
// satisfy Plan.Validate; New panics otherwise, since a plan is always
// validated when it is built from operator input.
func New(plan Plan) *Scheduler {
	if err := plan.Validate(); err != nil {
		panic(fmt.Sprintf("schedule.New: %v", err))
	}
	s := &Scheduler{plan: plan}
	if plan.PreWait > 0 {
		s.phase = preWaitPhase()
	} else {
		s.phase = stagePhase(0)
	}
	return s
}

// Plan returns the plan being run.
func (s *Scheduler) Plan() Plan { return s.plan }

// Phase returns the current phase.
func (s *Scheduler) Phase() Phase { return s.phase }

// State returns the coarse run state.
func (s *Scheduler) State() RunState {
	switch {
	case s.phase.kind == PhaseFinished:
		return StateFinished
	case s.phase.kind == PhaseCancelled:
		return StateCancelled
	case s.paused:
		return StatePaused
	default:
		return StateRunning
	}
}

// Current returns the active stage and its index. It reports false during the
// pre-wait and after the run has ended.
func (s *Scheduler) Current() (Stage, int, bool) {
	i, ok := s.phase.StageIndex()
	if !ok {
		return Stage{}, 0, false
	}
	return s.plan.Stages[i], i, true
}

// Start announces the initial phase. It is equivalent to Advance(0).
func (s *Scheduler) Start() []Event {
	events, _ := s.Advance(0)
	return events
}

// Advance feeds elapsed wall time into the scheduler and returns the events it
// caused, in order. A delta that overshoots the active phase completes it and
// carries the surplus forward, possibly across several boundaries. A paused or
// ended scheduler ignores the delta. Negative deltas are rejected.
func (s *Scheduler) Advance(elapsed time.Duration) ([]Event, error) {
	if elapsed < 0 {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "schedule", "advance",
			fmt.Sprintf("negative elapsed time %s", elapsed), nil)
	}
	if s.phase.Terminal() || s.paused {
		return nil, nil
	}

	var events []Event
	if !s.announced {
		s.announced = true
		if i, ok := s.phase.StageIndex(); ok {
			events = append(events, s.startedEvent(i))
		}
	}

	// Anything beyond the total remaining is discarded on finish anyway;
	// capping here keeps the accumulator from overflowing.
	if rest := s.TotalRemaining(); elapsed > rest {
		elapsed = rest
	}
	s.elapsed += elapsed

	for !s.phase.Terminal() {
		active := s.activeDuration()
		if s.elapsed < active {
			break
		}
		s.elapsed -= active
		s.consumed += active
		events = s.completePhase(events)
	}

	if !s.phase.Terminal() {
		events = append(events, s.tickEvent())
	}
	return events, nil
}

// Remaining returns the time left in the active phase, or zero once the run
// has finished or been cancelled.
func (s *Scheduler) Remaining() time.Duration {
	if s.phase.Terminal() {
		return 0
	}
	return s.activeDuration() - s.elapsed
}

// TotalRemaining returns the time left until the sequence completes.
func (s *Scheduler) TotalRemaining() time.Duration {
	if s.phase.Terminal() {
		return 0
	}
	rest := s.Remaining()
	for i := s.phase.position + 1; i < len(s.plan.Stages); i++ {
		rest += s.plan.stageDuration(i)
	}
	return rest
}

// Elapsed returns the run time consumed so far.
func (s *Scheduler) Elapsed() time.Duration {
	return s.consumed + s.elapsed
}

// UntilNextEvent returns how much more time must be fed before the next
// boundary event. It reports false when no time-driven event is pending,
// that is while paused or after the run has ended.
func (s *Scheduler) UntilNextEvent() (time.Duration, bool) {
	if s.phase.Terminal() || s.paused {
		return 0, false
	}
	return s.Remaining(), true
}

// Pause freezes the accumulator. Pausing a paused or ended run does nothing.
func (s *Scheduler) Pause() []Event {
	if s.phase.Terminal() || s.paused {
		return nil
	}
	s.paused = true
	return []Event{s.stateEvent(EventPaused)}
}

// Resume lets time accumulate again. Resuming a running or ended run does
// nothing.
func (s *Scheduler) Resume() []Event {
	if s.phase.Terminal() || !s.paused {
		return nil
	}
	s.paused = false
	return []Event{s.stateEvent(EventResumed)}
}

// Cancel ends the run from any non-terminal phase. Further calls do nothing.
func (s *Scheduler) Cancel() []Event {
	if s.phase.Terminal() {
		return nil
	}
	event := s.stateEvent(EventCancelled)
	s.phase = cancelledPhase(s.phase.position)
	s.paused = false
	return []Event{event}
}

// Snapshot returns the current view of the scheduler.
func (s *Scheduler) Snapshot() Snapshot {
	snap := Snapshot{
		State:     s.State(),
		Phase:     s.phase,
		Remaining: s.Remaining(),
		Elapsed:   s.Elapsed(),
	}
	if s.phase.kind == PhaseCancelled {
		snap.Remaining = s.durationAt(s.phase.position) - s.elapsed
	}
	return snap
}

func (s *Scheduler) completePhase(events []Event) []Event {
	switch s.phase.kind {
	case PhasePreWait:
		s.phase = stagePhase(0)
		return append(events, s.startedEvent(0))
	case PhaseStage:
		i := s.phase.position
		events = append(events, Event{
			Type:   EventStageCompleted,
			Stage:  s.plan.Stages[i].Name,
			Index:  i,
			Phase:  PhaseStage,
			Offset: s.consumed,
		})
		if next := i + 1; next < len(s.plan.Stages) {
			s.phase = stagePhase(next)
			return append(events, s.startedEvent(next))
		}
		s.phase = finishedPhase(len(s.plan.Stages))
		s.elapsed = 0
		return append(events, Event{
			Type:   EventSequenceCompleted,
			Index:  -1,
			Phase:  PhaseFinished,
			Offset: s.consumed,
		})
	default:
		return events
	}
}

func (s *Scheduler) startedEvent(i int) Event {
	return Event{
		Type:      EventStageStarted,
		Stage:     s.plan.Stages[i].Name,
		Index:     i,
		Phase:     PhaseStage,
		Remaining: s.plan.stageDuration(i),
		Offset:    s.consumed,
	}
}

func (s *Scheduler) tickEvent() Event {
	event := s.stateEvent(EventTick)
	event.Offset = s.Elapsed()
	return event
}

func (s *Scheduler) stateEvent(kind EventType) Event {
	event := Event{
		Type:      kind,
		Index:     -1,
		Phase:     s.phase.kind,
		Remaining: s.Remaining(),
		Offset:    s.Elapsed(),
	}
	if i, ok := s.phase.StageIndex(); ok {
		event.Index = i
		event.Stage = s.plan.Stages[i].Name
	}
	return event
}

func (s *Scheduler) activeDuration() time.Duration {
	return s.durationAt(s.phase.position)
}

func (s *Scheduler) durationAt(position int) time.Duration {
	switch {
	case position < 0:
		return s.plan.PreWait.Std()
	case position < len(s.plan.Stages):
		return s.plan.stageDuration(position)
	default:
		return 0
	}
}
