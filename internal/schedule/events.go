package schedule

import "time"

// EventType identifies a scheduler event.
type EventType string

const (
	EventStageStarted      EventType = "stage_started"
	EventTick              EventType = "tick"
	EventStageCompleted    EventType = "stage_completed"
	EventSequenceCompleted EventType = "sequence_completed"
	EventPaused            EventType = "paused"
	EventResumed           EventType = "resumed"
	EventCancelled         EventType = "cancelled"
)

// Event reports a scheduler transition.
//
// Index is the stage index, or -1 for events not tied to a named stage.
// Remaining is the time left in the active phase when the event was produced.
// Offset is the run time consumed at the moment of the event; for boundary
// events it is the exact boundary, independent of how time was fed in.
type Event struct {
	Type      EventType
	Stage     string
	Index     int
	Phase     PhaseKind
	Remaining time.Duration
	Offset    time.Duration
}

// Boundary reports whether the event marks a stage or sequence boundary.
func (e Event) Boundary() bool {
	switch e.Type {
	case EventStageStarted, EventStageCompleted, EventSequenceCompleted:
		return true
	default:
		return false
	}
}

// Terminal reports whether the event ends the run.
func (e Event) Terminal() bool {
	return e.Type == EventSequenceCompleted || e.Type == EventCancelled
}
