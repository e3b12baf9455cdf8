package schedule

import (
	"fmt"
	"time"

	"stagedtimer/internal/apperr"
	"stagedtimer/internal/duration"
)

// Stage is one named, fixed-length step of a plan.
type Stage struct {
	Name     string
	Duration duration.Seconds
}

// Plan is the ordered stage list with an optional leading wait.
type Plan struct {
	PreWait duration.Seconds
	Stages  []Stage
}

// NewPlan builds and validates a plan. The stage slice is copied.
func NewPlan(preWait duration.Seconds, stages ...Stage) (Plan, error) {
	plan := Plan{
		PreWait: preWait,
		Stages:  append([]Stage(nil), stages...),
	}
	if err := plan.Validate(); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// Validate checks that the plan has at least one stage, no negative spans and
// a total that fits duration.MaxSeconds.
func (p Plan) Validate() error {
	if len(p.Stages) == 0 {
		return apperr.Wrap(apperr.ErrInvalidArgument, "schedule", "plan", "at least one stage is required", nil)
	}
	if p.PreWait < 0 {
		return apperr.Wrap(apperr.ErrInvalidArgument, "schedule", "plan", "pre-wait must not be negative", nil)
	}
	total := p.PreWait
	for i, stage := range p.Stages {
		if stage.Duration < 0 {
			return apperr.Wrap(apperr.ErrInvalidArgument, "schedule", "plan",
				fmt.Sprintf("stage %d (%s) has a negative duration", i+1, stage.Name), nil)
		}
		if total > duration.MaxSeconds-stage.Duration {
			return apperr.Wrap(apperr.ErrOutOfRange, "schedule", "plan",
				fmt.Sprintf("total duration exceeds %d seconds", duration.MaxSeconds), nil)
		}
		total += stage.Duration
	}
	return nil
}

// Total returns the full runtime including the pre-wait.
func (p Plan) Total() duration.Seconds {
	total := p.PreWait
	for _, stage := range p.Stages {
		total += stage.Duration
	}
	return total
}

// StartOffset returns how long after the run begins stage i starts.
func (p Plan) StartOffset(i int) duration.Seconds {
	offset := p.PreWait
	for j := 0; j < i && j < len(p.Stages); j++ {
		offset += p.Stages[j].Duration
	}
	return offset
}

func (p Plan) stageDuration(i int) time.Duration {
	return p.Stages[i].Duration.Std()
}
