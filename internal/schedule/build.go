package schedule

import (
	"fmt"
	"strings"

	"stagedtimer/internal/apperr"
	"stagedtimer/internal/duration"
	"stagedtimer/internal/textutil"
)

// Entry is a stage whose duration has not been parsed yet.
type Entry struct {
	Name string `yaml:"name" toml:"name"`
	Time string `yaml:"time" toml:"time"`
}

// Pair zips names and duration tokens positionally. The counts must match.
func Pair(names, times []string) ([]Entry, error) {
	if len(names) != len(times) {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "schedule", "pair",
			fmt.Sprintf("got %d names and %d times; every --name needs a --time", len(names), len(times)), nil)
	}
	entries := make([]Entry, len(names))
	for i := range names {
		entries[i] = Entry{Name: names[i], Time: times[i]}
	}
	return entries, nil
}

// ParsePlan parses every token and builds a validated plan. An empty wait
// token means no pre-wait. Nothing is returned unless every token parses.
func ParsePlan(wait string, entries []Entry) (Plan, error) {
	var preWait duration.Seconds
	if strings.TrimSpace(wait) != "" {
		parsed, err := duration.Parse(wait)
		if err != nil {
			return Plan{}, fmt.Errorf("wait: %w", err)
		}
		preWait = parsed
	}

	stages := make([]Stage, 0, len(entries))
	for i, entry := range entries {
		name := textutil.CleanLabel(entry.Name)
		if name == "" {
			name = fmt.Sprintf("Stage %d", i+1)
		}
		parsed, err := duration.Parse(entry.Time)
		if err != nil {
			return Plan{}, fmt.Errorf("stage %d (%s): %w", i+1, name, err)
		}
		stages = append(stages, Stage{Name: name, Duration: parsed})
	}
	return NewPlan(preWait, stages...)
}

// Entries converts the plan back into formatted tokens.
func (p Plan) Entries() (string, []Entry) {
	var wait string
	if p.PreWait > 0 {
		wait = duration.Format(p.PreWait)
	}
	entries := make([]Entry, len(p.Stages))
	for i, stage := range p.Stages {
		entries[i] = Entry{Name: stage.Name, Time: duration.Format(stage.Duration)}
	}
	return wait, entries
}
