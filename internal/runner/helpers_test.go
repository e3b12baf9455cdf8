package runner_test

import "stagedtimer/internal/duration"

func durationSeconds(n int64) duration.Seconds { return duration.Seconds(n) }
