package duration

import (
	"fmt"
	"math"
	"time"
)

// Seconds is a non-negative whole-second span.
type Seconds int64

// MaxSeconds is the largest span that still converts to a time.Duration.
const MaxSeconds Seconds = Seconds(math.MaxInt64 / int64(time.Second))

// Std converts s to a time.Duration.
func (s Seconds) Std() time.Duration {
	return time.Duration(s) * time.Second
}

// String renders s in canonical token form.
func (s Seconds) String() string {
	return Format(s)
}

// FromStd converts d to whole seconds, rounding partial seconds up so a
// countdown shows 1 until the final instant. Negative values become 0.
func FromStd(d time.Duration) Seconds {
	if d <= 0 {
		return 0
	}
	whole := d / time.Second
	if d%time.Second != 0 {
		whole++
	}
	return Seconds(whole)
}

// Format renders s as S below one minute, M:SS below one hour and H:MM:SS
// otherwise. Parse(Format(s)) == s for every valid s.
func Format(s Seconds) string {
	if s < 0 {
		s = 0
	}
	hours := s / 3600
	minutes := (s % 3600) / 60
	seconds := s % 60
	switch {
	case hours > 0:
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%d:%02d", minutes, seconds)
	default:
		return fmt.Sprintf("%d", seconds)
	}
}
