package duration_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagedtimer/internal/duration"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   duration.Seconds
		want string
	}{
		{0, "0"},
		{59, "59"},
		{60, "1:00"},
		{61, "1:01"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3661, "1:01:01"},
		{-4, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, duration.Format(tt.in))
		assert.Equal(t, tt.want, tt.in.String())
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, s := range []duration.Seconds{0, 1, 59, 60, 119, 3599, 3600, 86399, 360000} {
		got, err := duration.Parse(duration.Format(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestFromStdRoundsUp(t *testing.T) {
	assert.Equal(t, duration.Seconds(0), duration.FromStd(0))
	assert.Equal(t, duration.Seconds(0), duration.FromStd(-time.Second))
	assert.Equal(t, duration.Seconds(1), duration.FromStd(time.Millisecond))
	assert.Equal(t, duration.Seconds(1), duration.FromStd(time.Second))
	assert.Equal(t, duration.Seconds(2), duration.FromStd(1500*time.Millisecond))
}

func TestStd(t *testing.T) {
	assert.Equal(t, 61*time.Second, duration.Seconds(61).Std())
}
