package runner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagedtimer/internal/apperr"
	"stagedtimer/internal/runner"
	"stagedtimer/internal/schedule"
)

type harness struct {
	t      *testing.T
	clock  *clockwork.FakeClock
	runner *runner.Runner
	events <-chan schedule.Event
	errCh  chan error
	ctx    context.Context
}

func start(t *testing.T, ctx context.Context, tick time.Duration, preWait int64, stages ...schedule.Stage) *harness {
	t.Helper()
	plan, err := schedule.NewPlan(durationSeconds(preWait), stages...)
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	r := runner.New(schedule.New(plan), runner.Options{Clock: clock, TickInterval: tick})
	h := &harness{
		t:      t,
		clock:  clock,
		runner: r,
		events: r.Subscribe(512),
		errCh:  make(chan error, 1),
		ctx:    ctx,
	}
	go func() { h.errCh <- r.Run(ctx) }()
	return h
}

// step waits until the run loop is sleeping on its timer, then advances.
func (h *harness) step(d time.Duration) {
	h.t.Helper()
	ctx, cancel := context.WithTimeout(h.ctx, 5*time.Second)
	defer cancel()
	require.NoError(h.t, h.clock.BlockUntilContext(ctx, 1))
	h.clock.Advance(d)
}

func (h *harness) waitFor(kind schedule.EventType) schedule.Event {
	h.t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case e, ok := <-h.events:
			require.True(h.t, ok, "channel closed before %s", kind)
			if e.Type == kind {
				return e
			}
		case <-timeout:
			h.t.Fatalf("timed out waiting for %s", kind)
		}
	}
}

func (h *harness) result() error {
	h.t.Helper()
	select {
	case err := <-h.errCh:
		return err
	case <-time.After(5 * time.Second):
		h.t.Fatal("run did not return")
		return nil
	}
}

func (h *harness) drain() []schedule.Event {
	var out []schedule.Event
	for e := range h.events {
		out = append(out, e)
	}
	return out
}

func boundaryTypes(events []schedule.Event) []string {
	var out []string
	for _, e := range events {
		if e.Boundary() {
			out = append(out, string(e.Type)+":"+e.Stage)
		}
	}
	return out
}

func TestRunCompletesPlan(t *testing.T) {
	h := start(t, context.Background(), time.Second, 1,
		schedule.Stage{Name: "A", Duration: 2},
		schedule.Stage{Name: "B", Duration: 1},
	)
	for i := 0; i < 4; i++ {
		h.step(time.Second)
	}
	require.NoError(t, h.result())

	assert.Equal(t, []string{
		"stage_started:A",
		"stage_completed:A",
		"stage_started:B",
		"stage_completed:B",
		"sequence_completed:",
	}, boundaryTypes(h.drain()))
	assert.Equal(t, schedule.StateFinished, h.runner.Snapshot().State)
}

func TestRunWakesOnBoundaryWithCoarseTick(t *testing.T) {
	h := start(t, context.Background(), time.Minute, 0,
		schedule.Stage{Name: "A", Duration: 3},
		schedule.Stage{Name: "B", Duration: 2},
	)
	h.step(3 * time.Second)
	completed := h.waitFor(schedule.EventStageCompleted)
	assert.Equal(t, "A", completed.Stage)
	assert.Equal(t, 3*time.Second, completed.Offset)

	h.step(2 * time.Second)
	require.NoError(t, h.result())
}

func TestRunCarriesLateWakeups(t *testing.T) {
	h := start(t, context.Background(), time.Second, 0,
		schedule.Stage{Name: "A", Duration: 2},
		schedule.Stage{Name: "B", Duration: 2},
		schedule.Stage{Name: "C", Duration: 2},
	)
	h.step(5 * time.Second)
	h.waitFor(schedule.EventStageStarted)
	h.step(time.Second)
	require.NoError(t, h.result())

	var completed []string
	for _, e := range h.drain() {
		if e.Type == schedule.EventStageCompleted {
			completed = append(completed, e.Stage)
		}
	}
	assert.Contains(t, completed, "C")
}

func TestPauseExcludesPausedTime(t *testing.T) {
	h := start(t, context.Background(), time.Second, 0, schedule.Stage{Name: "A", Duration: 10})
	h.step(time.Second)
	h.step(time.Second)

	h.runner.Pause()
	paused := h.waitFor(schedule.EventPaused)
	assert.Equal(t, 8*time.Second, paused.Remaining)
	h.runner.Pause()

	h.clock.Advance(time.Hour)
	h.runner.TogglePause()
	h.waitFor(schedule.EventResumed)
	assert.Equal(t, 8*time.Second, h.runner.Snapshot().Remaining)

	for i := 0; i < 8; i++ {
		h.step(time.Second)
	}
	require.NoError(t, h.result())
}

func TestContextCancellationEndsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := start(t, ctx, time.Second, 0, schedule.Stage{Name: "Developer", Duration: 60})
	h.step(time.Second)

	cancel()
	err := h.result()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrCancelled))
	assert.Equal(t, apperr.ExitCancelled, apperr.ExitCode(err))

	events := h.drain()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, schedule.EventCancelled, last.Type)
	assert.Equal(t, 59*time.Second, last.Remaining)

	snap := h.runner.Snapshot()
	assert.Equal(t, schedule.StateCancelled, snap.State)
	assert.Equal(t, 59*time.Second, snap.Remaining)
}

func TestCancelIsIdempotent(t *testing.T) {
	h := start(t, context.Background(), time.Second, 0, schedule.Stage{Name: "A", Duration: 5})
	h.runner.Cancel()
	h.runner.Cancel()
	err := h.result()
	assert.True(t, errors.Is(err, apperr.ErrCancelled))
	h.runner.Cancel()
	h.runner.Pause()

	var cancelled int
	for _, e := range h.drain() {
		if e.Type == schedule.EventCancelled {
			cancelled++
		}
	}
	assert.Equal(t, 1, cancelled)
}

func TestRunTwiceFails(t *testing.T) {
	h := start(t, context.Background(), time.Second, 0, schedule.Stage{Name: "A", Duration: 0})
	require.NoError(t, h.result())
	assert.ErrorIs(t, h.runner.Run(context.Background()), runner.ErrAlreadyStarted)

	late := h.runner.Subscribe(1)
	_, open := <-late
	assert.False(t, open)
}

func TestBoundaryEventsSurviveFullBuffer(t *testing.T) {
	stages := make([]schedule.Stage, 20)
	for i := range stages {
		stages[i] = schedule.Stage{Name: string(rune('A' + i)), Duration: 0}
	}
	plan, err := schedule.NewPlan(0, stages...)
	require.NoError(t, err)

	r := runner.New(schedule.New(plan), runner.Options{Clock: clockwork.NewFakeClock(), TickInterval: time.Second})
	boundaries := r.SubscribeFunc(1, func(e schedule.Event) bool { return e.Type != schedule.EventTick })
	all := r.Subscribe(1)

	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(context.Background()) }()

	allBoundaries := make(chan int, 1)
	go func() {
		n := 0
		for e := range all {
			if e.Boundary() {
				n++
			}
		}
		allBoundaries <- n
	}()

	var got []schedule.Event
	for e := range boundaries {
		assert.NotEqual(t, schedule.EventTick, e.Type)
		got = append(got, e)
	}
	require.NoError(t, <-errCh)
	assert.Equal(t, 2*len(stages)+1, <-allBoundaries)

	require.Len(t, got, 2*len(stages)+1)
	assert.Equal(t, schedule.EventSequenceCompleted, got[len(got)-1].Type)
	for i := range stages {
		assert.Equal(t, schedule.EventStageStarted, got[2*i].Type)
		assert.Equal(t, schedule.EventStageCompleted, got[2*i+1].Type)
		assert.Equal(t, stages[i].Name, got[2*i+1].Stage)
	}
}
