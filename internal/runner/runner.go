package runner

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"stagedtimer/internal/apperr"
	"stagedtimer/internal/logging"
	"stagedtimer/internal/schedule"
)

const (
	defaultTickInterval = 200 * time.Millisecond
	commandBuffer       = 16
)

// ErrAlreadyStarted is returned when Run is called more than once.
var ErrAlreadyStarted = errors.New("runner already started")

// Options configures a Runner.
type Options struct {
	// Clock defaults to the real clock.
	Clock clockwork.Clock
	// TickInterval is the redraw cadence; boundaries are never delayed by it.
	TickInterval time.Duration
	Logger       *slog.Logger
}

type command int

const (
	cmdPause command = iota + 1
	cmdResume
	cmdToggle
)

type subscriber struct {
	ch   chan schedule.Event
	keep func(schedule.Event) bool
}

func (s subscriber) deliver(event schedule.Event) {
	if s.keep != nil && !s.keep(event) {
		return
	}
	if event.Boundary() || event.Terminal() {
		s.ch <- event
		return
	}
	select {
	case s.ch <- event:
	default:
	}
}

// Runner runs one scheduler to completion.
type Runner struct {
	sched    *schedule.Scheduler
	clock    clockwork.Clock
	interval time.Duration
	logger   *slog.Logger

	commands   chan command
	cancelCh   chan struct{}
	cancelOnce sync.Once

	mu       sync.Mutex
	subs     []subscriber
	snapshot schedule.Snapshot
	started  bool
	done     bool
}

// New creates a runner for sched. The runner takes ownership of sched; callers
// must not use it directly afterwards.
func New(sched *schedule.Scheduler, opts Options) *Runner {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	return &Runner{
		sched:    sched,
		clock:    opts.Clock,
		interval: opts.TickInterval,
		logger:   logging.NewComponentLogger(opts.Logger, "runner"),
		commands: make(chan command, commandBuffer),
		cancelCh: make(chan struct{}),
		snapshot: sched.Snapshot(),
	}
}

// Subscribe registers a new observer channel that receives every event. Ticks
// and pause/resume events that do not fit in the buffer are dropped for that
// subscriber. Boundary and terminal events are never dropped: the run loop
// waits for the subscriber to take them, so subscribers must keep reading
// until the channel is closed at the end of the run.
func (r *Runner) Subscribe(buffer int) <-chan schedule.Event {
	return r.SubscribeFunc(buffer, nil)
}

// SubscribeFunc is Subscribe restricted to the events keep accepts. A nil keep
// accepts everything.
func (r *Runner) SubscribeFunc(buffer int, keep func(schedule.Event) bool) <-chan schedule.Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan schedule.Event, buffer)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		close(ch)
		return ch
	}
	r.subs = append(r.subs, subscriber{ch: ch, keep: keep})
	return ch
}

// Snapshot returns the most recent scheduler view published by the run loop.
func (r *Runner) Snapshot() schedule.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot
}

// Plan returns the plan being run.
func (r *Runner) Plan() schedule.Plan {
	return r.sched.Plan()
}

// Pause requests a pause. It is a no-op unless the run is running.
func (r *Runner) Pause() { r.send(cmdPause) }

// Resume requests a resume. It is a no-op unless the run is paused.
func (r *Runner) Resume() { r.send(cmdResume) }

// TogglePause pauses a running timer or resumes a paused one.
func (r *Runner) TogglePause() { r.send(cmdToggle) }

// Cancel ends the run. It is safe to call repeatedly and from any goroutine.
func (r *Runner) Cancel() {
	r.cancelOnce.Do(func() { close(r.cancelCh) })
}

func (r *Runner) send(c command) {
	select {
	case r.commands <- c:
	default:
		r.logger.Debug("control request dropped; queue full", logging.Int("command", int(c)))
	}
}

// Run drives the scheduler until the sequence completes or the run is
// cancelled. It returns nil on completion and an error wrapping
// apperr.ErrCancelled when cancelled through ctx or Cancel.
func (r *Runner) Run(ctx context.Context) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return ErrAlreadyStarted
	}
	r.started = true
	r.mu.Unlock()
	defer r.closeSubscribers()

	plan := r.sched.Plan()
	r.logger.Info("run started",
		logging.String(logging.FieldEventType, "run_started"),
		logging.Int("stages", len(plan.Stages)),
		logging.Duration("pre_wait", plan.PreWait.Std()),
		logging.Duration("total", plan.Total().Std()),
	)

	last := r.clock.Now()
	r.publish(r.sched.Start())

	for {
		switch r.sched.State() {
		case schedule.StateFinished:
			r.logger.Info("run completed",
				logging.String(logging.FieldEventType, "run_completed"),
				logging.Duration("elapsed", r.sched.Elapsed()),
			)
			return nil
		case schedule.StateCancelled:
			return apperr.Wrap(apperr.ErrCancelled, "runner", "run", "timer cancelled", context.Cause(ctx))
		}

		var timer clockwork.Timer
		var fire <-chan time.Time
		if next, ok := r.sched.UntilNextEvent(); ok {
			wait := r.interval
			if next < wait {
				wait = next
			}
			timer = r.clock.NewTimer(wait)
			fire = timer.Chan()
		}

		select {
		case <-ctx.Done():
			last = r.sample(last)
			r.publish(r.sched.Cancel())
		case <-r.cancelCh:
			last = r.sample(last)
			r.publish(r.sched.Cancel())
		case c := <-r.commands:
			last = r.sample(last)
			r.apply(c)
		case <-fire:
			last = r.sample(last)
		}
		if timer != nil {
			timer.Stop()
		}
	}
}

// sample feeds the time since last into the scheduler. Time spent paused is
// discarded because a paused scheduler ignores Advance.
func (r *Runner) sample(last time.Time) time.Time {
	now := r.clock.Now()
	delta := now.Sub(last)
	if delta < 0 {
		delta = 0
	}
	events, err := r.sched.Advance(delta)
	if err != nil {
		r.logger.Error("advance failed", logging.Error(err))
		return now
	}
	r.publish(events)
	return now
}

func (r *Runner) apply(c command) {
	switch c {
	case cmdPause:
		r.publish(r.sched.Pause())
	case cmdResume:
		r.publish(r.sched.Resume())
	case cmdToggle:
		if r.sched.State() == schedule.StatePaused {
			r.publish(r.sched.Resume())
		} else {
			r.publish(r.sched.Pause())
		}
	}
}

func (r *Runner) publish(events []schedule.Event) {
	snap := r.sched.Snapshot()
	r.mu.Lock()
	r.snapshot = snap
	subs := append([]subscriber(nil), r.subs...)
	r.mu.Unlock()

	for _, event := range events {
		r.logEvent(event)
		for _, sub := range subs {
			sub.deliver(event)
		}
	}
}

func (r *Runner) logEvent(event schedule.Event) {
	if event.Type == schedule.EventTick {
		return
	}
	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, string(event.Type)),
		logging.Duration("offset", event.Offset),
	}
	if event.Stage != "" {
		attrs = append(attrs,
			logging.String(logging.FieldStage, event.Stage),
			logging.Int(logging.FieldIndex, event.Index),
		)
	}
	switch event.Type {
	case schedule.EventStageStarted:
		attrs = append(attrs, logging.Duration("duration", event.Remaining))
		r.logger.Info("stage started", logging.Args(attrs...)...)
	case schedule.EventStageCompleted:
		r.logger.Info("stage completed", logging.Args(attrs...)...)
	case schedule.EventSequenceCompleted:
		r.logger.Info("sequence completed", logging.Args(attrs...)...)
	case schedule.EventPaused:
		attrs = append(attrs, logging.Duration("remaining", event.Remaining))
		r.logger.Info("timer paused", logging.Args(attrs...)...)
	case schedule.EventResumed:
		r.logger.Info("timer resumed", logging.Args(attrs...)...)
	case schedule.EventCancelled:
		attrs = append(attrs, logging.Duration("remaining", event.Remaining))
		r.logger.Info("timer cancelled", logging.Args(attrs...)...)
	}
}

func (r *Runner) closeSubscribers() {
	r.mu.Lock()
	subs := r.subs
	r.subs = nil
	r.done = true
	r.mu.Unlock()
	for _, sub := range subs {
		close(sub.ch)
	}
}
