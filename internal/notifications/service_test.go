package notifications_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"stagedtimer/internal/config"
	"stagedtimer/internal/logging"
	"stagedtimer/internal/notifications"
	"stagedtimer/internal/schedule"
)

type captured struct {
	title, tags, priority, body string
}

func newNtfyServer(t *testing.T, status int) (*httptest.Server, func() []captured) {
	t.Helper()
	var mu sync.Mutex
	var got []captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		got = append(got, captured{
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		})
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte("denied"))
	}))
	t.Cleanup(srv.Close)
	return srv, func() []captured {
		mu.Lock()
		defer mu.Unlock()
		return append([]captured(nil), got...)
	}
}

func TestNtfyFormatsPayloads(t *testing.T) {
	srv, requests := newNtfyServer(t, http.StatusOK)
	n := notifications.NewNtfy(srv.URL, time.Second)
	ctx := context.Background()

	if err := n.StageCompleted(ctx, " Developer "); err != nil {
		t.Fatalf("StageCompleted: %v", err)
	}
	if err := n.SequenceCompleted(ctx, 125600*time.Millisecond); err != nil {
		t.Fatalf("SequenceCompleted: %v", err)
	}
	if err := n.Cancelled(ctx, "Blix"); err != nil {
		t.Fatalf("Cancelled: %v", err)
	}
	if err := n.Test(ctx); err != nil {
		t.Fatalf("Test: %v", err)
	}

	got := requests()
	if len(got) != 4 {
		t.Fatalf("expected 4 requests, got %d", len(got))
	}
	tests := []struct {
		want     captured
		contains string
	}{
		{captured{title: "Stage complete", tags: "stagedtimer,stage,completed"}, "Developer complete"},
		{captured{title: "Timer finished", tags: "stagedtimer,sequence,completed", priority: "high"}, "2m6s"},
		{captured{title: "Timer cancelled", tags: "stagedtimer,cancelled"}, "during Blix"},
		{captured{title: "stagedtimer test", tags: "stagedtimer,test", priority: "low"}, "test"},
	}
	for i, tt := range tests {
		if got[i].title != tt.want.title || got[i].tags != tt.want.tags || got[i].priority != tt.want.priority {
			t.Fatalf("request %d headers = %+v, want %+v", i, got[i], tt.want)
		}
		if !strings.Contains(got[i].body, tt.contains) {
			t.Fatalf("request %d body %q missing %q", i, got[i].body, tt.contains)
		}
	}
}

func TestNtfyReportsHTTPErrors(t *testing.T) {
	srv, _ := newNtfyServer(t, http.StatusForbidden)
	err := notifications.NewNtfy(srv.URL, time.Second).Test(context.Background())
	if err == nil || !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "denied") {
		t.Fatalf("expected 403 error, got %v", err)
	}
}

func TestBellRings(t *testing.T) {
	var buf bytes.Buffer
	bell := notifications.NewBell(&buf)
	ctx := context.Background()
	_ = bell.StageCompleted(ctx, "A")
	_ = bell.Cancelled(ctx, "A")
	_ = bell.SequenceCompleted(ctx, time.Minute)
	if buf.String() != "\a\a\a\a" {
		t.Fatalf("unexpected bell output %q", buf.String())
	}
}

func TestNewServiceSelection(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.Bell = false
	var buf bytes.Buffer

	svc := notifications.NewService(&cfg, &buf)
	if err := svc.StageCompleted(context.Background(), "A"); err != nil {
		t.Fatalf("noop returned error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("noop wrote output %q", buf.String())
	}

	srv, requests := newNtfyServer(t, http.StatusOK)
	cfg.Notifications.Bell = true
	cfg.Notifications.NtfyTopic = srv.URL
	svc = notifications.NewService(&cfg, &buf)
	if err := svc.StageCompleted(context.Background(), "A"); err != nil {
		t.Fatalf("multi returned error: %v", err)
	}
	if buf.String() != "\a" || len(requests()) != 1 {
		t.Fatalf("expected bell and ntfy delivery, bell=%q requests=%d", buf.String(), len(requests()))
	}
}

type failing struct{ calls int }

func (f *failing) StageStarted(context.Context, string) error { f.calls++; return errors.New("boom") }
func (f *failing) StageCompleted(context.Context, string) error {
	f.calls++
	return errors.New("boom")
}
func (f *failing) SequenceCompleted(context.Context, time.Duration) error {
	f.calls++
	return errors.New("boom")
}
func (f *failing) Cancelled(context.Context, string) error { f.calls++; return errors.New("boom") }
func (f *failing) Test(context.Context) error              { f.calls++; return errors.New("boom") }

func TestMultiJoinsErrors(t *testing.T) {
	a, b := &failing{}, &failing{}
	err := notifications.Multi(a, b).Test(context.Background())
	if err == nil || a.calls != 1 || b.calls != 1 {
		t.Fatalf("expected both services called and an error, err=%v a=%d b=%d", err, a.calls, b.calls)
	}
}

func TestDispatchHonoursFilterAndLogsFailures(t *testing.T) {
	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Writer: &logs})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	svc := &failing{}
	filter := notifications.Filter{StageCompleted: true}
	ctx := context.Background()

	notifications.Dispatch(ctx, svc, filter, schedule.Event{Type: schedule.EventStageStarted, Stage: "A"}, logger)
	notifications.Dispatch(ctx, svc, filter, schedule.Event{Type: schedule.EventTick}, logger)
	if svc.calls != 0 {
		t.Fatalf("filtered events delivered: %d", svc.calls)
	}

	notifications.Dispatch(ctx, svc, filter, schedule.Event{Type: schedule.EventStageCompleted, Stage: "A"}, logger)
	if svc.calls != 1 {
		t.Fatalf("expected one delivery, got %d", svc.calls)
	}
	if !strings.Contains(logs.String(), "notification_failed") {
		t.Fatalf("expected warning log, got %q", logs.String())
	}
}

func TestForwardDrainsChannel(t *testing.T) {
	var buf bytes.Buffer
	events := make(chan schedule.Event, 3)
	events <- schedule.Event{Type: schedule.EventStageCompleted, Stage: "A"}
	events <- schedule.Event{Type: schedule.EventStageCompleted, Stage: "B"}
	events <- schedule.Event{Type: schedule.EventSequenceCompleted}
	close(events)

	filter := notifications.FilterFromConfig(config.Default().Notifications)
	notifications.Forward(context.Background(), notifications.NewBell(&buf), filter, events, logging.NewNop())
	if buf.String() != "\a\a\a\a\a" {
		t.Fatalf("unexpected bell output %q", buf.String())
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestFanoutBellNotHeldBackBySlowNtfy(t *testing.T) {
	release := make(chan struct{})
	var requests sync.WaitGroup
	requests.Add(3)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer requests.Done()
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	var term lockedBuffer
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = srv.URL
	cfg.Notifications.RequestTimeout = 30
	services := notifications.Backends(&cfg, &term)
	if len(services) != 2 {
		t.Fatalf("expected bell and ntfy backends, got %d", len(services))
	}

	events := make(chan schedule.Event, 3)
	for _, name := range []string{"Developer", "Stop", "Wash"} {
		events <- schedule.Event{Type: schedule.EventStageCompleted, Stage: name}
	}
	close(events)

	done := make(chan struct{})
	go func() {
		defer close(done)
		notifications.Fanout(context.Background(), services, notifications.FilterFromConfig(cfg.Notifications), events, logging.NewNop())
	}()

	deadline := time.After(2 * time.Second)
	for term.String() != "\a\a\a" {
		select {
		case <-deadline:
			close(release)
			t.Fatalf("bell waited on ntfy: rang %q before the server answered", term.String())
		case <-time.After(5 * time.Millisecond):
		}
	}

	select {
	case <-done:
		t.Fatal("fanout returned before ntfy delivery finished")
	default:
	}
	close(release)
	requests.Wait()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("fanout did not return after ntfy answered")
	}
}

func TestFilterAllows(t *testing.T) {
	filter := notifications.Filter{StageCompleted: true, Cancelled: true}
	if !filter.Allows(schedule.Event{Type: schedule.EventStageCompleted}) || !filter.Allows(schedule.Event{Type: schedule.EventCancelled}) {
		t.Fatal("enabled events rejected")
	}
	for _, kind := range []schedule.EventType{schedule.EventTick, schedule.EventStageStarted, schedule.EventSequenceCompleted, schedule.EventPaused} {
		if filter.Allows(schedule.Event{Type: kind}) {
			t.Fatalf("%s should be filtered", kind)
		}
	}
}
