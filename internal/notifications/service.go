package notifications

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"stagedtimer/internal/config"
	"stagedtimer/internal/schedule"
)

const userAgent = "stagedtimer/0.2.0"

// Service defines the notification surface used by a run.
type Service interface {
	StageStarted(ctx context.Context, stage string) error
	StageCompleted(ctx context.Context, stage string) error
	SequenceCompleted(ctx context.Context, elapsed time.Duration) error
	Cancelled(ctx context.Context, stage string) error
	Test(ctx context.Context) error
}

// Filter selects which events are delivered.
type Filter struct {
	StageStarted      bool
	StageCompleted    bool
	SequenceCompleted bool
	Cancelled         bool
}

// Allows reports whether event maps to a notification the filter enables.
func (f Filter) Allows(event schedule.Event) bool {
	switch event.Type {
	case schedule.EventStageStarted:
		return f.StageStarted
	case schedule.EventStageCompleted:
		return f.StageCompleted
	case schedule.EventSequenceCompleted:
		return f.SequenceCompleted
	case schedule.EventCancelled:
		return f.Cancelled
	default:
		return false
	}
}

// FilterFromConfig reads the per-event switches from cfg.
func FilterFromConfig(cfg config.Notifications) Filter {
	return Filter{
		StageStarted:      cfg.StageStarted,
		StageCompleted:    cfg.StageCompleted,
		SequenceCompleted: cfg.SequenceCompleted,
		Cancelled:         cfg.Cancelled,
	}
}

// Backends returns the notifiers enabled in cfg, the bell first. The bell
// writes to term.
func Backends(cfg *config.Config, term io.Writer) []Service {
	if cfg == nil {
		return nil
	}
	var services []Service
	if cfg.Notifications.Bell && term != nil {
		services = append(services, NewBell(term))
	}
	if topic := strings.TrimSpace(cfg.Notifications.NtfyTopic); topic != "" {
		services = append(services, NewNtfy(topic, cfg.NotifyTimeout()))
	}
	return services
}

// NewService combines the notifiers enabled in cfg into one Service. When
// nothing is enabled, a noop implementation is returned.
func NewService(cfg *config.Config, term io.Writer) Service {
	services := Backends(cfg, term)
	switch len(services) {
	case 0:
		return noopService{}
	case 1:
		return services[0]
	default:
		return Multi(services...)
	}
}

type multiService []Service

// Multi fans every call out to all services and joins their errors.
func Multi(services ...Service) Service {
	return multiService(services)
}

func (m multiService) each(fn func(Service) error) error {
	var errs []error
	for _, svc := range m {
		if err := fn(svc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multiService) StageStarted(ctx context.Context, stage string) error {
	return m.each(func(s Service) error { return s.StageStarted(ctx, stage) })
}

func (m multiService) StageCompleted(ctx context.Context, stage string) error {
	return m.each(func(s Service) error { return s.StageCompleted(ctx, stage) })
}

func (m multiService) SequenceCompleted(ctx context.Context, elapsed time.Duration) error {
	return m.each(func(s Service) error { return s.SequenceCompleted(ctx, elapsed) })
}

func (m multiService) Cancelled(ctx context.Context, stage string) error {
	return m.each(func(s Service) error { return s.Cancelled(ctx, stage) })
}

func (m multiService) Test(ctx context.Context) error {
	return m.each(func(s Service) error { return s.Test(ctx) })
}

type noopService struct{}

func (noopService) StageStarted(context.Context, string) error             { return nil }
func (noopService) StageCompleted(context.Context, string) error           { return nil }
func (noopService) SequenceCompleted(context.Context, time.Duration) error { return nil }
func (noopService) Cancelled(context.Context, string) error                { return nil }
func (noopService) Test(context.Context) error                             { return nil }
