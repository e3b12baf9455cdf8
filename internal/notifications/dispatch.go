package notifications

import (
	"context"
	"log/slog"
	"sync"

	"stagedtimer/internal/logging"
	"stagedtimer/internal/schedule"
)

// queueSize bounds the pending notifications per backend in Fanout.
const queueSize = 64

// Dispatch delivers the notification matching event when filter allows it.
// Failures are logged at warn level and otherwise ignored.
func Dispatch(ctx context.Context, svc Service, filter Filter, event schedule.Event, logger *slog.Logger) {
	if svc == nil || !filter.Allows(event) {
		return
	}
	var err error
	switch event.Type {
	case schedule.EventStageStarted:
		err = svc.StageStarted(ctx, event.Stage)
	case schedule.EventStageCompleted:
		err = svc.StageCompleted(ctx, event.Stage)
	case schedule.EventSequenceCompleted:
		err = svc.SequenceCompleted(ctx, event.Offset)
	case schedule.EventCancelled:
		err = svc.Cancelled(ctx, event.Stage)
	}
	if err != nil {
		logging.WarnWithContext(logger, "notification delivery failed", "notification_failed",
			logging.String("event", string(event.Type)),
			logging.String(logging.FieldStage, event.Stage),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic and network access"),
			logging.String(logging.FieldImpact, "notification not delivered; timer keeps running"),
		)
	}
}

// Forward dispatches every event from events until the channel closes.
func Forward(ctx context.Context, svc Service, filter Filter, events <-chan schedule.Event, logger *slog.Logger) {
	for event := range events {
		Dispatch(ctx, svc, filter, event, logger)
	}
}

// Fanout forwards events to each service on its own goroutine, so a slow
// network notifier never holds back the terminal bell. It returns once events
// is closed and every service has drained its queue. A backend that falls
// queueSize notifications behind loses the overflow.
func Fanout(ctx context.Context, services []Service, filter Filter, events <-chan schedule.Event, logger *slog.Logger) {
	queues := make([]chan schedule.Event, len(services))
	var wg sync.WaitGroup
	for i, svc := range services {
		queues[i] = make(chan schedule.Event, queueSize)
		wg.Add(1)
		go func(svc Service, queue <-chan schedule.Event) {
			defer wg.Done()
			Forward(ctx, svc, filter, queue, logger)
		}(svc, queues[i])
	}

	for event := range events {
		if !filter.Allows(event) {
			continue
		}
		for _, queue := range queues {
			select {
			case queue <- event:
			default:
				logging.WarnWithContext(logger, "notification dropped; backend queue full", "notification_dropped",
					logging.String("event", string(event.Type)),
					logging.String(logging.FieldStage, event.Stage),
					logging.String(logging.FieldImpact, "one notifier skips this event"),
				)
			}
		}
	}
	for _, queue := range queues {
		close(queue)
	}
	wg.Wait()
}
