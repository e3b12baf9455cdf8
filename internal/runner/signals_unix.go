//go:build unix

package runner

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"stagedtimer/internal/logging"
)

// WatchSignals toggles pause on SIGUSR1 until ctx ends, so a run can be held
// from another shell with `kill -USR1 <pid>`.
func WatchSignals(ctx context.Context, ctrl Controller, logger *slog.Logger) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGUSR1)
	go func() {
		defer signal.Stop(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				if logger != nil {
					logger.Info("pause toggled by signal", logging.String(logging.FieldEventType, "signal_toggle"))
				}
				ctrl.TogglePause()
			}
		}
	}()
}
