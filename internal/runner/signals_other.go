//go:build !unix

package runner

import (
	"context"
	"log/slog"
)

// WatchSignals is a no-op on platforms without SIGUSR1.
func WatchSignals(context.Context, Controller, *slog.Logger) {}
