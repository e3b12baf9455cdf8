package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"stagedtimer/internal/display"
	"stagedtimer/internal/logging"
	"stagedtimer/internal/notifications"
	"stagedtimer/internal/runner"
	"stagedtimer/internal/schedule"
	"stagedtimer/internal/session"
)

const subscriberBuffer = 256

type timerOptions struct {
	plan   planFlags
	dryRun bool
	noBell bool
}

func runTimer(cmd *cobra.Command, ctx *commandContext, opts *timerOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	name, plan, err := opts.plan.resolve(cfg)
	if err != nil {
		return err
	}

	out := &lockedWriter{w: cmd.OutOrStdout()}
	colorize := ctx.colorize(cmd, cfg)
	printPlan(out, plan, cfg.Display.ShowPlan)
	if opts.dryRun {
		return nil
	}

	sess, err := session.Open(cfg, session.Options{
		LogLevel: ctx.opts.logLevel,
		Warn: func(format string, args ...any) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warn: "+format+"\n", args...)
		},
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	logger := sess.Logger
	runCtx, stop := signal.NotifyContext(commandCtx(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	runCtx = logging.WithRunID(runCtx, sess.RunID)

	logger.Info("timer starting",
		logging.String(logging.FieldEventType, "timer_starting"),
		logging.String("plan", name),
		logging.String("log_path", sess.LogPath),
	)

	r := runner.New(schedule.New(plan), runner.Options{
		Clock:        ctx.clock,
		TickInterval: cfg.RefreshInterval(),
		Logger:       logger,
	})

	notifyCfg := *cfg
	if opts.noBell {
		notifyCfg.Notifications.Bell = false
	}
	backends := notifications.Backends(&notifyCfg, out)
	filter := notifications.FilterFromConfig(cfg.Notifications)

	lineEvents := r.Subscribe(subscriberBuffer)
	notifyEvents := r.SubscribeFunc(subscriberBuffer, filter.Allows)

	var keyboard *runner.Keyboard
	if in, ok := cmd.InOrStdin().(*os.File); ok {
		if kb, kbErr := runner.NewKeyboard(in); kbErr == nil {
			keyboard = kb
			fmt.Fprint(out, "space/p: pause  q: quit\r\n")
			go keyboard.Listen(runCtx, r)
		}
	}
	defer keyboard.Restore()
	runner.WatchSignals(runCtx, r, logger)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		display.NewPrinter(out, r, colorize).Run(lineEvents)
	}()
	go func() {
		defer wg.Done()
		// Delivery outlives runCtx so a cancelled run still reports it; each
		// ntfy request carries its own timeout.
		notifications.Fanout(context.WithoutCancel(runCtx), backends, filter, notifyEvents, logger)
	}()

	runErr := r.Run(runCtx)
	wg.Wait()
	_ = keyboard.Restore()

	if runErr != nil {
		logger.Info("timer stopped", logging.String(logging.FieldEventType, "timer_stopped"), logging.Error(runErr))
	}
	return runErr
}

// lockedWriter serialises the countdown redraws and bell writes.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func printPlan(out io.Writer, plan schedule.Plan, table bool) {
	if table {
		fmt.Fprintln(out, display.PlanTable(plan))
		return
	}
	for _, line := range display.Announcements(plan) {
		fmt.Fprintln(out, line)
	}
}

func commandCtx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
