package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultRequestTimeout = 10 * time.Second

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

// Ntfy posts notifications to an ntfy topic URL.
type Ntfy struct {
	endpoint string
	client   *http.Client
}

// NewNtfy creates a notifier for the topic URL.
func NewNtfy(endpoint string, timeout time.Duration) *Ntfy {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Ntfy{
		endpoint: strings.TrimSpace(endpoint),
		client:   &http.Client{Timeout: timeout},
	}
}

func (n *Ntfy) StageStarted(ctx context.Context, stage string) error {
	return n.send(ctx, payload{
		title:   "Stage started",
		message: fmt.Sprintf("▶ %s", strings.TrimSpace(stage)),
		tags:    []string{"stagedtimer", "stage", "started"},
	})
}

func (n *Ntfy) StageCompleted(ctx context.Context, stage string) error {
	return n.send(ctx, payload{
		title:   "Stage complete",
		message: fmt.Sprintf("⏱ %s complete", strings.TrimSpace(stage)),
		tags:    []string{"stagedtimer", "stage", "completed"},
	})
}

func (n *Ntfy) SequenceCompleted(ctx context.Context, elapsed time.Duration) error {
	elapsed = elapsed.Round(time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	return n.send(ctx, payload{
		title:    "Timer finished",
		message:  fmt.Sprintf("✅ All stages complete in %s", elapsed),
		tags:     []string{"stagedtimer", "sequence", "completed"},
		priority: "high",
	})
}

func (n *Ntfy) Cancelled(ctx context.Context, stage string) error {
	message := "Timer cancelled"
	if stage = strings.TrimSpace(stage); stage != "" {
		message = fmt.Sprintf("Timer cancelled during %s", stage)
	}
	return n.send(ctx, payload{
		title:   "Timer cancelled",
		message: message,
		tags:    []string{"stagedtimer", "cancelled"},
	})
}

func (n *Ntfy) Test(ctx context.Context) error {
	return n.send(ctx, payload{
		title:    "stagedtimer test",
		message:  "Notification system test",
		tags:     []string{"stagedtimer", "test"},
		priority: "low",
	})
}

func (n *Ntfy) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil || n.endpoint == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
