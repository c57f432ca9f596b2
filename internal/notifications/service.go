package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"marquee/internal/config"
)

const userAgent = "marquee/0.1.0"

// Service defines the notification surface exposed to the enricher.
type Service interface {
	NotifyRunStarted(ctx context.Context, programmes int) error
	NotifyRunCompleted(ctx context.Context, lookups, cached, generic int, duration time.Duration) error
	NotifyRunFailed(ctx context.Context, err error) error
	NotifyRefreshFailed(ctx context.Context, err error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:     topic,
		client:       &http.Client{Timeout: timeout},
		runStarted:   cfg.Notifications.RunStarted,
		runCompleted: cfg.Notifications.RunCompleted,
		errors:       cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint     string
	client       *http.Client
	runStarted   bool
	runCompleted bool
	errors       bool
}

func (n *ntfyService) NotifyRunStarted(ctx context.Context, programmes int) error {
	if !n.runStarted {
		return nil
	}
	data := payload{
		title:   "Marquee - Run Started",
		message: fmt.Sprintf("Enriching %d guide programmes", programmes),
		tags:    []string{"marquee", "run", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, lookups, cached, generic int, duration time.Duration) error {
	if !n.runCompleted {
		return nil
	}
	data := payload{
		title: "Marquee - Run Complete",
		message: fmt.Sprintf("Posters added: %d new, %d cached, %d generic (%s)",
			lookups, cached, generic, duration.Round(time.Second)),
		tags: []string{"marquee", "run", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunFailed(ctx context.Context, err error) error {
	if !n.errors || err == nil {
		return nil
	}
	data := payload{
		title:    "Marquee - Run Failed",
		message:  fmt.Sprintf("Enrichment failed: %v", err),
		tags:     []string{"marquee", "run", "failed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRefreshFailed(ctx context.Context, err error) error {
	if !n.errors || err == nil {
		return nil
	}
	data := payload{
		title:   "Marquee - Refresh Failed",
		message: fmt.Sprintf("Jellyfin guide refresh failed: %v", err),
		tags:    []string{"marquee", "jellyfin", "failed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:   "Marquee - Test",
		message: "Notifications are configured correctly.",
		tags:    []string{"marquee", "test"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
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

type noopService struct{}

func (noopService) NotifyRunStarted(context.Context, int) error { return nil }
func (noopService) NotifyRunCompleted(context.Context, int, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyRunFailed(context.Context, error) error     { return nil }
func (noopService) NotifyRefreshFailed(context.Context, error) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }
