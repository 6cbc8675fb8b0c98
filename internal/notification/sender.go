// Package notification posts a JSON event to an optional webhook when a
// generate run ends.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jeffsharris/slidemaker/internal/logging"
)

const sendTimeout = 10 * time.Second

// Sender posts events to a webhook.
type Sender struct {
	Webhook string
	Client  *http.Client
}

// NewSender creates a Sender for webhook. An empty webhook disables it.
func NewSender(webhook string) *Sender {
	return &Sender{Webhook: webhook, Client: &http.Client{Timeout: sendTimeout}}
}

// Send posts ev as JSON. Any non-2xx response is an error.
func (s *Sender) Send(ctx context.Context, ev Event) error {
	if s == nil || s.Webhook == "" {
		return nil
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Webhook, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("send notification: webhook returned %s", resp.Status)
	}
	return nil
}

// Notify sends ev and only logs a warning on failure. The run's outcome
// never depends on the webhook.
func (s *Sender) Notify(ev Event) {
	if s == nil || s.Webhook == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := s.Send(ctx, ev); err != nil {
		logging.Warn(err.Error())
		return
	}
	logging.Debug("notification sent: " + ev.Event)
}
