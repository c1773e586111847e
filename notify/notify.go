// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Notifier delivers a text message to a single recipient, best effort.
type Notifier interface {
	Send(ctx context.Context, recipient, text string) error
}

// Telegram sends messages through the Bot API's sendMessage method.
type Telegram struct {
	Token   string
	BaseURL string
	Client  *http.Client
}

func NewTelegram(token string) *Telegram {
	return &Telegram{
		Token:   token,
		BaseURL: "https://api.telegram.org",
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *Telegram) Send(ctx context.Context, recipient, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id": recipient,
		"text":    text,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("sendMessage failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sendMessage returned %d: %s", resp.StatusCode, body)
	}
	return nil
}

// Log is the delivery fallback when no bot token is configured: it
// writes the message to the log instead of a chat.
type Log struct{}

func (Log) Send(_ context.Context, recipient, text string) error {
	slog.Info("delivery (log only)", "recipient", recipient, "text", text)
	return nil
}

// Fanout sends every message to every recipient. Delivery is
// independent per recipient: a failure is logged and skipped, never
// aborting the remaining sends. Returns the number of recipients that
// received all messages.
func Fanout(ctx context.Context, n Notifier, recipients []string, messages ...string) int {
	delivered := 0
	for _, recipient := range recipients {
		ok := true
		for _, msg := range messages {
			if err := n.Send(ctx, recipient, msg); err != nil {
				slog.Warn("delivery failed", "recipient", recipient, "error", err)
				ok = false
				break
			}
		}
		if ok {
			delivered++
		}
	}
	return delivered
}
