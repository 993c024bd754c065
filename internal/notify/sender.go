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

// PushSender delivers notifications to the external push provider over HTTP.
// Nil-safe: when not configured, sends succeed as no-ops so development
// environments run without a provider account.
type PushSender struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	logger     *slog.Logger
}

// NewPushSender creates a sender, or nil when apiURL is empty.
func NewPushSender(apiURL, apiKey string, logger *slog.Logger) *PushSender {
	if apiURL == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PushSender{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     apiURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// pushMessage is the provider's wire format.
type pushMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Send delivers one intent. A non-2xx response is an error; the caller
// records the outcome in the audit log and never retries within the cycle.
func (s *PushSender) Send(ctx context.Context, intent Intent) error {
	if s == nil {
		return nil // no-op when not configured
	}

	payload, err := json.Marshal(pushMessage{
		To:    intent.DeliveryToken,
		Title: intent.Title,
		Body:  intent.Body,
		Data:  intent.Data,
	})
	if err != nil {
		return fmt.Errorf("marshal push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("push provider returned %d: %s", resp.StatusCode, body)
	}
	return nil
}
