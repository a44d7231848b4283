package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Notifier delivers a card payload to the chat platform.
type Notifier interface {
	Send(ctx context.Context, payload *Payload) error
}

type webhookNotifier struct {
	webhookURL string
	key        string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWebhookNotifier creates a Notifier that POSTs card payloads to the
// given webhook URL. Key and token, when set, are appended as query
// parameters; a webhook URL that already embeds its credentials can leave
// both empty.
func NewWebhookNotifier(webhookURL, key, token string, timeout time.Duration, logger *slog.Logger) Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &webhookNotifier{
		webhookURL: webhookURL,
		key:        key,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Send serializes the payload and POSTs it to the webhook. A non-2xx
// response counts as a delivery failure. Callers treat every error from
// Send as non-fatal to the run.
func (n *webhookNotifier) Send(ctx context.Context, payload *Payload) error {
	target, err := n.targetURL()
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	n.logger.Info("chat notification delivered", "status", resp.StatusCode)
	return nil
}

func (n *webhookNotifier) targetURL() (string, error) {
	u, err := url.Parse(n.webhookURL)
	if err != nil {
		return "", fmt.Errorf("invalid webhook URL: %w", err)
	}
	q := u.Query()
	if n.key != "" {
		q.Set("key", n.key)
	}
	if n.token != "" {
		q.Set("token", n.token)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
