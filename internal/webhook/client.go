// Package webhook реализует HTTP-клиент для доставки событий
// на внешний webhook-endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/magabrotheeeer/profile-platform/internal/models"
)

// Client отправляет события на фиксированный webhook URL.
type Client struct {
	url        string
	authToken  string
	httpClient *http.Client
}

// NewClient создаёт клиент webhook-уведомлений.
// authToken передаётся в статическом заголовке X-Webhook-Token, если задан.
func NewClient(url, authToken string) *Client {
	return &Client{
		url:        url,
		authToken:  authToken,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Deliver отправляет payload одним POST-запросом.
// Любой статус ответа вне 2xx считается ошибкой доставки.
func (c *Client) Deliver(ctx context.Context, payload models.WebhookPayload) error {
	const op = "webhook.Deliver"

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("X-Webhook-Token", c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}
	return nil
}
