// Package jobs defines background tasks and the Asynq worker running them.
package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeWebhook is the task type for outbound change notifications.
	TaskTypeWebhook = "webhook:deliver"
)

// WebhookPayload describes one entity-change notification to deliver.
type WebhookPayload struct {
	URL       string          `json:"url"`
	Operation string          `json:"event_operation"`
	Entity    json.RawMessage `json:"event"`
}

// NewWebhookTask constructs an Asynq task carrying the payload.
func NewWebhookTask(payload WebhookPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeWebhook, data, asynq.MaxRetry(5), asynq.Timeout(webhookTimeout)), nil
}

const webhookTimeout = 60 * time.Second

// WebhookDeliverer posts notification payloads to the configured receiver.
type WebhookDeliverer struct {
	client *http.Client
}

// NewWebhookDeliverer constructs a deliverer with a bounded HTTP client.
func NewWebhookDeliverer() *WebhookDeliverer {
	return &WebhookDeliverer{client: &http.Client{Timeout: webhookTimeout}}
}

// HandleWebhookTask processes TaskTypeWebhook tasks. Transport failures are
// returned so the queue retries; a receiver rejecting the payload (4xx)
// skips retry since resending the same body cannot succeed.
func (d *WebhookDeliverer) HandleWebhookTask(ctx context.Context, t *asynq.Task) error {
	var payload WebhookPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	body, err := json.Marshal(map[string]any{
		"event_operation": payload.Operation,
		"event":           payload.Entity,
	})
	if err != nil {
		return asynq.SkipRetry
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, payload.URL, bytes.NewReader(body))
	if err != nil {
		return asynq.SkipRetry
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("jobs: deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return fmt.Errorf("jobs: webhook rejected with %d: %w", resp.StatusCode, asynq.SkipRetry)
	default:
		return fmt.Errorf("jobs: webhook receiver returned %d", resp.StatusCode)
	}
}
