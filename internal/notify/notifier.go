// Package notify emits entity-change notifications to an outbound webhook.
// Delivery happens on the background queue so request handlers never hold a
// database connection across the network call.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/troopbase/troopbase/jobs"
)

// Operation identifies the kind of entity change being announced.
type Operation string

const (
	OpEventCreate      Operation = "event_create"
	OpEventUpdate      Operation = "event_update"
	OpEventDelete      Operation = "event_delete"
	OpEventTypeCreate  Operation = "event_type_create"
	OpEventTypeUpdate  Operation = "event_type_update"
	OpEventTypeDelete  Operation = "event_type_delete"
	OpRoleCreate       Operation = "role_create"
	OpRoleUpdate       Operation = "role_update"
	OpRoleDelete       Operation = "role_delete"
	OpUserCreate       Operation = "user_create"
	OpUserUpdate       Operation = "user_update"
	OpUserDelete       Operation = "user_delete"
	OpUserRoleAssign   Operation = "user_role_assign"
	OpUserRoleRemove   Operation = "user_role_remove"
	OpPermissionCreate Operation = "permission_create"
	OpPermissionUpdate Operation = "permission_update"
	OpPermissionDelete Operation = "permission_delete"
)

// Notifier enqueues change notifications for webhook delivery. A failed
// enqueue is logged and swallowed: notifications are a side effect and must
// never fail the mutation that triggered them.
type Notifier struct {
	client *asynq.Client
	url    string
	logger *slog.Logger
}

// NewNotifier constructs a Notifier. A nil client or empty URL yields a
// notifier that drops everything, which keeps tests and dev setups simple.
func NewNotifier(client *asynq.Client, url string, logger *slog.Logger) *Notifier {
	return &Notifier{client: client, url: url, logger: logger}
}

// Notify serializes the entity and enqueues a delivery task.
func (n *Notifier) Notify(ctx context.Context, op Operation, entity any) {
	if n == nil || n.client == nil || n.url == "" {
		return
	}

	body, err := json.Marshal(entity)
	if err != nil {
		n.logger.Error("notify marshal", slog.Any("error", err))
		return
	}

	task, err := jobs.NewWebhookTask(jobs.WebhookPayload{
		URL:       n.url,
		Operation: string(op),
		Entity:    body,
	})
	if err != nil {
		n.logger.Error("notify build task", slog.Any("error", err))
		return
	}

	if _, err := n.client.EnqueueContext(ctx, task, asynq.Queue(jobs.QueueDefault)); err != nil {
		n.logger.Warn("notify enqueue", slog.String("operation", string(op)), slog.Any("error", err))
	}
}
