package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"BlueBatch/internal/domain/models"
	pkghttp "BlueBatch/pkg/http"
)

// WebhookNotifier posts alerts as JSON to a chat webhook (Slack/Discord
// style). It implements both the domain Notifier and the log collector's
// Publisher, so aggregated error logs and run summaries travel the same
// channel.
type WebhookNotifier struct {
	url    string
	client *pkghttp.Client
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: pkghttp.NewClient(pkghttp.WithTimeout(10 * time.Second)),
	}
}

var levelColors = map[models.AlertLevel]string{
	models.AlertInfo:     "#36a64f",
	models.AlertWarning:  "#ff9900",
	models.AlertError:    "#ff0000",
	models.AlertCritical: "#990000",
}

// Notify delivers one alert. The webhook payload uses the attachment shape
// chat services accept for colored messages.
func (n *WebhookNotifier) Notify(ctx context.Context, alert models.Alert) error {
	attachment := map[string]interface{}{
		"color": levelColors[alert.Level],
		"title": alert.Title,
		"text":  alert.Message,
		"ts":    time.Now().Unix(),
	}
	if len(alert.Details) > 0 {
		fields := make([]map[string]interface{}, 0, len(alert.Details))
		for k, v := range alert.Details {
			fields = append(fields, map[string]interface{}{
				"title": k,
				"value": fmt.Sprintf("%v", v),
				"short": true,
			})
		}
		attachment["fields"] = fields
	}
	return n.post(ctx, map[string]interface{}{
		"attachments": []map[string]interface{}{attachment},
	})
}

// PublishMessage satisfies the log collector's Publisher.
func (n *WebhookNotifier) PublishMessage(ctx context.Context, subject string, body interface{}) error {
	return n.post(ctx, map[string]interface{}{
		"text":    subject,
		"payload": body,
	})
}

func (n *WebhookNotifier) post(ctx context.Context, payload interface{}) error {
	err := n.client.SendAndDiscard(ctx, &pkghttp.RequestOptions{
		Method:  http.MethodPost,
		URL:     n.url,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    payload,
	})
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	return nil
}

// NoopNotifier is used when no webhook is configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify(ctx context.Context, alert models.Alert) error { return nil }

func (NoopNotifier) PublishMessage(ctx context.Context, subject string, body interface{}) error {
	return nil
}
