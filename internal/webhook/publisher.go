package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	webhookQueueKey = "report_webhook_events"

	EventReportGenerated = "report.generated"
)

// ReportGeneratedEvent - событие об успешно сформированном отчете. Содержимое
// отчета и персональные данные в событие не попадают.
type ReportGeneratedEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	Type          string    `json:"type"`
	IncidentID    uuid.UUID `json:"incident_id"`
	ReferenceCode string    `json:"reference_code"`
	Category      string    `json:"category"`
	Profile       string    `json:"profile"`
	Filename      string    `json:"filename"`
	PageCount     int       `json:"page_count"`
	ByteSize      int64     `json:"byte_size"`
	WarningCount  int       `json:"warning_count"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, event ReportGeneratedEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish публикует событие вебхука в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event ReportGeneratedEvent) error {
	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Type == "" {
		event.Type = EventReportGenerated
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH кладет событие в левую часть списка, воркер забирает справа
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}

// NoopPublisher используется, когда WEBHOOK_URL не задан
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ReportGeneratedEvent) error {
	return nil
}
