// Package notify delivers freshly created bookings to an external
// automation webhook. Delivery is queued through redis and attempted
// once; the booking record is the source of truth and a lost
// notification is only a log line.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/justicechristophersam-ai/spaflow/internal/booking"
	"github.com/justicechristophersam-ai/spaflow/internal/logger"
	"github.com/justicechristophersam-ai/spaflow/internal/metrics"
)

const (
	queueKey  = "webhooks"
	failedKey = "webhooks:failed"

	// The form identifier the downstream automation filters on.
	sourceTag = "spaflow_form"
)

type WebhookJob struct {
	BookingID     string    `json:"booking_id"`
	Name          string    `json:"name"`
	WhatsApp      string    `json:"whatsapp"`
	Email         string    `json:"email"`
	ServiceType   string    `json:"service_type"`
	PreferredDate string    `json:"preferred_date"`
	PreferredTime string    `json:"preferred_time"`
	Notes         string    `json:"notes"`
	Source        string    `json:"source"`
	Created       time.Time `json:"created"`
}

type Service struct {
	redis      *redis.Client
	webhookURL string
	client     *http.Client
}

func New(webhookURL, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithClient is used by tests to inject mocks.
func NewWithClient(webhookURL string, redisClient *redis.Client, httpClient *http.Client) *Service {
	return &Service{redis: redisClient, webhookURL: webhookURL, client: httpClient}
}

// BookingCreated queues the booking for delivery. Satisfies
// booking.Notifier.
func (s *Service) BookingCreated(ctx context.Context, b *booking.Booking) error {
	if s.webhookURL == "" {
		return nil
	}

	job := WebhookJob{
		BookingID:     b.ID,
		Name:          b.Name,
		WhatsApp:      b.WhatsApp,
		Email:         b.Email,
		ServiceType:   b.ServiceType,
		PreferredDate: b.PreferredDate,
		PreferredTime: b.PreferredTime,
		Notes:         b.Notes,
		Source:        sourceTag,
		Created:       time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Errorf("Failed to queue webhook for booking %s: %v", b.ID, err)
		return err
	}

	logger.Infof("Webhook queued for booking %s", b.ID)
	return nil
}

// Start runs the delivery worker until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("Webhook service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Webhook service stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job WebhookJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad webhook data: %v", err)
		return
	}

	// Single attempt; the booking is already persisted and the webhook
	// is only a side notification.
	if err := s.deliver(ctx, job); err != nil {
		logger.Errorf("Webhook delivery failed for booking %s: %v", job.BookingID, err)
		metrics.RecordWebhookDelivery("failed")
		s.saveFailed(job, err)
		return
	}

	metrics.RecordWebhookDelivery("ok")
	logger.Infof("Webhook delivered for booking %s", job.BookingID)
}

func (s *Service) deliver(ctx context.Context, job WebhookJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}

	return nil
}

func (s *Service) saveFailed(job WebhookJob, deliveryErr error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": deliveryErr.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedKey, string(data))
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.WebhookQueueLength.Set(float64(length))
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}
