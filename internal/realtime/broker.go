// Package realtime fans booking changes out to connected admin
// dashboards. Changes travel through a redis pub/sub channel so every
// replica sees every write, then a hub delivers them to SSE streams.
package realtime

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/justicechristophersam-ai/spaflow/internal/logger"
)

const channelName = "spaflow:bookings"

// Event is one booking change on the wire.
type Event struct {
	BookingID string `json:"booking_id"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	Change    string `json:"change"`
}

type Broker struct {
	redis *redis.Client
}

func NewBroker(redisAddr string) *Broker {
	return &Broker{
		redis: redis.NewClient(&redis.Options{Addr: redisAddr}),
	}
}

// NewBrokerWithClient is used by tests to inject a mock client.
func NewBrokerWithClient(client *redis.Client) *Broker {
	return &Broker{redis: client}
}

// BookingChanged publishes a change. Satisfies booking.Publisher.
func (b *Broker) BookingChanged(ctx context.Context, id, date, status, change string) error {
	data, err := json.Marshal(Event{
		BookingID: id,
		Date:      date,
		Status:    status,
		Change:    change,
	})
	if err != nil {
		return err
	}

	return b.redis.Publish(ctx, channelName, string(data)).Err()
}

// Listen pumps the redis channel into the hub until ctx is cancelled.
func (b *Broker) Listen(ctx context.Context, hub *Hub) {
	pubsub := b.redis.Subscribe(ctx, channelName)
	defer pubsub.Close()

	logger.Info("Realtime listener started")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Realtime listener stopped")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Error("Bad realtime payload", "error", err)
				continue
			}
			hub.Broadcast(event)
		}
	}
}

func (b *Broker) Close() error {
	return b.redis.Close()
}
