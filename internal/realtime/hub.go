package realtime

import (
	"sync"

	"github.com/justicechristophersam-ai/spaflow/internal/metrics"
	"github.com/justicechristophersam-ai/spaflow/internal/schedule"
)

const (
	// KindRefresh tells a dashboard the change falls inside its current
	// date range: re-fetch the list.
	KindRefresh = "refresh"
	// KindActivity marks a change outside the viewed range: show an
	// unobtrusive indicator instead of reloading.
	KindActivity = "activity"
)

// Message is what a connected stream receives.
type Message struct {
	Kind  string `json:"kind"`
	Event Event  `json:"event"`
}

// Client is one connected dashboard stream and its active filter.
type Client struct {
	dateRange schedule.DateRange
	ch        chan Message
}

// Messages returns the client's delivery channel.
func (c *Client) Messages() <-chan Message {
	return c.ch
}

// Hub tracks connected streams and classifies events against each
// stream's active date range before delivery.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) Subscribe(dateRange schedule.DateRange) *Client {
	client := &Client{
		dateRange: dateRange,
		ch:        make(chan Message, 8),
	}

	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	metrics.RealtimeClients.Inc()
	return client
}

func (h *Hub) Unsubscribe(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.ch)
	}
	h.mu.Unlock()

	if ok {
		metrics.RealtimeClients.Dec()
	}
}

// Broadcast classifies the event per client and delivers without
// blocking: a stream that cannot keep up drops older messages, the next
// refresh catches it up.
func (h *Hub) Broadcast(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		kind := KindActivity
		if client.dateRange.Contains(event.Date) {
			kind = KindRefresh
		}

		select {
		case client.ch <- Message{Kind: kind, Event: event}:
			metrics.RecordRealtimeEvent(kind)
		default:
		}
	}
}

// ClientCount reports the number of connected streams.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
