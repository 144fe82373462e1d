package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spaflow_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spaflow_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spaflow_bookings_created_total",
			Help: "Total number of bookings created",
		},
		[]string{"service"},
	)

	SlotConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spaflow_slot_conflicts_total",
			Help: "Submissions rejected because the slot was already taken",
		},
	)

	StatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spaflow_status_changes_total",
			Help: "Total number of booking status changes",
		},
		[]string{"status"},
	)

	WebhookDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spaflow_webhook_deliveries_total",
			Help: "Outbound webhook delivery attempts",
		},
		[]string{"status"},
	)

	WebhookQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "spaflow_webhook_queue_length",
			Help: "Current length of the webhook delivery queue",
		},
	)

	RealtimeEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spaflow_realtime_events_total",
			Help: "Realtime booking events delivered to dashboard streams",
		},
		[]string{"kind"},
	)

	RealtimeClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "spaflow_realtime_clients",
			Help: "Currently connected dashboard streams",
		},
	)

	CSVExportsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spaflow_csv_exports_total",
			Help: "Total number of CSV exports",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingCreated(serviceType string) {
	BookingsCreatedTotal.WithLabelValues(serviceType).Inc()
}

func RecordSlotConflict() {
	SlotConflictsTotal.Inc()
}

func RecordStatusChange(status string) {
	StatusChangesTotal.WithLabelValues(status).Inc()
}

func RecordWebhookDelivery(status string) {
	WebhookDeliveriesTotal.WithLabelValues(status).Inc()
}

func RecordRealtimeEvent(kind string) {
	RealtimeEventsTotal.WithLabelValues(kind).Inc()
}

func RecordCSVExport() {
	CSVExportsTotal.Inc()
}
