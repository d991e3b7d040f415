package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elitepainters_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "elitepainters_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Chat metrics
	ChatMessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elitepainters_chat_messages_sent_total",
			Help: "Chat messages persisted",
		},
		[]string{"from_role"},
	)

	ChatSendRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elitepainters_chat_send_rejected_total",
			Help: "Chat sends rejected before persisting",
		},
		[]string{"reason"},
	)

	ChatPublishes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elitepainters_chat_publishes_total",
			Help: "Realtime publishes by channel kind",
		},
		[]string{"channel"}, // "conversation", "user", "admins"
	)

	WebsocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "elitepainters_websocket_connections",
			Help: "Open realtime connections",
		},
	)

	// Business metrics
	QuotesSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "elitepainters_quotes_submitted_total",
			Help: "Quote requests received",
		},
	)
)
