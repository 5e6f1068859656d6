package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	MessagesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_messages_created_total",
			Help: "Total messages created",
		},
	)

	MessagesUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_messages_updated_total",
			Help: "Total messages updated",
		},
	)

	MessagesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_messages_deleted_total",
			Help: "Total messages deleted",
		},
	)

	// Hub metrics
	OpenConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "relay_ws_connections",
			Help: "Currently open WebSocket connections",
		},
	)

	RegisteredClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "relay_ws_registered_clients",
			Help: "Client keys currently registered for signaling",
		},
	)

	SignalsRelayed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_signals_relayed_total",
			Help: "Signaling frames relayed to a target client",
		},
		[]string{"kind"},
	)

	SignalsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_signals_dropped_total",
			Help: "Inbound frames dropped without delivery",
		},
		[]string{"reason"},
	)

	EventsBroadcast = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_events_broadcast_total",
			Help: "Data-change events fanned out to all connections",
		},
		[]string{"kind"},
	)

	BroadcastSendFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_broadcast_send_failures_total",
			Help: "Per-connection send failures during broadcast",
		},
	)
)
