// Package metrics exposes Prometheus instrumentation for the chat pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ActiveConnections tracks websocket connections currently registered
	// across all rooms.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "fastchat",
		Name:      "active_connections",
		Help:      "Number of websocket connections currently registered.",
	})

	// MessagesPersisted counts chat lines accepted and written to the store.
	MessagesPersisted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fastchat",
		Name:      "messages_persisted_total",
		Help:      "Chat messages appended to the message store.",
	})

	// BroadcastDeliveries counts per-connection deliveries of broadcast lines.
	BroadcastDeliveries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fastchat",
		Name:      "broadcast_deliveries_total",
		Help:      "Individual deliveries of broadcast messages to connections.",
	})

	// BroadcastDrops counts connections evicted because a delivery failed.
	BroadcastDrops = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fastchat",
		Name:      "broadcast_drops_total",
		Help:      "Connections dropped after a failed broadcast delivery.",
	})
)

// Handler exposes Prometheus metrics at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
