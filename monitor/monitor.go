// monitor/monitor.go
package monitor

import (
	"expvar"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/monsterhunt/gameserver/logger"
)

const namespace = "monsterhunt"

// Package-level metrics so every layer can record without threading a
// handle through the call graph.
var (
	OnlinePlayers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "online_players",
		Help:      "Number of connected players",
	})
	ActiveRooms = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_rooms",
		Help:      "Number of live rooms",
	})
	RoomsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rooms_created_total",
		Help:      "Total rooms created",
	})
	MatchesStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matches_started_total",
		Help:      "Total matches started",
	})
	MatchesEnded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matches_ended_total",
		Help:      "Total matches ended, by winning side",
	}, []string{"winner"})
	MessagesReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_received_total",
		Help:      "Total client messages received",
	})
	MessageLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "message_latency_seconds",
		Help:      "Client message processing latency",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
	})
)

var startTime = time.Now()

func init() {
	prometheus.MustRegister(
		OnlinePlayers,
		ActiveRooms,
		RoomsCreated,
		MatchesStarted,
		MatchesEnded,
		MessagesReceived,
		MessageLatency,
	)
}

// StartServer exposes /metrics plus an expvar uptime counter on addr.
func StartServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	expvar.Publish("uptime", expvar.Func(func() interface{} {
		return time.Since(startTime).Seconds()
	}))
	mux.Handle("/debug/vars", expvar.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Log.Errorw("metrics server stopped", "addr", addr, "error", err)
		}
	}()
}
