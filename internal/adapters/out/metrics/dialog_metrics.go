// Package metrics exposes dialog counters in Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"bookstore/internal/core/domain/model/dialog"
	"bookstore/internal/core/domain/model/nlu"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookstore"

// DialogMetrics implements ports.DialogMetrics and also counts the sessions
// removed by the expiry job.
type DialogMetrics struct {
	registry *prometheus.Registry

	turns           *prometheus.CounterVec
	turnDuration    *prometheus.HistogramVec
	ordersPlaced    *prometheus.CounterVec
	orderFailures   prometheus.Counter
	slotRejections  *prometheus.CounterVec
	sessionsExpired prometheus.Counter
}

// NewDialogMetrics registers the dialog collectors plus the Go runtime and
// process collectors on a fresh registry.
func NewDialogMetrics() *DialogMetrics {
	m := &DialogMetrics{
		registry: prometheus.NewRegistry(),

		turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dialog",
				Name:      "turns_total",
				Help:      "Chat turns handled, by classified intent",
			},
			[]string{"intent"},
		),
		turnDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "dialog",
				Name:      "turn_duration_seconds",
				Help:      "Time to answer one chat turn",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"intent"},
		),
		ordersPlaced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "orders",
				Name:      "placed_total",
				Help:      "Orders placed, by number of distinct books",
			},
			[]string{"items"},
		),
		orderFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "orders",
				Name:      "failed_total",
				Help:      "Confirmed drafts that could not be persisted",
			},
		),
		slotRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dialog",
				Name:      "slot_rejections_total",
				Help:      "Slot values rejected by validation",
			},
			[]string{"slot"},
		),
		sessionsExpired: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sessions",
				Name:      "expired_total",
				Help:      "Idle sessions removed by the expiry job",
			},
		),
	}

	m.registry.MustRegister(
		m.turns,
		m.turnDuration,
		m.ordersPlaced,
		m.orderFailures,
		m.slotRejections,
		m.sessionsExpired,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *DialogMetrics) ObserveTurn(intent nlu.Intent, elapsed time.Duration) {
	m.turns.WithLabelValues(string(intent)).Inc()
	m.turnDuration.WithLabelValues(string(intent)).Observe(elapsed.Seconds())
}

func (m *DialogMetrics) OrderPlaced(items int) {
	m.ordersPlaced.WithLabelValues(strconv.Itoa(items)).Inc()
}

func (m *DialogMetrics) OrderFailed() {
	m.orderFailures.Inc()
}

func (m *DialogMetrics) SlotRejected(slot dialog.Slot) {
	m.slotRejections.WithLabelValues(slot.String()).Inc()
}

func (m *DialogMetrics) SessionsExpired(n int64) {
	m.sessionsExpired.Add(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *DialogMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
