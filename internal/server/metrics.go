package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/piwi3910/BoardCut/internal/model"
)

const metricsNamespace = "boardcut"

// metrics tracks optimization requests. Each Server owns its registry.
type metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration prometheus.Histogram
	boards   *prometheus.CounterVec
	unplaced *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "optimize_requests_total",
			Help:      "API requests by HTTP status code.",
		}, []string{"code"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "optimize_duration_seconds",
			Help:      "Time spent packing pieces onto boards.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		boards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "boards_total",
			Help:      "Boards allocated, by thickness in mm.",
		}, []string{"thickness"}),
		unplaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "unplaced_pieces_total",
			Help:      "Pieces left off every board, by reason.",
		}, []string{"reason"}),
	}
	m.registry.MustRegister(
		m.requests, m.duration, m.boards, m.unplaced,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) observeRequest(code int) {
	m.requests.WithLabelValues(strconv.Itoa(code)).Inc()
}

func (m *metrics) observeResult(result model.Result, took time.Duration) {
	m.duration.Observe(took.Seconds())
	for _, bt := range result.Stats.BoardsByType {
		m.boards.WithLabelValues(strconv.FormatFloat(bt.Thickness, 'f', -1, 64)).Add(float64(bt.Count))
	}
	for _, u := range result.Unplaced {
		m.unplaced.WithLabelValues(string(u.Reason)).Inc()
	}
}
