// Package metrics exposes Prometheus metrics for the trip store and its
// backend round trips.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements store.Recorder on top of Prometheus.
type Collector struct {
	loads    *prometheus.CounterVec
	creates  *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	tripsNow prometheus.Gauge
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripview_loads_total",
			Help: "Trip list loads by outcome.",
		}, []string{"result"}),
		creates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripview_creates_total",
			Help: "Trip create attempts by outcome.",
		}, []string{"result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tripview_upstream_latency_seconds",
			Help:    "Latency of trips backend round trips.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		tripsNow: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tripview_trips",
			Help: "Trips currently held by the store.",
		}),
	}

	reg.MustRegister(c.loads, c.creates, c.latency, c.tripsNow)
	return c
}

// RecordLoad counts a load and, when it reached the backend, its latency.
func (c *Collector) RecordLoad(outcome string, d time.Duration) {
	c.loads.WithLabelValues(outcome).Inc()
	if d > 0 {
		c.latency.WithLabelValues("fetch_trips").Observe(d.Seconds())
	}
}

// RecordCreate counts a create attempt. Attempts rejected locally have zero
// duration and are not observed as latency.
func (c *Collector) RecordCreate(outcome string, d time.Duration) {
	c.creates.WithLabelValues(outcome).Inc()
	if d > 0 {
		c.latency.WithLabelValues("submit_trip").Observe(d.Seconds())
	}
}

// RecordTripCount sets the trips gauge.
func (c *Collector) RecordTripCount(n int) {
	c.tripsNow.Set(float64(n))
}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
