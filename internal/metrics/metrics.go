// Package metrics collects Prometheus request metrics for the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	searchResults prometheus.Histogram
	registrations prometheus.Counter
	contacts      prometheus.Counter
}

// NewCollector creates a Collector and registers it on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "buscaserv_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "buscaserv_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "buscaserv_search_results",
			Help:    "Providers returned per search.",
			Buckets: []float64{0, 1, 5, 10, 25, 50},
		}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "buscaserv_provider_registrations_total",
			Help: "Provider profiles created.",
		}),
		contacts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "buscaserv_contact_forms_total",
			Help: "Contact forms received.",
		}),
	}

	reg.MustRegister(c.requests, c.latency, c.searchResults, c.registrations, c.contacts)
	return c
}

// Middleware records every request under its route pattern, not the raw path,
// so ids do not explode label cardinality.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := ctx.Route().Path
		c.requests.WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).Inc()
		c.latency.WithLabelValues(ctx.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// The Record methods are no-ops on a nil Collector.

func (c *Collector) RecordSearch(results int) {
	if c == nil {
		return
	}
	c.searchResults.Observe(float64(results))
}

func (c *Collector) RecordRegistration() {
	if c == nil {
		return
	}
	c.registrations.Inc()
}

func (c *Collector) RecordContact() {
	if c == nil {
		return
	}
	c.contacts.Inc()
}

// Handler serves the scrape endpoint for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
