package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the rental engine.
// All recording methods are safe on a nil *Metrics.
type Metrics struct {
	// Registry owns every collector below and backs the /metrics endpoint.
	Registry *prometheus.Registry

	rentalWrites    *prometheus.CounterVec
	quotesExpired   prometheus.Counter
	cacheLookups    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates a private registry so repeated construction in tests does not
// collide with the default one.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		rentalWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rental_writes_total",
				Help: "Rentals written by operation.",
			},
			[]string{"operation"},
		),
		quotesExpired: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rental_quotes_expired_total",
				Help: "Quotes moved to canceled after their validity date.",
			},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rental_settings_cache_lookups_total",
				Help: "Settings cache lookups by result.",
			},
			[]string{"result"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rental_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) RentalWritten(operation string) {
	if m == nil {
		return
	}
	m.rentalWrites.WithLabelValues(operation).Inc()
}

func (m *Metrics) QuotesExpired(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.quotesExpired.Add(float64(n))
}

// CacheLookup records a settings cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
