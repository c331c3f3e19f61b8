// Package metrics exposes the dashboard's Prometheus instruments.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UpdatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solarmap_dashboard_updates_total",
		Help: "Dashboard updates by trigger",
	}, []string{"trigger"})
	NoDataTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solarmap_no_data_renders_total",
		Help: "Updates whose filters matched no parcel",
	})
	UpdateDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solarmap_update_duration_ms",
		Help:    "Filter and render duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	ChartExportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solarmap_chart_exports_total",
		Help: "PNG chart exports by chart kind",
	}, []string{"kind"})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solarmap_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"method", "route", "status"})
	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solarmap_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})
	ParcelsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solarmap_parcels_loaded",
		Help: "Parcels in the merged table",
	})
)

func init() {
	prometheus.MustRegister(UpdatesTotal)
	prometheus.MustRegister(NoDataTotal)
	prometheus.MustRegister(UpdateDurationMs)
	prometheus.MustRegister(ChartExportsTotal)
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(RateLimitedTotal)
	prometheus.MustRegister(ParcelsLoaded)
}

// Handler serves the registered metrics for scraping at /metrics
func Handler() http.Handler { return promhttp.Handler() }
