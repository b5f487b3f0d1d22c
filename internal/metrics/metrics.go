package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"motoclub-theme/internal/ui"
)

var (
	// ProfileApplies counts palettes applied by store and profile key
	ProfileApplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motoclub_theme_profile_applies_total",
		Help: "Total palettes applied by store and profile",
	}, []string{"store", "profile"})

	// CookieErrors counts preference cookies that could not be decoded
	CookieErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "motoclub_theme_cookie_errors_total",
		Help: "Total malformed preference cookies",
	})

	// Fallbacks counts site palette loads that fell back to the built-in palette
	Fallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motoclub_theme_fallbacks_total",
		Help: "Total fallbacks to the built-in site palette by reason",
	}, []string{"reason"})

	// Imports counts palette imports by result
	Imports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motoclub_theme_imports_total",
		Help: "Total palette imports by result",
	}, []string{"result"})

	// Exports counts palette collection downloads
	Exports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "motoclub_theme_exports_total",
		Help: "Total palette collection exports",
	})

	// RateLimited counts rejected state-changing requests
	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motoclub_theme_rate_limited_total",
		Help: "Total rate limited requests by route",
	}, []string{"route"})

	// Requests counts served HTTP requests by route and status class
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motoclub_theme_requests_total",
		Help: "Total HTTP requests by route and status class",
	}, []string{"route", "status"})

	// RequestDuration tracks handler latency
	RequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "motoclub_theme_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})
)

// StatusClass maps an HTTP status to its "2xx"-style label.
func StatusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// MetricsServer wraps the HTTP server for prometheus metrics
type MetricsServer struct {
	server *http.Server
}

// NewMetricsServer creates a new metrics server
func NewMetricsServer(addr string) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins serving metrics (non-blocking)
func (m *MetricsServer) Start() {
	go func() {
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ui.LogStatus("error", "Metrics server error: "+err.Error())
		}
	}()
}

// Shutdown gracefully stops the metrics server
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.server.Shutdown(shutdownCtx)
}
