package site

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"motoclub-theme/internal/metrics"
	"motoclub-theme/internal/panel"
	"motoclub-theme/internal/ui"
)

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID returns the id assigned to the request, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// withRequestID tags every request with an X-Request-ID, keeping a valid
// incoming one.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withAccessLog logs and counts each request once it has been served.
func withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.Requests.WithLabelValues(route, metrics.StatusClass(rec.status)).Inc()
		metrics.RequestDuration.Observe(elapsed.Seconds())
		ui.LogRequest(r.Method, r.URL.Path, rec.status, elapsed, RequestID(r.Context()))
	})
}

// limited rejects requests from clients over the POST budget.
func (s *Server) limited(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := s.clients.clientIP(r)
		if !s.limiter.Allow(client) {
			metrics.RateLimited.WithLabelValues(route).Inc()
			ui.LogStatus("warn", "Rate limited: "+client+" "+route)
			w.Header().Set("Retry-After", "10")
			if panelForm(r) {
				redirectNotice(w, r, panel.NoticeRateLimited)
				return
			}
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		h(w, r)
	}
}

// panelForm reports whether r is a panel form post answered with a redirect.
func panelForm(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/theme/") && r.URL.Path != "/theme/preview"
}
