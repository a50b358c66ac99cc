package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mortgage-afford/obs"
)

const requestIDHeader = "X-Request-Id"

// maxRequestIDLen bounds caller-supplied IDs before they reach the logs.
const maxRequestIDLen = 64

type requestIDKey struct{}

// RequestIDFromContext returns the ID set by WithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithRequestID propagates the caller's X-Request-Id, minting a UUID when it
// is missing, blank or oversized. The ID is echoed on the response.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// responseMeter records what a handler sent so the access log can report it.
type responseMeter struct {
	http.ResponseWriter
	status      int
	written     int
	wroteHeader bool
}

func (m *responseMeter) WriteHeader(status int) {
	if m.wroteHeader {
		return
	}
	m.status = status
	m.wroteHeader = true
	m.ResponseWriter.WriteHeader(status)
}

func (m *responseMeter) Write(b []byte) (int, error) {
	if !m.wroteHeader {
		m.WriteHeader(http.StatusOK)
	}
	n, err := m.ResponseWriter.Write(b)
	m.written += n
	return n, err
}

// WithLogging emits one http_request event per request. Server errors log
// at error level, everything else at info.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		meter := &responseMeter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(meter, r)

		level := zerolog.InfoLevel
		if meter.status >= http.StatusInternalServerError {
			level = zerolog.ErrorLevel
		}
		obs.Logger.WithLevel(level).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", meter.status).
			Int("bytes", meter.written).
			Dur("latency_ms", time.Since(start)).
			Str("request_id", RequestIDFromContext(r.Context())).
			Msg("http_request")
	})
}
