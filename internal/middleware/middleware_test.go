package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"artesanos-be/internal/logger"
)

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("MintsWhenAbsent", func(t *testing.T) {
		var captured string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = logger.RequestIDFrom(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		RequestIDMiddleware(next).ServeHTTP(rec, req)

		assert.NotEmpty(t, captured)
		assert.Equal(t, captured, rec.Header().Get("X-Request-Id"))
	})

	t.Run("HonorsIncomingHeader", func(t *testing.T) {
		var captured string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = logger.RequestIDFrom(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("X-Request-Id", "req-abc-123")
		rec := httptest.NewRecorder()
		RequestIDMiddleware(next).ServeHTTP(rec, req)

		assert.Equal(t, "req-abc-123", captured)
		assert.Equal(t, "req-abc-123", rec.Header().Get("X-Request-Id"))
	})
}

func TestLoggingMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	LoggingMiddleware(next).ServeHTTP(rec, req)

	// The recorder must pass the downstream status through untouched.
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimitMiddleware(next)

	t.Run("AllowsWithinBurst", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.RemoteAddr = "10.0.0.1:54321"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("RejectsAfterBurst", func(t *testing.T) {
		var last int
		for i := 0; i < burstGeneral+5; i++ {
			req := httptest.NewRequest(http.MethodGet, "/orders", nil)
			req.RemoteAddr = "10.0.0.2:54321"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			last = rec.Code
		}

		assert.Equal(t, http.StatusTooManyRequests, last)
	})
}
