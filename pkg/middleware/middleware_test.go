package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leonelcastillo/Tx/pkg/ratelimit"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := ratelimit.New(2, time.Minute)
	handler := RateLimit(limiter, nil)(okHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.RemoteAddr = "1.2.3.4:5000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.RemoteAddr = "1.2.3.4:5001"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	// The port is stripped, so the third request from the same host is denied.
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "Rate limit exceeded: up to 2 submissions per 60s allowed")

	// A different host is unaffected.
	req = httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.RemoteAddr = "9.9.9.9:5000"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestClientKey(t *testing.T) {
	t.Run("Forwarded For Takes First Hop", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", " 10.0.0.1 , 172.16.0.1")
		assert.Equal(t, "10.0.0.1", clientKey(req))
	})

	t.Run("Remote Addr Host", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "1.2.3.4:5000"
		assert.Equal(t, "1.2.3.4", clientKey(req))
	})

	t.Run("Unparseable Remote Addr Passes Through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "garbage"
		assert.Equal(t, "garbage", clientKey(req))
	})
}

func TestAdminOnly(t *testing.T) {
	t.Run("Open When Unconfigured", func(t *testing.T) {
		handler := AdminOnly("")(okHandler())
		req := httptest.NewRequest(http.MethodDelete, "/transactions/1", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Missing Key", func(t *testing.T) {
		handler := AdminOnly("secret")(okHandler())
		req := httptest.NewRequest(http.MethodDelete, "/transactions/1", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "admin api key required")
	})

	t.Run("Correct Key", func(t *testing.T) {
		handler := AdminOnly("secret")(okHandler())
		req := httptest.NewRequest(http.MethodDelete, "/transactions/1", nil)
		req.Header.Set(AdminHeader, "secret")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
