package mw

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/forge/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func serve(h http.Handler, remote, host string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/infra", nil)
	req.RemoteAddr = remote
	if host != "" {
		req.Host = host
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAllowOnlyCIDRS(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"10.0.0.0/8"}, false, logger.Nop())(okHandler)

	assert.Equal(t, http.StatusNoContent, serve(h, "10.1.2.3:4000", "").Code)

	rec := serve(h, "192.168.0.1:4000", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Forbidden"}`, rec.Body.String())
}

func TestAllowOnlyCIDRSEmptyIsPassthrough(t *testing.T) {
	h := AllowOnlyCIDRS(nil, false, logger.Nop())(okHandler)
	assert.Equal(t, http.StatusNoContent, serve(h, "8.8.8.8:1", "").Code)
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"forge.example.com", "*.internal.lan"}, logger.Nop())(okHandler)

	tests := []struct {
		host string
		want int
	}{
		{"forge.example.com", http.StatusNoContent},
		{"Forge.Example.com:8080", http.StatusNoContent},
		{"api.internal.lan", http.StatusNoContent},
		{"internal.lan", http.StatusForbidden},
		{"evilinternal.lan", http.StatusForbidden},
		{"example.com", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(h, "127.0.0.1:1", tt.host).Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	h := RateLimit(RateLimitConfig{
		Burst:             2,
		RefillPerIPPerMin: 1,
		Notice:            "slow down",
		Now:               func() time.Time { return now },
	})(okHandler)

	first := serve(h, "1.1.1.1:1", "")
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusNoContent, serve(h, "1.1.1.1:1", "").Code)

	limited := serve(h, "1.1.1.1:1", "")
	require.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "60", limited.Header().Get("Retry-After"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(limited.Body).Decode(&body))
	assert.Equal(t, "slow down", body["notice"])

	// other clients have their own bucket
	assert.Equal(t, http.StatusNoContent, serve(h, "2.2.2.2:1", "").Code)

	now = now.Add(time.Minute)
	assert.Equal(t, http.StatusNoContent, serve(h, "1.1.1.1:1", "").Code)
}

func TestLogKeepsFlusher(t *testing.T) {
	var flushed bool
	h := Log(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := w.(http.Flusher)
		require.True(t, ok)
		f.Flush()
		flushed = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream", nil))
	assert.True(t, flushed)
	assert.True(t, rec.Flushed)
}
