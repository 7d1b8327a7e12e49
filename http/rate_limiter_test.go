package http

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestRateLimiter_AllowAndRefill(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(3, time.Minute, clock.Now)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	// other clients have their own bucket
	assert.True(t, rl.Allow("10.0.0.2"))

	clock.Advance(59 * time.Second)
	assert.False(t, rl.Allow("10.0.0.1"))

	clock.Advance(time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(1, time.Minute, clock.Now)

	rl.Allow("idle")
	clock.Advance(30 * time.Minute)
	rl.Allow("recent")

	clock.Advance(bucketCleanupThreshold - 10*time.Minute)
	rl.cleanup()

	rl.mu.Lock()
	_, idle := rl.clients["idle"]
	_, recent := rl.clients["recent"]
	rl.mu.Unlock()

	assert.False(t, idle)
	assert.True(t, recent)
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestRateLimitMiddleware(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(1, 90*time.Second, clock.Now)

	h := RateLimitMiddleware(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, serve("203.0.113.7:5000").Code)

	// same client from a different source port
	w := serve("203.0.113.7:5001")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "90", w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, serve("203.0.113.8").Code)
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "198.51.100.4:443"
	assert.Equal(t, "198.51.100.4", clientKey(req))

	req.RemoteAddr = "198.51.100.4"
	assert.Equal(t, "198.51.100.4", clientKey(req))

	req.RemoteAddr = "[2001:db8::1]:8080"
	assert.Equal(t, "2001:db8::1", clientKey(req))
}
