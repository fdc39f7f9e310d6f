package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Farhatmahi/dentist-spa-server/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.TEXT,
		Service: "test",
	})
}

func TestAllow_WithinLimit(t *testing.T) {
	rl := NewClientRateLimiter(3, time.Minute, testLogger())
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request over the limit should be rejected")
	}
}

func TestAllow_PerClientIsolation(t *testing.T) {
	rl := NewClientRateLimiter(1, time.Minute, testLogger())
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first client should be allowed")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("a different client must have its own window")
	}
}

func TestAllow_WindowExpiry(t *testing.T) {
	rl := NewClientRateLimiter(1, 20*time.Millisecond, testLogger())
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("second request should be rejected inside the window")
	}

	time.Sleep(30 * time.Millisecond)
	if !rl.Allow("10.0.0.1") {
		t.Error("request after the window should be allowed again")
	}
}

func TestAllow_EmptyKey(t *testing.T) {
	rl := NewClientRateLimiter(1, time.Minute, testLogger())
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		if !rl.Allow("") {
			t.Fatal("requests without a resolvable client must not be limited")
		}
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewClientRateLimiter(1, time.Minute, testLogger())
	defer rl.Stop()

	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/booking", nil)
	req.RemoteAddr = "10.0.0.1:52000"
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 over the limit, got %d", second.Code)
	}
}
