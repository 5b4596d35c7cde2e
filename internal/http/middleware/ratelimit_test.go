package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterBurstThenRefill(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatalf("expected burst of 2 to be allowed")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatalf("expected third immediate request to be rejected")
	}

	// Other callers have their own bucket.
	if !rl.Allow("5.6.7.8") {
		t.Fatalf("expected independent bucket per ip")
	}

	clock = clock.Add(time.Second)
	if !rl.Allow("1.2.3.4") {
		t.Fatalf("expected one token back after 1s at 1 req/s")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatalf("expected refill to grant exactly one token")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	mw := RateLimit(1, 1)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/booking/slots", nil)
		req.Header.Set("X-Real-Ip", ip)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("9.9.9.9"); code != http.StatusOK {
		t.Fatalf("first request = %d, want 200", code)
	}
	if code := send("9.9.9.9"); code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d, want 429", code)
	}
	if code := send("8.8.8.8"); code != http.StatusOK {
		t.Fatalf("other caller = %d, want 200", code)
	}
}
