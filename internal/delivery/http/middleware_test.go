package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name           string
		origin         string
		allowedOrigins []string
		want           bool
	}{
		{
			name:           "exact match",
			origin:         "http://localhost:3000",
			allowedOrigins: []string{"http://localhost:3000"},
			want:           true,
		},
		{
			name:           "wildcard match",
			origin:         "http://localhost:5173",
			allowedOrigins: []string{"http://localhost:*"},
			want:           true,
		},
		{
			name:           "multiple allowed origins - matches second",
			origin:         "https://portal.shelfcheck.example",
			allowedOrigins: []string{"http://localhost:*", "https://portal.shelfcheck.example"},
			want:           true,
		},
		{
			name:           "no match",
			origin:         "http://evil.com",
			allowedOrigins: []string{"http://localhost:*"},
			want:           false,
		},
		{
			name:           "empty origin",
			origin:         "",
			allowedOrigins: []string{"http://localhost:*"},
			want:           false,
		},
		{
			name:           "empty allowed list",
			origin:         "http://localhost:3000",
			allowedOrigins: []string{},
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isAllowedOrigin(tt.origin, tt.allowedOrigins)
			if got != tt.want {
				t.Errorf("isAllowedOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func corsTestRouter(allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(CORSMiddleware(allowedOrigins))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("allowed origin gets CORS headers", func(t *testing.T) {
		router := corsTestRouter([]string{"http://localhost:*"})

		req, _ := http.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Access-Control-Allow-Origin = %q, want request origin", got)
		}
	})

	t.Run("disallowed origin gets no CORS headers", func(t *testing.T) {
		router := corsTestRouter([]string{"http://localhost:*"})

		req, _ := http.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "http://evil.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
		}
	})

	t.Run("preflight request short-circuits with 204", func(t *testing.T) {
		router := corsTestRouter([]string{"http://localhost:*"})

		req, _ := http.NewRequest("OPTIONS", "/ping", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNoContent)
		}
		if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
			t.Error("Access-Control-Allow-Methods not set on preflight")
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RateLimitMiddleware(5))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	send := func() int {
		req, _ := http.NewRequest("GET", "/ping", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	// The burst allows the first perMinute requests through
	for i := 0; i < 5; i++ {
		if code := send(); code != http.StatusOK {
			t.Fatalf("request %d: Status = %d, want %d", i+1, code, http.StatusOK)
		}
	}

	if code := send(); code != http.StatusTooManyRequests {
		t.Errorf("request over burst: Status = %d, want %d", code, http.StatusTooManyRequests)
	}

	// A different client IP has its own limiter
	req, _ := http.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = "10.0.0.2:12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("fresh IP: Status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestIPLimiterEviction(t *testing.T) {
	limiters := newIPLimiters(60)
	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	limiters.now = func() time.Time { return clock }

	for i := 0; i < limiterSweepSize; i++ {
		limiters.get(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	if size := limiters.size(); size != limiterSweepSize {
		t.Fatalf("size = %d after fill, want %d", size, limiterSweepSize)
	}

	// Within the idle timeout a sweep evicts nothing, so the map grows
	clock = clock.Add(limiterIdleTimeout / 2)
	limiters.get("192.168.0.1")
	if size := limiters.size(); size != limiterSweepSize+1 {
		t.Fatalf("size = %d after recent-traffic sweep, want %d", size, limiterSweepSize+1)
	}

	// Once the original batch has been idle past the timeout, the next
	// new IP sweeps them all out; the recently seen client survives
	clock = clock.Add(limiterIdleTimeout)
	limiters.get("192.168.0.2")
	if size := limiters.size(); size != 2 {
		t.Errorf("size = %d after idle sweep, want 2", size)
	}
}
