package middleware

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"ticket-store/internal/logger"
	"ticket-store/internal/session"

	"golang.org/x/time/rate"
)

// CORS answers preflight requests and stamps the response headers the
// storefront front end expects on every mutating endpoint.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, x-api-key, "+session.HeaderName)
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequestLogger writes one line per request with method, path, status and
// latency.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			duration := time.Since(start).String()
			line := fmt.Sprintf("%s %s - %d (%s)", r.Method, r.URL.Path, recorder.status, duration)
			switch {
			case recorder.status >= 500:
				log.Error("API", line)
			case recorder.status >= 400:
				log.Warn("API", line)
			default:
				log.Info("API", line)
			}
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RateLimit enforces a per-IP token bucket. Stale limiters are dropped when
// the table grows past a soft cap.
func RateLimit(log *logger.Logger, rps rate.Limit, burst int) func(http.Handler) http.Handler {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if len(limiters) > 10000 {
			limiters = make(map[string]*rate.Limiter)
		}
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(rps, burst)
			limiters[ip] = limiter
		}
		return limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !limiterFor(ip).Allow() {
				log.Warn("SECURITY", fmt.Sprintf("rate limit exceeded for IP %s", ip))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"Rate limit exceeded","retry_after":"1s"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders stamps the usual browser hardening headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}
