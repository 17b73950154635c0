package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bunchesapp/bunches-go/internal/logger"
)

// Rate limiting and alerting thresholds
const (
	// FailedAuthAlertThreshold is how many failed auths from one IP raise an alert
	FailedAuthAlertThreshold = 5

	// RateLimitMaxRequests is the per-IP request budget per window
	RateLimitMaxRequests = 1000

	// RateLimitWindow is the rolling window for both counters
	RateLimitWindow = 5 * time.Minute

	// rateLimitLogInterval spaces out over-limit log lines
	rateLimitLogInterval = 100
)

// AuthMiddleware validates the API key. An empty key means authentication is
// disabled; a personal install on a private network runs open.
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Health, version and metrics stay reachable without the key
			for _, path := range PublicPaths {
				if strings.HasPrefix(r.URL.Path, path) {
					next.ServeHTTP(w, r)
					return
				}
			}

			provided := r.Header.Get(HeaderAPIKey)

			// Constant time comparison to prevent timing attacks
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"has_key", provided != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityLoggingMiddleware enforces the per-IP rate limit before a request
// reaches the handlers
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(extractIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware sets the standard hardening headers on every response
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}

// SuspiciousActivityDetector keeps per-IP counters over a rolling window and
// alerts on repeated auth failures or request floods
type SuspiciousActivityDetector struct {
	mu            sync.Mutex
	authFailures  map[string]int
	requestCounts map[string]int
	windowStart   time.Time
}

func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		authFailures:  make(map[string]int),
		requestCounts: make(map[string]int),
		windowStart:   time.Now(),
	}
}

// RecordFailedAuth counts a failed authentication attempt from ip
func (d *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollWindowLocked()
	d.authFailures[ip]++

	if d.authFailures[ip] >= FailedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth,
			"ip", ip,
			"count", d.authFailures[ip])
	}
}

// RecordRequest counts a request from ip and reports whether it is still
// within the rate limit
func (d *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollWindowLocked()
	d.requestCounts[ip]++

	if d.requestCounts[ip] > RateLimitMaxRequests {
		if d.requestCounts[ip]%rateLimitLogInterval == 0 {
			slog.Warn(SecurityAlertHighRate,
				"ip", ip,
				"count_in_window", d.requestCounts[ip])
		}
		return false
	}
	return true
}

// rollWindowLocked clears both counters once the window has elapsed.
// Caller must hold the mutex.
func (d *SuspiciousActivityDetector) rollWindowLocked() {
	if time.Since(d.windowStart) > RateLimitWindow {
		d.authFailures = make(map[string]int)
		d.requestCounts = make(map[string]int)
		d.windowStart = time.Now()
	}
}

// extractIP returns the client IP for r. X-Forwarded-For is only believed
// when the direct peer is a trusted proxy, and then only its rightmost hop.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if !isTrustedProxy(remoteIP, trustedProxies) {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}

	// X-Forwarded-For: client, proxy1, proxy2. The rightmost hop is the one
	// the trusted proxy actually saw connect.
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

func isTrustedProxy(ip string, trustedProxies []string) bool {
	for _, proxy := range trustedProxies {
		if proxy == ip {
			return true
		}
	}
	return false
}
