package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"librarylens/pkg/response"

	"github.com/sirupsen/logrus"
)

// Limiter decides whether one more request from key is allowed in scope.
type Limiter interface {
	Allow(ctx context.Context, scope, key string) (bool, error)
}

type RateLimitMiddleware struct {
	limiter        Limiter
	trustedProxies []netip.Prefix
	log            *logrus.Logger
}

// NewRateLimitMiddleware returns a middleware factory; a nil limiter lets
// every request through. X-Forwarded-For is only read when the peer is one
// of trustedProxies.
func NewRateLimitMiddleware(limiter Limiter, trustedProxies []netip.Prefix, log *logrus.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter:        limiter,
		trustedProxies: trustedProxies,
		log:            log,
	}
}

// ParseTrustedProxies accepts single addresses and CIDR ranges.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// Limit counts requests per client IP under scope.
func (m *RateLimitMiddleware) Limit(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			allowed, err := m.limiter.Allow(r.Context(), scope, m.clientIP(r))
			if err != nil {
				// Fail open, the limiter is not a correctness mechanism
				m.log.Warnf("Failed to check rate limit: %+v", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				response.TooManyRequests(w, "Too many requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the peer address. Behind a trusted proxy it walks
// X-Forwarded-For from the right and returns the first untrusted hop.
func (m *RateLimitMiddleware) clientIP(r *http.Request) string {
	peer := remoteHost(r.RemoteAddr)
	if !m.isTrusted(peer) {
		return peer
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !m.isTrusted(hop) {
			return hop
		}
	}
	return peer
}

func (m *RateLimitMiddleware) isTrusted(host string) bool {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range m.trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
