package chi

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scanexplorer/internal/domain"
	"github.com/kailas-cloud/scanexplorer/internal/logger"
	"github.com/kailas-cloud/scanexplorer/internal/metrics"
	"github.com/kailas-cloud/scanexplorer/internal/repository/ratelimit"
)

// Limiter counts one request for a client within a scope.
type Limiter interface {
	Allow(ctx context.Context, scope, client string) (ratelimit.Decision, error)
}

// rateLimit enforces the limiter for one route scope. When the counter store
// is unreachable the request is let through and the failure logged.
func (s *Server) rateLimit(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.limiter == nil {
				next.ServeHTTP(w, r)
				return
			}
			d, err := s.limiter.Allow(r.Context(), scope, clientIP(r))
			if err != nil {
				logger.FromContext(r.Context()).Warn("rate limit check failed",
					zap.String("scope", scope), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(d.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(d.Remaining, 10))
			if !d.Allowed {
				metrics.RateLimitRejectedTotal.WithLabelValues(scope).Inc()
				w.Header().Set("Retry-After", strconv.Itoa(int(d.Window.Seconds())))
				writeError(w, http.StatusTooManyRequests, codeRateLimited, domain.ErrRateLimited.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr. chi's RealIP middleware, when
// mounted, has already replaced RemoteAddr with the forwarded address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
