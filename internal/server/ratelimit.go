package server

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/tartampluch/go-luach/internal/config"
)

// rateLimit rejects requests beyond the global token bucket with 429. Retry-After is
// the time needed to earn one token, rounded up to a whole second.
func (s *CalendarServer) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.metrics.rateLimited.Inc()
			slog.Warn(config.MsgRateLimited,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyRemote, r.RemoteAddr,
				config.LogKeyRoute, r.URL.Path,
			)

			retryAfter := int(math.Ceil(1 / float64(s.limiter.Limit())))
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set(config.HeaderRetryAfter, strconv.Itoa(retryAfter))
			_ = WriteError(w, http.StatusTooManyRequests, config.HTTPMsgRateLimited, config.HTTPCodeRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}
