package middleware

import (
	"net/http"

	"hospital-appointment-service/pkg/response"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware applies one token bucket to all API traffic
type RateLimitMiddleware struct {
	limiter *rate.Limiter
	log     *logrus.Logger
}

func NewRateLimitMiddleware(rps float64, burst int, log *logrus.Logger) *RateLimitMiddleware {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &RateLimitMiddleware{
		limiter: rate.NewLimiter(limit, burst),
		log:     log,
	}
}

func (m *RateLimitMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow() {
			m.log.WithField("request_id", RequestIDFromContext(r.Context())).Warnf("Rate limit exceeded: %s %s", r.Method, r.URL.Path)
			response.TooManyRequests(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}
