package middleware

import (
	"github.com/gofiber/fiber/v3"
	"golang.org/x/time/rate"

	"shortlist/internal/pkg/response"
)

// RateLimitMiddleware is a single token bucket shared by all clients.
type RateLimitMiddleware struct {
	limiter *rate.Limiter
}

// NewRateLimitMiddleware returns a pass-through middleware when rps <= 0.
func NewRateLimitMiddleware(rps float64, burst int) *RateLimitMiddleware {
	if rps <= 0 {
		return &RateLimitMiddleware{}
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitMiddleware{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.limiter == nil {
			return c.Next()
		}
		if !m.limiter.Allow() {
			c.Set("Retry-After", "1")
			return NewAppError(fiber.StatusTooManyRequests, response.MessageTooManyRequests, nil, nil)
		}
		return c.Next()
	}
}
