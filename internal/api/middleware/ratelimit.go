package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	redisdb "github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/infrastructure/db/redis"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/pkg/metrics"
)

// RateLimiter consumes one token for key.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (redisdb.LimitResult, error)
	Capacity() int
}

// RateLimit throttles requests per client IP and route. Limiter failures let
// the request through.
func RateLimit(limiter RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			res, err := limiter.Allow(c.Request().Context(), c.RealIP()+"|"+route)
			if err != nil {
				log.Warn().Err(err).Str("route", route).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limiter.Capacity()))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))

			if !res.Allowed {
				metrics.RateLimitedTotal.WithLabelValues(route).Inc()
				secs := int(math.Ceil(res.RetryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				h.Set("Retry-After", strconv.Itoa(secs))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, try again later")
			}
			return next(c)
		}
	}
}
