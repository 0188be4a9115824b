package http

import (
	"net/http"
	"strings"
	"sync"

	"traderizz/internal/api/service"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const userIDContextKey = "user_id"

// AuthMiddleware validates the bearer token and stores the user ID on the
// request context.
func AuthMiddleware(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authorization header required"})
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Malformed token"})
			}

			userID, err := authService.ValidateAccessToken(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}

			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}

func userIDFromContext(c echo.Context) uint {
	userID, _ := c.Get(userIDContextKey).(uint)
	return userID
}

// RateLimitMiddleware limits requests per client IP with a token bucket.
// Used on the credential endpoints to slow down guessing.
func RateLimitMiddleware(perMinute, burst int) echo.MiddlewareFunc {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 5
	}

	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)
			limiters[ip] = limiter
		}
		return limiter
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiterFor(c.RealIP()).Allow() {
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "Too many requests"})
			}
			return next(c)
		}
	}
}
