package middleware

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/unq-dapp-grupoM/futbol-api/internal/auth"
	"github.com/unq-dapp-grupoM/futbol-api/internal/cache"
	"github.com/unq-dapp-grupoM/futbol-api/pkg/errors"
)

// RateLimitMiddleware creates a rate limiting middleware keyed on the
// resolved principal. It must run after the authenticator. Anonymous
// requests (public routes) are not limited.
func RateLimitMiddleware(c *cache.Cache, logger *zap.Logger, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := auth.PrincipalFrom(r.Context())
			if !principal.Authenticated() || !c.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			callerID := principal.Kind.String()
			if principal.Subject != "" {
				callerID = principal.Subject
			}

			exceeded, err := c.CheckRateLimit(r.Context(), callerID, limit, window)
			if err != nil {
				logger.Error("Rate limit check failed", zap.Error(err))
				WriteError(w, errors.ErrInternalServer)
				return
			}

			if exceeded {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				WriteError(w, errors.ErrRateLimitExceeded)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
