package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// RequireAdmin ensures the authenticated caller carries the admin role.
// It must run after AuthMiddleware.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRole(r.Context())
			if !ok {
				logger.Warn("Role not found in context")
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			if role != "admin" {
				logger.Warn("Non-admin token used on admin endpoint",
					zap.String("role", role),
				)
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly chains AuthMiddleware and RequireAdmin. When enforce is false
// it returns a pass-through so mutation routes stay open.
func AdminOnly(enforce bool, jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	if !enforce {
		return func(next http.Handler) http.Handler { return next }
	}

	auth := AuthMiddleware(jwtSecret, logger)
	admin := RequireAdmin(logger)
	return func(next http.Handler) http.Handler {
		return auth(admin(next))
	}
}
