package middleware

import (
	"net/http"

	"gvnatural/internal/repository"

	"go.uber.org/zap"
)

// RequireRealm gates routes that need an authenticated session in the given
// realm. It only checks for stored credentials; the backend remains the
// authority and will 401 any token it no longer accepts.
func RequireRealm(creds *repository.CredentialRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, ok := GetSessionID(r.Context())
			if !ok {
				logger.Warn("No browser session on protected route", zap.String("path", r.URL.Path))
				RespondWithError(w, http.StatusUnauthorized, "login required")
				return
			}

			if !creds.IsAuthenticated(r.Context(), sid) {
				logger.Debug("Unauthenticated session on protected route",
					zap.String("realm", string(creds.Realm())),
					zap.String("path", r.URL.Path),
				)
				respondWithErrorDetails(w, http.StatusUnauthorized, "login required",
					map[string]interface{}{"redirect": creds.Realm().LoginPath()})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
