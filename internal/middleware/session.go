package middleware

import (
	"context"
	"net/http"
	"time"

	"gvnatural/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const SessionIDKey contextKey = "session_id"

// SessionMiddleware identifies the browser with a signed session cookie.
// The cookie carries a JWT whose only claim of interest is the session ID;
// that ID keys every piece of per-session state (cart, realm credentials,
// preferences). The backend's own bearer tokens never reach the browser.
func SessionMiddleware(cfg config.SessionConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""

			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				sid = verifySessionToken(cookie.Value, cfg.Secret)
			}

			if sid == "" {
				sid = uuid.New().String()
				token, err := mintSessionToken(sid, cfg.Secret, cfg.TTL)
				if err != nil {
					logger.Error("Failed to mint session token", zap.Error(err))
					RespondWithError(w, http.StatusInternalServerError, "internal server error")
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(cfg.TTL.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
				logger.Debug("New browser session", zap.String("session_id", sid))
			}

			ctx := context.WithValue(r.Context(), SessionIDKey, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func mintSessionToken(sid, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// verifySessionToken returns the session ID, or "" when the token is
// missing, tampered with, or expired. An invalid cookie just means a fresh
// session; it is never an error surfaced to the user.
func verifySessionToken(tokenString, secret string) string {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sid, _ := claims["sid"].(string)
	return sid
}

// GetSessionID extracts the browser session ID from the request context.
func GetSessionID(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(SessionIDKey).(string)
	return sid, ok
}
