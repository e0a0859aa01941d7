package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gvnatural/internal/backend"

	"go.uber.org/zap"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// RespondWithError sends a structured error response
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithErrorDetails(w, statusCode, message, nil)
}

func respondWithErrorDetails(w http.ResponseWriter, statusCode int, message string, details map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error: ErrorDetail{
			Code:      http.StatusText(statusCode),
			Message:   message,
			Details:   details,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	json.NewEncoder(w).Encode(response)
}

// RespondWithValidationErrors sends validation error response
func RespondWithValidationErrors(w http.ResponseWriter, errors []ValidationError) {
	details := make(map[string]interface{})
	details["validation_errors"] = errors

	respondWithErrorDetails(w, http.StatusBadRequest, "validation failed", details)
}

// RespondWithBackendError maps a failed backend call onto the gateway's
// error surface. A 401 is session-terminal: the realm's credentials were
// already cleared by the client hook, so the response carries the realm's
// login path for the browser to follow. Other rejections pass the backend
// message through; transport failures become a 502 with a generic message.
func RespondWithBackendError(w http.ResponseWriter, err error, loginPath string) {
	if errors.Is(err, backend.ErrUnauthorized) {
		respondWithErrorDetails(w, http.StatusUnauthorized, "session expired, please log in again",
			map[string]interface{}{"redirect": loginPath})
		return
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		RespondWithError(w, apiErr.StatusCode, apiErr.Message)
		return
	}

	RespondWithError(w, http.StatusBadGateway, "something went wrong, please try again")
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}
