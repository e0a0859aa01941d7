package transport

import (
	"errors"
	"net/http"

	"gvnatural/internal/backend"
	"gvnatural/internal/middleware"
	"gvnatural/internal/repository"
	"gvnatural/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,in_phone"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// LoginRequest represents the password login payload
type LoginRequest struct {
	Phone    string `json:"phone" validate:"required,in_phone"`
	Password string `json:"password" validate:"required"`
}

// SendOTPRequest asks for a one-time password
type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required,in_phone"`
}

// VerifyOTPRequest completes the OTP login flow
type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,in_phone"`
	OTP   string `json:"otp" validate:"required,otp"`
	Name  string `json:"name" validate:"omitempty"`
}

// AuthHandler handles the customer-realm authentication flows
type AuthHandler struct {
	authService *service.AuthService
	otpLimiter  func(http.Handler) http.Handler
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler. otpLimiter enforces the
// per-phone resend cooldown on the send-otp route.
func NewAuthHandler(authService *service.AuthService, otpLimiter func(http.Handler) http.Handler, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, otpLimiter: otpLimiter, logger: logger}
}

// RegisterRoutes registers all customer auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(h.otpLimiter).Post("/send-otp", h.SendOTP)
		r.Post("/verify-otp", h.VerifyOTP)
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	sid, _ := middleware.GetSessionID(r.Context())

	var req RegisterRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), sid, backend.RegisterRequest{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Debug("Registration failed", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmCustomer.LoginPath())
		return
	}

	h.logger.Info("Customer registered", zap.String("session_id", sid))
	middleware.RespondWithJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	sid, _ := middleware.GetSessionID(r.Context())

	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Login(r.Context(), sid, backend.LoginRequest{
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrIncompleteAuth) {
			middleware.RespondWithError(w, http.StatusBadGateway, "login failed, please try again")
			return
		}
		h.logger.Debug("Login failed", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmCustomer.LoginPath())
		return
	}

	h.logger.Info("Customer logged in", zap.String("session_id", sid))
	middleware.RespondWithJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req SendOTPRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.SendOTP(r.Context(), req.Phone); err != nil {
		h.logger.Debug("OTP send failed", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmCustomer.LoginPath())
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	sid, _ := middleware.GetSessionID(r.Context())

	var req VerifyOTPRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.VerifyOTP(r.Context(), sid, backend.VerifyOTPRequest{
		Phone: req.Phone,
		OTP:   req.OTP,
		Name:  req.Name,
	})
	if err != nil {
		if errors.Is(err, service.ErrIncompleteAuth) {
			middleware.RespondWithError(w, http.StatusBadGateway, "login failed, please try again")
			return
		}
		h.logger.Debug("OTP verification failed", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmCustomer.LoginPath())
		return
	}

	h.logger.Info("Customer verified OTP", zap.String("session_id", sid))
	middleware.RespondWithJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sid, _ := middleware.GetSessionID(r.Context())

	if err := h.authService.Logout(r.Context(), sid); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to logout")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the customer profile bound to the session, or 401.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sid, _ := middleware.GetSessionID(r.Context())

	user, ok, err := h.authService.Profile(r.Context(), sid)
	if err != nil {
		h.logger.Error("Failed to load profile", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "login required")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user)
}
