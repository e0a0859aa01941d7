package transport

import (
	"net/http"

	"gvnatural/internal/middleware"
	"gvnatural/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ThemeRequest sets the UI theme preference
type ThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

// PreferenceHandler persists small per-session UI preferences.
type PreferenceHandler struct {
	prefs  *repository.PreferenceRepository
	logger *zap.Logger
}

func NewPreferenceHandler(prefs *repository.PreferenceRepository, logger *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs, logger: logger}
}

func (h *PreferenceHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/preferences", func(r chi.Router) {
		r.Get("/theme", h.GetTheme)
		r.Put("/theme", h.SetTheme)
	})
}

func (h *PreferenceHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	sid, _ := middleware.GetSessionID(r.Context())

	theme, err := h.prefs.Theme(r.Context(), sid)
	if err != nil {
		h.logger.Error("Failed to load theme", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load theme")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

func (h *PreferenceHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	sid, _ := middleware.GetSessionID(r.Context())

	var req ThemeRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.prefs.SetTheme(r.Context(), sid, req.Theme); err != nil {
		h.logger.Error("Failed to store theme", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to store theme")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"theme": req.Theme})
}
