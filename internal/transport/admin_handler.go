package transport

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"gvnatural/internal/backend"
	"gvnatural/internal/domain"
	"gvnatural/internal/middleware"
	"gvnatural/internal/repository"
	"gvnatural/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxProductFormMemory = 10 << 20 // 10 MiB, image included

// AdminLoginRequest represents the back-office login payload
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateOrderStatusRequest moves an order through the backend state machine
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=CREATED PAID SHIPPED DELIVERED CANCELLED"`
}

// UpdateUserStatusRequest toggles a customer account
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// RequestPickupRequest schedules courier pickup for shipments
type RequestPickupRequest struct {
	ShipmentIDs []string `json:"shipmentIds" validate:"required,min=1"`
}

// AdminHandler handles the back-office HTTP surface
type AdminHandler struct {
	adminService *service.AdminService
	logger       *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService *service.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{adminService: adminService, logger: logger}
}

// RegisterRoutes registers the admin routes. Everything except login sits
// behind the admin-realm gate.
func (h *AdminHandler) RegisterRoutes(r chi.Router, requireAdmin, loginLimiter func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.With(loginLimiter).Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)

			r.Get("/products", h.ListProducts)
			r.Post("/products", h.CreateProduct)
			r.Put("/products/{id}", h.UpdateProduct)
			r.Delete("/products/{id}", h.DeleteProduct)

			r.Get("/orders", h.ListOrders)
			r.Get("/orders/{id}", h.GetOrder)
			r.Patch("/orders/{id}/status", h.UpdateOrderStatus)

			r.Get("/users", h.ListUsers)
			r.Get("/users/{id}", h.GetUser)
			r.Patch("/users/{id}/status", h.UpdateUserStatus)

			r.Get("/shipments", h.ListShipments)
			r.Get("/shipments/{id}", h.GetShipment)
			r.Get("/shipments/order/{orderID}", h.GetShipmentByOrder)
			r.Patch("/shipments/{id}/refresh", h.RefreshShipment)
			r.Patch("/shipments/{id}/cancel", h.CancelShipment)
			r.Post("/shipments/request-pickup", h.RequestPickup)
		})
	})
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	sid, _ := middleware.GetSessionID(r.Context())

	var req AdminLoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	admin, err := h.adminService.Login(r.Context(), sid, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrIncompleteAuth) {
			middleware.RespondWithError(w, http.StatusBadGateway, "login failed, please try again")
			return
		}
		h.logger.Debug("Admin login failed", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}

	h.logger.Info("Admin logged in", zap.String("session_id", sid))
	middleware.RespondWithJSON(w, http.StatusOK, admin)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sid, _ := middleware.GetSessionID(r.Context())

	if err := h.adminService.Logout(r.Context(), sid); err != nil {
		h.logger.Error("Admin logout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to logout")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	sid, _ := middleware.GetSessionID(r.Context())

	admin, ok, err := h.adminService.Profile(r.Context(), sid)
	if err != nil {
		h.logger.Error("Failed to load admin profile", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "login required")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, admin)
}

// --- Products ---

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.adminService.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// parseProductForm maps an incoming multipart form onto the backend's
// product payload. Absent fields stay nil so updates stay partial.
func parseProductForm(r *http.Request) (*backend.ProductForm, []middleware.ValidationError) {
	if err := r.ParseMultipartForm(maxProductFormMemory); err != nil {
		return nil, []middleware.ValidationError{{Field: "form", Message: "invalid multipart form"}}
	}

	var errs []middleware.ValidationError
	form := &backend.ProductForm{}
	values := r.MultipartForm.Value

	if v, ok := values["name"]; ok && len(v) > 0 {
		form.Name = v[0]
	}
	if v, ok := values["slug"]; ok && len(v) > 0 {
		form.Slug = v[0]
	}
	if v, ok := values["description"]; ok && len(v) > 0 {
		form.Description = &v[0]
	}
	if v, ok := values["price_per_kg"]; ok && len(v) > 0 {
		price, err := strconv.ParseFloat(v[0], 64)
		if err != nil || price <= 0 {
			errs = append(errs, middleware.ValidationError{Field: "price_per_kg", Message: "must be a positive number"})
		} else {
			form.PricePerKg = &price
		}
	}
	if v, ok := values["stock_kg"]; ok && len(v) > 0 {
		stock, err := strconv.ParseFloat(v[0], 64)
		if err != nil || stock < 0 {
			errs = append(errs, middleware.ValidationError{Field: "stock_kg", Message: "must be a non-negative number"})
		} else {
			form.StockKg = &stock
		}
	}
	if v, ok := values["is_active"]; ok && len(v) > 0 {
		active, err := strconv.ParseBool(v[0])
		if err != nil {
			errs = append(errs, middleware.ValidationError{Field: "is_active", Message: "must be true or false"})
		} else {
			form.IsActive = &active
		}
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			errs = append(errs, middleware.ValidationError{Field: "image", Message: "could not read image"})
		} else {
			form.Image = data
			form.ImageFilename = header.Filename
		}
	}

	return form, errs
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	form, errs := parseProductForm(r)
	if form != nil {
		if form.Name == "" {
			errs = append(errs, middleware.ValidationError{Field: "name", Message: "This field is required"})
		}
		if form.Slug == "" {
			errs = append(errs, middleware.ValidationError{Field: "slug", Message: "This field is required"})
		}
		if form.PricePerKg == nil {
			errs = append(errs, middleware.ValidationError{Field: "price_per_kg", Message: "This field is required"})
		}
		if form.StockKg == nil {
			errs = append(errs, middleware.ValidationError{Field: "stock_kg", Message: "This field is required"})
		}
	}
	if len(errs) > 0 {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	product, err := h.adminService.CreateProduct(r.Context(), form)
	if err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	form, errs := parseProductForm(r)
	if len(errs) > 0 {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	product, err := h.adminService.UpdateProduct(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		h.logger.Error("Failed to update product", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Orders ---

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.adminService.ListOrders(r.Context())
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.adminService.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("Failed to fetch order", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.adminService.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), domain.OrderStatus(req.Status))
	if err != nil {
		h.logger.Error("Failed to update order status", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// --- Users ---

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.adminService.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("Failed to fetch user", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.adminService.UpdateUserStatus(r.Context(), chi.URLParam(r, "id"), *req.IsActive)
	if err != nil {
		h.logger.Error("Failed to update user status", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, user)
}

// --- Shipments ---

func (h *AdminHandler) ListShipments(w http.ResponseWriter, r *http.Request) {
	shipments, err := h.adminService.ListShipments(r.Context())
	if err != nil {
		h.logger.Error("Failed to list shipments", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, shipments)
}

func (h *AdminHandler) GetShipment(w http.ResponseWriter, r *http.Request) {
	shipment, err := h.adminService.GetShipment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("Failed to fetch shipment", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, shipment)
}

func (h *AdminHandler) GetShipmentByOrder(w http.ResponseWriter, r *http.Request) {
	shipment, err := h.adminService.GetShipmentByOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		h.logger.Error("Failed to fetch shipment for order", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, shipment)
}

func (h *AdminHandler) RefreshShipment(w http.ResponseWriter, r *http.Request) {
	shipment, err := h.adminService.RefreshShipment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("Failed to refresh shipment", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, shipment)
}

func (h *AdminHandler) CancelShipment(w http.ResponseWriter, r *http.Request) {
	shipment, err := h.adminService.CancelShipment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("Failed to cancel shipment", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, shipment)
}

func (h *AdminHandler) RequestPickup(w http.ResponseWriter, r *http.Request) {
	var req RequestPickupRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.adminService.RequestPickup(r.Context(), req.ShipmentIDs); err != nil {
		h.logger.Error("Failed to request pickup", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmAdmin.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "pickup requested"})
}
