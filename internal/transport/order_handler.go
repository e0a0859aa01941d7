package transport

import (
	"errors"
	"net/http"

	"gvnatural/internal/domain"
	"gvnatural/internal/middleware"
	"gvnatural/internal/repository"
	"gvnatural/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutRequest carries the shipping address for order placement. The
// cart itself is read from the session.
type CheckoutRequest struct {
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone" validate:"required,in_phone"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	Pincode      string `json:"pincode" validate:"required,pincode"`
	Country      string `json:"country" validate:"required"`
}

// ShippingRatesRequest asks the backend for courier quotes
type ShippingRatesRequest struct {
	PickupPincode   string  `json:"pickup_pincode" validate:"required,pincode"`
	DeliveryPincode string  `json:"delivery_pincode" validate:"required,pincode"`
	Weight          float64 `json:"weight" validate:"required,gt=0"`
	CODAmount       float64 `json:"cod_amount" validate:"omitempty,gte=0"`
}

// OrderHandler handles checkout, order history and shipment tracking. All
// routes require an authenticated customer session.
type OrderHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, logger: logger}
}

// RegisterRoutes registers order routes behind the customer-realm gate
func (h *OrderHandler) RegisterRoutes(r chi.Router, requireCustomer func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(requireCustomer)
		r.Post("/checkout", h.Checkout)
		r.Get("/", h.MyOrders)
		r.Get("/{id}", h.GetOrder)
		r.Get("/{id}/tracking", h.Tracking)
		r.Post("/shipping-rates", h.ShippingRates)
	})
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sid, _ := middleware.GetSessionID(r.Context())

	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.Checkout(r.Context(), sid, domain.ShippingAddress{
		Name:         req.Name,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		Country:      req.Country,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			middleware.RespondWithError(w, http.StatusBadRequest, "cart is empty")
			return
		}
		h.logger.Error("Checkout failed", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmCustomer.LoginPath())
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.MyOrders(r.Context())
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmCustomer.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("Failed to fetch order", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmCustomer.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Tracking(w http.ResponseWriter, r *http.Request) {
	shipment, err := h.orderService.Tracking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("Failed to fetch tracking", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmCustomer.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, shipment)
}

func (h *OrderHandler) ShippingRates(w http.ResponseWriter, r *http.Request) {
	var req ShippingRatesRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rates, err := h.orderService.ShippingRates(r.Context(), domain.ShippingRateRequest{
		PickupPincode:   req.PickupPincode,
		DeliveryPincode: req.DeliveryPincode,
		Weight:          req.Weight,
		CODAmount:       req.CODAmount,
	})
	if err != nil {
		h.logger.Error("Failed to fetch shipping rates", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmCustomer.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, rates)
}
