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

// AddItemRequest represents the add-to-cart payload
type AddItemRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	QuantityKg int    `json:"quantity_kg" validate:"required,gt=0"`
}

// UpdateQuantityRequest sets a line's quantity. Zero or negative removes
// the line, so the field is a pointer to tell "0" apart from "absent".
type UpdateQuantityRequest struct {
	QuantityKg *int `json:"quantity_kg" validate:"required"`
}

// CartView is the cart plus its derived totals, as rendered to the client.
type CartView struct {
	Items             []domain.CartEntry `json:"items"`
	Subtotal          float64            `json:"subtotal"`
	ShippingCost      float64            `json:"shipping_cost"`
	TotalWithShipping float64            `json:"total_with_shipping"`
	ItemCount         int                `json:"item_count"`
}

func newCartView(cart *domain.Cart) CartView {
	return CartView{
		Items:             cart.Entries(),
		Subtotal:          cart.Subtotal(),
		ShippingCost:      cart.ShippingCost(),
		TotalWithShipping: cart.TotalWithShipping(),
		ItemCount:         cart.ItemCount(),
	}
}

// CartHandler handles HTTP requests for the session cart
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{cartService: cartService, logger: logger}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Clear)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productID}", h.UpdateQuantity)
		r.Delete("/items/{productID}", h.RemoveItem)
	})
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "no session")
		return
	}

	cart := h.cartService.Get(r.Context(), sid)
	middleware.RespondWithJSON(w, http.StatusOK, newCartView(cart))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "no session")
		return
	}

	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.cartService.AddItem(r.Context(), sid, req.ProductID, req.QuantityKg)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrProductUnavailable):
			middleware.RespondWithError(w, http.StatusConflict, "product is not available")
		default:
			h.logger.Error("Add to cart failed", zap.Error(err))
			middleware.RespondWithBackendError(w, err, repository.RealmCustomer.LoginPath())
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, newCartView(cart))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sid, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "no session")
		return
	}

	var req UpdateQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID := chi.URLParam(r, "productID")
	cart := h.cartService.UpdateQuantity(r.Context(), sid, productID, *req.QuantityKg)
	middleware.RespondWithJSON(w, http.StatusOK, newCartView(cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "no session")
		return
	}

	productID := chi.URLParam(r, "productID")
	cart := h.cartService.RemoveItem(r.Context(), sid, productID)
	middleware.RespondWithJSON(w, http.StatusOK, newCartView(cart))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sid, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "no session")
		return
	}

	cart := h.cartService.Clear(r.Context(), sid)
	middleware.RespondWithJSON(w, http.StatusOK, newCartView(cart))
}
