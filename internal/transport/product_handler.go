package transport

import (
	"net/http"

	"gvnatural/internal/middleware"
	"gvnatural/internal/repository"
	"gvnatural/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	catalog *service.CatalogService
	logger  *zap.Logger
}

func NewProductHandler(catalog *service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
	})
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithBackendError(w, err, repository.RealmCustomer.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to fetch product", zap.Error(err), zap.String("product_id", id))
		middleware.RespondWithBackendError(w, err, repository.RealmCustomer.LoginPath())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}
