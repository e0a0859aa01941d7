package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"gvnatural/internal/domain"
)

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProductForm is the multipart payload for creating or updating a product.
// Nil pointer fields are omitted so partial updates only touch what the
// admin changed.
type ProductForm struct {
	Name          string
	Slug          string
	Description   *string
	PricePerKg    *float64
	StockKg       *float64
	IsActive      *bool
	Image         []byte
	ImageFilename string
}

func (f *ProductForm) encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if f.Name != "" {
		w.WriteField("name", f.Name)
	}
	if f.Slug != "" {
		w.WriteField("slug", f.Slug)
	}
	if f.Description != nil {
		w.WriteField("description", *f.Description)
	}
	if f.PricePerKg != nil {
		w.WriteField("price_per_kg", strconv.FormatFloat(*f.PricePerKg, 'f', -1, 64))
	}
	if f.StockKg != nil {
		w.WriteField("stock_kg", strconv.FormatFloat(*f.StockKg, 'f', -1, 64))
	}
	if f.IsActive != nil {
		w.WriteField("is_active", strconv.FormatBool(*f.IsActive))
	}
	if len(f.Image) > 0 {
		part, err := w.CreateFormFile("image", f.ImageFilename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to attach image: %w", err)
		}
		if _, err := part.Write(f.Image); err != nil {
			return nil, "", fmt.Errorf("failed to write image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// AdminAPI wraps the admin-realm surface: back-office login, product
// management, order and user administration, and shipment operations.
type AdminAPI struct {
	c *Client
}

func NewAdminAPI(c *Client) *AdminAPI {
	return &AdminAPI{c: c}
}

func (api *AdminAPI) Login(ctx context.Context, req AdminLoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := api.c.post(ctx, "/admin/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Products ---

func (api *AdminAPI) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := api.c.get(ctx, "/admin/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (api *AdminAPI) CreateProduct(ctx context.Context, form *ProductForm) (*domain.Product, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}
	var product domain.Product
	if err := api.c.doMultipart(ctx, http.MethodPost, "/admin/products", body, contentType, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (api *AdminAPI) UpdateProduct(ctx context.Context, id string, form *ProductForm) (*domain.Product, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}
	var product domain.Product
	if err := api.c.doMultipart(ctx, http.MethodPut, "/admin/products/"+id, body, contentType, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (api *AdminAPI) DeleteProduct(ctx context.Context, id string) error {
	return api.c.delete(ctx, "/admin/products/"+id, nil)
}

// --- Orders ---

func (api *AdminAPI) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := api.c.get(ctx, "/admin/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (api *AdminAPI) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	if err := api.c.get(ctx, "/admin/orders/"+id, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (api *AdminAPI) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	var order domain.Order
	body := map[string]string{"status": string(status)}
	if err := api.c.patch(ctx, "/admin/orders/"+id+"/status", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// --- Users ---

func (api *AdminAPI) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := api.c.get(ctx, "/admin/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (api *AdminAPI) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := api.c.get(ctx, "/admin/users/"+id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (api *AdminAPI) UpdateUserStatus(ctx context.Context, id string, isActive bool) (*domain.User, error) {
	var user domain.User
	body := map[string]bool{"is_active": isActive}
	if err := api.c.patch(ctx, "/admin/users/"+id+"/status", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// --- Shipments ---

func (api *AdminAPI) ListShipments(ctx context.Context) ([]domain.Shipment, error) {
	var shipments []domain.Shipment
	if err := api.c.get(ctx, "/admin/all", &shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}

func (api *AdminAPI) GetShipment(ctx context.Context, id string) (*domain.Shipment, error) {
	var shipment domain.Shipment
	if err := api.c.get(ctx, "/admin/"+id, &shipment); err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (api *AdminAPI) GetShipmentByOrder(ctx context.Context, orderID string) (*domain.Shipment, error) {
	var shipment domain.Shipment
	if err := api.c.get(ctx, "/admin/order/"+orderID, &shipment); err != nil {
		return nil, err
	}
	return &shipment, nil
}

// RefreshShipment asks the backend to re-poll the courier for status.
func (api *AdminAPI) RefreshShipment(ctx context.Context, id string) (*domain.Shipment, error) {
	var shipment domain.Shipment
	if err := api.c.patch(ctx, "/admin/"+id+"/refresh", nil, &shipment); err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (api *AdminAPI) CancelShipment(ctx context.Context, id string) (*domain.Shipment, error) {
	var shipment domain.Shipment
	if err := api.c.patch(ctx, "/admin/"+id+"/cancel", nil, &shipment); err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (api *AdminAPI) RequestPickup(ctx context.Context, shipmentIDs []string) error {
	body := map[string][]string{"shipmentIds": shipmentIDs}
	return api.c.post(ctx, "/admin/request-pickup", body, nil)
}
