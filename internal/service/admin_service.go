package service

import (
	"context"
	"fmt"

	"gvnatural/internal/backend"
	"gvnatural/internal/domain"
	"gvnatural/internal/repository"

	"go.uber.org/zap"
)

// AdminService drives the back-office: admin-realm login plus thin
// pass-throughs to the backend's admin surface. It holds the admin realm's
// credential store, which is fully independent of the customer realm.
type AdminService struct {
	api    *backend.AdminAPI
	creds  *repository.CredentialRepository
	logger *zap.Logger
}

func NewAdminService(api *backend.AdminAPI, creds *repository.CredentialRepository, logger *zap.Logger) *AdminService {
	return &AdminService{api: api, creds: creds, logger: logger}
}

func (s *AdminService) Login(ctx context.Context, sessionID, email, password string) (*domain.Admin, error) {
	resp, err := s.api.Login(ctx, backend.AdminLoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.Admin == nil {
		return nil, ErrIncompleteAuth
	}
	if err := s.creds.SetAuth(ctx, sessionID, resp.AccessToken, resp.Admin); err != nil {
		s.logger.Error("Failed to store admin credentials", zap.Error(err))
		return nil, fmt.Errorf("failed to store credentials: %w", err)
	}
	return resp.Admin, nil
}

func (s *AdminService) Logout(ctx context.Context, sessionID string) error {
	return s.creds.ClearAuth(ctx, sessionID)
}

func (s *AdminService) Profile(ctx context.Context, sessionID string) (*domain.Admin, bool, error) {
	var admin domain.Admin
	ok, err := s.creds.Profile(ctx, sessionID, &admin)
	if err != nil || !ok {
		return nil, false, err
	}
	return &admin, true, nil
}

// --- Products ---

func (s *AdminService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.api.ListProducts(ctx)
}

func (s *AdminService) CreateProduct(ctx context.Context, form *backend.ProductForm) (*domain.Product, error) {
	return s.api.CreateProduct(ctx, form)
}

func (s *AdminService) UpdateProduct(ctx context.Context, id string, form *backend.ProductForm) (*domain.Product, error) {
	return s.api.UpdateProduct(ctx, id, form)
}

func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	return s.api.DeleteProduct(ctx, id)
}

// --- Orders ---

func (s *AdminService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.api.ListOrders(ctx)
}

func (s *AdminService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.api.GetOrder(ctx, id)
}

func (s *AdminService) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	return s.api.UpdateOrderStatus(ctx, id, status)
}

// --- Users ---

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.api.ListUsers(ctx)
}

func (s *AdminService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.api.GetUser(ctx, id)
}

func (s *AdminService) UpdateUserStatus(ctx context.Context, id string, isActive bool) (*domain.User, error) {
	return s.api.UpdateUserStatus(ctx, id, isActive)
}

// --- Shipments ---

func (s *AdminService) ListShipments(ctx context.Context) ([]domain.Shipment, error) {
	return s.api.ListShipments(ctx)
}

func (s *AdminService) GetShipment(ctx context.Context, id string) (*domain.Shipment, error) {
	return s.api.GetShipment(ctx, id)
}

func (s *AdminService) GetShipmentByOrder(ctx context.Context, orderID string) (*domain.Shipment, error) {
	return s.api.GetShipmentByOrder(ctx, orderID)
}

func (s *AdminService) RefreshShipment(ctx context.Context, id string) (*domain.Shipment, error) {
	return s.api.RefreshShipment(ctx, id)
}

func (s *AdminService) CancelShipment(ctx context.Context, id string) (*domain.Shipment, error) {
	return s.api.CancelShipment(ctx, id)
}

func (s *AdminService) RequestPickup(ctx context.Context, shipmentIDs []string) error {
	return s.api.RequestPickup(ctx, shipmentIDs)
}
