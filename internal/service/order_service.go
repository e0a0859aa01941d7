package service

import (
	"context"
	"errors"
	"fmt"

	"gvnatural/internal/backend"
	"gvnatural/internal/domain"

	"go.uber.org/zap"
)

var ErrEmptyCart = errors.New("cart is empty")

// OrderService places orders against the backend and exposes the customer's
// order history and shipment tracking. The order, payment and shipment state
// machines live entirely in the backend.
type OrderService struct {
	orders    *backend.OrdersAPI
	shipments *backend.ShipmentsAPI
	cart      CartService
	logger    *zap.Logger
}

func NewOrderService(orders *backend.OrdersAPI, shipments *backend.ShipmentsAPI, cart CartService, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, shipments: shipments, cart: cart, logger: logger}
}

// Checkout turns the session's cart into a backend order. The cart is
// cleared only after the backend accepts the order; a rejected order leaves
// it intact for the user to retry.
func (s *OrderService) Checkout(ctx context.Context, sessionID string, address domain.ShippingAddress) (*domain.Order, error) {
	cart := s.cart.Get(ctx, sessionID)
	entries := cart.Entries()
	if len(entries) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]domain.CreateOrderItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, domain.CreateOrderItem{
			ProductID:  e.Product.ID,
			QuantityKg: e.QuantityKg,
		})
	}

	order, err := s.orders.Create(ctx, domain.CreateOrderRequest{
		Items:           items,
		ShippingAddress: address,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.cart.Clear(ctx, sessionID)
	s.logger.Info("Order placed",
		zap.String("session_id", sessionID),
		zap.String("order_number", order.OrderNumber),
	)
	return order, nil
}

func (s *OrderService) MyOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.Mine(ctx)
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.Get(ctx, id)
}

func (s *OrderService) Tracking(ctx context.Context, orderID string) (*domain.Shipment, error) {
	return s.shipments.Tracking(ctx, orderID)
}

func (s *OrderService) ShippingRates(ctx context.Context, req domain.ShippingRateRequest) ([]domain.ShippingRate, error) {
	return s.shipments.Rates(ctx, req)
}
