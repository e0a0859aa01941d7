package backend

import (
	"context"

	"gvnatural/internal/domain"
)

// OrdersAPI wraps the customer-realm order endpoints.
type OrdersAPI struct {
	c *Client
}

func NewOrdersAPI(c *Client) *OrdersAPI {
	return &OrdersAPI{c: c}
}

func (api *OrdersAPI) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := api.c.post(ctx, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (api *OrdersAPI) Mine(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := api.c.get(ctx, "/orders/my", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (api *OrdersAPI) Get(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	if err := api.c.get(ctx, "/orders/"+id, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
