package domain

import "encoding/json"

// OrderStatus values are owned by the backend's order state machine; the
// gateway only displays and forwards them.
type OrderStatus string

const (
	OrderCreated   OrderStatus = "CREATED"
	OrderPaid      OrderStatus = "PAID"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

type ShippingAddress struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Country      string `json:"country"`
}

// CreateOrderItem is the shape sent to the backend when placing an order.
type CreateOrderItem struct {
	ProductID  string `json:"product_id"`
	QuantityKg int    `json:"quantity_kg"`
}

type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items"`
	ShippingAddress ShippingAddress   `json:"shipping_address"`
}

// OrderItem as returned by the backend. product_id may be either a bare ID
// string or a populated product object depending on the endpoint.
type OrderItem struct {
	ProductID  json.RawMessage `json:"product_id"`
	QuantityKg int             `json:"quantity_kg"`
	PricePerKg float64         `json:"price_per_kg"`
}

type Order struct {
	ID              string          `json:"_id"`
	OrderNumber     string          `json:"order_number"`
	UserID          string          `json:"user_id"`
	Status          OrderStatus     `json:"status"`
	Subtotal        float64         `json:"subtotal"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Items           []OrderItem     `json:"items,omitempty"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
}
