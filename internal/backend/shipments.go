package backend

import (
	"context"

	"gvnatural/internal/domain"
)

// ShipmentsAPI wraps the customer-facing shipment endpoints.
type ShipmentsAPI struct {
	c *Client
}

func NewShipmentsAPI(c *Client) *ShipmentsAPI {
	return &ShipmentsAPI{c: c}
}

// Tracking returns the shipment record for an order.
func (api *ShipmentsAPI) Tracking(ctx context.Context, orderID string) (*domain.Shipment, error) {
	var shipment domain.Shipment
	if err := api.c.get(ctx, "/shipments/"+orderID+"/tracking", &shipment); err != nil {
		return nil, err
	}
	return &shipment, nil
}

// Rates fetches courier quotes. The backend nests the courier list inside a
// second envelope from the upstream rate provider.
func (api *ShipmentsAPI) Rates(ctx context.Context, req domain.ShippingRateRequest) ([]domain.ShippingRate, error) {
	var out struct {
		Status int `json:"status"`
		Data   struct {
			AvailableCourierCompanies []domain.ShippingRate `json:"available_courier_companies"`
		} `json:"data"`
	}
	if err := api.c.post(ctx, "/shipments/shipping-rates", req, &out); err != nil {
		return nil, err
	}
	return out.Data.AvailableCourierCompanies, nil
}
