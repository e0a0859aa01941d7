package domain

import "encoding/json"

type ShipmentStatus string

const (
	ShipmentPicked         ShipmentStatus = "PICKED"
	ShipmentInTransit      ShipmentStatus = "IN_TRANSIT"
	ShipmentOutForDelivery ShipmentStatus = "OUT_FOR_DELIVERY"
	ShipmentDelivered      ShipmentStatus = "DELIVERED"
	ShipmentCancelled      ShipmentStatus = "CANCELLED"
)

// Shipment mirrors the courier record the backend keeps per order. order_id
// may arrive as a bare ID or as a populated order object.
type Shipment struct {
	ID            string          `json:"_id"`
	OrderID       json.RawMessage `json:"order_id"`
	ShipmentID    string          `json:"shipment_id"`
	AWB           string          `json:"awb,omitempty"`
	CourierName   string          `json:"courier_name,omitempty"`
	Status        ShipmentStatus  `json:"status"`
	LastTrackedAt string          `json:"last_tracked_at,omitempty"`
	TrackingData  *TrackingData   `json:"tracking_data,omitempty"`
	CreatedAt     string          `json:"createdAt,omitempty"`
	UpdatedAt     string          `json:"updatedAt,omitempty"`
}

type TrackingData struct {
	ShipmentStatus          string             `json:"shipment_status"`
	ShipmentTrack           []ShipmentTrack    `json:"shipment_track"`
	ShipmentTrackActivities []TrackingActivity `json:"shipment_track_activities"`
}

type ShipmentTrack struct {
	ID                    int    `json:"id"`
	AWBCode               string `json:"awb_code"`
	CourierName           string `json:"courier_name"`
	ShipmentStatus        string `json:"shipment_status"`
	ShipmentStatusCode    int    `json:"shipment_status_code"`
	Origin                string `json:"origin"`
	Destination           string `json:"destination"`
	Status                string `json:"status"`
	UpdatedTime           string `json:"updated_time"`
	EstimatedDeliveryDate string `json:"estimated_delivery_date"`
}

type TrackingActivity struct {
	Date     string `json:"date"`
	Status   string `json:"status"`
	Activity string `json:"activity"`
	Location string `json:"location"`
}

// ShippingRate is one courier quote from the backend's rate calculator.
type ShippingRate struct {
	CourierCompanyID      int     `json:"courier_company_id"`
	CourierName           string  `json:"courier_name"`
	CourierType           string  `json:"courier_type"`
	Rate                  float64 `json:"rate"`
	EstimatedDeliveryDays string  `json:"estimated_delivery_days"`
	CODCharges            float64 `json:"cod_charges,omitempty"`
	CODLimit              float64 `json:"cod_limit,omitempty"`
}

type ShippingRateRequest struct {
	PickupPincode   string  `json:"pickup_pincode"`
	DeliveryPincode string  `json:"delivery_pincode"`
	Weight          float64 `json:"weight"`
	CODAmount       float64 `json:"cod_amount,omitempty"`
}
