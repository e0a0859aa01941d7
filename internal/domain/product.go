package domain

// Product is the catalog entity owned by the commerce backend. The gateway
// treats it as read-only; cart entries carry a snapshot taken at add time.
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description,omitempty"`
	PricePerKg  float64 `json:"price_per_kg"`
	StockKg     float64 `json:"stock_kg"`
	IsActive    bool    `json:"is_active"`
	Image       string  `json:"image,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}
