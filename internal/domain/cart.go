package domain

// CartEntry is one line item: a product snapshot plus the quantity ordered.
type CartEntry struct {
	Product    Product `json:"product"`
	QuantityKg int     `json:"quantity_kg"`
}

// Cart is an insertion-ordered collection of entries, unique by product ID.
// It is a plain in-memory value; persistence is layered on by the repository
// and is best-effort, so the in-memory state stays the source of truth for
// the session that owns it.
type Cart struct {
	entries []CartEntry
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// RestoreCart rebuilds a cart from previously persisted entries, preserving
// their order. Entries with a non-positive quantity are dropped.
func RestoreCart(entries []CartEntry) *Cart {
	c := &Cart{}
	for _, e := range entries {
		if e.QuantityKg > 0 {
			c.entries = append(c.entries, e)
		}
	}
	return c
}

func (c *Cart) indexOf(productID string) int {
	for i, e := range c.entries {
		if e.Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddItem merges into an existing line for the same product (existing
// quantity plus the added quantity) or appends a new line. Merging goes
// through UpdateQuantity so the remove-on-zero rule applies uniformly.
func (c *Cart) AddItem(product Product, quantityKg int) {
	if i := c.indexOf(product.ID); i >= 0 {
		c.UpdateQuantity(product.ID, c.entries[i].QuantityKg+quantityKg)
		return
	}
	if quantityKg <= 0 {
		return
	}
	c.entries = append(c.entries, CartEntry{Product: product, QuantityKg: quantityKg})
}

// UpdateQuantity sets a line's quantity to exactly quantityKg. A
// non-positive quantity removes the line.
func (c *Cart) UpdateQuantity(productID string, quantityKg int) {
	if quantityKg <= 0 {
		c.RemoveItem(productID)
		return
	}
	if i := c.indexOf(productID); i >= 0 {
		c.entries[i].QuantityKg = quantityKg
	}
}

// RemoveItem deletes the line for productID. Removing an absent product is
// a no-op, not an error.
func (c *Cart) RemoveItem(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.entries = append(c.entries[:i], c.entries[i+1:]...)
	}
}

// Clear empties the cart. Called after a successful order placement.
func (c *Cart) Clear() {
	c.entries = nil
}

// Entries returns a copy of the cart lines in insertion order.
func (c *Cart) Entries() []CartEntry {
	out := make([]CartEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Subtotal is the sum of price_per_kg * quantity_kg over all lines.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, e := range c.entries {
		total += e.Product.PricePerKg * float64(e.QuantityKg)
	}
	return total
}

// ShippingCost sums the flat fee per line, each computed from that line's
// own quantity. Shipping is never tiered on the cart's combined weight:
// two 1kg lines cost 70+70, not the 130 a single 2kg line would.
func (c *Cart) ShippingCost() float64 {
	var total float64
	for _, e := range c.entries {
		total += ShippingCost(e.QuantityKg)
	}
	return total
}

// TotalWithShipping is subtotal plus shipping.
func (c *Cart) TotalWithShipping() float64 {
	return c.Subtotal() + c.ShippingCost()
}

// ItemCount is the number of distinct lines, not total kilograms.
func (c *Cart) ItemCount() int {
	return len(c.entries)
}
