package domain

// Flat-rate shipping fee in rupees per cart line, keyed by the line's
// quantity in kilograms.
var shippingRates = map[int]float64{
	1:  70,
	2:  130,
	5:  230,
	10: 350,
}

// fallbackShippingRate is the 1kg rate. Quantities outside the table are
// charged this rate; that is the shipped business rule, including for
// quantities heavier than the largest tier.
const fallbackShippingRate float64 = 70

// ShippingCost returns the flat shipping fee for a single cart line of the
// given quantity in kilograms.
func ShippingCost(quantityKg int) float64 {
	if rate, ok := shippingRates[quantityKg]; ok {
		return rate
	}
	return fallbackShippingRate
}
