package domain

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestShippingCostTable(t *testing.T) {
	tests := []struct {
		name       string
		quantityKg int
		want       float64
	}{
		{"1kg", 1, 70},
		{"2kg", 2, 130},
		{"5kg", 5, 230},
		{"10kg", 10, 350},
		{"3kg falls back to base rate", 3, 70},
		{"4kg falls back to base rate", 4, 70},
		{"7kg falls back to base rate", 7, 70},
		{"heavier than largest tier falls back", 25, 70},
		{"zero falls back", 0, 70},
		{"negative falls back", -1, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShippingCost(tt.quantityKg); got != tt.want {
				t.Errorf("ShippingCost(%d) = %v, want %v", tt.quantityKg, got, tt.want)
			}
		})
	}
}

func TestProperty_ShippingCostOffTableIsBaseRate(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("any quantity outside the rate table costs the 1kg rate", prop.ForAll(
		func(quantityKg int) bool {
			switch quantityKg {
			case 1, 2, 5, 10:
				return true
			}
			return ShippingCost(quantityKg) == 70
		},
		gen.IntRange(-100, 1000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
