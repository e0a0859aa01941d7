package domain

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func testProduct(id string, pricePerKg float64) Product {
	return Product{
		ID:         id,
		Name:       "Product " + id,
		Slug:       "product-" + id,
		PricePerKg: pricePerKg,
		StockKg:    100,
		IsActive:   true,
	}
}

func TestCartAddMergesSameProduct(t *testing.T) {
	cart := NewCart()
	honey := testProduct("honey", 50)

	cart.AddItem(honey, 2)
	cart.AddItem(honey, 3)

	entries := cart.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 line after merge, got %d", len(entries))
	}
	if entries[0].QuantityKg != 5 {
		t.Errorf("expected merged quantity 5, got %d", entries[0].QuantityKg)
	}
}

func TestCartUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	cart := NewCart()
	cart.AddItem(testProduct("ghee", 800), 3)

	cart.UpdateQuantity("ghee", 1)

	if got := cart.Entries()[0].QuantityKg; got != 1 {
		t.Errorf("expected quantity 1 after update, got %d", got)
	}
}

func TestCartUpdateQuantityZeroRemovesLine(t *testing.T) {
	cart := NewCart()
	cart.AddItem(testProduct("ghee", 800), 3)

	cart.UpdateQuantity("ghee", 0)

	if count := cart.ItemCount(); count != 0 {
		t.Errorf("expected empty cart after zero update, got %d lines", count)
	}
}

func TestCartUpdateQuantityNegativeRemovesLine(t *testing.T) {
	cart := NewCart()
	cart.AddItem(testProduct("ghee", 800), 3)

	cart.UpdateQuantity("ghee", -2)

	if count := cart.ItemCount(); count != 0 {
		t.Errorf("expected empty cart after negative update, got %d lines", count)
	}
}

func TestCartRemoveAbsentProductIsNoOp(t *testing.T) {
	cart := NewCart()
	cart.AddItem(testProduct("honey", 50), 1)

	cart.RemoveItem("missing")

	if count := cart.ItemCount(); count != 1 {
		t.Errorf("expected 1 line, got %d", count)
	}
}

func TestCartTotals(t *testing.T) {
	// 1kg of honey at 100/kg plus 5kg of jaggery at 30/kg
	cart := NewCart()
	cart.AddItem(testProduct("honey", 100), 1)
	cart.AddItem(testProduct("jaggery", 30), 5)

	if got := cart.Subtotal(); got != 250 {
		t.Errorf("Subtotal = %v, want 250", got)
	}
	// 1kg line ships at 70, 5kg line at 230
	if got := cart.ShippingCost(); got != 300 {
		t.Errorf("ShippingCost = %v, want 300", got)
	}
	if got := cart.TotalWithShipping(); got != 550 {
		t.Errorf("TotalWithShipping = %v, want 550", got)
	}
}

func TestCartShippingIsPerLineNotCombined(t *testing.T) {
	// Two separate 1kg lines ship at 70 each, never at the 2kg tier.
	cart := NewCart()
	cart.AddItem(testProduct("honey", 100), 1)
	cart.AddItem(testProduct("ghee", 800), 1)

	if got := cart.ShippingCost(); got != 140 {
		t.Errorf("ShippingCost = %v, want 140 (70 per line)", got)
	}
}

func TestCartItemCountIsLineCount(t *testing.T) {
	cart := NewCart()
	cart.AddItem(testProduct("honey", 100), 5)
	cart.AddItem(testProduct("ghee", 800), 2)

	// 7kg in the cart, but only 2 lines
	if got := cart.ItemCount(); got != 2 {
		t.Errorf("ItemCount = %d, want 2", got)
	}
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	cart.AddItem(testProduct("honey", 100), 1)
	cart.AddItem(testProduct("ghee", 800), 2)

	cart.Clear()

	if count := cart.ItemCount(); count != 0 {
		t.Errorf("expected empty cart after Clear, got %d lines", count)
	}
	if got := cart.TotalWithShipping(); got != 0 {
		t.Errorf("expected zero total after Clear, got %v", got)
	}
}

func TestRestoreCartDropsNonPositiveQuantities(t *testing.T) {
	cart := RestoreCart([]CartEntry{
		{Product: testProduct("honey", 100), QuantityKg: 2},
		{Product: testProduct("ghee", 800), QuantityKg: 0},
		{Product: testProduct("jaggery", 30), QuantityKg: -1},
	})

	entries := cart.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 restored line, got %d", len(entries))
	}
	if entries[0].Product.ID != "honey" {
		t.Errorf("expected honey line to survive, got %q", entries[0].Product.ID)
	}
}

func TestCartEntriesReturnsCopy(t *testing.T) {
	cart := NewCart()
	cart.AddItem(testProduct("honey", 100), 2)

	entries := cart.Entries()
	entries[0].QuantityKg = 99

	if got := cart.Entries()[0].QuantityKg; got != 2 {
		t.Errorf("mutating the returned slice leaked into the cart: quantity %d", got)
	}
}

func TestProperty_AddThenAddMergesQuantities(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("adding the same product twice yields one line with the summed quantity", prop.ForAll(
		func(q1, q2 int) bool {
			cart := NewCart()
			p := testProduct("p", 10)
			cart.AddItem(p, q1)
			cart.AddItem(p, q2)

			total := q1 + q2
			if q1 <= 0 {
				// First add is ignored; second stands alone
				total = q2
			}
			if total <= 0 {
				return cart.ItemCount() == 0
			}
			entries := cart.Entries()
			return len(entries) == 1 && entries[0].QuantityKg == total
		},
		gen.IntRange(-5, 20),
		gen.IntRange(-5, 20),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_NoLineEverHasNonPositiveQuantity(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("after any sequence of updates every line quantity is positive", prop.ForAll(
		func(quantities []int) bool {
			cart := NewCart()
			p := testProduct("p", 10)
			cart.AddItem(p, 1)
			for _, q := range quantities {
				cart.UpdateQuantity("p", q)
			}
			for _, e := range cart.Entries() {
				if e.QuantityKg <= 0 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(-10, 10)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
