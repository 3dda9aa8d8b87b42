package pricing

import "github.com/nithyashree19/electromart/internal/domain"

const (
	DiscountRate          = 0.15
	TaxRate               = 0.18
	FreeShippingThreshold = 2000.0
	FlatShippingFee       = 99.0
)

// Calculate derives the pricing breakdown for a set of selected cart items.
// It is a pure function: equal inputs always yield an identical breakdown.
//
// An empty selection still pays the flat shipping fee, because a zero
// subtotal does not clear the free-shipping threshold. That makes the
// total 99 with nothing selected, which is intentional and covered by tests.
func Calculate(items []domain.CartItem) domain.PricingBreakdown {
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}

	discount := subtotal * DiscountRate
	tax := (subtotal - discount) * TaxRate

	shipping := FlatShippingFee
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}

	return domain.PricingBreakdown{
		Subtotal:       subtotal,
		DiscountRate:   DiscountRate,
		DiscountAmount: discount,
		TaxRate:        TaxRate,
		TaxAmount:      tax,
		ShippingFee:    shipping,
		Total:          subtotal - discount + tax + shipping,
	}
}
