package domain

// PricingBreakdown holds the derived figures for a priced selection.
// It is computed on demand and never stored.
type PricingBreakdown struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountRate   float64 `json:"discountRate"`
	DiscountAmount float64 `json:"discountAmount"`
	TaxRate        float64 `json:"taxRate"`
	TaxAmount      float64 `json:"taxAmount"`
	ShippingFee    float64 `json:"shippingFee"`
	Total          float64 `json:"total"`
}
