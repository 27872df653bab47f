package model

// Quote status values. "unpriced" means no price is recorded anywhere for
// the target ("contact to quote"); it is a terminal state, not an error.
const (
	QuoteStatusPriced            = "priced"
	QuoteStatusFree              = "free"
	QuoteStatusUnderConstruction = "under_construction"
	QuoteStatusUnpriced          = "unpriced"
)

// QuoteRequest is the DTO for requesting a price quote.
type QuoteRequest struct {
	ModelID      string `json:"model_id" validate:"required,notblank"`
	ServiceID    string `json:"service_id" validate:"required,notblank"`
	SubServiceID string `json:"sub_service_id"`
	CarrierID    string `json:"carrier_id"`
	CouponCode   string `json:"coupon_code" validate:"omitempty,max=64"`
}

// QuoteResponse is the DTO returned for a quote. Prices are absent unless
// the status is "priced"; ARS amounts are derived from the canonical USD
// amount by the global conversion rate.
type QuoteResponse struct {
	Title              string   `json:"title"`
	ModelName          string   `json:"model_name"`
	BrandName          string   `json:"brand_name"`
	Status             string   `json:"status"`
	PriceUSD           *float64 `json:"price_usd,omitempty"`
	PriceARS           *float64 `json:"price_ars,omitempty"`
	OriginalPriceUSD   *float64 `json:"original_price_usd,omitempty"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
	CouponCode         string   `json:"coupon_code,omitempty"`
	WhatsAppURL        string   `json:"whatsapp_url"`
}
