package model

// DefaultUSDToARSRate is used when the settings document has never been
// saved or carries no rate.
const DefaultUSDToARSRate = 1340

// DiscountRule is an automatic discount living inside the settings document.
// Targeting fields are optional; an empty field is a wildcard. Rules compete
// through specificity resolution, unlike coupons which are looked up by code.
type DiscountRule struct {
	ID                 string  `json:"id"`
	IsActive           bool    `json:"is_active"`
	DiscountPercentage float64 `json:"discount_percentage"`
	BrandID            string  `json:"brand_id,omitempty"`
	ModelID            string  `json:"model_id,omitempty"`
	ServiceID          string  `json:"service_id,omitempty"`
	SubServiceID       string  `json:"sub_service_id,omitempty"`
}

// RuleActive implements pricing.Rule.
func (r DiscountRule) RuleActive() bool { return r.IsActive }

// TargetBrandID implements pricing.Rule.
func (r DiscountRule) TargetBrandID() string { return r.BrandID }

// TargetModelID implements pricing.Rule.
func (r DiscountRule) TargetModelID() string { return r.ModelID }

// TargetServiceID implements pricing.Rule.
func (r DiscountRule) TargetServiceID() string { return r.ServiceID }

// TargetSubServiceID implements pricing.Rule.
func (r DiscountRule) TargetSubServiceID() string { return r.SubServiceID }

// FreeServiceEntry marks one (model, service, sub-service) combination as
// free of charge while free mode is active. Matching is exact: an empty
// SubServiceID only matches quotes that also carry no sub-service.
type FreeServiceEntry struct {
	ID           string `json:"id"`
	ModelID      string `json:"model_id"`
	ServiceID    string `json:"service_id"`
	SubServiceID string `json:"sub_service_id,omitempty"`
}

// Matches reports whether the entry applies to the exact target triple.
func (f FreeServiceEntry) Matches(modelID, serviceID, subServiceID string) bool {
	return f.ModelID == modelID && f.ServiceID == serviceID && f.SubServiceID == subServiceID
}

// Settings is the singleton promotional configuration document. The global
// toggles gate whether discount and free-service rules are considered at
// all, independent of each rule's own active flag.
type Settings struct {
	IsDiscountModeActive bool               `json:"is_discount_mode_active"`
	Discounts            []DiscountRule     `json:"discounts"`
	IsFreeModeActive     bool               `json:"is_free_mode_active"`
	FreeServices         []FreeServiceEntry `json:"free_services"`
	USDToARSRate         float64            `json:"usd_to_ars_rate"`
}

// DefaultSettings returns the configuration used when no settings document
// exists yet.
func DefaultSettings() *Settings {
	return &Settings{
		Discounts:    []DiscountRule{},
		FreeServices: []FreeServiceEntry{},
		USDToARSRate: DefaultUSDToARSRate,
	}
}

// FreeEntryFor returns the free-service entry exactly matching the target,
// or nil. The free-mode toggle is not consulted here.
func (s *Settings) FreeEntryFor(modelID, serviceID, subServiceID string) *FreeServiceEntry {
	for i := range s.FreeServices {
		if s.FreeServices[i].Matches(modelID, serviceID, subServiceID) {
			return &s.FreeServices[i]
		}
	}
	return nil
}

// DiscountRuleInput is the DTO for one rule in a discount mode update.
type DiscountRuleInput struct {
	IsActive           *bool    `json:"is_active" validate:"required"`
	DiscountPercentage *float64 `json:"discount_percentage" validate:"required,gt=0,lte=100"`
	BrandID            string   `json:"brand_id"`
	ModelID            string   `json:"model_id"`
	ServiceID          string   `json:"service_id"`
	SubServiceID       string   `json:"sub_service_id"`
}

// UpdateDiscountModeRequest is the DTO for replacing the discount
// configuration.
type UpdateDiscountModeRequest struct {
	IsActive  *bool               `json:"is_active" validate:"required"`
	Discounts []DiscountRuleInput `json:"discounts" validate:"dive"`
}

// FreeServiceInput is the DTO for one entry in a free mode update.
type FreeServiceInput struct {
	ModelID      string `json:"model_id" validate:"required,notblank"`
	ServiceID    string `json:"service_id" validate:"required,notblank"`
	SubServiceID string `json:"sub_service_id"`
}

// UpdateFreeModeRequest is the DTO for replacing the free mode
// configuration.
type UpdateFreeModeRequest struct {
	IsActive     *bool              `json:"is_active" validate:"required"`
	FreeServices []FreeServiceInput `json:"free_services" validate:"dive"`
}

// UpdateRateRequest is the DTO for setting the USD to ARS conversion rate.
type UpdateRateRequest struct {
	USDToARSRate *float64 `json:"usd_to_ars_rate" validate:"required,gt=0"`
}
