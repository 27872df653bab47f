package model

// Popup is a marketing pop-up targeted by brand, service and sub-service
// (no model dimension). The countdown, delay and animation fields are
// carried as data for the client to render.
type Popup struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      []string `json:"description"`
	MediaType        string   `json:"media_type,omitempty"` // youtube, image or audio
	MediaURL         string   `json:"media_url,omitempty"`
	BrandID          string   `json:"target_brand_id,omitempty"`
	ServiceID        string   `json:"target_service_id,omitempty"`
	SubServiceID     string   `json:"target_sub_service_id,omitempty"`
	HasCountdown     bool     `json:"has_countdown"`
	CountdownSeconds int      `json:"countdown_seconds,omitempty"`
	DelaySeconds     int      `json:"delay_seconds,omitempty"`
	AnimationEffect  string   `json:"animation_effect,omitempty"`
	ShowLastUpdated  bool     `json:"show_last_updated"`
	IsActive         bool     `json:"is_active"`
}

// RuleActive implements pricing.Rule.
func (p Popup) RuleActive() bool { return p.IsActive }

// TargetBrandID implements pricing.Rule.
func (p Popup) TargetBrandID() string { return p.BrandID }

// TargetModelID implements pricing.Rule; pop-ups never target a model.
func (p Popup) TargetModelID() string { return "" }

// TargetServiceID implements pricing.Rule.
func (p Popup) TargetServiceID() string { return p.ServiceID }

// TargetSubServiceID implements pricing.Rule.
func (p Popup) TargetSubServiceID() string { return p.SubServiceID }

// CreatePopupRequest is the DTO for creating or replacing a pop-up.
type CreatePopupRequest struct {
	Title            string   `json:"title" validate:"required,notblank,max=255"`
	Description      []string `json:"description" validate:"dive,max=2048"`
	MediaType        string   `json:"media_type" validate:"omitempty,oneof=youtube image audio"`
	MediaURL         string   `json:"media_url" validate:"omitempty,url"`
	BrandID          string   `json:"target_brand_id"`
	ServiceID        string   `json:"target_service_id"`
	SubServiceID     string   `json:"target_sub_service_id"`
	HasCountdown     bool     `json:"has_countdown"`
	CountdownSeconds int      `json:"countdown_seconds" validate:"gte=0"`
	DelaySeconds     int      `json:"delay_seconds" validate:"gte=0"`
	AnimationEffect  string   `json:"animation_effect" validate:"omitempty,oneof=fadeIn slideIn zoomIn rotateIn slideUp flipIn"`
	ShowLastUpdated  bool     `json:"show_last_updated"`
	IsActive         *bool    `json:"is_active" validate:"required"`
}
