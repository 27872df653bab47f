package model

// SIMUnlockServiceID is the reserved id of the carrier-priced SIM unlock
// service. It has no flat base price; its per-model overrides are keyed by
// carrier id instead of sub-service id.
const SIMUnlockServiceID = "4"

// Category classifies a device model.
type Category string

const (
	CategoryPhone Category = "Phone"
	CategoryMac   Category = "Mac"
	CategoryIPad  Category = "iPad"
	CategoryWatch Category = "Watch"
)

// Brand represents a device manufacturer.
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DeviceModel represents a device model in the catalog. All relations are
// id-based; brand names are resolved at the display layer only.
type DeviceModel struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	BrandID   string      `json:"brand_id"`
	Category  Category    `json:"category"`
	Overrides OverrideSet `json:"price_overrides"`
}

// SubService is an individually priced variant of a service.
type SubService struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Emoji       string  `json:"emoji,omitempty"`
}

// Service represents an unlocking service. It either carries a flat base
// price or a list of sub-services with their own base prices; once
// sub-services exist the flat price is unused. The SIM unlock service has
// neither: its pricing comes entirely from carrier-keyed overrides.
type Service struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       *float64     `json:"price,omitempty"`
	SubServices []SubService `json:"sub_services,omitempty"`
	Emoji       string       `json:"emoji,omitempty"`
}

// SubServiceByID returns the sub-service with the given id, or nil.
func (s *Service) SubServiceByID(id string) *SubService {
	for i := range s.SubServices {
		if s.SubServices[i].ID == id {
			return &s.SubServices[i]
		}
	}
	return nil
}

// PaymentMethod is a payment option shown alongside quotes.
type PaymentMethod struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CountryID string `json:"country_id"`
	Emoji     string `json:"emoji,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// CreateBrandRequest is the DTO for creating a brand.
type CreateBrandRequest struct {
	Name string `json:"name" validate:"required,notblank,max=255"`
}

// CreateModelRequest is the DTO for creating a device model.
type CreateModelRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=255"`
	BrandID  string `json:"brand_id" validate:"required,notblank"`
	Category string `json:"category" validate:"required,oneof=Phone Mac iPad Watch"`
}

// UpdateModelRequest is the DTO for renaming or recategorizing a model.
type UpdateModelRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=255"`
	Category string `json:"category" validate:"required,oneof=Phone Mac iPad Watch"`
}

// SubServiceInput is the DTO for a sub-service within a service payload.
type SubServiceInput struct {
	Name        string  `json:"name" validate:"required,notblank,max=255"`
	Description string  `json:"description" validate:"max=1024"`
	Price       float64 `json:"price" validate:"gte=0"`
	Emoji       string  `json:"emoji" validate:"max=16"`
}

// CreateServiceRequest is the DTO for creating a service.
type CreateServiceRequest struct {
	Name        string            `json:"name" validate:"required,notblank,max=255"`
	Description string            `json:"description" validate:"max=1024"`
	Price       *float64          `json:"price" validate:"omitempty,gte=0"`
	SubServices []SubServiceInput `json:"sub_services" validate:"dive"`
	Emoji       string            `json:"emoji" validate:"max=16"`
}

// CreatePaymentMethodRequest is the DTO for creating a payment method.
type CreatePaymentMethodRequest struct {
	Name      string `json:"name" validate:"required,notblank,max=255"`
	CountryID string `json:"country_id" validate:"required,notblank"`
	Emoji     string `json:"emoji" validate:"max=16"`
	IsActive  *bool  `json:"is_active" validate:"required"`
}
