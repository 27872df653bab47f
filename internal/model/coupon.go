package model

import "strings"

// Coupon is a percentage discount redeemable by code. Targeting fields are
// all optional; an empty field is a wildcard for that dimension. Codes are
// canonicalized upper-case at write time and looked up case-insensitively.
type Coupon struct {
	ID                 string  `json:"id"`
	Code               string  `json:"code"`
	DiscountPercentage float64 `json:"discount_percentage"`
	IsActive           bool    `json:"is_active"`
	BrandID            string  `json:"brand_id,omitempty"`
	ModelID            string  `json:"model_id,omitempty"`
	ServiceID          string  `json:"service_id,omitempty"`
	SubServiceID       string  `json:"sub_service_id,omitempty"`
}

// CanonicalCode upper-cases and trims a user-entered coupon code.
func CanonicalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CreateCouponRequest is the DTO for creating a coupon.
type CreateCouponRequest struct {
	Code               string   `json:"code" validate:"required,notblank,max=64"`
	DiscountPercentage *float64 `json:"discount_percentage" validate:"required,gt=0,lte=100"`
	IsActive           *bool    `json:"is_active" validate:"required"`
	BrandID            string   `json:"brand_id"`
	ModelID            string   `json:"model_id"`
	ServiceID          string   `json:"service_id"`
	SubServiceID       string   `json:"sub_service_id"`
}

// ValidateCouponRequest is the DTO for checking a coupon against a target.
type ValidateCouponRequest struct {
	Code         string `json:"code" validate:"required,notblank,max=64"`
	ModelID      string `json:"model_id" validate:"required,notblank"`
	ServiceID    string `json:"service_id" validate:"required,notblank"`
	SubServiceID string `json:"sub_service_id"`
}
