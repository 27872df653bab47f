package service

import "errors"

var (
	// ErrInvalidRequest is returned when request data is nil or incomplete
	ErrInvalidRequest = errors.New("invalid request")

	// ErrBrandNotFound is returned when a brand cannot be found
	ErrBrandNotFound = errors.New("brand not found")

	// ErrBrandExists is returned when creating a brand whose name is taken
	ErrBrandExists = errors.New("brand already exists")

	// ErrModelNotFound is returned when a device model cannot be found
	ErrModelNotFound = errors.New("model not found")

	// ErrServiceNotFound is returned when a service cannot be found
	ErrServiceNotFound = errors.New("service not found")

	// ErrCarrierNotFound is returned when a quote names an unknown carrier
	ErrCarrierNotFound = errors.New("carrier not found")

	// ErrCouponInvalid is returned when a coupon code is unknown or the
	// coupon is no longer active ("invalid or expired")
	ErrCouponInvalid = errors.New("coupon invalid or expired")

	// ErrCouponNotApplicable is returned when an active coupon does not
	// target the requested product or service
	ErrCouponNotApplicable = errors.New("coupon not applicable to this target")

	// ErrCouponExists is returned when creating a coupon whose code is taken
	ErrCouponExists = errors.New("coupon already exists")

	// ErrCouponNotFound is returned when a coupon id cannot be found
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrPopupNotFound is returned when a pop-up cannot be found
	ErrPopupNotFound = errors.New("popup not found")

	// ErrPaymentMethodNotFound is returned when a payment method cannot be found
	ErrPaymentMethodNotFound = errors.New("payment method not found")
)
