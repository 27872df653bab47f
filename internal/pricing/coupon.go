package pricing

import "github.com/universocelular/unicel-server-web/internal/model"

// CouponApplies reports whether a coupon's targeting admits the context.
// Coupons are looked up by unique code, so there is no best-match search:
// this is a plain conjunctive check where every predicate the coupon
// specifies must equal the context field and absent predicates are
// wildcards.
func CouponApplies(c *model.Coupon, ctx TargetContext) bool {
	if c.BrandID != "" && c.BrandID != ctx.BrandID {
		return false
	}
	if c.ModelID != "" && c.ModelID != ctx.ModelID {
		return false
	}
	if c.ServiceID != "" && c.ServiceID != ctx.ServiceID {
		return false
	}
	if c.SubServiceID != "" && c.SubServiceID != ctx.SubServiceID {
		return false
	}
	return true
}
