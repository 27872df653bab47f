package pricing

import (
	"github.com/universocelular/unicel-server-web/internal/model"
)

// Quote is the computed pricing result in canonical USD, before currency
// conversion. Price semantics: unset means "no price recorded, contact to
// quote", under construction means "not yet priced", an explicit amount is
// the final payable price after all adjustments. An amount of exactly 0 is
// a real price.
type Quote struct {
	Title              string
	Price              model.Price
	OriginalPrice      *float64
	DiscountPercentage *float64
	IsFree             bool
}

// Status maps the quote to its API status string.
func (q Quote) Status() string {
	switch {
	case q.IsFree:
		return model.QuoteStatusFree
	case q.Price.IsUnderConstruction():
		return model.QuoteStatusUnderConstruction
	case q.Price.IsUnset():
		return model.QuoteStatusUnpriced
	default:
		return model.QuoteStatusPriced
	}
}

// ComputePrice resolves the single displayable price for a target, applying
// the full precedence chain:
//
//  1. the model-wide under-construction flag beats everything, free mode
//     included
//  2. a per-key under-construction override beats free mode for its key
//  3. free mode suppresses all price and discount math
//  4. overrides beat catalog base prices; SIM unlock has no base at all
//  5. an applied coupon beats any automatic discount rule; auto discounts
//     are only considered while discount mode is active
//
// The applied coupon, when present, must already have passed
// ValidateCoupon; ComputePrice does not re-check applicability.
func ComputePrice(m *model.DeviceModel, svc *model.Service, subServiceID, carrierID string, settings *model.Settings, appliedCoupon *model.Coupon) Quote {
	if m.Overrides.AllUnderConstruction() {
		return Quote{Title: svc.Name, Price: model.UnderConstruction()}
	}

	isFree := settings.IsFreeModeActive &&
		settings.FreeEntryFor(m.ID, svc.ID, subServiceID) != nil

	title := svc.Name
	price := model.NoPrice()

	switch {
	case svc.ID == model.SIMUnlockServiceID && carrierID != "":
		// Carrier-keyed overrides only; there is no flat base to fall
		// back to.
		price = m.Overrides.ForCarrier(carrierID)
		carrierName := "Operadora"
		if c := model.CarrierByID(carrierID); c != nil {
			carrierName = c.Name
		}
		title = "Desbloqueo SIM - " + carrierName
	case subServiceID != "":
		if sub := svc.SubServiceByID(subServiceID); sub != nil {
			price = m.Overrides.ForService(sub.ID).OrBase(&sub.Price)
			title = svc.Name + " - " + sub.Name
		}
	default:
		price = m.Overrides.ForService(svc.ID).OrBase(svc.Price)
	}

	if price.IsUnderConstruction() {
		return Quote{Title: title, Price: model.UnderConstruction()}
	}
	if isFree {
		return Quote{Title: title, Price: model.NoPrice(), IsFree: true}
	}
	if price.IsUnset() {
		return Quote{Title: title, Price: model.NoPrice()}
	}

	amount, _ := price.Amount()
	if appliedCoupon != nil {
		return applyDiscount(title, amount, appliedCoupon.DiscountPercentage)
	}
	if settings.IsDiscountModeActive {
		ctx := TargetContext{
			BrandID:      m.BrandID,
			ModelID:      m.ID,
			ServiceID:    svc.ID,
			SubServiceID: subServiceID,
		}
		if rule, ok := ResolveBestMatch(ctx, settings.Discounts); ok {
			return applyDiscount(title, amount, rule.DiscountPercentage)
		}
	}
	return Quote{Title: title, Price: model.PriceOf(amount)}
}

func applyDiscount(title string, amount, pct float64) Quote {
	original := amount
	final := amount * (1 - pct/100)
	return Quote{
		Title:              title,
		Price:              model.PriceOf(final),
		OriginalPrice:      &original,
		DiscountPercentage: &pct,
	}
}
