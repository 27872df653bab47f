package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/universocelular/unicel-server-web/internal/cache"
	"github.com/universocelular/unicel-server-web/internal/model"
	"github.com/universocelular/unicel-server-web/internal/pricing"
)

// CatalogProvider supplies the catalog snapshot to the quote pipeline.
type CatalogProvider interface {
	Snapshot(ctx context.Context) (*cache.Snapshot, error)
}

// SettingsProvider supplies the promotional settings to the quote pipeline.
type SettingsProvider interface {
	Get(ctx context.Context) (*model.Settings, error)
}

// CouponValidator validates a coupon code against a pricing target.
type CouponValidator interface {
	Validate(ctx context.Context, code string, target pricing.TargetContext) (*model.Coupon, error)
}

// QuoteService computes customer-facing price quotes. It stitches the
// catalog, settings and coupon layers onto the pricing core and renders the
// WhatsApp checkout link.
type QuoteService struct {
	catalog        CatalogProvider
	settings       SettingsProvider
	coupons        CouponValidator
	whatsappNumber string
}

// NewQuoteService creates a new QuoteService. whatsappNumber is the
// destination of the checkout deep link, digits only with country code.
func NewQuoteService(catalog CatalogProvider, settings SettingsProvider, coupons CouponValidator, whatsappNumber string) *QuoteService {
	return &QuoteService{
		catalog:        catalog,
		settings:       settings,
		coupons:        coupons,
		whatsappNumber: whatsappNumber,
	}
}

// GetQuote resolves the displayable price for a target and wraps it into
// the API response. Coupon failures surface as ErrCouponInvalid or
// ErrCouponNotApplicable rather than degrading to an uncouponed quote.
func (s *QuoteService) GetQuote(ctx context.Context, req *model.QuoteRequest) (*model.QuoteResponse, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	m := snap.ModelByID(req.ModelID)
	if m == nil {
		return nil, ErrModelNotFound
	}
	svc := snap.ServiceByID(req.ServiceID)
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	var carrier *model.Carrier
	if req.CarrierID != "" {
		carrier = model.CarrierByID(req.CarrierID)
		if carrier == nil {
			return nil, ErrCarrierNotFound
		}
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	var coupon *model.Coupon
	if req.CouponCode != "" {
		target := pricing.TargetContext{
			BrandID:      m.BrandID,
			ModelID:      m.ID,
			ServiceID:    svc.ID,
			SubServiceID: req.SubServiceID,
		}
		coupon, err = s.coupons.Validate(ctx, req.CouponCode, target)
		if err != nil {
			return nil, err
		}
	}

	quote := pricing.ComputePrice(m, svc, req.SubServiceID, req.CarrierID, settings, coupon)

	resp := &model.QuoteResponse{
		Title:     quote.Title,
		ModelName: m.Name,
		Status:    quote.Status(),
	}
	if brand := snap.BrandByID(m.BrandID); brand != nil {
		resp.BrandName = brand.Name
	}
	if amount, ok := quote.Price.Amount(); ok && !quote.IsFree {
		usd, ars := pricing.ConvertUSD(amount, settings.USDToARSRate)
		resp.PriceUSD = &usd
		resp.PriceARS = &ars
		if quote.OriginalPrice != nil {
			orig, _ := pricing.ConvertUSD(*quote.OriginalPrice, settings.USDToARSRate)
			resp.OriginalPriceUSD = &orig
		}
		resp.DiscountPercentage = quote.DiscountPercentage
	}
	if coupon != nil && resp.Status == model.QuoteStatusPriced {
		resp.CouponCode = coupon.Code
	}
	resp.WhatsAppURL = s.whatsappURL(resp, carrier)

	return resp, nil
}

// whatsappURL renders the wa.me deep link with a prefilled Spanish message
// describing the quoted target.
func (s *QuoteService) whatsappURL(resp *model.QuoteResponse, carrier *model.Carrier) string {
	var b strings.Builder
	b.WriteString("¡Hola! Quiero solicitar el siguiente servicio:\n")
	fmt.Fprintf(&b, "📱 Equipo: %s %s\n", resp.BrandName, resp.ModelName)
	fmt.Fprintf(&b, "🔧 Servicio: %s\n", resp.Title)
	if carrier != nil {
		line := carrier.Name
		if country := model.CountryByID(carrier.CountryID); country != nil {
			line = fmt.Sprintf("%s (%s)", carrier.Name, country.Name)
		}
		fmt.Fprintf(&b, "📡 Operadora: %s\n", line)
	}
	switch resp.Status {
	case model.QuoteStatusPriced:
		fmt.Fprintf(&b, "💵 Precio: USD %s / ARS %s\n",
			formatAmount(*resp.PriceUSD), formatAmount(*resp.PriceARS))
		if resp.CouponCode != "" {
			fmt.Fprintf(&b, "🎟️ Cupón aplicado: %s\n", resp.CouponCode)
		}
	case model.QuoteStatusFree:
		b.WriteString("🎁 Servicio sin costo\n")
	default:
		b.WriteString("💬 Solicito cotización\n")
	}
	return "https://wa.me/" + s.whatsappNumber + "?text=" + url.QueryEscape(b.String())
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
