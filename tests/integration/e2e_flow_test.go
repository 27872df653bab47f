//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAdminCatalogAndQuoteFlow drives the full storefront lifecycle through
// the HTTP API: admin seeds the catalog, a customer requests quotes, a
// coupon is created and applied, overrides change the price.
func TestAdminCatalogAndQuoteFlow(t *testing.T) {
	cleanupTables(t)
	token := adminLogin(t)

	// Admin creates a brand.
	resp, err := postJSON(formatURL("/api/admin/brands"), map[string]any{"name": "Apple"}, token)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var brand struct {
		ID string `json:"id"`
	}
	require.NoError(t, readJSONResponse(resp, &brand))

	// Admin creates a model under the brand.
	resp, err = postJSON(formatURL("/api/admin/models"), map[string]any{
		"name":     "iPhone 15",
		"brand_id": brand.ID,
		"category": "Phone",
	}, token)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var deviceModel struct {
		ID string `json:"id"`
	}
	require.NoError(t, readJSONResponse(resp, &deviceModel))

	// Admin creates a flat-priced service.
	resp, err = postJSON(formatURL("/api/admin/services"), map[string]any{
		"name":  "Liberación de iCloud",
		"price": 100,
	}, token)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var svc struct {
		ID string `json:"id"`
	}
	require.NoError(t, readJSONResponse(resp, &svc))

	// Customer quotes the base price.
	resp, err = postJSON(formatURL("/api/quotes"), map[string]any{
		"model_id":   deviceModel.ID,
		"service_id": svc.ID,
	}, "")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var quote struct {
		Status      string   `json:"status"`
		PriceUSD    *float64 `json:"price_usd"`
		PriceARS    *float64 `json:"price_ars"`
		WhatsAppURL string   `json:"whatsapp_url"`
	}
	require.NoError(t, readJSONResponse(resp, &quote))
	assert.Equal(t, "priced", quote.Status)
	require.NotNil(t, quote.PriceUSD)
	assert.Equal(t, 100.0, *quote.PriceUSD)
	assert.Contains(t, quote.WhatsAppURL, "wa.me")

	// Admin sets a per-model override; the cache must invalidate.
	resp, err = putJSON(formatURL("/api/admin/models/"+deviceModel.ID+"/overrides"),
		map[string]any{svc.ID: 80}, token)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = postJSON(formatURL("/api/quotes"), map[string]any{
		"model_id":   deviceModel.ID,
		"service_id": svc.ID,
	}, "")
	require.NoError(t, err)
	require.NoError(t, readJSONResponse(resp, &quote))
	require.NotNil(t, quote.PriceUSD)
	assert.Equal(t, 80.0, *quote.PriceUSD, "override replaces the base price")

	// Admin creates a coupon and the customer applies it.
	resp, err = postJSON(formatURL("/api/admin/coupons"), map[string]any{
		"code":                "save50",
		"discount_percentage": 50,
		"is_active":           true,
	}, token)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = postJSON(formatURL("/api/quotes"), map[string]any{
		"model_id":    deviceModel.ID,
		"service_id":  svc.ID,
		"coupon_code": "SAVE50",
	}, "")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var discounted struct {
		Status           string   `json:"status"`
		PriceUSD         *float64 `json:"price_usd"`
		OriginalPriceUSD *float64 `json:"original_price_usd"`
		CouponCode       string   `json:"coupon_code"`
	}
	require.NoError(t, readJSONResponse(resp, &discounted))
	require.NotNil(t, discounted.PriceUSD)
	assert.Equal(t, 40.0, *discounted.PriceUSD, "coupon halves the override price")
	require.NotNil(t, discounted.OriginalPriceUSD)
	assert.Equal(t, 80.0, *discounted.OriginalPriceUSD)
	assert.Equal(t, "SAVE50", discounted.CouponCode)

	// An unknown coupon is rejected, not silently ignored.
	resp, err = postJSON(formatURL("/api/quotes"), map[string]any{
		"model_id":    deviceModel.ID,
		"service_id":  svc.ID,
		"coupon_code": "NOPE",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	// Bulk under-construction beats everything.
	resp, err = putJSON(formatURL("/api/admin/models/"+deviceModel.ID+"/overrides"), nil, token)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = postJSON(formatURL("/api/quotes"), map[string]any{
		"model_id":   deviceModel.ID,
		"service_id": svc.ID,
	}, "")
	require.NoError(t, err)
	var ucQuote struct {
		Status   string   `json:"status"`
		PriceUSD *float64 `json:"price_usd"`
	}
	require.NoError(t, readJSONResponse(resp, &ucQuote))
	assert.Equal(t, "under_construction", ucQuote.Status)
	assert.Nil(t, ucQuote.PriceUSD)
}

// TestAdminRoutesRequireAuth verifies the admin group rejects anonymous
// requests.
func TestAdminRoutesRequireAuth(t *testing.T) {
	resp, err := postJSON(formatURL("/api/admin/brands"), map[string]any{"name": "Apple"}, "")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// TestSettingsFlow verifies the settings endpoints round-trip and feed the
// quote pipeline.
func TestSettingsFlow(t *testing.T) {
	cleanupTables(t)
	token := adminLogin(t)

	resp, err := putJSON(formatURL("/api/admin/settings/rate"),
		map[string]any{"usd_to_ars_rate": 1000}, token)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var settings struct {
		USDToARSRate float64 `json:"usd_to_ars_rate"`
	}
	require.NoError(t, readJSONResponse(resp, &settings))
	assert.Equal(t, 1000.0, settings.USDToARSRate)

	// Seed a minimal catalog and confirm ARS follows the new rate.
	resp, err = postJSON(formatURL("/api/admin/brands"), map[string]any{"name": "Apple"}, token)
	require.NoError(t, err)
	var brand struct {
		ID string `json:"id"`
	}
	require.NoError(t, readJSONResponse(resp, &brand))

	resp, err = postJSON(formatURL("/api/admin/models"), map[string]any{
		"name": "iPhone 15", "brand_id": brand.ID, "category": "Phone",
	}, token)
	require.NoError(t, err)
	var deviceModel struct {
		ID string `json:"id"`
	}
	require.NoError(t, readJSONResponse(resp, &deviceModel))

	resp, err = postJSON(formatURL("/api/admin/services"), map[string]any{
		"name": "Liberación de iCloud", "price": 100,
	}, token)
	require.NoError(t, err)
	var svc struct {
		ID string `json:"id"`
	}
	require.NoError(t, readJSONResponse(resp, &svc))

	resp, err = postJSON(formatURL("/api/quotes"), map[string]any{
		"model_id": deviceModel.ID, "service_id": svc.ID,
	}, "")
	require.NoError(t, err)
	var quote struct {
		PriceARS *float64 `json:"price_ars"`
	}
	require.NoError(t, readJSONResponse(resp, &quote))
	require.NotNil(t, quote.PriceARS)
	assert.Equal(t, 100000.0, *quote.PriceARS)
}

// TestSIMUnlockCarrierPricing covers the reserved carrier-priced service:
// the startup seeder guarantees its row exists, per-carrier overrides price
// it, and a carrier without an override stays unpriced.
func TestSIMUnlockCarrierPricing(t *testing.T) {
	cleanupTables(t)
	token := adminLogin(t)

	// cleanupTables truncates the seeded catalog; restore the row the
	// seeder inserts on startup.
	ctx := context.Background()
	_, err := testPool.Exec(ctx,
		`INSERT INTO services (id, name, description) VALUES ('4', 'Desbloqueo SIM', 'Desbloqueo de red por operadora.')`)
	require.NoError(t, err)

	resp, err := postJSON(formatURL("/api/admin/brands"), map[string]any{"name": "Samsung"}, token)
	require.NoError(t, err)
	var brand struct {
		ID string `json:"id"`
	}
	require.NoError(t, readJSONResponse(resp, &brand))

	resp, err = postJSON(formatURL("/api/admin/models"), map[string]any{
		"name": "Galaxy S24", "brand_id": brand.ID, "category": "Phone",
	}, token)
	require.NoError(t, err)
	var deviceModel struct {
		ID string `json:"id"`
	}
	require.NoError(t, readJSONResponse(resp, &deviceModel))

	// Without a carrier override the SIM unlock has no price at all.
	resp, err = postJSON(formatURL("/api/quotes"), map[string]any{
		"model_id":   deviceModel.ID,
		"service_id": "4",
		"carrier_id": "ar-movistar",
	}, "")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var unpriced struct {
		Status   string   `json:"status"`
		PriceUSD *float64 `json:"price_usd"`
	}
	require.NoError(t, readJSONResponse(resp, &unpriced))
	assert.Equal(t, "unpriced", unpriced.Status)
	assert.Nil(t, unpriced.PriceUSD)

	// Admin prices one carrier for this model.
	resp, err = putJSON(formatURL("/api/admin/models/"+deviceModel.ID+"/overrides"),
		map[string]any{"4": map[string]any{"ar-movistar": 45}}, token)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = postJSON(formatURL("/api/quotes"), map[string]any{
		"model_id":   deviceModel.ID,
		"service_id": "4",
		"carrier_id": "ar-movistar",
	}, "")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var priced struct {
		Status      string   `json:"status"`
		PriceUSD    *float64 `json:"price_usd"`
		WhatsAppURL string   `json:"whatsapp_url"`
	}
	require.NoError(t, readJSONResponse(resp, &priced))
	assert.Equal(t, "priced", priced.Status)
	require.NotNil(t, priced.PriceUSD)
	assert.Equal(t, 45.0, *priced.PriceUSD)
	assert.Contains(t, priced.WhatsAppURL, "Movistar")

	// Other carriers remain unpriced for the same model.
	resp, err = postJSON(formatURL("/api/quotes"), map[string]any{
		"model_id":   deviceModel.ID,
		"service_id": "4",
		"carrier_id": "ar-claro",
	}, "")
	require.NoError(t, err)
	var other struct {
		Status string `json:"status"`
	}
	require.NoError(t, readJSONResponse(resp, &other))
	assert.Equal(t, "unpriced", other.Status)
}
