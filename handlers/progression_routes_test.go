package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"avatar-progression/middleware"
	"avatar-progression/progression"
	"avatar-progression/services"
	"avatar-progression/storetest"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceToken = "test-token"

type holderVerifier struct{ holder string }

func (v holderVerifier) VerifyAvatar(_ context.Context, _, holder string) error {
	if holder != v.holder {
		return progression.ErrWrongHolder
	}
	return nil
}

func (v holderVerifier) VerifyTrait(_ context.Context, mint, holder string) (progression.TraitID, error) {
	if holder != v.holder {
		return 0, progression.ErrWrongHolder
	}
	if strings.HasPrefix(mint, "hat-") {
		return progression.TraitHat, nil
	}
	return 0, progression.ErrWrongCollection
}

func (v holderVerifier) VerifyToken(_ context.Context, _, holder string) error {
	if holder != v.holder {
		return progression.ErrInsufficientBalance
	}
	return nil
}

type okGateway struct{ err error }

func (g okGateway) Mint(context.Context, services.MintOrder) error { return g.err }
func (g okGateway) Burn(context.Context, services.BurnOrder) error { return g.err }
func (g okGateway) UpdateMetadata(context.Context, string, string) error { return g.err }

func newTestApp(t *testing.T, gw services.TokenGateway) *fiber.App {
	t.Helper()
	db := storetest.NewDB(t)
	catalog := progression.NewCatalog(map[progression.AssetID]string{
		progression.AssetIDCard:      "mint-id-card",
		progression.AssetBadgeBronze: "mint-bronze",
		progression.AssetBadgeSilver: "mint-silver",
	})
	verifier := holderVerifier{holder: "wallet-alice"}

	app := fiber.New()
	app.Use(middleware.GatewayAuthMiddleware(serviceToken))
	SetupProgressionRoutes(app, ProgressionServices{
		Catalog:  catalog,
		Traits:   services.NewTraitService(db, verifier, gw, "https://cdn.test"),
		Badges:   services.NewBadgeService(db, catalog, verifier, gw, services.GenerationV2, "https://cdn.test"),
		Rankings: services.NewRankingService(db, services.GenerationV2),
		History:  services.NewProgressService(db),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string, headers map[string]string) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Authorization", "Bearer "+serviceToken)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

var alice = map[string]string{
	"X-User-ID":        "user-1",
	"X-Wallet-Address": "wallet-alice",
}

func TestGatewayAuthRequired(t *testing.T) {
	app := newTestApp(t, okGateway{})

	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req.Header.Set("Authorization", "Bearer wrong")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	status, _ := do(t, app, http.MethodGet, "/catalog", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestSecuredRoutesNeedHolder(t *testing.T) {
	app := newTestApp(t, okGateway{})

	status, _ := do(t, app, http.MethodPost, "/s/avatars/a1/traits", `{"trait_mint":"hat-1"}`, map[string]string{"X-User-ID": "user-1"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = do(t, app, http.MethodPost, "/s/admin/rankings/migrate", "", alice)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestTraitMergeRoute(t *testing.T) {
	app := newTestApp(t, okGateway{})

	status, body := do(t, app, http.MethodPost, "/s/avatars/a1/traits", `{"trait_mint":"hat-1"}`, alice)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["initialized"])

	status, _ = do(t, app, http.MethodPost, "/s/avatars/a1/traits", `{"trait_mint":"hat-2"}`, alice)
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = do(t, app, http.MethodPost, "/s/avatars/a1/traits", `{"trait_mint":"eyes-1"}`, alice)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = do(t, app, http.MethodPost, "/s/avatars/a1/traits", `{}`, alice)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = do(t, app, http.MethodGet, "/avatars/a1/progress", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	traits := body["traits"].(map[string]interface{})
	slots := traits["slots"].(map[string]interface{})
	assert.Equal(t, true, slots["hat"])
}

func TestBadgeRoutes(t *testing.T) {
	app := newTestApp(t, okGateway{})

	status, _ := do(t, app, http.MethodPost, "/s/avatars/a1/badges/mint", `{"asset_id":3,"token_mint":"mint-silver"}`, alice)
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = do(t, app, http.MethodPost, "/s/avatars/a1/badges/mint", `{"asset_id":2,"token_mint":"mint-silver"}`, alice)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body := do(t, app, http.MethodPost, "/s/avatars/a1/badges/mint", `{"asset_id":2,"token_mint":"mint-bronze"}`, alice)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "v2", body["generation"])

	status, body = do(t, app, http.MethodPost, "/s/avatars/a1/badges/merge", `{"asset_id":2,"token_mint":"mint-bronze"}`, alice)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "bronze", body["rank"])
	assert.Equal(t, "Bronze", body["rank_name"])

	status, body = do(t, app, http.MethodGet, "/avatars/a1/history?page=1&size=10", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(2), body["total"])

	status, _ = do(t, app, http.MethodPost, "/s/assets/purchase", `{"asset_id":1,"token_mint":"mint-id-card"}`, alice)
	assert.Equal(t, fiber.StatusCreated, status)

	status, _ = do(t, app, http.MethodPost, "/s/assets/purchase", `{"asset_id":2,"token_mint":"mint-bronze"}`, alice)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGatewayFailureMapsTo502(t *testing.T) {
	app := newTestApp(t, okGateway{err: services.ErrGatewayFailed})

	status, body := do(t, app, http.MethodPost, "/s/avatars/a1/badges/mint", `{"asset_id":2,"token_mint":"mint-bronze"}`, alice)
	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, "badge mint failed", body["error"])
}

func TestAdminMigrate(t *testing.T) {
	app := newTestApp(t, okGateway{})
	admin := map[string]string{
		"X-User-ID":        "user-1",
		"X-Wallet-Address": "wallet-alice",
		"X-User-Roles":     "player, admin",
	}

	status, body := do(t, app, http.MethodPost, "/s/admin/rankings/migrate", `{"batch_size":10}`, admin)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(0), body["migrated"])
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusGone, statusFor(progression.ErrSupplyExhausted))
	assert.Equal(t, fiber.StatusForbidden, statusFor(progression.ErrAmountNotExactlyOne))
	assert.Equal(t, fiber.StatusBadGateway, statusFor(services.ErrIndexerUnavailable))
	assert.Equal(t, fiber.StatusInternalServerError, statusFor(io.EOF))
}
