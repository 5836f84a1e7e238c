package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vintagecrib/backend/internal/domain/crosspost"
	domainsub "github.com/vintagecrib/backend/internal/domain/subscription"
	"github.com/vintagecrib/backend/internal/interfaces/http/dto"
)

func TestCrossPostHandler_Publish_Success(t *testing.T) {
	f := newAPIFixture(t, domainsub.TierPremium)

	w := f.do(t, http.MethodPost, "/api/v1/items/"+f.item.ID.String()+"/publish",
		dto.PublishRequest{Platforms: []string{"ebay", "depop", "vintage_crib"}})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.True(t, resp.Success)

	data := dataMap(t, resp)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, float64(3), data["published_count"])
	assert.Equal(t, float64(3), data["total_requested"])
	assert.Empty(t, data["denied_platforms"])
	assert.ElementsMatch(t, []any{"ebay", "depop", "vintage_crib"}, data["published_to"])
	assert.Len(t, data["results"], 3)
}

func TestCrossPostHandler_Publish_ManualPackageReturned(t *testing.T) {
	f := newAPIFixture(t, domainsub.TierPremium)

	w := f.do(t, http.MethodPost, "/api/v1/items/"+f.item.ID.String()+"/publish",
		dto.PublishRequest{Platforms: []string{"poshmark"}})

	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decode(t, w))

	results := data["results"].([]any)
	require.Len(t, results, 1)
	result := results[0].(map[string]any)
	assert.Equal(t, "poshmark", result["platform"])
	assert.Equal(t, "manual_prepared", result["mode"])
	assert.Equal(t, true, result["success"])
	assert.Equal(t, false, result["live"])
	require.NotNil(t, result["manual"])
}

func TestCrossPostHandler_Publish_InvalidPlatform(t *testing.T) {
	f := newAPIFixture(t, domainsub.TierPremium)

	w := f.do(t, http.MethodPost, "/api/v1/items/"+f.item.ID.String()+"/publish",
		dto.PublishRequest{Platforms: []string{"etsy"}})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func TestCrossPostHandler_Publish_EmptyPlatformList(t *testing.T) {
	f := newAPIFixture(t, domainsub.TierPremium)

	w := f.do(t, http.MethodPost, "/api/v1/items/"+f.item.ID.String()+"/publish",
		map[string]any{"platforms": []string{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCrossPostHandler_Publish_AllPlatformsDenied(t *testing.T) {
	// Free tier only permits the home platform
	f := newAPIFixture(t, domainsub.TierFree)

	w := f.do(t, http.MethodPost, "/api/v1/items/"+f.item.ID.String()+"/publish",
		dto.PublishRequest{Platforms: []string{"ebay", "poshmark"}})

	require.Equal(t, http.StatusForbidden, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeEntitlementDenied, resp.Error.Code)
}

func TestCrossPostHandler_Publish_PartialDenialStillPublishes(t *testing.T) {
	f := newAPIFixture(t, domainsub.TierFree)

	w := f.do(t, http.MethodPost, "/api/v1/items/"+f.item.ID.String()+"/publish",
		dto.PublishRequest{Platforms: []string{"ebay", "vintage_crib"}})

	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decode(t, w))
	assert.Equal(t, float64(1), data["published_count"])
	assert.ElementsMatch(t, []any{"ebay"}, data["denied_platforms"])
	assert.ElementsMatch(t, []any{"vintage_crib"}, data["published_to"])
}

func TestCrossPostHandler_Publish_UnknownItem(t *testing.T) {
	f := newAPIFixture(t, domainsub.TierPremium)

	w := f.do(t, http.MethodPost, "/api/v1/items/00000000-0000-0000-0000-000000000099/publish",
		dto.PublishRequest{Platforms: []string{"ebay"}})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCrossPostHandler_Publish_RequiresAuth(t *testing.T) {
	f := newAPIFixture(t, domainsub.TierPremium)

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/items/"+f.item.ID.String()+"/publish", nil)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCrossPostHandler_RetryFailed_Empty(t *testing.T) {
	f := newAPIFixture(t, domainsub.TierPremium)

	w := f.do(t, http.MethodPost, "/api/v1/items/retry-failed", dto.RetryFailedRequest{})

	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decode(t, w))
	assert.Equal(t, float64(0), data["retried"])
}

func TestCrossPostHandler_RetryFailed_ReRunsFailedRecord(t *testing.T) {
	f := newAPIFixture(t, domainsub.TierPremium)

	// Seed a failed ledger record eligible for immediate retry
	record, err := crosspost.NewCrossPostRecord(f.item.ID, f.sellerID, crosspost.PlatformEbay)
	require.NoError(t, err)
	record.Status = crosspost.RecordStatusFailed
	record.ErrorMessage = "upstream 500"
	require.NoError(t, f.records.Upsert(context.Background(), record))

	w := f.do(t, http.MethodPost, "/api/v1/items/retry-failed", dto.RetryFailedRequest{})

	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decode(t, w))
	assert.Equal(t, float64(1), data["retried"])

	outcomes := data["outcomes"].([]any)
	require.Len(t, outcomes, 1)
	outcome := outcomes[0].(map[string]any)
	assert.Equal(t, f.item.ID.String(), outcome["item_id"])
	result := outcome["result"].(map[string]any)
	assert.Equal(t, "ebay", result["platform"])
	assert.Equal(t, true, result["success"])
}

func TestCrossPostHandler_RetryFailed_InvalidPlatformFilter(t *testing.T) {
	f := newAPIFixture(t, domainsub.TierPremium)

	platform := "grailed"
	w := f.do(t, http.MethodPost, "/api/v1/items/retry-failed",
		dto.RetryFailedRequest{Platform: &platform})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCrossPostHandler_Ledger(t *testing.T) {
	f := newAPIFixture(t, domainsub.TierPremium)

	// Publish first so the ledger has records
	w := f.do(t, http.MethodPost, "/api/v1/items/"+f.item.ID.String()+"/publish",
		dto.PublishRequest{Platforms: []string{"ebay", "mercari"}})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/items/"+f.item.ID.String()+"/crosspost", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decode(t, w))
	assert.Equal(t, f.item.ID.String(), data["item_id"])
	assert.Len(t, data["records"], 2)

	attempts := data["attempts_by_platform"].(map[string]any)
	assert.Equal(t, float64(1), attempts["ebay"])
	assert.Equal(t, float64(1), attempts["mercari"])
}

func TestCrossPostHandler_Ledger_InvalidID(t *testing.T) {
	f := newAPIFixture(t, domainsub.TierPremium)

	w := f.do(t, http.MethodGet, "/api/v1/items/not-a-uuid/crosspost", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
