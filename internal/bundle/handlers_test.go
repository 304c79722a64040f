package bundle_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bundle-api/internal/bundle"
	"github.com/noah-isme/bundle-api/internal/catalog"
	"github.com/noah-isme/bundle-api/internal/copywriter"
	"github.com/noah-isme/bundle-api/internal/pricing"
	"github.com/noah-isme/bundle-api/internal/promo"
	"github.com/noah-isme/bundle-api/internal/recommend"
)

var frozen = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func newHandler(rules []promo.Rule) *bundle.Handler {
	return &bundle.Handler{
		Catalog: catalog.Seed(),
		Rules:   promo.NewSource("", rules),
		Now:     func() time.Time { return frozen },
	}
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestQuoteEndpoint(t *testing.T) {
	h := newHandler(nil)
	rr := httptest.NewRecorder()
	h.Quote(rr, httptest.NewRequest(http.MethodGet, "/api/v1/bundles/quote?bundle=wetv,viu", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var data struct {
		Selection []string               `json:"selection"`
		Quote     pricing.DiscountResult `json:"quote"`
	}
	decodeData(t, rr, &data)
	require.Equal(t, []string{"viu", "wetv"}, data.Selection)
	require.EqualValues(t, 119, data.Quote.FinalPrice)
	require.EqualValues(t, 159, data.Quote.TotalSavings)
	require.NotNil(t, data.Quote.ExactOffer)
	require.Equal(t, "offerGroup12", data.Quote.ExactOffer.ID)
}

func TestQuoteDropsStaleIDs(t *testing.T) {
	h := newHandler(nil)
	rr := httptest.NewRecorder()
	h.Quote(rr, httptest.NewRequest(http.MethodGet, "/api/v1/bundles/quote?bundle=viu,ghost", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var data struct {
		Selection []string `json:"selection"`
	}
	decodeData(t, rr, &data)
	require.Equal(t, []string{"viu"}, data.Selection)
}

func TestQuoteEmptySelection(t *testing.T) {
	h := newHandler(promo.DefaultRules())
	rr := httptest.NewRecorder()
	h.Quote(rr, httptest.NewRequest(http.MethodGet, "/api/v1/bundles/quote", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var data struct {
		Quote pricing.DiscountResult `json:"quote"`
	}
	decodeData(t, rr, &data)
	require.Zero(t, data.Quote.FinalPrice)
	require.Empty(t, data.Quote.AppliedRules)
}

type staticCopy struct{ text string }

func (s staticCopy) Generate(context.Context, catalog.OfferGroup) (string, error) {
	return s.text, nil
}

func TestQuoteIncludesCopyForExactOffer(t *testing.T) {
	h := newHandler(nil)
	h.Copy = &copywriter.Writer{Source: staticCopy{text: "Stream together for less."}}

	rr := httptest.NewRecorder()
	h.Quote(rr, httptest.NewRequest(http.MethodGet, "/api/v1/bundles/quote?bundle=viu,wetv", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var data struct {
		Copy string `json:"copy"`
	}
	decodeData(t, rr, &data)
	require.Equal(t, "Stream together for less.", data.Copy)
}

func TestIncrementsEndpoint(t *testing.T) {
	h := newHandler(nil)
	rr := httptest.NewRecorder()
	h.Increments(rr, httptest.NewRequest(http.MethodGet, "/api/v1/bundles/increments?bundle=netflix-mobile", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var data []pricing.Increment
	decodeData(t, rr, &data)

	byID := make(map[string]pricing.Increment, len(data))
	for _, inc := range data {
		byID[inc.ServiceID] = inc
	}
	require.NotContains(t, byID, "netflix-mobile")
	require.Equal(t, pricing.KindTierDelta, byID["netflix-premium"].Kind)
	require.EqualValues(t, 93, byID["netflix-premium"].Price)
	require.Equal(t, pricing.KindStandalone, byID["spotify"].Kind)
}

func TestRecommendationsEndpoint(t *testing.T) {
	h := newHandler(promo.DefaultRules())
	rr := httptest.NewRecorder()
	h.Recommendations(rr, httptest.NewRequest(http.MethodGet, "/api/v1/bundles/recommendations?bundle=viu&tier=gold", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var data []recommend.Recommendation
	decodeData(t, rr, &data)
	require.NotEmpty(t, data)
	for _, rec := range data {
		require.NotEqual(t, "viu", rec.Service.ID)
	}
}

func toggle(t *testing.T, h *bundle.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bundles/toggle", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.Toggle(rr, req)
	return rr
}

func TestToggleAddsService(t *testing.T) {
	rr := toggle(t, newHandler(nil), `{"bundle":"viu","serviceId":"wetv"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var data struct {
		Bundle    string   `json:"bundle"`
		Selection []string `json:"selection"`
	}
	decodeData(t, rr, &data)
	require.Equal(t, "viu,wetv", data.Bundle)
	require.Equal(t, []string{"viu", "wetv"}, data.Selection)
}

func TestToggleTierConflictIs409(t *testing.T) {
	rr := toggle(t, newHandler(nil), `{"bundle":"netflix-mobile","serviceId":"netflix-basic"}`)
	require.Equal(t, http.StatusConflict, rr.Code)

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Reason        string `json:"reason"`
				ConflictsWith string `json:"conflictsWith"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	require.Equal(t, "SELECTION_CONFLICT", envelope.Error.Code)
	require.Equal(t, "tier_conflict", envelope.Error.Details.Reason)
	require.Equal(t, "netflix-mobile", envelope.Error.Details.ConflictsWith)
}

func TestToggleFullSelectionIs409(t *testing.T) {
	rr := toggle(t, newHandler(nil), `{"bundle":"viu,wetv,iqiyi,spotify","serviceId":"joox"}`)
	require.Equal(t, http.StatusConflict, rr.Code)
}

func TestToggleBadPayload(t *testing.T) {
	rr := toggle(t, newHandler(nil), `{not json`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = toggle(t, newHandler(nil), `{"bundle":"viu"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestReloadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"v1","discount":{"kind":"fixed","value":10}}]`), 0o600))

	rules, err := promo.LoadFile(path)
	require.NoError(t, err)
	h := &bundle.Handler{Catalog: catalog.Seed(), Rules: promo.NewSource(path, rules)}

	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id":"v2","discount":{"kind":"fixed","value":20}},
		{"id":"v3","discount":{"kind":"fixed","value":5}}
	]`), 0o600))

	rr := httptest.NewRecorder()
	h.ReloadRules(rr, httptest.NewRequest(http.MethodPost, "/api/v1/admin/rules/reload", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var data struct {
		Rules int `json:"rules"`
	}
	decodeData(t, rr, &data)
	require.Equal(t, 2, data.Rules)
	require.Equal(t, "v2", h.Rules.Rules()[0].ID)
}

func TestReloadRulesRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"v1","discount":{"kind":"fixed","value":10}}]`), 0o600))

	rules, err := promo.LoadFile(path)
	require.NoError(t, err)
	h := &bundle.Handler{Catalog: catalog.Seed(), Rules: promo.NewSource(path, rules)}

	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))
	rr := httptest.NewRecorder()
	h.ReloadRules(rr, httptest.NewRequest(http.MethodPost, "/api/v1/admin/rules/reload", nil))
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Equal(t, "v1", h.Rules.Rules()[0].ID)
}
