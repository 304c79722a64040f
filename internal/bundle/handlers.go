// Package bundle exposes the pricing engine over HTTP.
package bundle

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/noah-isme/bundle-api/internal/catalog"
	"github.com/noah-isme/bundle-api/internal/common"
	"github.com/noah-isme/bundle-api/internal/copywriter"
	"github.com/noah-isme/bundle-api/internal/obs"
	"github.com/noah-isme/bundle-api/internal/pricing"
	"github.com/noah-isme/bundle-api/internal/profile"
	"github.com/noah-isme/bundle-api/internal/promo"
	"github.com/noah-isme/bundle-api/internal/recommend"
	"github.com/noah-isme/bundle-api/internal/selection"
)

// Handler serves the bundle quote, increments, recommendations and toggle
// endpoints. Now is injectable so seasonal windows are testable.
type Handler struct {
	Catalog *catalog.Snapshot
	Rules   *promo.Source
	Copy    *copywriter.Writer
	Now     func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) rules() []promo.Rule {
	if h.Rules == nil {
		return nil
	}
	return h.Rules.Rules()
}

type quoteResponse struct {
	Selection []string               `json:"selection"`
	Quote     pricing.DiscountResult `json:"quote"`
	Copy      string                 `json:"copy,omitempty"`
}

// Quote handles GET /api/v1/bundles/quote.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	sel := selection.Parse(r.URL.Query().Get("bundle"), h.Catalog)
	prof := profile.FromQuery(r.URL.Query())

	result, err := pricing.Quote(sel, h.Catalog, h.rules(), prof, h.now())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to price selection", nil)
		return
	}
	recordQuote(result, started)

	resp := quoteResponse{Selection: sel.IDs(), Quote: result}
	if h.Copy != nil && result.ExactOffer != nil {
		resp.Copy = h.Copy.Blurb(r.Context(), *result.ExactOffer)
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": resp})
}

// Increments handles GET /api/v1/bundles/increments: one incremental price per
// service the user could still add.
func (h *Handler) Increments(w http.ResponseWriter, r *http.Request) {
	sel := selection.Parse(r.URL.Query().Get("bundle"), h.Catalog)
	prof := profile.FromQuery(r.URL.Query())
	now := h.now()

	increments := make([]pricing.Increment, 0, h.Catalog.Len())
	for _, svc := range h.Catalog.Services() {
		if sel.Has(svc.ID) {
			continue
		}
		inc, err := pricing.PriceIfAdded(svc.ID, sel, h.Catalog, h.rules(), prof, now)
		if err != nil {
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to price candidate", nil)
			return
		}
		increments = append(increments, inc)
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": increments})
}

// Recommendations handles GET /api/v1/bundles/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	sel := selection.Parse(r.URL.Query().Get("bundle"), h.Catalog)
	prof := profile.FromQuery(r.URL.Query())

	recs := recommend.Rank(h.Catalog, sel, h.rules(), prof, h.now())
	if obs.RecommendationTotal != nil {
		obs.RecommendationTotal.Inc()
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": recs})
}

type toggleRequest struct {
	Bundle    string `json:"bundle"`
	ServiceID string `json:"serviceId"`
}

// Toggle handles POST /api/v1/bundles/toggle. Refused changes come back as
// 409 with the conflict reason; the engine itself never sees them.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	var payload toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid toggle payload", nil)
		return
	}
	serviceID := strings.TrimSpace(payload.ServiceID)
	if serviceID == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "serviceId is required", nil)
		return
	}

	sel := selection.Parse(payload.Bundle, h.Catalog)
	next, err := selection.Toggle(sel, serviceID, h.Catalog)
	if err != nil {
		var conflict *selection.ConflictError
		if errors.As(err, &conflict) {
			if obs.ToggleRejectedTotal != nil {
				obs.ToggleRejectedTotal.WithLabelValues(conflict.Reason).Inc()
			}
			common.JSONError(w, http.StatusConflict, "SELECTION_CONFLICT", conflict.Error(), map[string]any{
				"reason":        conflict.Reason,
				"serviceId":     conflict.ServiceID,
				"conflictsWith": conflict.ConflictsWith,
			})
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to toggle selection", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"bundle":    selection.Format(next),
		"selection": next.IDs(),
	}})
}

// ReloadRules handles POST /api/v1/admin/rules/reload. The catalog stays
// untouched; a failed reload keeps the previous rule set serving.
func (h *Handler) ReloadRules(w http.ResponseWriter, r *http.Request) {
	if h.Rules == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "rule source not configured", nil)
		return
	}
	n, err := h.Rules.Reload()
	if err != nil {
		common.JSONError(w, http.StatusUnprocessableEntity, "RULES_INVALID", "rule set rejected", map[string]any{
			"error": err.Error(),
		})
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"rules": n}})
}

func recordQuote(result pricing.DiscountResult, started time.Time) {
	if obs.QuoteTotal != nil {
		match := "none"
		switch {
		case result.ExactOffer != nil:
			match = "exact"
		case result.NextBestOffer != nil:
			match = "next_best"
		}
		obs.QuoteTotal.WithLabelValues(match).Inc()
	}
	if obs.QuoteDuration != nil {
		obs.QuoteDuration.Observe(float64(time.Since(started).Microseconds()) / 1000)
	}
	if obs.RulesAppliedTotal != nil {
		for _, rule := range result.AppliedRules {
			obs.RulesAppliedTotal.WithLabelValues(rule).Inc()
		}
	}
}
