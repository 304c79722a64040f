package catalog

import (
	"net/http"

	"github.com/noah-isme/bundle-api/internal/common"
)

// Handler exposes the read-only catalog endpoints consumed by the picker UI.
type Handler struct {
	Snapshot *Snapshot
}

// Services handles GET /api/v1/services.
func (h *Handler) Services(w http.ResponseWriter, _ *http.Request) {
	if h.Snapshot == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not loaded", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Snapshot.Services()})
}

// Offers handles GET /api/v1/offers.
func (h *Handler) Offers(w http.ResponseWriter, _ *http.Request) {
	if h.Snapshot == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not loaded", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Snapshot.Offers()})
}
