package api

import (
	"net/http"
	"strconv"

	"github.com/acervo/acervo/internal/ledger"
)

// ledgerResponse is the body for GET /api/v1/ledger.
type ledgerResponse struct {
	Events  []ledger.Event `json:"events"`
	ByLayer map[string]int `json:"by_layer"`
}

// handleLedger lists recent ingest events. ?limit= caps the event count.
func (h *Handler) handleLedger(w http.ResponseWriter, r *http.Request) {
	if h.ledger == nil {
		writeError(w, http.StatusServiceUnavailable, "ledger not configured")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events, err := h.ledger.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	counts, err := h.ledger.CountByLayer(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := ledgerResponse{Events: events, ByLayer: make(map[string]int, len(counts))}
	for layer, n := range counts {
		resp.ByLayer[string(layer)] = n
	}
	writeJSON(w, http.StatusOK, resp)
}
