// Package api implements the acervod REST API: catalog and report reads,
// document ingest, and the ingest-event ledger.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/acervo/acervo/internal/ingest"
	"github.com/acervo/acervo/internal/ledger"
	"github.com/acervo/acervo/pkg/catalog"
	"github.com/acervo/acervo/pkg/report"
)

// Handler is the top-level API handler for the acervod daemon.
type Handler struct {
	reader   *catalog.Reader
	reporter *report.Reporter
	ingest   *ingest.Service
	ledger   ledger.Recorder
}

// NewHandler creates an API handler. The ledger may be nil, which
// disables event recording and the ledger endpoint.
func NewHandler(reader *catalog.Reader, ingestSvc *ingest.Service, rec ledger.Recorder) *Handler {
	return &Handler{
		reader:   reader,
		reporter: report.NewReporter(reader),
		ingest:   ingestSvc,
		ledger:   rec,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Read endpoints
	mux.HandleFunc("GET /api/v1/catalog", h.handleCatalog)
	mux.HandleFunc("GET /api/v1/report", h.handleReport)
	mux.HandleFunc("GET /api/v1/overview", h.handleOverview)
	mux.HandleFunc("GET /api/v1/categories", h.handleCategories)
	mux.HandleFunc("GET /api/v1/compare", h.handleCompare)
	mux.HandleFunc("GET /api/v1/consolidated", h.handleConsolidated)
	mux.HandleFunc("GET /api/v1/offers", h.handleOffers)
	mux.HandleFunc("GET /api/v1/companies/{shortname}", h.handleCompany)
	mux.HandleFunc("GET /api/v1/stats", h.handleStats)
	mux.HandleFunc("GET /api/v1/ledger", h.handleLedger)
	mux.HandleFunc("GET /api/v1/documents/{layer}/{path...}", h.handleGetDocument)

	// Write endpoints
	mux.HandleFunc("POST /api/v1/documents/{layer}/{category}", h.handleUploadDocument)
	mux.HandleFunc("POST /api/v1/promote", h.handlePromote)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
