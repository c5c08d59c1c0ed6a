package api

import (
	"net/http"
	"strconv"

	"github.com/acervo/acervo/pkg/catalog"
	"github.com/acervo/acervo/pkg/report"
)

// handleCatalog handles GET /api/v1/catalog. Filters: ?layer=, ?category=,
// ?contains=, ?from=, ?to= ("YYYY/MM/DD", inclusive), ?limit=.
func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var layers []catalog.Layer
	if name := q.Get("layer"); name != "" {
		layer, err := catalog.ParseLayer(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		layers = []catalog.Layer{layer}
	}

	entries := h.reader.Index().List(r.Context(), catalog.ListOptions{
		Layers:   layers,
		Category: q.Get("category"),
	})
	entries = catalog.Filter(entries, catalog.Query{
		FilenameContains: q.Get("contains"),
		DateFrom:         q.Get("from"),
		DateTo:           q.Get("to"),
	})

	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit >= 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.reporter.Report(r.Context()))
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.reporter.Overview(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.reporter.CategoriesWithRankingData(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// handleCompare handles GET /api/v1/compare?pairs=main/sec,main/sec&metric=.
func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pairs, err := report.ParsePairs(q.Get("pairs"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(pairs) == 0 {
		writeError(w, http.StatusBadRequest, "pairs is required (main/secondary, comma-separated)")
		return
	}

	writeJSON(w, http.StatusOK, h.reporter.CompareCategories(r.Context(), pairs, q.Get("metric")))
}

// handleConsolidated handles GET /api/v1/consolidated. ?offers=0 skips
// the offers join.
func (h *Handler) handleConsolidated(w http.ResponseWriter, r *http.Request) {
	includeOffers := r.URL.Query().Get("offers") != "0"
	table, err := h.reporter.ConsolidatedDataset(r.Context(), includeOffers)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *Handler) handleOffers(w http.ResponseWriter, r *http.Request) {
	table, err := h.reporter.CompaniesWithOffers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *Handler) handleCompany(w http.ResponseWriter, r *http.Request) {
	ov, err := h.reporter.CompanyOverview(r.Context(), r.PathValue("shortname"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ov.Found {
		writeError(w, http.StatusNotFound, "company not found")
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ingest.Stats(r.Context()))
}
