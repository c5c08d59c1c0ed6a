package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/acervo/acervo/internal/ingest"
	"github.com/acervo/acervo/internal/ledger"
	"github.com/acervo/acervo/pkg/catalog"
	"github.com/acervo/acervo/pkg/decode"
	"github.com/acervo/acervo/pkg/store"
)

// handleGetDocument handles GET /api/v1/documents/{layer}/{path...}.
// ?cache=0 bypasses the document cache, ?decoded=1 returns the tabular
// decoding (optionally ?variant=), and ?summary=1 returns a shape summary.
func (h *Handler) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	layer, err := catalog.ParseLayer(r.PathValue("layer"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	path := r.PathValue("path")
	useCache := r.URL.Query().Get("cache") != "0"

	doc, err := h.reader.Fetch(r.Context(), layer, path, useCache)
	if err != nil {
		var opErr *store.OpError
		if errors.As(err, &opErr) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	q := r.URL.Query()
	switch {
	case q.Get("summary") == "1":
		writeJSON(w, http.StatusOK, decode.Summarize(doc))
	case q.Get("decoded") == "1":
		variant, err := decode.ParseVariant(q.Get("variant"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, decode.Decode(doc, variant))
	default:
		writeJSON(w, http.StatusOK, doc)
	}
}

// handleUploadDocument handles POST /api/v1/documents/{layer}/{category}.
// The body is the JSON document; ?filename= overrides the generated name.
func (h *Handler) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	layer, err := catalog.ParseLayer(r.PathValue("layer"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	category := ingest.CategorySlug(r.PathValue("category"))
	if category == "" {
		writeError(w, http.StatusBadRequest, "invalid category")
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	path, err := h.ingest.UploadJSON(r.Context(), layer, category, doc, r.URL.Query().Get("filename"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store document: "+err.Error())
		return
	}

	h.recordEvent(r.Context(), layer, path, int64(len(data)))
	writeJSON(w, http.StatusCreated, map[string]string{
		"layer":  string(layer),
		"bucket": layer.Bucket(),
		"path":   path,
	})
}

// promoteRequest is the JSON body for POST /api/v1/promote.
type promoteRequest struct {
	Path     string `json:"path"`
	Category string `json:"category"` // optional override for the raw layer
}

// handlePromote copies a landing document into the raw layer.
func (h *Handler) handlePromote(w http.ResponseWriter, r *http.Request) {
	var req promoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	rawPath, err := h.ingest.PromoteToRaw(r.Context(), req.Path, req.Category)
	if err != nil {
		var opErr *store.OpError
		if errors.As(err, &opErr) && opErr.Op == "get" {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "promote: "+err.Error())
		return
	}

	h.recordEvent(r.Context(), catalog.LayerRaw, rawPath, 0)
	writeJSON(w, http.StatusCreated, map[string]string{
		"layer":  string(catalog.LayerRaw),
		"bucket": catalog.LayerRaw.Bucket(),
		"path":   rawPath,
	})
}

// recordEvent writes a ledger entry for a stored object. Ledger failures
// are logged, not surfaced; the object is already stored. size is the
// payload size as received, 0 when unknown.
func (h *Handler) recordEvent(ctx context.Context, layer catalog.Layer, path string, size int64) {
	if h.ledger == nil {
		return
	}
	ev := ledger.Event{Layer: layer, Bucket: layer.Bucket(), Path: path, SizeBytes: size}
	if entry, err := catalog.DecodePath(path); err == nil {
		ev.Category = entry.Category
		ev.Filename = entry.Filename
	}
	if err := h.ledger.Record(ctx, ev); err != nil {
		log.Printf("api: record ingest event for %s/%s: %v", layer, path, err)
	}
}
