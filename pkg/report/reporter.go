// Package report builds aggregate views over the layered catalog:
// inventory reports, category availability, cross-category statistics
// and consolidated datasets.
package report

import (
	"context"

	"github.com/acervo/acervo/pkg/catalog"
)

// Reporter computes reports over a catalog reader. All operations treat
// "nothing stored yet" as a normal state and return empty results for
// it; only storage and parse failures surface as errors.
type Reporter struct {
	reader *catalog.Reader
}

// NewReporter creates a Reporter over the given reader.
func NewReporter(r *catalog.Reader) *Reporter {
	return &Reporter{reader: r}
}

// RecentEntry is one line of the most-recent listing in a report.
type RecentEntry struct {
	Filename string        `json:"filename"`
	Category string        `json:"category"`
	Layer    catalog.Layer `json:"layer"`
	Date     string        `json:"date"`
}

// CatalogReport summarizes everything currently stored across layers.
type CatalogReport struct {
	TotalEntries int                   `json:"total_entries"`
	ByLayer      map[catalog.Layer]int `json:"by_layer"`
	ByCategory   map[string]int        `json:"by_category"`
	OldestDate   string                `json:"oldest_date,omitempty"`
	NewestDate   string                `json:"newest_date,omitempty"`
	Recent       []RecentEntry         `json:"recent,omitempty"`
}

// Report walks the full index and computes the inventory counts, the
// stored date span and the ten most recent entries.
func (r *Reporter) Report(ctx context.Context) CatalogReport {
	entries := r.reader.Index().List(ctx, catalog.ListOptions{})

	rep := CatalogReport{
		TotalEntries: len(entries),
		ByLayer:      make(map[catalog.Layer]int),
		ByCategory:   make(map[string]int),
	}
	for _, e := range entries {
		rep.ByLayer[e.Layer]++
		rep.ByCategory[e.Category]++
	}
	if len(entries) == 0 {
		return rep
	}

	// The listing is sorted newest first, so the span and the recent
	// block are prefix and suffix reads.
	rep.NewestDate = entries[0].Date
	rep.OldestDate = entries[len(entries)-1].Date

	n := 10
	if len(entries) < n {
		n = len(entries)
	}
	for _, e := range entries[:n] {
		rep.Recent = append(rep.Recent, RecentEntry{
			Filename: e.Filename,
			Category: e.Category,
			Layer:    e.Layer,
			Date:     e.Date,
		})
	}
	return rep
}

// Overview couples the inventory report with per-category availability
// counts, the quick health check printed after a collection run.
type Overview struct {
	Report              CatalogReport `json:"report"`
	CategoriesAvailable int           `json:"categories_available"`
	RankingFiles        int           `json:"ranking_files"`
	OfferFiles          int           `json:"offer_files"`
	ComplaintFiles      int           `json:"complaint_files"`
}

// Overview builds the combined availability view. CategoriesAvailable
// counts the main segments of the newest taxonomy document; the file
// counts span all layers.
func (r *Reporter) Overview(ctx context.Context) (Overview, error) {
	ov := Overview{Report: r.Report(ctx)}

	doc, ok, err := r.reader.MostRecent(ctx, catalog.LayerLanding, "categorias")
	if err != nil {
		return Overview{}, err
	}
	if ok {
		if root, isMap := doc.(map[string]any); isMap {
			if mains, isList := root["mainSegments"].([]any); isList {
				ov.CategoriesAvailable = len(mains)
			}
		}
	}

	idx := r.reader.Index()
	ov.RankingFiles = len(idx.Find(ctx, catalog.Query{Category: "rankings"}))
	ov.OfferFiles = len(idx.Find(ctx, catalog.Query{Category: "ofertas"}))
	ov.ComplaintFiles = len(idx.Find(ctx, catalog.Query{Category: "reclamacoes"}))
	return ov, nil
}
