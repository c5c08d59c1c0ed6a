package catalog

import (
	"context"
	"log"
	"sort"

	"github.com/acervo/acervo/pkg/store"
)

// Indexer builds freshness-ordered entry listings over the object store.
type Indexer struct {
	Store  store.Client
	Logger *log.Logger // nil means the standard logger
}

// ListOptions narrows a listing to specific layers or a single category.
type ListOptions struct {
	Layers   []Layer // empty means all three
	Category string  // empty means every category
}

// List returns catalog entries for the requested layers, newest first.
// Keys that do not decode are dropped and logged. A layer whose listing
// fails contributes zero entries and is logged; the remaining layers
// still list. Same-date entries keep the order the store returned them
// in, so repeated listings over an unchanged store are deterministic.
func (ix *Indexer) List(ctx context.Context, opts ListOptions) []Entry {
	layers := opts.Layers
	if len(layers) == 0 {
		layers = Layers()
	}
	prefix := ""
	if opts.Category != "" {
		prefix = opts.Category + "/"
	}

	var entries []Entry
	for _, layer := range layers {
		objects, err := ix.Store.List(ctx, layer.Bucket(), prefix)
		if err != nil {
			ix.logf("catalog: list layer %s: %v", layer, err)
			continue
		}
		for _, obj := range objects {
			e, err := DecodePath(obj.Key)
			if err != nil {
				ix.logf("catalog: dropping key: %v", err)
				continue
			}
			e.Layer = layer
			e.SizeBytes = obj.Size
			entries = append(entries, e)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries
}

// Find lists everything and applies the query, preserving the index order.
func (ix *Indexer) Find(ctx context.Context, q Query) []Entry {
	return Filter(ix.List(ctx, ListOptions{}), q)
}

func (ix *Indexer) logf(format string, args ...any) {
	logger := ix.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}
