package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/acervo/acervo/pkg/store"
)

// DecodeError reports a fetched body that is not valid JSON. Nothing is
// cached when it occurs.
type DecodeError struct {
	Layer Layer
	Path  string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s/%s: %v", e.Layer, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Reader fetches and caches document bodies, composing the indexer, the
// query filter and the store. A Reader owns its cache, so tests and
// long-lived services each get isolated cache lifetimes.
type Reader struct {
	store store.Client
	cache *Cache
	idx   *Indexer
}

// NewReader creates a Reader with a fresh cache over the given store.
func NewReader(st store.Client) *Reader {
	return &Reader{
		store: st,
		cache: NewCache(),
		idx:   &Indexer{Store: st},
	}
}

// Index returns the catalog indexer sharing this reader's store.
func (r *Reader) Index() *Indexer { return r.idx }

// Cache returns the reader's document cache.
func (r *Reader) Cache() *Cache { return r.cache }

// ClearCache empties the document cache.
func (r *Reader) ClearCache() { r.cache.Clear() }

// Fetch returns the parsed JSON document stored at (layer, path). With
// useCache a hit returns the cached document without touching the store
// and a miss stores the parsed result; with useCache false the call
// bypasses the cache in both directions, forcing a fresh read.
func (r *Reader) Fetch(ctx context.Context, layer Layer, path string, useCache bool) (any, error) {
	if useCache {
		if doc, ok := r.cache.Get(layer, path); ok {
			return doc, nil
		}
	}

	data, err := r.store.Get(ctx, layer.Bucket(), path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s/%s: %w", layer, path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Layer: layer, Path: path, Err: err}
	}

	if useCache {
		r.cache.Put(layer, path, doc)
	}
	return doc, nil
}

// MostRecent returns the newest document of a category within one layer.
// ok is false when the category has no files yet; that is a normal state,
// not an error.
func (r *Reader) MostRecent(ctx context.Context, layer Layer, category string) (doc any, ok bool, err error) {
	entries := r.idx.Find(ctx, Query{Layer: layer, Category: category})
	if len(entries) == 0 {
		return nil, false, nil
	}
	doc, err = r.Fetch(ctx, layer, entries[0].Path, true)
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

// Collection is one dated document returned by a domain lookup.
type Collection struct {
	Date     string `json:"date"`
	Filename string `json:"filename"`
	Doc      any    `json:"doc"`
}

// CategoryRankings returns every stored ranking page for a category pair
// in one layer, newest first. Files that fail to fetch are logged and
// skipped so one bad object does not hide the rest.
func (r *Reader) CategoryRankings(ctx context.Context, main, secondary string, layer Layer) []Collection {
	entries := r.idx.Find(ctx, Query{
		Layer:            layer,
		Category:         "rankings",
		FilenameContains: RankingPrefix(main, secondary),
	})

	var out []Collection
	for _, e := range entries {
		doc, err := r.Fetch(ctx, e.Layer, e.Path, true)
		if err != nil {
			r.idx.logf("catalog: skipping ranking %s: %v", e.Path, err)
			continue
		}
		out = append(out, Collection{Date: e.Date, Filename: e.Filename, Doc: doc})
	}
	return out
}

// CompanyProfile returns the newest stored profile for a company
// shortname. ok is false when no profile file exists.
func (r *Reader) CompanyProfile(ctx context.Context, shortname string, layer Layer) (doc any, ok bool, err error) {
	entries := r.idx.Find(ctx, Query{
		Layer:            layer,
		Category:         "empresas",
		FilenameContains: CompanyPrefix(shortname),
	})
	if len(entries) == 0 {
		return nil, false, nil
	}
	doc, err = r.Fetch(ctx, entries[0].Layer, entries[0].Path, true)
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

// ComplaintSet is one stored complaint collection for a company.
type ComplaintSet struct {
	Date     string        `json:"date"`
	Kind     ComplaintKind `json:"kind"`
	Doc      any           `json:"doc"`
}

// CompanyComplaints returns every stored complaint collection whose
// filename carries the company id, newest first, tagged with the subset
// kind. Fetch failures are logged and skipped.
func (r *Reader) CompanyComplaints(ctx context.Context, companyID string, layer Layer) []ComplaintSet {
	entries := r.idx.Find(ctx, Query{
		Layer:            layer,
		Category:         "reclamacoes",
		FilenameContains: companyID,
	})

	var out []ComplaintSet
	for _, e := range entries {
		doc, err := r.Fetch(ctx, e.Layer, e.Path, true)
		if err != nil {
			r.idx.logf("catalog: skipping complaints %s: %v", e.Path, err)
			continue
		}
		out = append(out, ComplaintSet{Date: e.Date, Kind: ComplaintKindOf(e.Filename), Doc: doc})
	}
	return out
}
