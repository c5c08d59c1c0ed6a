// Package ingest implements the write side of the pipeline: JSON uploads
// into a layer, landing-to-raw promotion, and bucket statistics.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/acervo/acervo/pkg/catalog"
	"github.com/acervo/acervo/pkg/store"
)

// Service writes documents into the lake through the object store.
type Service struct {
	Store  store.Client
	Logger *log.Logger // nil means the standard logger
}

// NewService creates an ingest Service over the given store.
func NewService(st store.Client) *Service {
	return &Service{Store: st}
}

// UploadJSON stores a document in the given layer under a dated object
// path. An empty filename generates one from the category and the
// current timestamp. Returns the object path within the layer bucket.
func (s *Service) UploadJSON(ctx context.Context, layer catalog.Layer, category string, doc any, filename string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("%s_%s.json", category, time.Now().Format("20060102_150405"))
	}
	path := catalog.EncodePath(category, filename, time.Now())

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	if err := s.Store.Put(ctx, layer.Bucket(), path, body); err != nil {
		return "", err
	}
	s.logf("ingest: stored %s/%s", layer.Bucket(), path)
	return path, nil
}

// PromoteToRaw copies a landing document into the raw layer, wrapped in
// a metadata envelope that records provenance. The raw category defaults
// to the landing path's category. Returns the raw object path.
func (s *Service) PromoteToRaw(ctx context.Context, landingPath, rawCategory string) (string, error) {
	body, err := s.Store.Get(ctx, catalog.LayerLanding.Bucket(), landingPath)
	if err != nil {
		return "", err
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("parse landing document %s: %w", landingPath, err)
	}

	if rawCategory == "" {
		rawCategory, _, _ = strings.Cut(landingPath, "/")
	}

	envelope := map[string]any{
		"metadata": map[string]any{
			"processed_at":   time.Now().Format(time.RFC3339),
			"source_path":    "landing/" + landingPath,
			"pipeline_stage": "raw",
		},
		"data": doc,
	}
	return s.UploadJSON(ctx, catalog.LayerRaw, rawCategory, envelope, "")
}

// LayerStats summarizes one layer's bucket.
type LayerStats struct {
	Bucket       string         `json:"bucket"`
	TotalObjects int            `json:"total_objects"`
	TotalSizeMB  float64        `json:"total_size_mb"`
	Categories   map[string]int `json:"categories"`
	Error        string         `json:"error,omitempty"`
}

// Stats reports object counts and sizes per layer. A layer whose listing
// fails carries its error string; the remaining layers still report.
func (s *Service) Stats(ctx context.Context) map[catalog.Layer]LayerStats {
	stats := make(map[catalog.Layer]LayerStats, len(catalog.Layers()))
	for _, layer := range catalog.Layers() {
		objects, err := s.Store.List(ctx, layer.Bucket(), "")
		if err != nil {
			stats[layer] = LayerStats{
				Bucket:     layer.Bucket(),
				Categories: map[string]int{},
				Error:      err.Error(),
			}
			continue
		}

		ls := LayerStats{
			Bucket:       layer.Bucket(),
			TotalObjects: len(objects),
			Categories:   make(map[string]int),
		}
		var totalSize int64
		for _, obj := range objects {
			totalSize += obj.Size
			category, _, _ := strings.Cut(obj.Key, "/")
			ls.Categories[category]++
		}
		ls.TotalSizeMB = math.Round(float64(totalSize)/(1<<20)*100) / 100
		stats[layer] = ls
	}
	return stats
}

func (s *Service) logf(format string, args ...any) {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}
