package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/acervo/acervo/pkg/catalog"
	"github.com/acervo/acervo/pkg/store"
)

func newTestService(t *testing.T) (*Service, store.Client) {
	t.Helper()
	client := &store.LocalClient{BaseDir: t.TempDir()}
	svc := NewService(client)
	svc.Logger = log.New(io.Discard, "", 0)
	return svc, client
}

func TestUploadJSON(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	doc := map[string]any{"mainSegments": []any{map[string]any{"shortname": "bancos"}}}
	path, err := svc.UploadJSON(ctx, catalog.LayerLanding, "categorias", doc, "categorias_teste.json")
	if err != nil {
		t.Fatalf("UploadJSON: %v", err)
	}

	entry, err := catalog.DecodePath(path)
	if err != nil {
		t.Fatalf("returned path does not decode: %v", err)
	}
	if entry.Category != "categorias" {
		t.Errorf("Category = %q, want %q", entry.Category, "categorias")
	}
	if entry.Filename != "categorias_teste.json" {
		t.Errorf("Filename = %q, want %q", entry.Filename, "categorias_teste.json")
	}
	if entry.Date != catalog.FormatDate(time.Now()) {
		t.Errorf("Date = %q, want today", entry.Date)
	}

	body, err := client.Get(ctx, catalog.LayerLanding.Bucket(), path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Contains(body, []byte("\n  ")) {
		t.Error("body should be indented JSON")
	}
	var got any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("stored body is not JSON: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("stored doc = %v, want %v", got, doc)
	}
}

func TestUploadJSONGeneratesFilename(t *testing.T) {
	svc, _ := newTestService(t)

	path, err := svc.UploadJSON(context.Background(), catalog.LayerLanding, "rankings", map[string]any{}, "")
	if err != nil {
		t.Fatalf("UploadJSON: %v", err)
	}

	entry, err := catalog.DecodePath(path)
	if err != nil {
		t.Fatalf("returned path does not decode: %v", err)
	}
	if !strings.HasPrefix(entry.Filename, "rankings_") {
		t.Errorf("Filename = %q, want rankings_ prefix", entry.Filename)
	}
	if !strings.HasSuffix(entry.Filename, ".json") {
		t.Errorf("Filename = %q, want .json suffix", entry.Filename)
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(entry.Filename, "rankings_"), ".json")
	if _, err := time.Parse("20060102_150405", stamp); err != nil {
		t.Errorf("Filename timestamp %q does not parse: %v", stamp, err)
	}
}

func TestPromoteToRaw(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	original := map[string]any{"companies": []any{map[string]any{"id": "c1"}}}
	landingPath, err := svc.UploadJSON(ctx, catalog.LayerLanding, "rankings", original, "ranking_bancos_cartoes_1.json")
	if err != nil {
		t.Fatalf("seed landing: %v", err)
	}

	rawPath, err := svc.PromoteToRaw(ctx, landingPath, "")
	if err != nil {
		t.Fatalf("PromoteToRaw: %v", err)
	}

	entry, err := catalog.DecodePath(rawPath)
	if err != nil {
		t.Fatalf("raw path does not decode: %v", err)
	}
	if entry.Category != "rankings" {
		t.Errorf("raw Category = %q, want %q (inherited from landing path)", entry.Category, "rankings")
	}

	body, err := client.Get(ctx, catalog.LayerRaw.Bucket(), rawPath)
	if err != nil {
		t.Fatalf("read raw object: %v", err)
	}
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("raw body is not JSON: %v", err)
	}

	meta, ok := envelope["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("envelope has no metadata object: %v", envelope)
	}
	if meta["pipeline_stage"] != "raw" {
		t.Errorf("pipeline_stage = %v, want %q", meta["pipeline_stage"], "raw")
	}
	if meta["source_path"] != "landing/"+landingPath {
		t.Errorf("source_path = %v, want %q", meta["source_path"], "landing/"+landingPath)
	}
	processedAt, _ := meta["processed_at"].(string)
	if _, err := time.Parse(time.RFC3339, processedAt); err != nil {
		t.Errorf("processed_at %q does not parse as RFC3339: %v", processedAt, err)
	}
	if !reflect.DeepEqual(envelope["data"], original) {
		t.Errorf("data = %v, want original document", envelope["data"])
	}
}

func TestPromoteToRawCategoryOverride(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	landingPath, err := svc.UploadJSON(ctx, catalog.LayerLanding, "teste", map[string]any{"ok": true}, "teste.json")
	if err != nil {
		t.Fatalf("seed landing: %v", err)
	}

	rawPath, err := svc.PromoteToRaw(ctx, landingPath, "auditoria")
	if err != nil {
		t.Fatalf("PromoteToRaw: %v", err)
	}
	entry, err := catalog.DecodePath(rawPath)
	if err != nil {
		t.Fatalf("raw path does not decode: %v", err)
	}
	if entry.Category != "auditoria" {
		t.Errorf("raw Category = %q, want %q", entry.Category, "auditoria")
	}
}

func TestPromoteToRawMissingSource(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.PromoteToRaw(context.Background(), "rankings/2024/01/01/nope.json", "")
	if err == nil {
		t.Fatal("expected error for missing landing object")
	}
	var opErr *store.OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected *store.OpError, got %T: %v", err, err)
	}
	if opErr.Op != "get" {
		t.Errorf("Op = %q, want %q", opErr.Op, "get")
	}
}

// failingStore wraps a Client and fails listings for one bucket.
type failingStore struct {
	store.Client
	failBucket string
}

func (f *failingStore) List(ctx context.Context, bucket, prefix string) ([]store.Object, error) {
	if bucket == f.failBucket {
		return nil, &store.OpError{Op: "list", Bucket: bucket, Err: errors.New("access denied")}
	}
	return f.Client.List(ctx, bucket, prefix)
}

func TestStats(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	seed := []struct {
		layer    catalog.Layer
		category string
		filename string
		doc      any
	}{
		// Half a megabyte so the rounded size is visible.
		{catalog.LayerLanding, "categorias", "categorias_1.json", map[string]any{"blob": strings.Repeat("x", 512*1024)}},
		{catalog.LayerLanding, "rankings", "ranking_bancos_cartoes_1.json", map[string]any{"x": 1}},
		{catalog.LayerLanding, "rankings", "ranking_bancos_cartoes_2.json", map[string]any{"x": 2}},
		{catalog.LayerRaw, "rankings", "ranking_bancos_cartoes_1.json", map[string]any{"x": 3}},
	}
	for _, s := range seed {
		if _, err := svc.UploadJSON(ctx, s.layer, s.category, s.doc, s.filename); err != nil {
			t.Fatalf("seed %s/%s: %v", s.layer, s.filename, err)
		}
	}

	stats := svc.Stats(ctx)

	landing := stats[catalog.LayerLanding]
	if landing.Bucket != catalog.LayerLanding.Bucket() {
		t.Errorf("landing Bucket = %q, want %q", landing.Bucket, catalog.LayerLanding.Bucket())
	}
	if landing.TotalObjects != 3 {
		t.Errorf("landing TotalObjects = %d, want 3", landing.TotalObjects)
	}
	if landing.TotalSizeMB != 0.5 {
		t.Errorf("landing TotalSizeMB = %v, want 0.5", landing.TotalSizeMB)
	}
	if landing.Categories["rankings"] != 2 || landing.Categories["categorias"] != 1 {
		t.Errorf("landing Categories = %v", landing.Categories)
	}

	if stats[catalog.LayerRaw].TotalObjects != 1 {
		t.Errorf("raw TotalObjects = %d, want 1", stats[catalog.LayerRaw].TotalObjects)
	}

	trusted := stats[catalog.LayerTrusted]
	if trusted.TotalObjects != 0 {
		t.Errorf("trusted TotalObjects = %d, want 0", trusted.TotalObjects)
	}
	if trusted.Error != "" {
		t.Errorf("trusted Error = %q, want empty", trusted.Error)
	}
}

func TestStatsFailingLayerIsIsolated(t *testing.T) {
	base := &store.LocalClient{BaseDir: t.TempDir()}
	svc := NewService(&failingStore{Client: base, failBucket: catalog.LayerRaw.Bucket()})
	svc.Logger = log.New(io.Discard, "", 0)
	ctx := context.Background()

	if _, err := svc.UploadJSON(ctx, catalog.LayerLanding, "categorias", map[string]any{}, "c.json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	stats := svc.Stats(ctx)

	if stats[catalog.LayerLanding].TotalObjects != 1 {
		t.Errorf("landing TotalObjects = %d, want 1", stats[catalog.LayerLanding].TotalObjects)
	}
	raw := stats[catalog.LayerRaw]
	if raw.Error == "" {
		t.Error("raw layer should carry its listing error")
	}
	if raw.Bucket != catalog.LayerRaw.Bucket() {
		t.Errorf("raw Bucket = %q, want %q", raw.Bucket, catalog.LayerRaw.Bucket())
	}
	if stats[catalog.LayerTrusted].Error != "" {
		t.Errorf("trusted Error = %q, want empty", stats[catalog.LayerTrusted].Error)
	}
}
