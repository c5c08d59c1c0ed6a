// Package ledger records ingest events in Postgres so operators can see
// what entered the lake, where, and when.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acervo/acervo/pkg/catalog"
)

// Event is one recorded upload or promotion.
type Event struct {
	ID         string        `json:"id"`
	Layer      catalog.Layer `json:"layer"`
	Bucket     string        `json:"bucket"`
	Path       string        `json:"path"`
	Category   string        `json:"category"`
	Filename   string        `json:"filename"`
	SizeBytes  int64         `json:"size_bytes"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// Recorder is the ledger surface the daemon depends on. Service
// implements it over Postgres; Memory implements it in-process.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
	Recent(ctx context.Context, limit int) ([]Event, error)
	CountByLayer(ctx context.Context) (map[catalog.Layer]int, error)
}

// Service provides the ledger backed by Postgres.
type Service struct {
	db *sql.DB
}

// NewService creates a ledger Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Record inserts one event. A missing id or timestamp is filled in.
func (s *Service) Record(ctx context.Context, ev Event) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.RecordedAt.IsZero() {
		ev.RecordedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ingest_events (id, layer, bucket, path, category, filename, size_bytes, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ev.ID, string(ev.Layer), ev.Bucket, ev.Path, ev.Category, ev.Filename, ev.SizeBytes, ev.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("record ingest event: %w", err)
	}
	return nil
}

// Recent returns the newest events, most recent first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, layer, bucket, path, category, filename, size_bytes, recorded_at
		 FROM ingest_events ORDER BY recorded_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list ingest events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var layer string
		if err := rows.Scan(&ev.ID, &layer, &ev.Bucket, &ev.Path, &ev.Category, &ev.Filename, &ev.SizeBytes, &ev.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan ingest event: %w", err)
		}
		ev.Layer = catalog.Layer(layer)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// CountByLayer returns event counts grouped by layer.
func (s *Service) CountByLayer(ctx context.Context) (map[catalog.Layer]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT layer, count(*) FROM ingest_events GROUP BY layer`,
	)
	if err != nil {
		return nil, fmt.Errorf("count ingest events: %w", err)
	}
	defer rows.Close()

	counts := make(map[catalog.Layer]int)
	for rows.Next() {
		var layer string
		var n int
		if err := rows.Scan(&layer, &n); err != nil {
			return nil, fmt.Errorf("scan ingest event count: %w", err)
		}
		counts[catalog.Layer(layer)] = n
	}
	return counts, rows.Err()
}
