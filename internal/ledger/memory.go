package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/acervo/acervo/pkg/catalog"
)

// Memory is an in-process Recorder used when no database is configured,
// and in tests.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{}
}

// Record appends one event, filling a missing id or timestamp.
func (m *Memory) Record(ctx context.Context, ev Event) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.RecordedAt.IsZero() {
		ev.RecordedAt = time.Now().UTC()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

// Recent returns the newest events, most recent first.
func (m *Memory) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var events []Event
	for i := len(m.events) - 1; i >= 0 && len(events) < limit; i-- {
		events = append(events, m.events[i])
	}
	return events, nil
}

// CountByLayer returns event counts grouped by layer.
func (m *Memory) CountByLayer(ctx context.Context) (map[catalog.Layer]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[catalog.Layer]int)
	for _, ev := range m.events {
		counts[ev.Layer]++
	}
	return counts, nil
}
