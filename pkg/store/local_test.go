package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalClientPutGet(t *testing.T) {
	dir := t.TempDir()
	c := NewLocalClient(dir)
	ctx := context.Background()

	data := []byte(`{"companies":[]}`)
	if err := c.Put(ctx, "reclameaqui-landing", "rankings/2024/01/15/ranking_bancos_cartoes_1.json", data); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := c.Get(ctx, "reclameaqui-landing", "rankings/2024/01/15/ranking_bancos_cartoes_1.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Get = %q, want %q", got, data)
	}

	// Verify file path layout
	expectedPath := filepath.Join(dir, "reclameaqui-landing", "rankings", "2024", "01", "15", "ranking_bancos_cartoes_1.json")
	if _, err := os.Stat(expectedPath); err != nil {
		t.Errorf("expected file at %s: %v", expectedPath, err)
	}
}

func TestLocalClientGetNotFound(t *testing.T) {
	c := NewLocalClient(t.TempDir())

	_, err := c.Get(context.Background(), "reclameaqui-landing", "nonexistent.json")
	if err == nil {
		t.Fatal("expected error for nonexistent object")
	}

	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("error type = %T, want *OpError", err)
	}
	if opErr.Op != "get" {
		t.Errorf("Op = %q, want %q", opErr.Op, "get")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestLocalClientList(t *testing.T) {
	c := NewLocalClient(t.TempDir())
	ctx := context.Background()

	keys := []string{
		"categorias/2024/01/10/categorias_20240110_120000.json",
		"rankings/2024/01/10/ranking_bancos_cartoes_1.json",
		"rankings/2024/01/11/ranking_bancos_cartoes_1.json",
	}
	for _, key := range keys {
		if err := c.Put(ctx, "reclameaqui-landing", key, []byte(`{}`)); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}

	tests := []struct {
		name   string
		prefix string
		want   int
	}{
		{name: "all objects", prefix: "", want: 3},
		{name: "rankings only", prefix: "rankings/", want: 2},
		{name: "no match", prefix: "ofertas/", want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			objects, err := c.List(ctx, "reclameaqui-landing", tc.prefix)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(objects) != tc.want {
				t.Errorf("len(objects) = %d, want %d", len(objects), tc.want)
			}
			for _, obj := range objects {
				if obj.Size != 2 {
					t.Errorf("Size = %d, want 2", obj.Size)
				}
			}
		})
	}
}

func TestLocalClientListMissingBucket(t *testing.T) {
	c := NewLocalClient(t.TempDir())

	objects, err := c.List(context.Background(), "reclameaqui-trusted", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(objects) != 0 {
		t.Errorf("len(objects) = %d, want 0", len(objects))
	}
}
