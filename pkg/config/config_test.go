package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Store.Backend != "s3" {
		t.Errorf("expected default backend 's3', got %q", cfg.Store.Backend)
	}
	if cfg.Store.S3.Endpoint != "http://localhost:9000" {
		t.Errorf("expected default endpoint 'http://localhost:9000', got %q", cfg.Store.S3.Endpoint)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr ':8080', got %q", cfg.Server.Addr)
	}
	if cfg.Ledger.DSN != "" {
		t.Errorf("expected ledger disabled by default, got DSN %q", cfg.Ledger.DSN)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "non-existent file returns defaults",
			yaml: "", // signal: don't create a file
			check: func(t *testing.T, cfg *Config) {
				if cfg.Store.Backend != "s3" {
					t.Errorf("expected default backend, got %q", cfg.Store.Backend)
				}
				if cfg.Server.Addr != ":8080" {
					t.Errorf("expected default addr, got %q", cfg.Server.Addr)
				}
			},
		},
		{
			name: "valid YAML overrides defaults",
			yaml: `
store:
  backend: gcs
  gcs:
    bucket_prefix: "acme-"
server:
  addr: ":9090"
  api_key: "s3cret"
ledger:
  dsn: "postgres://acervo@localhost/acervo?sslmode=disable"
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Store.Backend != "gcs" {
					t.Errorf("expected backend 'gcs', got %q", cfg.Store.Backend)
				}
				if cfg.Store.GCS.BucketPrefix != "acme-" {
					t.Errorf("expected bucket prefix 'acme-', got %q", cfg.Store.GCS.BucketPrefix)
				}
				if cfg.Server.Addr != ":9090" {
					t.Errorf("expected addr ':9090', got %q", cfg.Server.Addr)
				}
				if cfg.Server.APIKey != "s3cret" {
					t.Errorf("expected api key 's3cret', got %q", cfg.Server.APIKey)
				}
				if cfg.Ledger.DSN == "" {
					t.Error("expected ledger DSN to be set")
				}
			},
		},
		{
			name: "partial YAML keeps remaining defaults",
			yaml: `
store:
  s3:
    endpoint: "http://minio:9000"
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Store.S3.Endpoint != "http://minio:9000" {
					t.Errorf("expected endpoint 'http://minio:9000', got %q", cfg.Store.S3.Endpoint)
				}
				if cfg.Store.Backend != "s3" {
					t.Errorf("expected backend default 's3', got %q", cfg.Store.Backend)
				}
				if cfg.Server.Addr != ":8080" {
					t.Errorf("expected addr default ':8080', got %q", cfg.Server.Addr)
				}
			},
		},
		{
			name:    "invalid YAML returns error",
			yaml:    "{{invalid yaml",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "acervo.yaml")

			if tc.yaml == "" && tc.name == "non-existent file returns defaults" {
				// Don't create file - test loading non-existent path
				cfg, err := Load(path)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				tc.check(t, cfg)
				return
			}

			if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
				t.Fatalf("write test config: %v", err)
			}

			cfg, err := Load(path)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "acervo.yaml")
	yaml := `
store:
  backend: s3
  s3:
    endpoint: "http://minio:9000"
    access_key: "from-file"
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}

	t.Setenv("ACERVO_S3_ACCESS_KEY", "from-env")
	t.Setenv("ACERVO_S3_SECRET_KEY", "hunter2")
	t.Setenv("ACERVO_ADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Store.S3.AccessKey != "from-env" {
		t.Errorf("expected env to win over file, got %q", cfg.Store.S3.AccessKey)
	}
	if cfg.Store.S3.SecretKey != "hunter2" {
		t.Errorf("expected secret from env, got %q", cfg.Store.S3.SecretKey)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("expected addr from env, got %q", cfg.Server.Addr)
	}
	// Fields without an override keep the file value.
	if cfg.Store.S3.Endpoint != "http://minio:9000" {
		t.Errorf("expected endpoint from file, got %q", cfg.Store.S3.Endpoint)
	}
}

func TestFindConfig(t *testing.T) {
	t.Run("found in current directory", func(t *testing.T) {
		root := t.TempDir()
		configPath := filepath.Join(root, "acervo.yaml")
		if err := os.WriteFile(configPath, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		got := FindConfig(root)
		if got != configPath {
			t.Errorf("FindConfig = %q, want %q", got, configPath)
		}
	})

	t.Run("found in parent directory", func(t *testing.T) {
		root := t.TempDir()
		configPath := filepath.Join(root, ".acervo.yaml")
		if err := os.WriteFile(configPath, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		sub := filepath.Join(root, "a", "b", "c")
		if err := os.MkdirAll(sub, 0o755); err != nil {
			t.Fatalf("create sub: %v", err)
		}

		got := FindConfig(sub)
		if got != configPath {
			t.Errorf("FindConfig = %q, want %q", got, configPath)
		}
	})

	t.Run("dotted name is the fallback", func(t *testing.T) {
		root := t.TempDir()
		plain := filepath.Join(root, "acervo.yaml")
		dotted := filepath.Join(root, ".acervo.yaml")
		for _, p := range []string{plain, dotted} {
			if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
		}

		got := FindConfig(root)
		if got != plain {
			t.Errorf("FindConfig = %q, want %q", got, plain)
		}
	})

	t.Run("not found", func(t *testing.T) {
		root := t.TempDir()
		got := FindConfig(root)
		if got != "" {
			t.Errorf("FindConfig = %q, want empty", got)
		}
	})
}
