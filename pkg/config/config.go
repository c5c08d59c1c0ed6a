// Package config handles loading and managing Acervo configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for Acervo.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Server ServerConfig `yaml:"server"`
	Ledger LedgerConfig `yaml:"ledger"`
}

// StoreConfig selects and configures the object store backend.
type StoreConfig struct {
	Backend string      `yaml:"backend"` // "s3", "gcs" or "local"
	S3      S3Config    `yaml:"s3"`
	GCS     GCSConfig   `yaml:"gcs"`
	Local   LocalConfig `yaml:"local"`
}

// S3Config configures the S3-compatible backend. Endpoint points at MinIO;
// leave it empty for real AWS.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// GCSConfig configures the Google Cloud Storage backend.
type GCSConfig struct {
	BucketPrefix string `yaml:"bucket_prefix"` // prepended to every bucket name
}

// LocalConfig configures the filesystem backend used for development.
type LocalConfig struct {
	BaseDir string `yaml:"base_dir"`
}

// ServerConfig controls the HTTP daemon.
type ServerConfig struct {
	Addr   string `yaml:"addr"`
	APIKey string `yaml:"api_key"` // empty disables auth
}

// LedgerConfig controls the ingestion ledger database. An empty DSN
// disables the ledger.
type LedgerConfig struct {
	DSN string `yaml:"dsn"`
}

// DefaultConfig returns a Config with sensible defaults: a local MinIO
// endpoint for development.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: "s3",
			S3: S3Config{
				Endpoint: "http://localhost:9000",
				Region:   "us-east-1",
			},
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads a config file from the given path and applies environment
// overrides. If the file does not exist, it returns the default config
// (still subject to the environment).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides config fields from the environment. Secrets are
// expected to arrive this way rather than being committed in YAML.
func (c *Config) applyEnv() {
	setenv := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setenv(&c.Store.Backend, "ACERVO_STORE_BACKEND")
	setenv(&c.Store.S3.Endpoint, "ACERVO_S3_ENDPOINT")
	setenv(&c.Store.S3.Region, "ACERVO_S3_REGION")
	setenv(&c.Store.S3.AccessKey, "ACERVO_S3_ACCESS_KEY")
	setenv(&c.Store.S3.SecretKey, "ACERVO_S3_SECRET_KEY")
	setenv(&c.Store.GCS.BucketPrefix, "ACERVO_GCS_BUCKET_PREFIX")
	setenv(&c.Store.Local.BaseDir, "ACERVO_LOCAL_DIR")
	setenv(&c.Server.Addr, "ACERVO_ADDR")
	setenv(&c.Server.APIKey, "ACERVO_API_KEY")
	setenv(&c.Ledger.DSN, "ACERVO_LEDGER_DSN")
}

// FindConfig looks for acervo.yaml (or .acervo.yaml) in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfig(dir string) string {
	for {
		for _, name := range []string{"acervo.yaml", ".acervo.yaml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
