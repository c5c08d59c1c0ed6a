// Command acervod is the Acervo HTTP daemon. It serves the catalog,
// report and ingest API over the configured object store and records
// ingest events in the Postgres ledger when one is configured.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/acervo/acervo/internal/api"
	"github.com/acervo/acervo/internal/ingest"
	"github.com/acervo/acervo/internal/ledger"
	"github.com/acervo/acervo/pkg/catalog"
	"github.com/acervo/acervo/pkg/config"
	"github.com/acervo/acervo/pkg/store"
)

func main() {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := newStoreClient(ctx, cfg)
	if err != nil {
		log.Fatalf("store client: %v", err)
	}

	rec, closeLedger, err := openLedger(ctx, cfg.Ledger.DSN)
	if err != nil {
		log.Fatalf("ledger: %v", err)
	}
	defer closeLedger()

	handler := api.NewHandler(catalog.NewReader(client), ingest.NewService(client), rec)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.RequestLog(api.CORS(api.APIKeyAuth(cfg.Server.APIKey)(mux))),
	}

	// Graceful shutdown
	go func() {
		log.Printf("starting acervod on %s (store: %s)", cfg.Server.Addr, cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// loadConfig finds and loads the nearest config file, falling back to
// defaults when none exists. Environment overrides apply either way.
func loadConfig() *config.Config {
	cwd, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.Load(config.FindConfig(cwd))
	if err != nil {
		log.Printf("failed to load config, using defaults: %v", err)
		return config.DefaultConfig()
	}
	return cfg
}

// newStoreClient builds the object store client the config selects.
func newStoreClient(ctx context.Context, cfg *config.Config) (store.Client, error) {
	switch cfg.Store.Backend {
	case "", "s3":
		return store.NewS3Client(ctx, store.S3Config{
			Region:    cfg.Store.S3.Region,
			Endpoint:  cfg.Store.S3.Endpoint,
			AccessKey: cfg.Store.S3.AccessKey,
			SecretKey: cfg.Store.S3.SecretKey,
		})
	case "gcs":
		return store.NewGCSClient(ctx, cfg.Store.GCS.BucketPrefix)
	case "local":
		dir := cfg.Store.Local.BaseDir
		if dir == "" {
			dir = "acervo-data"
		}
		return store.NewLocalClient(dir), nil
	}
	return nil, fmt.Errorf("unknown store backend %q (want s3, gcs or local)", cfg.Store.Backend)
}

// openLedger connects the Postgres ledger when a DSN is configured,
// running migrations at boot, and falls back to the in-memory recorder
// otherwise.
func openLedger(ctx context.Context, dsn string) (ledger.Recorder, func(), error) {
	if dsn == "" {
		log.Println("no ledger DSN configured, recording ingest events in memory")
		return ledger.NewMemory(), func() {}, nil
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	if err := ledger.Migrate(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return ledger.NewService(db), func() { db.Close() }, nil
}
