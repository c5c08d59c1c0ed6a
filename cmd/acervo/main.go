// Package main provides the acervo CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acervo/acervo/pkg/catalog"
	"github.com/acervo/acervo/pkg/config"
	"github.com/acervo/acervo/pkg/store"
	"github.com/acervo/acervo/pkg/surface"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "acervo",
		Short: "Catalog and retrieval for the complaint data lake",
		Long: `Acervo lists, fetches, decodes and reports over the JSON documents
stored in the landing, raw and trusted layers of the data lake.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newListCmd(),
		newShowCmd(),
		newReportCmd(),
		newOverviewCmd(),
		newCategoriesCmd(),
		newTopCmd(),
		newCompareCmd(),
		newConsolidateCmd(),
		newCompanyCmd(),
		newPutCmd(),
		newPromoteCmd(),
		newStatsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig finds and loads the nearest config file, falling back to
// defaults when none exists or it fails to parse. Environment overrides
// apply either way.
func loadConfig() *config.Config {
	cwd, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.Load(config.FindConfig(cwd))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
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
		return store.NewLocalClient(firstNonEmpty(cfg.Store.Local.BaseDir, "acervo-data")), nil
	}
	return nil, fmt.Errorf("unknown store backend %q (want s3, gcs or local)", cfg.Store.Backend)
}

// newReader wires a catalog reader over the configured store.
func newReader(ctx context.Context) (*catalog.Reader, error) {
	client, err := newStoreClient(ctx, loadConfig())
	if err != nil {
		return nil, err
	}
	return catalog.NewReader(client), nil
}

// render writes v to stdout in the requested output format.
func render(outputFmt string, v any) error {
	r, err := surface.New(outputFmt)
	if err != nil {
		return err
	}
	return r.Render(os.Stdout, v)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
