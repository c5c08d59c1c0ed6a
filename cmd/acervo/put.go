package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/acervo/acervo/internal/ingest"
	"github.com/acervo/acervo/pkg/catalog"
)

func newPutCmd() *cobra.Command {
	var (
		layerName string
		filename  string
	)

	cmd := &cobra.Command{
		Use:   "put <category> <file.json>",
		Short: "Store a JSON document in the lake",
		Long: `Uploads a JSON file into a layer under a dated object path. The category
is normalized into a path slug; "-" reads the document from stdin.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPut(cmd.Context(), putOpts{
				category:  args[0],
				file:      args[1],
				layerName: layerName,
				filename:  filename,
			})
		},
	}

	cmd.Flags().StringVar(&layerName, "layer", "landing", "Layer to write to: landing, raw or trusted")
	cmd.Flags().StringVar(&filename, "filename", "", "Object filename (default: <category>_<timestamp>.json)")

	return cmd
}

type putOpts struct {
	category  string
	file      string
	layerName string
	filename  string
}

func runPut(ctx context.Context, opts putOpts) error {
	layer, err := catalog.ParseLayer(opts.layerName)
	if err != nil {
		return err
	}
	category := ingest.CategorySlug(opts.category)
	if category == "" {
		return fmt.Errorf("category %q normalizes to an empty slug", opts.category)
	}

	var data []byte
	if opts.file == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(opts.file)
	}
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", opts.file, err)
	}

	client, err := newStoreClient(ctx, loadConfig())
	if err != nil {
		return err
	}

	path, err := ingest.NewService(client).UploadJSON(ctx, layer, category, doc, opts.filename)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Stored %s/%s\n", layer.Bucket(), path)
	fmt.Println(path)
	return nil
}

func newPromoteCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "promote <landing-path>",
		Short: "Copy a landing document into the raw layer",
		Long: `Wraps a landing document in a provenance envelope and stores it in the
raw layer under a fresh dated path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPromote(cmd.Context(), args[0], category)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Raw-layer category (default: the landing path's category)")

	return cmd
}

func runPromote(ctx context.Context, landingPath, category string) error {
	client, err := newStoreClient(ctx, loadConfig())
	if err != nil {
		return err
	}

	rawPath, err := ingest.NewService(client).PromoteToRaw(ctx, landingPath, category)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Promoted to %s/%s\n", catalog.LayerRaw.Bucket(), rawPath)
	fmt.Println(rawPath)
	return nil
}
