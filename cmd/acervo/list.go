package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/acervo/acervo/pkg/catalog"
)

func newListCmd() *cobra.Command {
	var (
		layerName string
		category  string
		contains  string
		dateFrom  string
		dateTo    string
		limit     int
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries across the lake layers",
		Long:  `Lists stored documents newest first, with optional layer, category, filename and date filters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), listOpts{
				layerName: layerName,
				category:  category,
				contains:  contains,
				dateFrom:  dateFrom,
				dateTo:    dateTo,
				limit:     limit,
				outputFmt: outputFmt,
			})
		},
	}

	cmd.Flags().StringVar(&layerName, "layer", "", "Restrict to one layer: landing, raw or trusted")
	cmd.Flags().StringVar(&category, "category", "", "Restrict to one category")
	cmd.Flags().StringVar(&contains, "contains", "", "Keep filenames containing this substring")
	cmd.Flags().StringVar(&dateFrom, "from", "", "Earliest date, inclusive (YYYY/MM/DD)")
	cmd.Flags().StringVar(&dateTo, "to", "", "Latest date, inclusive (YYYY/MM/DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum entries to print (0 = all)")
	cmd.Flags().StringVar(&outputFmt, "output", "table", "Output format: table, json or markdown")

	return cmd
}

type listOpts struct {
	layerName string
	category  string
	contains  string
	dateFrom  string
	dateTo    string
	limit     int
	outputFmt string
}

func runList(ctx context.Context, opts listOpts) error {
	var layers []catalog.Layer
	if opts.layerName != "" {
		layer, err := catalog.ParseLayer(opts.layerName)
		if err != nil {
			return err
		}
		layers = []catalog.Layer{layer}
	}

	reader, err := newReader(ctx)
	if err != nil {
		return err
	}

	entries := reader.Index().List(ctx, catalog.ListOptions{
		Layers:   layers,
		Category: opts.category,
	})
	entries = catalog.Filter(entries, catalog.Query{
		FilenameContains: opts.contains,
		DateFrom:         opts.dateFrom,
		DateTo:           opts.dateTo,
	})
	if opts.limit > 0 && len(entries) > opts.limit {
		entries = entries[:opts.limit]
	}

	return render(opts.outputFmt, entries)
}
