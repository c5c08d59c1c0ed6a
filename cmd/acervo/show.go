package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/acervo/acervo/pkg/catalog"
	"github.com/acervo/acervo/pkg/decode"
)

func newShowCmd() *cobra.Command {
	var (
		layerName string
		noCache   bool
		decoded   bool
		variant   string
		summary   bool
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "show <path>",
		Short: "Fetch one stored document",
		Long: `Fetches a document by its object path within a layer and prints it raw,
decoded into a flat table, or summarized by shape.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), showOpts{
				path:      args[0],
				layerName: layerName,
				noCache:   noCache,
				decoded:   decoded,
				variant:   variant,
				summary:   summary,
				outputFmt: outputFmt,
			})
		},
	}

	cmd.Flags().StringVar(&layerName, "layer", "landing", "Layer to read from: landing, raw or trusted")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the document cache")
	cmd.Flags().BoolVar(&decoded, "decoded", false, "Decode the document into a flat table")
	cmd.Flags().StringVar(&variant, "variant", "", "Decoding variant: auto, taxonomy, ranking, offers or generic")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a shape summary instead of the document")
	cmd.Flags().StringVar(&outputFmt, "output", "", "Output format: table, json or markdown")

	return cmd
}

type showOpts struct {
	path      string
	layerName string
	noCache   bool
	decoded   bool
	variant   string
	summary   bool
	outputFmt string
}

func runShow(ctx context.Context, opts showOpts) error {
	layer, err := catalog.ParseLayer(opts.layerName)
	if err != nil {
		return err
	}

	reader, err := newReader(ctx)
	if err != nil {
		return err
	}

	doc, err := reader.Fetch(ctx, layer, opts.path, !opts.noCache)
	if err != nil {
		return err
	}

	switch {
	case opts.summary:
		return render(opts.outputFmt, decode.Summarize(doc))
	case opts.decoded:
		v, err := decode.ParseVariant(opts.variant)
		if err != nil {
			return err
		}
		return render(opts.outputFmt, decode.Decode(doc, v))
	}
	return render(opts.outputFmt, doc)
}
