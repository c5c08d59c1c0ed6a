package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acervo/acervo/pkg/catalog"
	"github.com/acervo/acervo/pkg/report"
)

func newCategoriesCmd() *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List category pairs with stored rankings",
		Long:  `Walks the newest taxonomy and reports which main/secondary pairs have ranking files, ordered by file count.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories(cmd.Context(), outputFmt)
		},
	}
	cmd.Flags().StringVar(&outputFmt, "output", "table", "Output format: table, json or markdown")

	return cmd
}

func runCategories(ctx context.Context, outputFmt string) error {
	reader, err := newReader(ctx)
	if err != nil {
		return err
	}
	cats, err := report.NewReporter(reader).CategoriesWithRankingData(ctx)
	if err != nil {
		return err
	}
	return render(outputFmt, cats)
}

func newTopCmd() *cobra.Command {
	var (
		limit     int
		layerName string
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "top <main/secondary>",
		Short: "Leading companies of one category pair",
		Long:  `Prints the top companies from the newest stored ranking of a category pair.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTop(cmd.Context(), topOpts{
				pair:      args[0],
				limit:     limit,
				layerName: layerName,
				outputFmt: outputFmt,
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Companies to print (0 = all)")
	cmd.Flags().StringVar(&layerName, "layer", "landing", "Layer to read rankings from")
	cmd.Flags().StringVar(&outputFmt, "output", "table", "Output format: table, json or markdown")

	return cmd
}

type topOpts struct {
	pair      string
	limit     int
	layerName string
	outputFmt string
}

func runTop(ctx context.Context, opts topOpts) error {
	pair, err := report.ParsePair(opts.pair)
	if err != nil {
		return err
	}
	layer, err := catalog.ParseLayer(opts.layerName)
	if err != nil {
		return err
	}

	reader, err := newReader(ctx)
	if err != nil {
		return err
	}

	tbl := report.NewReporter(reader).TopCompanies(ctx, pair.Main, pair.Secondary, opts.limit, layer)
	if tbl.Empty() {
		return fmt.Errorf("no ranking stored for %s/%s", pair.Main, pair.Secondary)
	}
	return render(opts.outputFmt, tbl)
}

func newCompareCmd() *cobra.Command {
	var (
		metric    string
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "compare <main/secondary>[,<main/secondary>...]",
		Short: "Compare ranking statistics across category pairs",
		Long:  `Computes mean, median, min, max and standard deviation of one ranking metric per category pair.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.Context(), args[0], metric, outputFmt)
		},
	}

	cmd.Flags().StringVar(&metric, "metric", report.DefaultMetric, "Ranking column to compare")
	cmd.Flags().StringVar(&outputFmt, "output", "table", "Output format: table, json or markdown")

	return cmd
}

func runCompare(ctx context.Context, pairArg, metric, outputFmt string) error {
	pairs, err := report.ParsePairs(pairArg)
	if err != nil {
		return err
	}

	reader, err := newReader(ctx)
	if err != nil {
		return err
	}
	return render(outputFmt, report.NewReporter(reader).CompareCategories(ctx, pairs, metric))
}
