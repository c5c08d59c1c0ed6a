package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/acervo/acervo/internal/ingest"
	"github.com/acervo/acervo/pkg/report"
)

func newReportCmd() *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize the catalog",
		Long:  `Counts entries per layer and category, shows the stored date span and the most recent files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), outputFmt)
		},
	}
	cmd.Flags().StringVar(&outputFmt, "output", "table", "Output format: table, json or markdown")

	return cmd
}

func runReport(ctx context.Context, outputFmt string) error {
	reader, err := newReader(ctx)
	if err != nil {
		return err
	}
	return render(outputFmt, report.NewReporter(reader).Report(ctx))
}

func newOverviewCmd() *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "High-level view of the collected data",
		Long:  `Combines the catalog report with per-kind file counts: categories, rankings, offers, complaints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverview(cmd.Context(), outputFmt)
		},
	}
	cmd.Flags().StringVar(&outputFmt, "output", "table", "Output format: table, json or markdown")

	return cmd
}

func runOverview(ctx context.Context, outputFmt string) error {
	reader, err := newReader(ctx)
	if err != nil {
		return err
	}
	ov, err := report.NewReporter(reader).Overview(ctx)
	if err != nil {
		return err
	}
	return render(outputFmt, ov)
}

func newStatsCmd() *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Per-bucket object counts and sizes",
		Long:  `Reports object count, total size and per-category counts for each layer bucket.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), outputFmt)
		},
	}
	cmd.Flags().StringVar(&outputFmt, "output", "json", "Output format: json, table or markdown")

	return cmd
}

func runStats(ctx context.Context, outputFmt string) error {
	client, err := newStoreClient(ctx, loadConfig())
	if err != nil {
		return err
	}
	return render(outputFmt, ingest.NewService(client).Stats(ctx))
}
