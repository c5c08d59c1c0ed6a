package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acervo/acervo/pkg/report"
)

func newConsolidateCmd() *cobra.Command {
	var (
		noOffers  bool
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "consolidate",
		Short: "Build the consolidated company dataset",
		Long: `Joins the top companies of every ranked category into one dataset,
de-duplicated by company id, with offer counters joined on shortname.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsolidate(cmd.Context(), !noOffers, outputFmt)
		},
	}

	cmd.Flags().BoolVar(&noOffers, "no-offers", false, "Skip the offers join")
	cmd.Flags().StringVar(&outputFmt, "output", "table", "Output format: table, json or markdown")

	return cmd
}

func runConsolidate(ctx context.Context, includeOffers bool, outputFmt string) error {
	reader, err := newReader(ctx)
	if err != nil {
		return err
	}
	tbl, err := report.NewReporter(reader).ConsolidatedDataset(ctx, includeOffers)
	if err != nil {
		return err
	}
	return render(outputFmt, tbl)
}

func newCompanyCmd() *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "company <shortname>",
		Short: "Everything stored about one company",
		Long:  `Collects a company's profile, ranking appearances, complaint files and offer counters.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompany(cmd.Context(), args[0], outputFmt)
		},
	}
	cmd.Flags().StringVar(&outputFmt, "output", "table", "Output format: table, json or markdown")

	return cmd
}

func runCompany(ctx context.Context, shortname, outputFmt string) error {
	reader, err := newReader(ctx)
	if err != nil {
		return err
	}
	ov, err := report.NewReporter(reader).CompanyOverview(ctx, shortname)
	if err != nil {
		return err
	}
	if !ov.Found {
		return fmt.Errorf("company %q not found in the lake", shortname)
	}
	return render(outputFmt, ov)
}
