package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/acervo/acervo/pkg/catalog"
	"github.com/acervo/acervo/pkg/decode"
)

// Pair names a taxonomy (main, secondary) segment pair.
type Pair struct {
	Main      string `json:"main"`
	Secondary string `json:"secondary"`
}

// ParsePair parses a "main/secondary" category pair.
func ParsePair(s string) (Pair, error) {
	main, secondary, ok := strings.Cut(s, "/")
	main = strings.TrimSpace(main)
	secondary = strings.TrimSpace(secondary)
	if !ok || main == "" || secondary == "" {
		return Pair{}, fmt.Errorf("invalid category pair %q (want main/secondary)", s)
	}
	return Pair{Main: main, Secondary: secondary}, nil
}

// ParsePairs parses a comma-separated list of "main/secondary" pairs.
func ParsePairs(s string) ([]Pair, error) {
	var pairs []Pair
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		p, err := ParsePair(part)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// CategoryAvailability is one taxonomy pair that has ranking data,
// annotated with how many stored ranking files mention it.
type CategoryAvailability struct {
	MainSegment      string `json:"main_segment"`
	MainTitle        string `json:"main_title"`
	SecondarySegment string `json:"secondary_segment"`
	SecondaryTitle   string `json:"secondary_title"`
	MainIcon         any    `json:"main_icon"`
	SecondaryIcon    any    `json:"secondary_icon"`
	Files            int    `json:"files_available"`
}

// CategoriesWithRankingData intersects the newest taxonomy document
// with the pairs named by stored ranking filenames, keeping only pairs
// that have at least one file. Sorted by file count descending. Returns
// nothing when no taxonomy document exists yet.
func (r *Reporter) CategoriesWithRankingData(ctx context.Context) ([]CategoryAvailability, error) {
	taxDoc, ok, err := r.reader.MostRecent(ctx, catalog.LayerLanding, "categorias")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	rankingEntries := r.reader.Index().Find(ctx, catalog.Query{Category: "rankings"})
	pairs := make(map[Pair]bool)
	for _, e := range rankingEntries {
		if main, secondary, ok := catalog.ParseRankingFilename(e.Filename); ok {
			pairs[Pair{Main: main, Secondary: secondary}] = true
		}
	}

	var out []CategoryAvailability
	for _, row := range decode.Decode(taxDoc, decode.VariantTaxonomy).Rows {
		main, _ := row["main_segment"].(string)
		secondary, _ := row["secondary_segment"].(string)
		if !pairs[Pair{Main: main, Secondary: secondary}] {
			continue
		}

		files := 0
		marker := main + "_" + secondary
		for _, e := range rankingEntries {
			if strings.Contains(e.Filename, marker) {
				files++
			}
		}

		title, _ := row["main_title"].(string)
		secTitle, _ := row["secondary_title"].(string)
		out = append(out, CategoryAvailability{
			MainSegment:      main,
			MainTitle:        title,
			SecondarySegment: secondary,
			SecondaryTitle:   secTitle,
			MainIcon:         row["main_icon"],
			SecondaryIcon:    row["secondary_icon"],
			Files:            files,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Files > out[j].Files })
	return out, nil
}

// TopCompanies returns the leading companies of one category pair from
// its newest stored ranking, annotated with the pair and the collection
// date. limit <= 0 means no limit. An empty table means no ranking is
// stored for the pair.
func (r *Reporter) TopCompanies(ctx context.Context, main, secondary string, limit int, layer catalog.Layer) decode.Table {
	rankings := r.reader.CategoryRankings(ctx, main, secondary, layer)
	if len(rankings) == 0 {
		return decode.Table{}
	}

	newest := rankings[0]
	tbl := decode.Decode(newest.Doc, decode.VariantRanking)
	if tbl.Empty() {
		return decode.Table{}
	}
	if limit > 0 && len(tbl.Rows) > limit {
		tbl.Rows = tbl.Rows[:limit]
	}

	// Decoded rows share maps with the cached document; annotating
	// copies so the cache stays pristine.
	rows := make([]decode.Row, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		annotated := make(decode.Row, len(row)+3)
		for k, v := range row {
			annotated[k] = v
		}
		annotated["main_segment"] = main
		annotated["secondary_segment"] = secondary
		annotated["data_coleta"] = newest.Date
		rows = append(rows, annotated)
	}
	return decode.FromRows(rows)
}

// CompareRow is one category's statistics in a cross-category
// comparison.
type CompareRow struct {
	MainSegment      string  `json:"main_segment"`
	SecondarySegment string  `json:"secondary_segment"`
	Category         string  `json:"category"`
	Companies        int     `json:"companies"`
	Mean             float64 `json:"mean"`
	Median           float64 `json:"median"`
	Min              float64 `json:"min"`
	Max              float64 `json:"max"`
	StdDev           float64 `json:"stddev"`
}

// DefaultMetric is the ranking column compared when none is named.
const DefaultMetric = "finalScore"

// CompareCategories computes per-pair statistics over one metric of
// each pair's newest ranking (at most 50 companies each), sorted by
// mean descending. Pairs without a ranking, without the metric column
// or without numeric values under it are skipped.
func (r *Reporter) CompareCategories(ctx context.Context, pairs []Pair, metric string) []CompareRow {
	if metric == "" {
		metric = DefaultMetric
	}

	var out []CompareRow
	for _, p := range pairs {
		tbl := r.TopCompanies(ctx, p.Main, p.Secondary, 50, catalog.LayerLanding)
		if tbl.Empty() || !tbl.HasColumn(metric) {
			continue
		}
		values := numericColumn(tbl, metric)
		if len(values) == 0 {
			continue
		}

		s := Describe(values)
		out = append(out, CompareRow{
			MainSegment:      p.Main,
			SecondarySegment: p.Secondary,
			Category:         p.Main + "/" + p.Secondary,
			Companies:        len(tbl.Rows),
			Mean:             s.Mean,
			Median:           s.Median,
			Min:              s.Min,
			Max:              s.Max,
			StdDev:           s.StdDev,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Mean > out[j].Mean })
	return out
}
