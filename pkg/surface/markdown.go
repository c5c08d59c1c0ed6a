package surface

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/acervo/acervo/pkg/catalog"
	"github.com/acervo/acervo/pkg/decode"
	"github.com/acervo/acervo/pkg/report"
)

// MarkdownRenderer renders results as Markdown for pasting into issues
// and run summaries. Values without a layout fall back to a fenced
// JSON block.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, v any) error {
	switch res := v.(type) {
	case report.CatalogReport:
		markdownReport(w, res)
	case report.Overview:
		markdownReport(w, res.Report)
		fmt.Fprintln(w, "### Availability")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| | Count |")
		fmt.Fprintln(w, "|---|---|")
		fmt.Fprintf(w, "| Categories in taxonomy | %d |\n", res.CategoriesAvailable)
		fmt.Fprintf(w, "| Ranking files | %d |\n", res.RankingFiles)
		fmt.Fprintf(w, "| Offer files | %d |\n", res.OfferFiles)
		fmt.Fprintf(w, "| Complaint files | %d |\n", res.ComplaintFiles)
	case decode.Table:
		markdownTable(w, res)
	case []report.CompareRow:
		markdownCompare(w, res)
	case []report.CategoryAvailability:
		markdownCategories(w, res)
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "```json\n%s\n```\n", b)
	}
	return nil
}

func markdownReport(w io.Writer, rep report.CatalogReport) {
	fmt.Fprintf(w, "## Catalog: %d entries\n\n", rep.TotalEntries)
	if rep.TotalEntries == 0 {
		return
	}
	fmt.Fprintf(w, "Period: %s to %s\n\n", rep.OldestDate, rep.NewestDate)

	fmt.Fprintln(w, "| Layer | Entries |")
	fmt.Fprintln(w, "|---|---|")
	for _, l := range catalog.Layers() {
		if n := rep.ByLayer[l]; n > 0 {
			fmt.Fprintf(w, "| %s | %d |\n", l, n)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Category | Entries |")
	fmt.Fprintln(w, "|---|---|")
	for _, c := range sortedByCount(rep.ByCategory) {
		fmt.Fprintf(w, "| %s | %d |\n", mdEscape(c), rep.ByCategory[c])
	}
	fmt.Fprintln(w)
}

func markdownTable(w io.Writer, t decode.Table) {
	if t.Empty() {
		fmt.Fprintln(w, "_No rows._")
		return
	}
	for i, c := range t.Columns {
		if i > 0 {
			fmt.Fprint(w, " | ")
		} else {
			fmt.Fprint(w, "| ")
		}
		fmt.Fprint(w, mdEscape(c))
	}
	fmt.Fprintln(w, " |")
	fmt.Fprintln(w, "|"+strings.Repeat("---|", len(t.Columns)))
	for _, row := range t.Rows {
		for i, c := range t.Columns {
			if i > 0 {
				fmt.Fprint(w, " | ")
			} else {
				fmt.Fprint(w, "| ")
			}
			fmt.Fprint(w, mdEscape(formatCell(row[c])))
		}
		fmt.Fprintln(w, " |")
	}
}

func markdownCompare(w io.Writer, rows []report.CompareRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "_Nothing to compare._")
		return
	}
	fmt.Fprintln(w, "| Category | Companies | Mean | Median | Min | Max | StdDev |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|---|")
	for _, r := range rows {
		fmt.Fprintf(w, "| %s | %d | %.2f | %.2f | %.2f | %.2f | %.2f |\n",
			mdEscape(r.Category), r.Companies, r.Mean, r.Median, r.Min, r.Max, r.StdDev)
	}
}

func markdownCategories(w io.Writer, cats []report.CategoryAvailability) {
	if len(cats) == 0 {
		fmt.Fprintln(w, "_No categories with ranking data._")
		return
	}
	fmt.Fprintln(w, "| Category | Pair | Files |")
	fmt.Fprintln(w, "|---|---|---|")
	for _, c := range cats {
		fmt.Fprintf(w, "| %s / %s | %s/%s | %d |\n",
			mdEscape(c.MainTitle), mdEscape(c.SecondaryTitle),
			mdEscape(c.MainSegment), mdEscape(c.SecondarySegment), c.Files)
	}
}

// mdEscape keeps cell text from breaking the table grid.
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
