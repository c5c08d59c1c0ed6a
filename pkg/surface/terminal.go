package surface

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/acervo/acervo/pkg/catalog"
	"github.com/acervo/acervo/pkg/decode"
	"github.com/acervo/acervo/pkg/report"
)

// TerminalRenderer renders results as colored terminal output. Values
// it has no layout for fall back to indented JSON.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

// layerColor marks the pipeline stage: yellow while landing, green once
// trusted.
func layerColor(l catalog.Layer) string {
	switch l {
	case catalog.LayerLanding:
		return colorYellow
	case catalog.LayerTrusted:
		return colorGreen
	}
	return ""
}

func (r *TerminalRenderer) Render(w io.Writer, v any) error {
	switch res := v.(type) {
	case []catalog.Entry:
		renderEntries(w, res)
	case decode.Table:
		renderGrid(w, res)
	case report.CatalogReport:
		renderReport(w, res)
	case report.Overview:
		renderOverview(w, res)
	case []report.CategoryAvailability:
		renderCategories(w, res)
	case []report.CompareRow:
		renderCompare(w, res)
	case report.CompanyOverview:
		renderCompany(w, res)
	default:
		return (&JSONRenderer{}).Render(w, v)
	}
	return nil
}

func renderEntries(w io.Writer, entries []catalog.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s  %s\n",
			e.Date,
			colored(pad(string(e.Layer), 7), layerColor(e.Layer)),
			e.Path)
	}
	fmt.Fprintf(w, "\n%s\n", dim(fmt.Sprintf("%d entries", len(entries))))
}

func renderGrid(w io.Writer, t decode.Table) {
	if t.Empty() {
		fmt.Fprintln(w, "No rows.")
		return
	}

	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = utf8.RuneCountInString(c)
	}
	lines := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		line := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			s := truncate(formatCell(row[c]), 40)
			line[i] = s
			if n := utf8.RuneCountInString(s); n > widths[i] {
				widths[i] = n
			}
		}
		lines = append(lines, line)
	}

	var header strings.Builder
	for i, c := range t.Columns {
		if i > 0 {
			header.WriteString("  ")
		}
		header.WriteString(pad(c, widths[i]))
	}
	fmt.Fprintln(w, bold(header.String()))
	for _, line := range lines {
		for i, s := range line {
			if i > 0 {
				fmt.Fprint(w, "  ")
			}
			fmt.Fprint(w, pad(s, widths[i]))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\n%s\n", dim(fmt.Sprintf("%d rows", len(t.Rows))))
}

func renderReport(w io.Writer, rep report.CatalogReport) {
	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("Catalog: %d entries", rep.TotalEntries)))
	if rep.TotalEntries == 0 {
		return
	}
	fmt.Fprintf(w, "Period: %s to %s\n\n", rep.OldestDate, rep.NewestDate)

	fmt.Fprintln(w, "By layer:")
	for _, l := range catalog.Layers() {
		if n := rep.ByLayer[l]; n > 0 {
			fmt.Fprintf(w, "  %s %5d\n", colored(pad(string(l), 10), layerColor(l)), n)
		}
	}

	fmt.Fprintln(w, "By category:")
	for _, c := range sortedByCount(rep.ByCategory) {
		fmt.Fprintf(w, "  %s %5d\n", pad(c, 14), rep.ByCategory[c])
	}

	if len(rep.Recent) > 0 {
		fmt.Fprintln(w, "\nMost recent:")
		for _, e := range rep.Recent {
			fmt.Fprintf(w, "  %s  %s  %s\n",
				e.Date,
				colored(pad(string(e.Layer), 7), layerColor(e.Layer)),
				e.Filename)
		}
	}
}

func renderOverview(w io.Writer, ov report.Overview) {
	renderReport(w, ov.Report)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Categories in taxonomy: %d\n", ov.CategoriesAvailable)
	fmt.Fprintf(w, "Ranking files:          %d\n", ov.RankingFiles)
	fmt.Fprintf(w, "Offer files:            %d\n", ov.OfferFiles)
	fmt.Fprintf(w, "Complaint files:        %d\n", ov.ComplaintFiles)
}

func renderCategories(w io.Writer, cats []report.CategoryAvailability) {
	if len(cats) == 0 {
		fmt.Fprintln(w, "No categories with ranking data.")
		return
	}
	for _, c := range cats {
		fmt.Fprintf(w, "%s  %s / %s %s\n",
			pad(strconv.Itoa(c.Files), 4),
			bold(c.MainTitle),
			c.SecondaryTitle,
			dim(fmt.Sprintf("(%s/%s)", c.MainSegment, c.SecondarySegment)))
	}
}

func renderCompare(w io.Writer, rows []report.CompareRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "Nothing to compare.")
		return
	}
	fmt.Fprintln(w, bold(fmt.Sprintf("%-28s %9s %8s %8s %8s %8s %8s",
		"CATEGORY", "COMPANIES", "MEAN", "MEDIAN", "MIN", "MAX", "STDDEV")))
	for _, r := range rows {
		fmt.Fprintf(w, "%-28s %9d %8.2f %8.2f %8.2f %8.2f %8.2f\n",
			r.Category, r.Companies, r.Mean, r.Median, r.Min, r.Max, r.StdDev)
	}
}

func renderCompany(w io.Writer, ov report.CompanyOverview) {
	if !ov.Found {
		fmt.Fprintln(w, "Company not found.")
		return
	}

	title := "Company"
	if p, ok := ov.Profile.(map[string]any); ok {
		if n, ok := p["companyName"].(string); ok && n != "" {
			title = n
		}
	}
	fmt.Fprintf(w, "%s\n\n", bold(title))

	fmt.Fprintf(w, "Complaint collections: %d", len(ov.Complaints))
	if ov.TotalComplaints > 0 {
		fmt.Fprintf(w, " (%d complaints)", ov.TotalComplaints)
	}
	fmt.Fprintln(w)
	for _, c := range ov.Complaints {
		fmt.Fprintf(w, "  %s  %s\n", c.Date, dim(string(c.Kind)))
	}
	if ov.Offers != nil {
		fmt.Fprintf(w, "Offers: %s discounts, %s coupons, %s active\n",
			formatCell(ov.Offers["total_discounts"]),
			formatCell(ov.Offers["total_coupons"]),
			formatCell(ov.Offers["total_offers"]))
	}
}

// formatCell renders one table cell. Nested values print as compact
// JSON so grids stay one line per row.
func formatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// pad right-pads by display width, counting runes so accented titles
// line up.
func pad(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// sortedByCount orders category names by their count descending, name
// ascending on ties.
func sortedByCount(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
