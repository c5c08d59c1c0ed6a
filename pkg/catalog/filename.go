package catalog

import (
	"fmt"
	"strings"
)

// Stored filenames carry load-bearing substrings: ranking files embed
// their category pair, company and complaint files embed an identifier.
// Matching stays substring-based for compatibility with data already in
// the buckets; these helpers are the only place that knows the patterns.

// RankingFilename builds the canonical filename for one ranking page.
func RankingFilename(main, secondary string, page int) string {
	return fmt.Sprintf("ranking_%s_%s_%d.json", main, secondary, page)
}

// RankingPrefix returns the substring shared by every ranking file of a
// category pair.
func RankingPrefix(main, secondary string) string {
	return "ranking_" + main + "_" + secondary
}

// ParseRankingFilename extracts the (main, secondary) pair embedded in a
// ranking filename. ok is false for filenames without the ranking marker
// or with too few segments.
func ParseRankingFilename(filename string) (main, secondary string, ok bool) {
	if !strings.Contains(filename, "ranking_") {
		return "", "", false
	}
	s := strings.ReplaceAll(filename, "ranking_", "")
	s = strings.ReplaceAll(s, ".json", "")
	parts := strings.Split(s, "_")
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// CompanyFilename builds the canonical filename for a company profile.
func CompanyFilename(shortname string) string {
	return "empresa_" + shortname + ".json"
}

// CompanyPrefix returns the substring matching a company's profile files.
func CompanyPrefix(shortname string) string {
	return "empresa_" + shortname
}

// ComplaintKind distinguishes the two complaint subsets stored per company.
type ComplaintKind string

const (
	ComplaintsEvaluated ComplaintKind = "avaliadas"
	ComplaintsAll       ComplaintKind = "todas"
)

// ComplaintKindOf reports which subset a complaint filename holds: files
// carrying the "avaliadas" marker hold evaluated complaints only.
func ComplaintKindOf(filename string) ComplaintKind {
	if strings.Contains(filename, "avaliadas") {
		return ComplaintsEvaluated
	}
	return ComplaintsAll
}
