package report

import (
	"context"
	"sort"
	"strconv"

	"github.com/acervo/acervo/pkg/catalog"
	"github.com/acervo/acervo/pkg/decode"
)

// CompaniesWithOffers decodes the newest offers document and keeps the
// companies that actually have something on offer, sorted by discount
// count descending. The stored document is either a bare array or an
// object wrapping one under "empresas".
func (r *Reporter) CompaniesWithOffers(ctx context.Context) (decode.Table, error) {
	doc, ok, err := r.reader.MostRecent(ctx, catalog.LayerLanding, "ofertas")
	if err != nil {
		return decode.Table{}, err
	}
	if !ok {
		return decode.Table{}, nil
	}

	var items any
	switch d := doc.(type) {
	case map[string]any:
		inner, wrapped := d["empresas"]
		if !wrapped {
			return decode.Table{}, nil
		}
		items = inner
	case []any:
		items = d
	default:
		return decode.Table{}, nil
	}

	tbl := decode.Decode(items, decode.VariantOffers)
	rows := tbl.Rows
	switch {
	case tbl.HasColumn("total_offers"):
		rows = keepPositive(rows, "total_offers")
	case tbl.HasColumn("total_discounts"):
		rows = keepPositive(rows, "total_discounts")
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return numberAt(rows[i], "total_discounts") > numberAt(rows[j], "total_discounts")
	})
	return decode.FromRows(rows), nil
}

// keepPositive keeps the rows whose column holds a number above zero.
func keepPositive(rows []decode.Row, column string) []decode.Row {
	var out []decode.Row
	for _, row := range rows {
		if v, ok := row[column].(float64); ok && v > 0 {
			out = append(out, row)
		}
	}
	return out
}

func numberAt(row decode.Row, column string) float64 {
	v, _ := row[column].(float64)
	return v
}

// CompanyOverview bundles everything stored about one company.
type CompanyOverview struct {
	Found           bool                   `json:"found"`
	Profile         any                    `json:"profile,omitempty"`
	Complaints      []catalog.ComplaintSet `json:"complaints,omitempty"`
	TotalComplaints int                    `json:"total_complaints"`
	Offers          decode.Row             `json:"offers,omitempty"`
}

// CompanyOverview looks a company up by shortname and gathers its
// stored profile, complaint collections and offer counters. Found is
// false when no profile file exists.
func (r *Reporter) CompanyOverview(ctx context.Context, shortname string) (CompanyOverview, error) {
	profile, ok, err := r.reader.CompanyProfile(ctx, shortname, catalog.LayerLanding)
	if err != nil {
		return CompanyOverview{}, err
	}
	if !ok {
		return CompanyOverview{}, nil
	}

	ov := CompanyOverview{Found: true, Profile: profile}
	root, _ := profile.(map[string]any)

	if id := idString(root["id"]); id != "" {
		ov.Complaints = r.reader.CompanyComplaints(ctx, id, catalog.LayerLanding)
		for _, set := range ov.Complaints {
			ov.TotalComplaints += decode.CountComplaints(set.Doc)
		}
	}

	short := shortname
	if s, isStr := root["shortname"].(string); isStr && s != "" {
		short = s
	}
	name, _ := root["companyName"].(string)

	offers, err := r.CompaniesWithOffers(ctx)
	if err != nil {
		return CompanyOverview{}, err
	}
	for _, row := range offers.Rows {
		sn, _ := row["short_name"].(string)
		n, _ := row["name"].(string)
		if (sn != "" && sn == short) || (name != "" && n == name) {
			ov.Offers = row
			break
		}
	}
	return ov, nil
}

// idString renders a company id for filename matching. JSON numbers
// arrive as float64; whole values print without a fraction.
func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}
	return ""
}
