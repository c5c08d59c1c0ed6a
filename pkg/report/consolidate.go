package report

import (
	"context"
	"fmt"

	"github.com/acervo/acervo/pkg/catalog"
	"github.com/acervo/acervo/pkg/decode"
)

// ConsolidatedDataset unions the top 20 companies of every category
// that has ranking data, de-duplicated by company id keeping the first
// occurrence, and, when includeOffers is set, left-joins the offer
// counters on the company shortname.
func (r *Reporter) ConsolidatedDataset(ctx context.Context, includeOffers bool) (decode.Table, error) {
	categories, err := r.CategoriesWithRankingData(ctx)
	if err != nil {
		return decode.Table{}, err
	}

	var rows []decode.Row
	seen := make(map[any]bool)
	for _, cat := range categories {
		top := r.TopCompanies(ctx, cat.MainSegment, cat.SecondarySegment, 20, catalog.LayerLanding)
		for _, row := range top.Rows {
			id := row["id"]
			switch id.(type) {
			case map[string]any, []any:
				id = fmt.Sprint(id)
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return decode.Table{}, nil
	}

	if includeOffers {
		offers, err := r.CompaniesWithOffers(ctx)
		if err != nil {
			return decode.Table{}, err
		}
		if !offers.Empty() {
			joinOffers(rows, offers)
		}
	}
	return decode.FromRows(rows), nil
}

// joinOffers left-joins offer counters onto ranking rows, matching the
// ranking companyShortname against the offers short_name. Rows without
// a match keep zero counters. Duplicate shortnames on the offers side
// resolve to the first row.
func joinOffers(rows []decode.Row, offers decode.Table) {
	byShort := make(map[string]decode.Row, len(offers.Rows))
	for _, o := range offers.Rows {
		sn, ok := o["short_name"].(string)
		if !ok {
			continue
		}
		if _, dup := byShort[sn]; !dup {
			byShort[sn] = o
		}
	}

	for _, row := range rows {
		sn, _ := row["companyShortname"].(string)
		o, matched := byShort[sn]
		if !matched {
			row["total_discounts"] = float64(0)
			row["total_coupons"] = float64(0)
			row["total_offers"] = float64(0)
			continue
		}
		row["short_name"] = o["short_name"]
		row["total_discounts"] = offerCounter(o, "total_discounts")
		row["total_coupons"] = offerCounter(o, "total_coupons")
		row["total_offers"] = offerCounter(o, "total_offers")
	}
}

func offerCounter(o decode.Row, key string) any {
	if v, ok := o[key]; ok {
		return v
	}
	return float64(0)
}
