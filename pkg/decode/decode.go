// Package decode flattens parsed JSON documents into tabular record
// sets. Four variants cover the stored document shapes; structural
// sniffing picks one when the caller does not.
package decode

import "fmt"

// Variant identifies a stored document shape.
type Variant string

const (
	// VariantAuto selects the variant by sniffing the document structure.
	VariantAuto     Variant = "auto"
	VariantTaxonomy Variant = "taxonomy"
	VariantRanking  Variant = "ranking"
	VariantOffers   Variant = "offers"
	VariantGeneric  Variant = "generic"
)

// ParseVariant maps a flag or request value onto a Variant. The empty
// string means auto.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case "", VariantAuto:
		return VariantAuto, nil
	case VariantTaxonomy, VariantRanking, VariantOffers, VariantGeneric:
		return Variant(s), nil
	}
	return "", fmt.Errorf("unknown variant %q (want auto, taxonomy, ranking, offers or generic)", s)
}

// Sniff picks the variant matching a parsed document's structure: a map
// with mainSegments is a taxonomy, a map with companies a ranking, a
// non-empty array whose first element carries company_info an offer
// list, anything else generic.
func Sniff(doc any) Variant {
	switch d := doc.(type) {
	case map[string]any:
		if _, ok := d["mainSegments"]; ok {
			return VariantTaxonomy
		}
		if _, ok := d["companies"]; ok {
			return VariantRanking
		}
	case []any:
		if len(d) > 0 {
			if first, ok := d[0].(map[string]any); ok {
				if _, ok := first["company_info"]; ok {
					return VariantOffers
				}
			}
		}
	}
	return VariantGeneric
}

// Decode flattens a parsed JSON document into a Table, sniffing the
// variant when v is VariantAuto. It never fails for a structurally
// valid document: when the chosen variant's shape does not hold, the
// whole document becomes a single wrapped row.
func Decode(doc any, v Variant) Table {
	if v == VariantAuto || v == "" {
		v = Sniff(doc)
	}
	switch v {
	case VariantTaxonomy:
		return decodeTaxonomy(doc)
	case VariantRanking:
		return decodeRanking(doc)
	case VariantOffers:
		return decodeOffers(doc)
	}
	return decodeGeneric(doc)
}

// taxonomyColumns is the fixed header of the taxonomy variant.
var taxonomyColumns = []string{
	"main_segment",
	"main_title",
	"secondary_segment",
	"secondary_title",
	"main_icon",
	"secondary_icon",
}

// decodeTaxonomy emits one row per (main, secondary) segment pair. A
// main segment without children contributes no rows: a category with no
// ranked subcategories has nothing to compare.
func decodeTaxonomy(doc any) Table {
	root, ok := doc.(map[string]any)
	if !ok {
		return wrapRow(doc)
	}
	mainsVal, exists := root["mainSegments"]
	if !exists {
		return Table{Columns: taxonomyColumns}
	}
	mains, ok := mainsVal.([]any)
	if !ok {
		return wrapRow(doc)
	}

	rows := make([]Row, 0, len(mains))
	for _, m := range mains {
		main, ok := m.(map[string]any)
		if !ok {
			return wrapRow(doc)
		}
		mainSeg, ok := main["shortname"]
		if !ok {
			return wrapRow(doc)
		}
		mainTitle, ok := main["title"]
		if !ok {
			return wrapRow(doc)
		}
		childrenVal, exists := main["childrenSegments"]
		if !exists {
			continue
		}
		children, ok := childrenVal.([]any)
		if !ok {
			return wrapRow(doc)
		}
		for _, c := range children {
			child, ok := c.(map[string]any)
			if !ok {
				return wrapRow(doc)
			}
			secSeg, ok := child["shortname"]
			if !ok {
				return wrapRow(doc)
			}
			secTitle, ok := child["title"]
			if !ok {
				return wrapRow(doc)
			}
			rows = append(rows, Row{
				"main_segment":      mainSeg,
				"main_title":        mainTitle,
				"secondary_segment": secSeg,
				"secondary_title":   secTitle,
				"main_icon":         main["icon"],
				"secondary_icon":    child["icon"],
			})
		}
	}
	return Table{Columns: taxonomyColumns, Rows: rows}
}

// decodeRanking emits one row per company, fields verbatim. The company
// schema is externally defined and not reshaped here.
func decodeRanking(doc any) Table {
	root, ok := doc.(map[string]any)
	if !ok {
		return wrapRow(doc)
	}
	companiesVal, exists := root["companies"]
	if !exists || companiesVal == nil {
		return Table{}
	}
	companies, ok := companiesVal.([]any)
	if !ok {
		return wrapRow(doc)
	}

	rows := make([]Row, 0, len(companies))
	for _, c := range companies {
		company, ok := c.(map[string]any)
		if !ok {
			return wrapRow(doc)
		}
		rows = append(rows, Row(company))
	}
	return tableFromRows(rows)
}

// decodeOffers flattens each item's company_info together with its
// three counters. Items without company_info are skipped.
func decodeOffers(doc any) Table {
	items, ok := doc.([]any)
	if !ok {
		return wrapRow(doc)
	}

	rows := make([]Row, 0, len(items))
	for _, it := range items {
		item, ok := it.(map[string]any)
		if !ok {
			continue
		}
		ci, exists := item["company_info"]
		if !exists {
			continue
		}
		info, ok := ci.(map[string]any)
		if !ok {
			return wrapRow(doc)
		}
		row := make(Row, len(info)+3)
		for k, v := range info {
			row[k] = v
		}
		row["total_discounts"] = counterOr(item, "total_discounts")
		row["total_coupons"] = counterOr(item, "total_coupons")
		row["total_offers"] = counterOr(item, "total_offers")
		rows = append(rows, row)
	}
	return tableFromRows(rows)
}

// counterOr returns the item's counter value, or a zero JSON number
// when the field is absent.
func counterOr(item map[string]any, key string) any {
	if v, ok := item[key]; ok {
		return v
	}
	return float64(0)
}

// decodeGeneric handles documents no known variant claims: arrays
// become rows, a single-key map unwraps to its inner array's rows, and
// everything else is wrapped whole.
func decodeGeneric(doc any) Table {
	switch d := doc.(type) {
	case []any:
		return genericRows(d)
	case map[string]any:
		if len(d) == 1 {
			for _, v := range d {
				switch inner := v.(type) {
				case []any:
					return genericRows(inner)
				case nil:
					return Table{}
				}
			}
		}
	}
	return wrapRow(doc)
}

func genericRows(items []any) Table {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			rows = append(rows, Row(m))
			continue
		}
		rows = append(rows, Row{"value": it})
	}
	return tableFromRows(rows)
}

// wrapRow is the decode of last resort: the whole document as one row.
func wrapRow(doc any) Table {
	if m, ok := doc.(map[string]any); ok {
		return tableFromRows([]Row{Row(m)})
	}
	return Table{Columns: []string{"value"}, Rows: []Row{{"value": doc}}}
}
