package decode

import "sort"

// Row is one flat record. Values keep the types encoding/json produces
// for untyped documents (string, float64, bool, nil, nested values).
type Row map[string]any

// Table is the tabular container every variant decodes into. Each
// variant defines its own column set; no shared schema is enforced
// across variants.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Empty reports whether the table holds no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// HasColumn reports whether name is one of the table's columns.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// FromRows builds a Table over the given rows, deriving the columns.
func FromRows(rows []Row) Table { return tableFromRows(rows) }

// tableFromRows builds a Table whose columns are the union of the rows'
// keys. Source field order is not recoverable from parsed maps, so the
// header is sorted to keep output deterministic.
func tableFromRows(rows []Row) Table {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range rows {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	return Table{Columns: cols, Rows: rows}
}
