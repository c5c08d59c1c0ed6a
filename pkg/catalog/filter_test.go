package catalog

import (
	"reflect"
	"testing"
)

func sampleEntries() []Entry {
	return []Entry{
		{Path: "rankings/2024/01/10/ranking_bancos_cartoes_1.json", Layer: LayerLanding, Category: "rankings", Filename: "ranking_bancos_cartoes_1.json", Date: "2024/01/10"},
		{Path: "rankings/2024/01/08/ranking_saude_planos_1.json", Layer: LayerRaw, Category: "rankings", Filename: "ranking_saude_planos_1.json", Date: "2024/01/08"},
		{Path: "empresas/2024/01/05/empresa_magalu.json", Layer: LayerLanding, Category: "empresas", Filename: "empresa_magalu.json", Date: "2024/01/05"},
		{Path: "categorias/2023/12/31/categorias_20231231_090000.json", Layer: LayerTrusted, Category: "categorias", Filename: "categorias_20231231_090000.json", Date: "2023/12/31"},
	}
}

func TestFilterNoPredicates(t *testing.T) {
	entries := sampleEntries()
	got := Filter(entries, Query{})
	if !reflect.DeepEqual(got, entries) {
		t.Errorf("Filter with empty query changed the list:\ngot  %+v\nwant %+v", got, entries)
	}
}

func TestFilterPredicates(t *testing.T) {
	entries := sampleEntries()

	tests := []struct {
		name      string
		query     Query
		wantPaths []string
	}{
		{
			name:  "by layer",
			query: Query{Layer: LayerLanding},
			wantPaths: []string{
				"rankings/2024/01/10/ranking_bancos_cartoes_1.json",
				"empresas/2024/01/05/empresa_magalu.json",
			},
		},
		{
			name:  "by category",
			query: Query{Category: "rankings"},
			wantPaths: []string{
				"rankings/2024/01/10/ranking_bancos_cartoes_1.json",
				"rankings/2024/01/08/ranking_saude_planos_1.json",
			},
		},
		{
			name:  "date range inclusive",
			query: Query{DateFrom: "2024/01/05", DateTo: "2024/01/08"},
			wantPaths: []string{
				"rankings/2024/01/08/ranking_saude_planos_1.json",
				"empresas/2024/01/05/empresa_magalu.json",
			},
		},
		{
			name:  "filename substring",
			query: Query{FilenameContains: "bancos_cartoes"},
			wantPaths: []string{
				"rankings/2024/01/10/ranking_bancos_cartoes_1.json",
			},
		},
		{
			name:      "conjunction",
			query:     Query{Layer: LayerLanding, Category: "rankings", DateFrom: "2024/01/09"},
			wantPaths: []string{"rankings/2024/01/10/ranking_bancos_cartoes_1.json"},
		},
		{
			name:      "no match",
			query:     Query{Category: "ofertas"},
			wantPaths: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(entries, tc.query)
			if len(got) > len(entries) {
				t.Fatalf("filter returned more entries than input: %d > %d", len(got), len(entries))
			}
			var paths []string
			for _, e := range got {
				if !tc.query.Match(e) {
					t.Errorf("entry %q does not satisfy query %+v", e.Path, tc.query)
				}
				paths = append(paths, e.Path)
			}
			if !reflect.DeepEqual(paths, tc.wantPaths) {
				t.Errorf("paths = %v, want %v", paths, tc.wantPaths)
			}
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	entries := sampleEntries()
	before := make([]Entry, len(entries))
	copy(before, entries)

	Filter(entries, Query{Layer: LayerRaw})

	if !reflect.DeepEqual(entries, before) {
		t.Error("Filter mutated its input slice")
	}
}
