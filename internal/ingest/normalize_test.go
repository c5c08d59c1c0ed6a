package ingest

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Bancos", "bancos"},
		{"accents stripped", "Cartões de Crédito", "cartoes de credito"},
		{"cedilla and tilde", "Ação", "acao"},
		{"punctuation dropped, spaces kept", "Saúde & Beleza!", "saude  beleza"},
		{"digits kept", "Top 10 Empresas", "top 10 empresas"},
		{"surrounding space trimmed", "  varejo  ", "varejo"},
		{"non-latin dropped", "日本語", ""},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeText(tc.in); got != tc.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCategorySlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already a slug", "rankings", "rankings"},
		{"hyphens round-trip", "minha-categoria", "minha-categoria"},
		{"accented words", "Saúde e Beleza", "saude-e-beleza"},
		{"punctuation collapses", "Saúde & Beleza!", "saude-beleza"},
		{"underscores become hyphens", "minha_categoria", "minha-categoria"},
		{"garbage only", "!!!", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CategorySlug(tc.in); got != tc.want {
				t.Errorf("CategorySlug(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
