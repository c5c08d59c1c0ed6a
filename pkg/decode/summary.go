package decode

import "encoding/json"

// Summary describes a stored document at a glance.
type Summary struct {
	TotalItems  int      `json:"total_items"`
	Kinds       []string `json:"kinds,omitempty"`
	HasMetadata bool     `json:"has_metadata"`
	SizeMB      float64  `json:"size_mb"`
}

// Summarize inspects a parsed document and reports what it appears to
// hold: taxonomy segments, companies or complaints, plus its serialized
// size. Shapes it does not recognize report zero items.
func Summarize(doc any) Summary {
	var s Summary
	if data, err := json.Marshal(doc); err == nil {
		s.SizeMB = float64(len(data)) / (1 << 20)
	}

	switch v := doc.(type) {
	case []any:
		s.TotalItems = len(v)
	case map[string]any:
		if segments, ok := v["mainSegments"]; ok {
			if list, isList := segments.([]any); isList {
				s.TotalItems = len(list)
			}
			s.Kinds = append(s.Kinds, "categorias")
		} else if companies, ok := v["companies"]; ok {
			if list, isList := companies.([]any); isList {
				s.TotalItems = len(list)
			}
			s.Kinds = append(s.Kinds, "empresas")
		} else if _, ok := v["complainResult"]; ok {
			s.TotalItems = CountComplaints(v)
			s.Kinds = append(s.Kinds, "reclamacoes")
		}
		if _, ok := v["metadata"]; ok {
			s.HasMetadata = true
		}
	}
	return s
}
