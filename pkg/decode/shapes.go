package decode

import "strconv"

// ExtractCompanyIDs pulls company ids out of the known response shapes:
// ranking documents ({"companies": [...]}), search suggestions
// ({"suggestion": {"id": ...}}), bare company arrays, and offer documents
// ({"company_info": {"id": ...}}). Ids are de-duplicated keeping first
// appearance.
func ExtractCompanyIDs(doc any) []string {
	switch v := doc.(type) {
	case map[string]any:
		if companies, ok := v["companies"]; ok {
			rows, _ := companies.([]any)
			return idsFromRows(rows)
		}
		if id, ok := nestedID(v["suggestion"]); ok {
			return []string{id}
		}
		if id, ok := nestedID(v["company_info"]); ok {
			return []string{id}
		}
	case []any:
		return idsFromRows(v)
	}
	return nil
}

func idsFromRows(rows []any) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range rows {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		id, ok := companyID(m["id"])
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func nestedID(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	return companyID(m["id"])
}

// companyID renders an id value as a string. Numeric ids print without
// an exponent.
func companyID(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		if id == "" {
			return "", false
		}
		return id, true
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	}
	return "", false
}

// CountComplaints counts the complaint records in a complaints response,
// following the complainResult.complains.data path. Anything off that
// shape counts as zero.
func CountComplaints(doc any) int {
	m, ok := doc.(map[string]any)
	if !ok {
		return 0
	}
	result, ok := m["complainResult"].(map[string]any)
	if !ok {
		return 0
	}
	complains, ok := result["complains"].(map[string]any)
	if !ok {
		return 0
	}
	data, ok := complains["data"].([]any)
	if !ok {
		return 0
	}
	return len(data)
}
