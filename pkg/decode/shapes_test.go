package decode

import (
	"reflect"
	"testing"
)

func TestExtractCompanyIDs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "ranking companies",
			raw:  `{"companies":[{"id":"a1"},{"id":"b2"},{"id":"a1"}]}`,
			want: []string{"a1", "b2"},
		},
		{
			name: "numeric ids",
			raw:  `{"companies":[{"id":12345},{"id":678}]}`,
			want: []string{"12345", "678"},
		},
		{
			name: "suggestion",
			raw:  `{"suggestion":{"id":"c3","title":"Banco"}}`,
			want: []string{"c3"},
		},
		{
			name: "bare array",
			raw:  `[{"id":"d4"},{"name":"no id"},{"id":"e5"}]`,
			want: []string{"d4", "e5"},
		},
		{
			name: "company_info",
			raw:  `{"company_info":{"id":"f6"},"total_offers":2}`,
			want: []string{"f6"},
		},
		{
			name: "companies wins over company_info",
			raw:  `{"companies":[{"id":"g7"}],"company_info":{"id":"h8"}}`,
			want: []string{"g7"},
		},
		{
			name: "no recognizable shape",
			raw:  `{"results":[{"id":"x"}]}`,
			want: nil,
		},
		{
			name: "scalar document",
			raw:  `42`,
			want: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractCompanyIDs(parseDoc(t, tc.raw))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ExtractCompanyIDs = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCountComplaints(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{
			name: "three complaints",
			raw:  `{"complainResult":{"complains":{"data":[{},{},{}]}}}`,
			want: 3,
		},
		{
			name: "empty data",
			raw:  `{"complainResult":{"complains":{"data":[]}}}`,
			want: 0,
		},
		{
			name: "missing data",
			raw:  `{"complainResult":{"complains":{}}}`,
			want: 0,
		},
		{
			name: "missing complains",
			raw:  `{"complainResult":{}}`,
			want: 0,
		},
		{
			name: "unrelated document",
			raw:  `{"companies":[]}`,
			want: 0,
		},
		{
			name: "array document",
			raw:  `[1,2,3]`,
			want: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CountComplaints(parseDoc(t, tc.raw)); got != tc.want {
				t.Errorf("CountComplaints = %d, want %d", got, tc.want)
			}
		})
	}
}
