package report

import (
	"math"
	"sort"

	"github.com/acervo/acervo/pkg/decode"
)

// Stats are descriptive statistics over one numeric series.
type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stddev"`
}

// Describe computes descriptive statistics over a series. The deviation
// is the sample standard deviation (n-1 denominator), zero when fewer
// than two values. An empty series yields the zero Stats.
func Describe(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	s := Stats{Count: len(values), Min: values[0], Max: values[0]}
	var sum float64
	for _, v := range values {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = sum / float64(len(values))

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		s.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		s.Median = sorted[mid]
	}

	if len(values) > 1 {
		var ss float64
		for _, v := range values {
			d := v - s.Mean
			ss += d * d
		}
		s.StdDev = math.Sqrt(ss / float64(len(values)-1))
	}
	return s
}

// numericColumn collects the float64 values under one column, row order
// preserved. Non-numeric and absent cells are skipped.
func numericColumn(t decode.Table, name string) []float64 {
	var vals []float64
	for _, row := range t.Rows {
		if v, ok := row[name].(float64); ok {
			vals = append(vals, v)
		}
	}
	return vals
}
