package preprocess

import (
	"fmt"
	"math"
	"sort"
)

// Quantile computes the p-quantile (0 <= p <= 1) of values using linear
// interpolation between the two nearest order statistics. For [1,2,3,4,100]
// this yields Q1=2 and Q3=4, the quartile convention the rest of the module
// relies on.
func Quantile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return math.NaN(), fmt.Errorf("quantile of empty slice")
	}
	if p < 0 || p > 1 {
		return math.NaN(), fmt.Errorf("quantile fraction %v out of range [0,1]", p)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[len(sorted)-1], nil
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo]), nil
}

// Observed filters NaN entries out of a numeric column.
func Observed(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
