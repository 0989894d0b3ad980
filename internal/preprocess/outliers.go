package preprocess

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"analytico/domain/table"
)

// DefaultIQRThreshold is the Tukey fence multiplier used by the pipeline.
const DefaultIQRThreshold = 1.5

// OutlierPolicy selects what happens to out-of-bound values.
type OutlierPolicy int

const (
	// PolicyReplace substitutes out-of-bound values with the column mean.
	PolicyReplace OutlierPolicy = iota
	// PolicyFilter drops every row with any out-of-bound numeric value.
	PolicyFilter
)

func (p OutlierPolicy) String() string {
	switch p {
	case PolicyReplace:
		return "replace"
	case PolicyFilter:
		return "filter"
	default:
		return fmt.Sprintf("OutlierPolicy(%d)", int(p))
	}
}

// Bounds holds the per-column IQR fences.
type Bounds struct {
	Lower float64
	Upper float64
}

// Contains reports whether v lies inside the fences. NaN is never flagged.
func (b Bounds) Contains(v float64) bool {
	if math.IsNaN(v) {
		return true
	}
	return v >= b.Lower && v <= b.Upper
}

// ComputeBounds derives the IQR fences for a column from its observed
// values: [Q1 - t*IQR, Q3 + t*IQR].
func ComputeBounds(values []float64, threshold float64) (Bounds, error) {
	observed := Observed(values)
	if len(observed) == 0 {
		return Bounds{}, fmt.Errorf("no observed values")
	}
	q1, err := Quantile(observed, 0.25)
	if err != nil {
		return Bounds{}, err
	}
	q3, err := Quantile(observed, 0.75)
	if err != nil {
		return Bounds{}, err
	}
	iqr := q3 - q1
	return Bounds{
		Lower: q1 - threshold*iqr,
		Upper: q3 + threshold*iqr,
	}, nil
}

// ReplaceOutliers substitutes, per numeric column, every out-of-bound value
// with that column's arithmetic mean. The mean is computed over all observed
// values, outliers included, before any replacement.
func ReplaceOutliers(tbl *table.Table, threshold float64) error {
	for _, name := range tbl.NumericFields() {
		col := tbl.Numeric[name]
		observed := Observed(col)
		if len(observed) == 0 {
			continue
		}
		bounds, err := ComputeBounds(col, threshold)
		if err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
		mean, err := stats.Mean(observed)
		if err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
		for i, v := range col {
			if !bounds.Contains(v) {
				col[i] = mean
			}
		}
	}
	return nil
}

// FilterOutliers removes every row holding at least one out-of-bound value
// in any numeric column. Rows survive only when all their numeric cells are
// in bounds.
func FilterOutliers(tbl *table.Table, threshold float64) error {
	keep := make([]bool, tbl.NumRows())
	for i := range keep {
		keep[i] = true
	}
	for _, name := range tbl.NumericFields() {
		col := tbl.Numeric[name]
		if len(Observed(col)) == 0 {
			continue
		}
		bounds, err := ComputeBounds(col, threshold)
		if err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
		for i, v := range col {
			if !bounds.Contains(v) {
				keep[i] = false
			}
		}
	}
	return tbl.FilterRows(keep)
}

// HandleOutliers dispatches on the configured policy.
func HandleOutliers(tbl *table.Table, policy OutlierPolicy, threshold float64) error {
	switch policy {
	case PolicyReplace:
		return ReplaceOutliers(tbl, threshold)
	case PolicyFilter:
		return FilterOutliers(tbl, threshold)
	default:
		return fmt.Errorf("unknown outlier policy %d", int(policy))
	}
}
