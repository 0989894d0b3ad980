// Package report derives the presentation-side artifacts of a dataset:
// descriptive statistics, missing-value counts, outlier summaries, and the
// charts rendered from them.
package report

import (
	"github.com/montanaflynn/stats"

	"analytico/domain/table"
	"analytico/internal/preprocess"
)

// ColumnSummary holds the descriptive statistics of one numeric column.
type ColumnSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Summarize computes descriptive statistics for every numeric column, over
// its observed values. Std is the sample standard deviation, the convention
// of statistical describe() tables. Columns with no observed values are
// skipped.
func Summarize(tbl *table.Table) []ColumnSummary {
	var summaries []ColumnSummary
	for _, name := range tbl.NumericFields() {
		observed := preprocess.Observed(tbl.Numeric[name])
		if len(observed) == 0 {
			continue
		}
		mean, _ := stats.Mean(observed)
		std, _ := stats.StandardDeviationSample(observed)
		min, _ := stats.Min(observed)
		max, _ := stats.Max(observed)
		q25, _ := preprocess.Quantile(observed, 0.25)
		median, _ := preprocess.Quantile(observed, 0.5)
		q75, _ := preprocess.Quantile(observed, 0.75)

		summaries = append(summaries, ColumnSummary{
			Column: name,
			Count:  len(observed),
			Mean:   mean,
			Std:    std,
			Min:    min,
			Q25:    q25,
			Median: median,
			Q75:    q75,
			Max:    max,
		})
	}
	return summaries
}

// MissingCount pairs a column with its missing-cell count, shaped for a bar
// chart.
type MissingCount struct {
	Column string
	Count  int
}

// MissingValueCounts returns per-column missing counts in schema order.
func MissingValueCounts(tbl *table.Table) []MissingCount {
	counts := make([]MissingCount, 0, len(tbl.Fields))
	for _, f := range tbl.Fields {
		counts = append(counts, MissingCount{Column: f.Name, Count: tbl.MissingCount(f.Name)})
	}
	return counts
}

// OutlierSummary lists the out-of-bound cells of one numeric column.
type OutlierSummary struct {
	Column string
	Bounds preprocess.Bounds
	Rows   []int
	Values []float64
}

// OutlierSummaries computes IQR fences per numeric column and collects the
// values falling outside them. Columns with no observed values are skipped.
func OutlierSummaries(tbl *table.Table, threshold float64) []OutlierSummary {
	var summaries []OutlierSummary
	for _, name := range tbl.NumericFields() {
		col := tbl.Numeric[name]
		bounds, err := preprocess.ComputeBounds(col, threshold)
		if err != nil {
			continue
		}
		summary := OutlierSummary{Column: name, Bounds: bounds}
		for i, v := range col {
			if !bounds.Contains(v) {
				summary.Rows = append(summary.Rows, i)
				summary.Values = append(summary.Values, v)
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
