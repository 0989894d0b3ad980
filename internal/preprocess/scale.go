package preprocess

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"analytico/domain/table"
)

// StandardScaler standardizes numeric columns to zero mean and unit
// standard deviation. Fit once per invocation, then discarded.
type StandardScaler struct {
	mean map[string]float64
	std  map[string]float64
}

// NewStandardScaler creates an unfitted scaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{
		mean: make(map[string]float64),
		std:  make(map[string]float64),
	}
}

// Fit learns per-column mean and population standard deviation from the
// table's numeric columns.
func (s *StandardScaler) Fit(tbl *table.Table) error {
	for _, name := range tbl.NumericFields() {
		observed := Observed(tbl.Numeric[name])
		if len(observed) == 0 {
			s.mean[name] = math.NaN()
			s.std[name] = math.NaN()
			continue
		}
		mean, err := stats.Mean(observed)
		if err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
		std, err := stats.StandardDeviation(observed)
		if err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
		s.mean[name] = mean
		s.std[name] = std
	}
	return nil
}

// Transform applies the fitted standardization in place. Zero-variance
// columns map to 0; missing cells stay missing.
func (s *StandardScaler) Transform(tbl *table.Table) {
	for _, name := range tbl.NumericFields() {
		mean, ok := s.mean[name]
		if !ok {
			continue
		}
		std := s.std[name]
		col := tbl.Numeric[name]
		for i, v := range col {
			if math.IsNaN(v) {
				continue
			}
			if std == 0 {
				col[i] = 0
				continue
			}
			col[i] = (v - mean) / std
		}
	}
}

// FitTransform fits the scaler and applies it in one step.
func (s *StandardScaler) FitTransform(tbl *table.Table) error {
	if err := s.Fit(tbl); err != nil {
		return err
	}
	s.Transform(tbl)
	return nil
}
