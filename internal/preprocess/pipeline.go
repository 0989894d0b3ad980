// Package preprocess implements the data-cleaning pipeline: KNN and mode
// imputation, IQR outlier handling, and z-score standardization.
package preprocess

import (
	"analytico/domain/table"
	"analytico/internal"
	"analytico/internal/errors"
)

var logger = internal.NewDefaultLogger()

// Pipeline sequences the cleaning stages over a table in a fixed order:
// impute missing values, replace outliers, standardize numeric columns.
// It is stateless across invocations; every Run fits fresh models.
type Pipeline struct {
	KNeighbors   int
	IQRThreshold float64
}

// NewPipeline creates a pipeline with the stock settings.
func NewPipeline() *Pipeline {
	return &Pipeline{
		KNeighbors:   DefaultNeighbors,
		IQRThreshold: DefaultIQRThreshold,
	}
}

// Run cleans the table in place and returns it. Column classification comes
// from the table schema resolved at ingestion.
func (p *Pipeline) Run(tbl *table.Table) (*table.Table, error) {
	logger.Info("[Pipeline] Cleaning table: %d rows, %d numeric, %d categorical columns",
		tbl.NumRows(), len(tbl.NumericFields()), len(tbl.CategoricalFields()))

	ImputeMissing(tbl, p.KNeighbors)
	logger.Debug("[Pipeline] Imputation done (k=%d)", p.KNeighbors)

	if err := ReplaceOutliers(tbl, p.IQRThreshold); err != nil {
		return nil, errors.ProcessingError("outlier handling failed", err)
	}
	logger.Debug("[Pipeline] Outlier replacement done (threshold=%.2f)", p.IQRThreshold)

	if err := NewStandardScaler().FitTransform(tbl); err != nil {
		return nil, errors.ProcessingError("standardization failed", err)
	}

	return tbl, nil
}
