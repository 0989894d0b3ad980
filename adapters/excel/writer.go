// Package excel writes the annotated report workbook: the raw data, its
// descriptive statistics, missing-value counts with a chart, and per-column
// outlier charts, one sheet each.
package excel

import (
	"fmt"
	"io"
	"log"
	"math"

	"github.com/xuri/excelize/v2"

	"analytico/domain/table"
	"analytico/internal/preprocess"
	"analytico/internal/report"
)

const (
	sheetData    = "Data"
	sheetSummary = "Summary"
	sheetMissing = "Missing Values"
	sheetOutlier = "Outliers"
	sheetCleaned = "Cleaned Data"
)

// Writer builds report workbooks from raw tables.
type Writer struct {
	IQRThreshold float64
}

// NewWriter creates a workbook writer with the stock IQR threshold.
func NewWriter() *Writer {
	return &Writer{IQRThreshold: preprocess.DefaultIQRThreshold}
}

// Write renders the full workbook into w: the raw table, its statistics,
// and optionally the cleaned form of the data on its own sheet.
func (wr *Writer) Write(raw, cleaned *table.Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetData); err != nil {
		return fmt.Errorf("failed to rename data sheet: %w", err)
	}
	if err := wr.writeRecords(f, sheetData, raw); err != nil {
		return err
	}
	if err := wr.writeSummarySheet(f, raw); err != nil {
		return err
	}
	if err := wr.writeMissingSheet(f, raw); err != nil {
		return err
	}
	if err := wr.writeOutlierSheet(f, raw); err != nil {
		return err
	}
	if cleaned != nil {
		if _, err := f.NewSheet(sheetCleaned); err != nil {
			return fmt.Errorf("failed to create cleaned-data sheet: %w", err)
		}
		if err := wr.writeRecords(f, sheetCleaned, cleaned); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	log.Printf("[ExcelWriter] Workbook written: %d rows, %d columns", raw.NumRows(), len(raw.Fields))
	return nil
}

// writeRecords fills a sheet with the table's records, numeric cells typed
// as numbers and missing cells left blank.
func (wr *Writer) writeRecords(f *excelize.File, sheet string, tbl *table.Table) error {
	names := tbl.ColumnNames()
	header := make([]interface{}, len(names))
	for i, n := range names {
		header[i] = n
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i := 0; i < tbl.NumRows(); i++ {
		row := make([]interface{}, len(names))
		for j, name := range names {
			if vals, ok := tbl.Numeric[name]; ok {
				if v := vals[i]; !math.IsNaN(v) {
					row[j] = v
				}
				continue
			}
			if v := tbl.Categorical[name][i]; v != "" {
				row[j] = v
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (wr *Writer) writeSummarySheet(f *excelize.File, tbl *table.Table) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	header := []interface{}{"Metric", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}
	if err := f.SetSheetRow(sheetSummary, "A1", &header); err != nil {
		return err
	}
	for i, s := range report.Summarize(tbl) {
		row := []interface{}{s.Column, s.Count, s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// writeMissingSheet lists per-column missing counts and attaches a native
// column chart over them.
func (wr *Writer) writeMissingSheet(f *excelize.File, tbl *table.Table) error {
	if _, err := f.NewSheet(sheetMissing); err != nil {
		return fmt.Errorf("failed to create missing-values sheet: %w", err)
	}

	header := []interface{}{"Column", "Missing Values"}
	if err := f.SetSheetRow(sheetMissing, "A1", &header); err != nil {
		return err
	}
	counts := report.MissingValueCounts(tbl)
	for i, c := range counts {
		row := []interface{}{c.Column, c.Count}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetMissing, cell, &row); err != nil {
			return err
		}
	}

	if len(counts) == 0 {
		return nil
	}
	return f.AddChart(sheetMissing, "D2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", sheetMissing),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheetMissing, len(counts)+1),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", sheetMissing, len(counts)+1),
		}},
		Title: []excelize.RichTextRun{{Text: "Count of Missing Values by Column"}},
	})
}

// writeOutlierSheet stacks one rendered outlier chart per numeric column,
// with the computed fences alongside.
func (wr *Writer) writeOutlierSheet(f *excelize.File, tbl *table.Table) error {
	if _, err := f.NewSheet(sheetOutlier); err != nil {
		return fmt.Errorf("failed to create outliers sheet: %w", err)
	}

	summaries := report.OutlierSummaries(tbl, wr.IQRThreshold)
	if len(summaries) == 0 {
		return f.SetCellValue(sheetOutlier, "A1", "No numeric columns")
	}

	const rowsPerChart = 22
	for i, s := range summaries {
		top := i*rowsPerChart + 1

		labelCell, err := excelize.CoordinatesToCellName(1, top)
		if err != nil {
			return err
		}
		label := fmt.Sprintf("%s: bounds [%.4f, %.4f], %d outlier(s)",
			s.Column, s.Bounds.Lower, s.Bounds.Upper, len(s.Rows))
		if err := f.SetCellValue(sheetOutlier, labelCell, label); err != nil {
			return err
		}

		png, err := report.OutlierChart(s.Column, tbl.Numeric[s.Column], s.Bounds)
		if err != nil {
			return fmt.Errorf("failed to chart column %q: %w", s.Column, err)
		}
		anchorCell, err := excelize.CoordinatesToCellName(1, top+1)
		if err != nil {
			return err
		}
		if err := f.AddPictureFromBytes(sheetOutlier, anchorCell, &excelize.Picture{
			Extension: ".png",
			File:      png,
			Format:    &excelize.GraphicOptions{ScaleX: 0.75, ScaleY: 0.75},
		}); err != nil {
			return fmt.Errorf("failed to embed chart for %q: %w", s.Column, err)
		}
	}
	return nil
}
