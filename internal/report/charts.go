package report

import (
	"bytes"
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"analytico/domain/table"
	"analytico/internal/preprocess"
)

// MissingValuesChart renders the per-column missing counts as a PNG bar
// chart.
func MissingValuesChart(counts []MissingCount) ([]byte, error) {
	if len(counts) == 0 {
		return nil, fmt.Errorf("no columns to chart")
	}

	bars := make([]chart.Value, len(counts))
	maxCount := 0
	for i, c := range counts {
		bars[i] = chart.Value{Label: c.Column, Value: float64(c.Count)}
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}

	graph := chart.BarChart{
		Title:    "Count of Missing Values by Column",
		Width:    800,
		Height:   400,
		BarWidth: 40,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount) + 1},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render missing-values chart: %w", err)
	}
	return buf.Bytes(), nil
}

// OutlierChart renders one numeric column as a PNG scatter of value against
// row index, with the IQR fences drawn as dashed lines.
func OutlierChart(name string, values []float64, bounds preprocess.Bounds) ([]byte, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no values to chart for column %q", name)
	}

	xs := make([]float64, 0, len(values))
	ys := make([]float64, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, v)
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("no observed values to chart for column %q", name)
	}

	xMax := float64(len(values) - 1)
	if xMax <= 0 {
		xMax = 1
	}
	boundStyle := chart.Style{
		StrokeColor:     chart.ColorRed,
		StrokeDashArray: []float64{5.0, 5.0},
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Outliers: %s", name),
		Width:  800,
		Height: 400,
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    name,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    chart.ColorBlue,
				},
			},
			chart.ContinuousSeries{
				Name:    "upper bound",
				XValues: []float64{0, xMax},
				YValues: []float64{bounds.Upper, bounds.Upper},
				Style:   boundStyle,
			},
			chart.ContinuousSeries{
				Name:    "lower bound",
				XValues: []float64{0, xMax},
				YValues: []float64{bounds.Lower, bounds.Lower},
				Style:   boundStyle,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render outlier chart for %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

// OutlierCharts renders one chart per numeric column of the table.
func OutlierCharts(tbl *table.Table, threshold float64) (map[string][]byte, error) {
	charts := make(map[string][]byte)
	for _, summary := range OutlierSummaries(tbl, threshold) {
		png, err := OutlierChart(summary.Column, tbl.Numeric[summary.Column], summary.Bounds)
		if err != nil {
			return nil, err
		}
		charts[summary.Column] = png
	}
	return charts, nil
}
