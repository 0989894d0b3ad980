package preprocess

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"analytico/domain/table"
)

// DefaultNeighbors is the neighbor count used when none is configured,
// matching the common imputer default.
const DefaultNeighbors = 5

// KNNImputer fills missing numeric cells from the values of the k most
// similar rows, measured by Euclidean distance over the columns both rows
// have observed. The model is fit jointly across all numeric columns and is
// meant to live for a single invocation.
type KNNImputer struct {
	K int
}

// NewKNNImputer creates an imputer with the given neighbor count. Values
// below 1 fall back to DefaultNeighbors.
func NewKNNImputer(k int) *KNNImputer {
	if k < 1 {
		k = DefaultNeighbors
	}
	return &KNNImputer{K: k}
}

// FitTransform fills every NaN cell of m in place. Distances and neighbor
// values are taken from the matrix as it was before any filling, so the
// order of filled cells does not affect the result.
func (im *KNNImputer) FitTransform(m *mat.Dense) {
	rows, cols := m.Dims()
	orig := mat.DenseCopyOf(m)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if math.IsNaN(m.At(i, j)) {
				m.Set(i, j, im.estimate(orig, i, j))
			}
		}
	}
}

type neighbor struct {
	dist  float64
	value float64
}

// estimate produces the fill value for cell (row, col): the mean of the k
// nearest rows that observed col, falling back to the column mean when no
// such row exists. A column with no observed values degenerates to NaN.
func (im *KNNImputer) estimate(orig *mat.Dense, row, col int) float64 {
	rows, _ := orig.Dims()

	var candidates []neighbor
	for t := 0; t < rows; t++ {
		if t == row {
			continue
		}
		v := orig.At(t, col)
		if math.IsNaN(v) {
			continue
		}
		d := nanEuclidean(orig, row, t)
		if math.IsInf(d, 1) {
			continue
		}
		candidates = append(candidates, neighbor{dist: d, value: v})
	}

	if len(candidates) == 0 {
		return columnMean(orig, col)
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].dist < candidates[b].dist
	})
	k := im.K
	if k > len(candidates) {
		k = len(candidates)
	}

	sum := 0.0
	for _, n := range candidates[:k] {
		sum += n.value
	}
	return sum / float64(k)
}

// nanEuclidean computes the distance between rows a and b over the columns
// both have observed, scaled by ncols/npresent so sparser overlaps are not
// rewarded. Returns +Inf when the rows share no observed column.
func nanEuclidean(m *mat.Dense, a, b int) float64 {
	_, cols := m.Dims()
	sum := 0.0
	present := 0
	for j := 0; j < cols; j++ {
		x, y := m.At(a, j), m.At(b, j)
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		diff := x - y
		sum += diff * diff
		present++
	}
	if present == 0 {
		return math.Inf(1)
	}
	return math.Sqrt(sum * float64(cols) / float64(present))
}

func columnMean(m *mat.Dense, col int) float64 {
	rows, _ := m.Dims()
	observed := make([]float64, 0, rows)
	for i := 0; i < rows; i++ {
		if v := m.At(i, col); !math.IsNaN(v) {
			observed = append(observed, v)
		}
	}
	mean, err := stats.Mean(observed)
	if err != nil {
		return math.NaN()
	}
	return mean
}

// ModeFill replaces missing cells of a categorical column with its most
// frequent value, breaking ties toward the lexicographically smallest value.
// A column with no observed values is left untouched.
func ModeFill(values []string) {
	counts := make(map[string]int)
	for _, v := range values {
		if v != "" {
			counts[v]++
		}
	}
	if len(counts) == 0 {
		return
	}

	mode := ""
	best := 0
	for v, c := range counts {
		if c > best || (c == best && v < mode) {
			mode = v
			best = c
		}
	}

	for i, v := range values {
		if v == "" {
			values[i] = mode
		}
	}
}

// ImputeMissing fills every missing cell of the table in place: numeric
// columns jointly via KNN, categorical columns independently via mode.
func ImputeMissing(tbl *table.Table, k int) {
	names := tbl.NumericFields()
	if len(names) > 0 && tbl.NumRows() > 0 {
		m := numericMatrix(tbl, names)
		NewKNNImputer(k).FitTransform(m)
		writeNumericMatrix(tbl, names, m)
	}
	for _, name := range tbl.CategoricalFields() {
		ModeFill(tbl.Categorical[name])
	}
}

// numericMatrix packs the named numeric columns into a dense row-major
// matrix, NaN marking missing cells.
func numericMatrix(tbl *table.Table, names []string) *mat.Dense {
	rows := tbl.NumRows()
	data := make([]float64, rows*len(names))
	for j, name := range names {
		col := tbl.Numeric[name]
		for i := 0; i < rows; i++ {
			data[i*len(names)+j] = col[i]
		}
	}
	return mat.NewDense(rows, len(names), data)
}

func writeNumericMatrix(tbl *table.Table, names []string, m *mat.Dense) {
	rows := tbl.NumRows()
	for j, name := range names {
		col := tbl.Numeric[name]
		for i := 0; i < rows; i++ {
			col[i] = m.At(i, j)
		}
	}
}
