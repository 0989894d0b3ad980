package preprocess

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"analytico/domain/table"
)

func TestModeFill_FillsWithMostFrequent(t *testing.T) {
	values := []string{"a", "a", "b", ""}
	ModeFill(values)
	if values[3] != "a" {
		t.Errorf("Filled value = %q, want \"a\"", values[3])
	}
	if values[2] != "b" {
		t.Errorf("Observed value changed: %q", values[2])
	}
}

func TestModeFill_TieBreaksLexicographically(t *testing.T) {
	values := []string{"b", "a", "b", "a", ""}
	ModeFill(values)
	if values[4] != "a" {
		t.Errorf("Tie filled with %q, want \"a\"", values[4])
	}
}

func TestModeFill_AllMissingStaysMissing(t *testing.T) {
	values := []string{"", "", ""}
	ModeFill(values)
	for i, v := range values {
		if v != "" {
			t.Errorf("Cell %d filled to %q, want missing", i, v)
		}
	}
}

func TestKNNImputer_NoMissingIsNoOp(t *testing.T) {
	data := []float64{1, 10, 2, 20, 3, 30}
	m := mat.NewDense(3, 2, append([]float64(nil), data...))

	NewKNNImputer(5).FitTransform(m)

	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			if m.At(i, j) != data[i*2+j] {
				t.Errorf("Cell (%d,%d) changed: %v", i, j, m.At(i, j))
			}
		}
	}
}

func TestKNNImputer_AveragesNearestNeighbors(t *testing.T) {
	// Rows (x, y): y missing in row 2. With k=2 the nearest rows by x are
	// rows 1 and 3, so the fill is (20+40)/2.
	m := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, math.NaN(),
		4, 40,
	})

	NewKNNImputer(2).FitTransform(m)

	if got := m.At(2, 1); got != 30 {
		t.Errorf("Imputed value = %v, want 30", got)
	}
}

func TestKNNImputer_FewerCandidatesThanK(t *testing.T) {
	// Only three rows observe y; with the default k=5 all of them are used.
	m := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, math.NaN(),
		4, 40,
	})

	NewKNNImputer(DefaultNeighbors).FitTransform(m)

	want := (10.0 + 20.0 + 40.0) / 3.0
	if got := m.At(2, 1); math.Abs(got-want) > 1e-12 {
		t.Errorf("Imputed value = %v, want %v", got, want)
	}
}

func TestKNNImputer_AllMissingColumnDegenerates(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{
		1, math.NaN(),
		2, math.NaN(),
	})

	NewKNNImputer(5).FitTransform(m)

	if !math.IsNaN(m.At(0, 1)) || !math.IsNaN(m.At(1, 1)) {
		t.Error("Entirely missing column should stay NaN")
	}
}

func TestImputeMissing_TableLevel(t *testing.T) {
	tbl := table.New(4)
	if err := tbl.AddNumeric("x", []float64{1, 2, 3, 4}); err != nil {
		t.Fatalf("AddNumeric failed: %v", err)
	}
	if err := tbl.AddNumeric("y", []float64{10, 20, math.NaN(), 40}); err != nil {
		t.Fatalf("AddNumeric failed: %v", err)
	}
	if err := tbl.AddCategorical("c", []string{"a", "a", "b", ""}); err != nil {
		t.Fatalf("AddCategorical failed: %v", err)
	}

	ImputeMissing(tbl, 2)

	if got := tbl.Numeric["y"][2]; got != 30 {
		t.Errorf("Numeric fill = %v, want 30", got)
	}
	if got := tbl.Categorical["c"][3]; got != "a" {
		t.Errorf("Categorical fill = %q, want \"a\"", got)
	}
	if tbl.MissingCount("x") != 0 || tbl.MissingCount("y") != 0 || tbl.MissingCount("c") != 0 {
		t.Error("Expected no missing cells after imputation")
	}
}
