package preprocess

import (
	"math"
	"testing"
)

func TestQuantile_LinearInterpolation(t *testing.T) {
	values := []float64{1, 2, 3, 4, 100}

	cases := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.25, 2},
		{0.5, 3},
		{0.75, 4},
		{1, 100},
	}
	for _, tc := range cases {
		got, err := Quantile(values, tc.p)
		if err != nil {
			t.Fatalf("Quantile(%v) failed: %v", tc.p, err)
		}
		if got != tc.want {
			t.Errorf("Quantile(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestQuantile_InterpolatesBetweenSamples(t *testing.T) {
	got, err := Quantile([]float64{1, 2, 3, 4}, 0.25)
	if err != nil {
		t.Fatalf("Quantile failed: %v", err)
	}
	if math.Abs(got-1.75) > 1e-12 {
		t.Errorf("Quantile(0.25) = %v, want 1.75", got)
	}
}

func TestQuantile_SingleValue(t *testing.T) {
	got, err := Quantile([]float64{7}, 0.75)
	if err != nil {
		t.Fatalf("Quantile failed: %v", err)
	}
	if got != 7 {
		t.Errorf("Quantile of single value = %v, want 7", got)
	}
}

func TestQuantile_Errors(t *testing.T) {
	if _, err := Quantile(nil, 0.5); err == nil {
		t.Error("Expected error for empty input")
	}
	if _, err := Quantile([]float64{1}, 1.5); err == nil {
		t.Error("Expected error for fraction out of range")
	}
}

func TestObserved_DropsNaN(t *testing.T) {
	got := Observed([]float64{1, math.NaN(), 3})
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("Observed = %v, want [1 3]", got)
	}
}
