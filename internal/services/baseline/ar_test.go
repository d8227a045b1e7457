package baseline

import (
	"context"
	"math"
	"testing"
)

func TestARRecoversLinearRecurrence(t *testing.T) {
	// x[t] = 0.5*x[t-1] + 0.25*x[t-2] with no noise is recovered exactly.
	vals := []float64{1, 2}
	for len(vals) < 60 {
		n := len(vals)
		vals = append(vals, 0.5*vals[n-1]+0.25*vals[n-2])
	}

	ar := NewAR(2)
	if err := ar.Fit(vals); err != nil {
		t.Fatalf("fit: %v", err)
	}

	got, err := ar.PredictStep(context.Background(), vals)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	n := len(vals)
	want := 0.5*vals[n-1] + 0.25*vals[n-2]
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestARConstantSeries(t *testing.T) {
	vals := make([]float64, 40)
	for i := range vals {
		vals[i] = 7
	}

	ar := NewAR(3)
	if err := ar.Fit(vals); err != nil {
		t.Fatalf("fit: %v", err)
	}
	got, err := ar.PredictStep(context.Background(), vals)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if math.Abs(got-7) > 1e-6 {
		t.Fatalf("expected 7, got %v", got)
	}
}

func TestARErrors(t *testing.T) {
	ar := NewAR(3)
	if _, err := ar.PredictStep(context.Background(), []float64{1, 2, 3}); err == nil {
		t.Fatal("expected error before fit")
	}
	if err := ar.Fit([]float64{1, 2, 3}); err == nil {
		t.Fatal("expected error for too few values")
	}
	if err := NewAR(0).Fit([]float64{1, 2, 3}); err == nil {
		t.Fatal("expected error for non-positive order")
	}

	long := make([]float64, 50)
	for i := range long {
		long[i] = float64(i % 5)
	}
	if err := ar.Fit(long); err != nil {
		t.Fatalf("fit: %v", err)
	}
	if _, err := ar.PredictStep(context.Background(), []float64{1, 2}); err == nil {
		t.Fatal("expected error for window shorter than order")
	}
}
