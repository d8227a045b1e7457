package series

import (
	"errors"
	"math"
	"testing"
)

func TestScalerRoundTrip(t *testing.T) {
	var sc Scaler
	if err := sc.Fit([]float64{10, 20, 30, 40, 50}); err != nil {
		t.Fatalf("fit: %v", err)
	}
	for _, x := range []float64{0, 10, 17.3, 50, 123.456, -8} {
		z, err := sc.Scale(x)
		if err != nil {
			t.Fatalf("scale %v: %v", x, err)
		}
		back, err := sc.Descale(z)
		if err != nil {
			t.Fatalf("descale %v: %v", z, err)
		}
		if math.Abs(back-x) > 1e-9 {
			t.Fatalf("roundtrip of %v gave %v", x, back)
		}
	}
}

func TestScalerBeforeFit(t *testing.T) {
	var sc Scaler
	if _, err := sc.Scale(1); !errors.Is(err, ErrScalerNotFit) {
		t.Fatalf("expected ErrScalerNotFit, got %v", err)
	}
	if _, err := sc.Descale(1); !errors.Is(err, ErrScalerNotFit) {
		t.Fatalf("expected ErrScalerNotFit, got %v", err)
	}
	if _, err := sc.ScaleSlice([]float64{1}); !errors.Is(err, ErrScalerNotFit) {
		t.Fatalf("expected ErrScalerNotFit, got %v", err)
	}
}

func TestScalerConstantRange(t *testing.T) {
	var sc Scaler
	if err := sc.Fit([]float64{5, 5, 5}); err == nil {
		t.Fatal("expected error fitting a constant range")
	}
	if err := sc.Fit(nil); err == nil {
		t.Fatal("expected error fitting an empty range")
	}
}

func TestScalerSlices(t *testing.T) {
	var sc Scaler
	if err := sc.Fit([]float64{0, 10}); err != nil {
		t.Fatalf("fit: %v", err)
	}
	// mean 5, std 5
	zs, err := sc.ScaleSlice([]float64{0, 5, 10})
	if err != nil {
		t.Fatalf("scale slice: %v", err)
	}
	want := []float64{-1, 0, 1}
	for i := range want {
		if math.Abs(zs[i]-want[i]) > 1e-12 {
			t.Fatalf("scaled[%d]: expected %v, got %v", i, want[i], zs[i])
		}
	}
	xs, err := sc.DescaleSlice(zs)
	if err != nil {
		t.Fatalf("descale slice: %v", err)
	}
	for i, orig := range []float64{0, 5, 10} {
		if math.Abs(xs[i]-orig) > 1e-12 {
			t.Fatalf("descaled[%d]: expected %v, got %v", i, orig, xs[i])
		}
	}
}

func TestScalerFitYears(t *testing.T) {
	vals := make([]float64, 48)
	for i := range vals {
		vals[i] = float64(i)
	}
	s := mkSeries(vals...) // 2000-01 .. 2003-12
	var sc Scaler
	if err := sc.FitYears(s, 2000, 2001); err != nil {
		t.Fatalf("fit years: %v", err)
	}
	// only indices 0..23 participate: mean 11.5
	if math.Abs(sc.Mean-11.5) > 1e-12 {
		t.Fatalf("expected mean 11.5 from the fit years only, got %v", sc.Mean)
	}
}
