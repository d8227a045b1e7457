package series

import (
	"math"
	"testing"
	"time"
)

func TestNewWithMonthsValidatesIndex(t *testing.T) {
	jan := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := jan.AddDate(0, 1, 0)
	apr := jan.AddDate(0, 3, 0)

	if _, err := NewWithMonths("ok", []time.Time{jan, feb}, []float64{1, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewWithMonths("gap", []time.Time{jan, apr}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for a gap in the monthly index")
	}
	if _, err := NewWithMonths("len", []time.Time{jan}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestSeriesStats(t *testing.T) {
	s := mkSeries(2, 4, 6, 8)
	if got := s.Mean(); got != 5 {
		t.Fatalf("mean: expected 5, got %v", got)
	}
	if got := s.Std(); math.Abs(got-math.Sqrt(5)) > 1e-12 {
		t.Fatalf("std: expected sqrt(5), got %v", got)
	}
	if s.Min() != 2 || s.Max() != 8 {
		t.Fatalf("min/max: got %v/%v", s.Min(), s.Max())
	}
}

func TestSliceYears(t *testing.T) {
	vals := make([]float64, 36)
	for i := range vals {
		vals[i] = float64(i)
	}
	s := mkSeries(vals...) // 2000-01 .. 2002-12
	sub := s.SliceYears(2001, 2001)
	if sub.Len() != 12 {
		t.Fatalf("expected 12 months, got %d", sub.Len())
	}
	if sub.Values[0] != 12 || sub.Values[11] != 23 {
		t.Fatalf("unexpected bounds: %v .. %v", sub.Values[0], sub.Values[11])
	}
}

func TestSplitDisjointAndExhaustive(t *testing.T) {
	vals := make([]float64, 60)
	s := mkSeries(vals...) // 2000-01 .. 2004-12
	cfg := SplitConfig{TrainToYear: 2002, ValidationToYear: 2003}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	train, val, test := cfg.Split(s)
	if train.Len()+val.Len()+test.Len() != s.Len() {
		t.Fatalf("splits not exhaustive: %d+%d+%d != %d", train.Len(), val.Len(), test.Len(), s.Len())
	}
	if train.Len() != 36 || val.Len() != 12 || test.Len() != 12 {
		t.Fatalf("unexpected split sizes: %d/%d/%d", train.Len(), val.Len(), test.Len())
	}

	counts := map[string]int{}
	for _, m := range s.Months {
		counts[cfg.Label(m)]++
	}
	if counts[SplitTrain] != 36 || counts[SplitValidation] != 12 || counts[SplitTest] != 12 {
		t.Fatalf("unexpected label counts: %v", counts)
	}
}

func TestSplitConfigValidate(t *testing.T) {
	if err := (SplitConfig{TrainToYear: 2003, ValidationToYear: 2001}).Validate(); err == nil {
		t.Fatal("expected error for validation range before train range")
	}
	if err := (SplitConfig{}).Validate(); err == nil {
		t.Fatal("expected error for zero years")
	}
}
