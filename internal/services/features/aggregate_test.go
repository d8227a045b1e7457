package features

import (
	"math"
	"testing"
	"time"

	"HelioCast/internal/domain/models"
)

func obsAt(day time.Time, v float64) *models.Observation {
	return &models.Observation{Station: "test", Timestamp: day.Unix(), Value: v, Source: "test"}
}

func TestMonthlyMeans(t *testing.T) {
	jan1 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	jan2 := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	feb1 := time.Date(2024, 2, 3, 12, 0, 0, 0, time.UTC)

	got := MonthlyMeans([]*models.Observation{
		obsAt(feb1, 30),
		obsAt(jan1, 10),
		obsAt(jan2, 20),
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 months, got %d", len(got))
	}
	if got[0].Month.Month() != time.January || got[0].Value != 15 {
		t.Fatalf("january: expected mean 15, got %v at %v", got[0].Value, got[0].Month)
	}
	if got[1].Month.Month() != time.February || got[1].Value != 30 {
		t.Fatalf("february: expected mean 30, got %v", got[1].Value)
	}
}

func TestMonthlyMeansSkipsMissingReadings(t *testing.T) {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	got := MonthlyMeans([]*models.Observation{
		obsAt(jan, 12),
		obsAt(jan.AddDate(0, 0, 1), -1),
	})
	if len(got) != 1 || got[0].Value != 12 {
		t.Fatalf("expected missing reading to be skipped, got %v", got)
	}
}

func TestSmooth13ConstantSeries(t *testing.T) {
	points := make([]models.MonthlyPoint, 20)
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range points {
		points[i] = models.MonthlyPoint{Month: start.AddDate(0, i, 0), Value: 50}
	}

	got := Smooth13(points)
	for i, p := range got {
		if math.Abs(p.Value-50) > 1e-12 {
			t.Fatalf("month %d: expected 50, got %v", i, p.Value)
		}
	}
}

func TestSmooth13KeepsEdgesRaw(t *testing.T) {
	points := make([]models.MonthlyPoint, 14)
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range points {
		points[i] = models.MonthlyPoint{Month: start.AddDate(0, i, 0), Value: float64(i)}
	}

	got := Smooth13(points)
	if got[0].Value != 0 || got[13].Value != 13 {
		t.Fatalf("edges should keep raw values, got %v and %v", got[0].Value, got[13].Value)
	}
	// Interior months are smoothed.
	if got[6].Value == points[6].Value && got[7].Value == points[7].Value {
		// linear ramp smooths to itself, so force a check on weights instead
		want := (0.5*0 + 0.5*12 + (1 + 2 + 3 + 4 + 5 + 6 + 7 + 8 + 9 + 10 + 11)) / 12.0
		if math.Abs(got[6].Value-want) > 1e-12 {
			t.Fatalf("expected %v, got %v", want, got[6].Value)
		}
	}
}

func TestMeanAbsoluteError(t *testing.T) {
	got := MeanAbsoluteError([]float64{1, 2, 3}, []float64{2, 2, 5})
	if math.Abs(got-1) > 1e-12 {
		t.Fatalf("expected 1, got %v", got)
	}
	if !math.IsNaN(MeanAbsoluteError([]float64{1}, []float64{1, 2})) {
		t.Fatal("expected NaN for mismatched lengths")
	}
	if !math.IsNaN(MeanAbsoluteError(nil, nil)) {
		t.Fatal("expected NaN for empty input")
	}
}

func TestAlignFromTo(t *testing.T) {
	from := time.Date(2024, 3, 17, 9, 30, 0, 0, time.UTC)
	to := time.Date(2024, 5, 2, 18, 45, 0, 0, time.UTC)

	f, tt := AlignFromTo(from, to, "monthly")
	if f.Day() != 1 || tt.Day() != 1 {
		t.Fatalf("monthly alignment should land on the first, got %v / %v", f, tt)
	}

	f, tt = AlignFromTo(from, to, "daily")
	if f.Hour() != 0 || tt.Hour() != 0 {
		t.Fatalf("daily alignment should land on midnight, got %v / %v", f, tt)
	}
}
