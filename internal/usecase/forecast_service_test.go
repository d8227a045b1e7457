package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"HelioCast/internal/domain/models"
	domrepo "HelioCast/internal/domain/repository"
	domsvc "HelioCast/internal/domain/service"
	"HelioCast/pkg/config"
)

type fakeSeriesStore struct {
	points []models.MonthlyPoint
	saved  []*models.Forecast
}

func (f *fakeSeriesStore) GetPoints(_ context.Context, _ string, from, to time.Time, _ domrepo.Cadence) ([]models.MonthlyPoint, error) {
	var out []models.MonthlyPoint
	for _, p := range f.points {
		if !p.Month.Before(from) && !p.Month.After(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSeriesStore) GetLatestN(_ context.Context, _ string, n int, _ domrepo.Cadence) ([]models.MonthlyPoint, error) {
	if n > len(f.points) {
		n = len(f.points)
	}
	return f.points[len(f.points)-n:], nil
}

func (f *fakeSeriesStore) SaveForecast(_ context.Context, fc *models.Forecast) error {
	f.saved = append(f.saved, fc)
	return nil
}

type meanPredictor struct{}

// Always predicts the scaled-domain zero, which descales to the fit mean.
func (meanPredictor) PredictStep(_ context.Context, _ []float64) (float64, error) {
	return 0, nil
}

type brokenPredictor struct{}

func (brokenPredictor) PredictStep(_ context.Context, _ []float64) (float64, error) {
	return 0, errors.New("model unavailable")
}

type noopEncoder struct{}

func (noopEncoder) Encode(_ context.Context, _ []float64) (domsvc.State, error) {
	return domsvc.State{}, nil
}

type noopDecoder struct{}

func (noopDecoder) Decode(_ context.Context, last float64, st domsvc.State) (float64, domsvc.State, error) {
	return last, st, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Forecast.Series = "sunspots"
	cfg.Forecast.Lookback = 12
	cfg.Forecast.Horizon = 6
	cfg.Forecast.BaselineOrder = 2
	cfg.Forecast.ScalerFrom = 2000
	cfg.Forecast.ScalerTo = 2003
	return cfg
}

func testStore() *fakeSeriesStore {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.MonthlyPoint, 60)
	for i := range points {
		// oscillating, non-constant values so the scaler fits cleanly
		points[i] = models.MonthlyPoint{
			Month: start.AddDate(0, i, 0),
			Value: 50 + 30*math.Sin(float64(i)/6),
		}
	}
	return &fakeSeriesStore{points: points}
}

func TestGetForecastDescalesOnce(t *testing.T) {
	store := testStore()
	svc := NewForecastService(store, meanPredictor{}, noopEncoder{}, noopDecoder{}, testConfig())

	fc, err := svc.GetForecast(context.Background(), ForecastParams{Model: "rnn"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fc.Values) != 6 {
		t.Fatalf("expected 6 values, got %d", len(fc.Values))
	}

	// The stub predicts scaled zero every step; descaling maps that back to
	// the mean of the scaler fit range, not to zero.
	var sum float64
	for i := 0; i < 48; i++ {
		sum += store.points[i].Value
	}
	mean := sum / 48
	for i, v := range fc.Values {
		if math.Abs(v-mean) > 1e-9 {
			t.Fatalf("value %d: expected fit mean %v, got %v", i, mean, v)
		}
	}
}

func TestGetForecastStartsAfterLastObservedMonth(t *testing.T) {
	store := testStore()
	svc := NewForecastService(store, meanPredictor{}, noopEncoder{}, noopDecoder{}, testConfig())

	fc, err := svc.GetForecast(context.Background(), ForecastParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := store.points[len(store.points)-1].Month
	if !fc.Start.Equal(last.AddDate(0, 1, 0)) {
		t.Fatalf("expected start %v, got %v", last.AddDate(0, 1, 0), fc.Start)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected forecast to be persisted once, got %d", len(store.saved))
	}
}

func TestGetForecastAbortsWithoutPersisting(t *testing.T) {
	store := testStore()
	svc := NewForecastService(store, brokenPredictor{}, noopEncoder{}, noopDecoder{}, testConfig())

	if _, err := svc.GetForecast(context.Background(), ForecastParams{Model: "rnn"}); err == nil {
		t.Fatal("expected error from broken predictor")
	}
	if len(store.saved) != 0 {
		t.Fatalf("failed forecast must not be persisted, got %d saved", len(store.saved))
	}
}

func TestGetForecastBaselineModel(t *testing.T) {
	store := testStore()
	svc := NewForecastService(store, brokenPredictor{}, noopEncoder{}, noopDecoder{}, testConfig())

	// The baseline runs in-process, so a broken model server does not matter.
	fc, err := svc.GetForecast(context.Background(), ForecastParams{Model: "baseline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc.Model != "baseline" || len(fc.Values) != 6 {
		t.Fatalf("unexpected forecast: %+v", fc)
	}
}

func TestGetForecastRejectsUnknownModel(t *testing.T) {
	svc := NewForecastService(testStore(), meanPredictor{}, noopEncoder{}, noopDecoder{}, testConfig())
	if _, err := svc.GetForecast(context.Background(), ForecastParams{Model: "arima"}); err == nil {
		t.Fatal("expected error for unknown model")
	}
}

func TestGetForecastShortWindow(t *testing.T) {
	store := testStore()
	store.points = store.points[:50]
	cfg := testConfig()
	cfg.Forecast.Lookback = 120
	svc := NewForecastService(store, meanPredictor{}, noopEncoder{}, noopDecoder{}, cfg)

	if _, err := svc.GetForecast(context.Background(), ForecastParams{}); err == nil {
		t.Fatal("expected error for window shorter than lookback")
	}
}
