package api

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"HelioCast/internal/domain/models"
	domrepo "HelioCast/internal/domain/repository"
	domsvc "HelioCast/internal/domain/service"
	icache "HelioCast/internal/service/cache"
	"HelioCast/internal/usecase"
	"HelioCast/pkg/config"
	applogger "HelioCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubSeriesStore struct {
	points []models.MonthlyPoint
}

func (f *stubSeriesStore) GetPoints(_ context.Context, _ string, from, to time.Time, _ domrepo.Cadence) ([]models.MonthlyPoint, error) {
	var out []models.MonthlyPoint
	for _, p := range f.points {
		if !p.Month.Before(from) && !p.Month.After(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *stubSeriesStore) GetLatestN(_ context.Context, _ string, n int, _ domrepo.Cadence) ([]models.MonthlyPoint, error) {
	if n > len(f.points) {
		n = len(f.points)
	}
	return f.points[len(f.points)-n:], nil
}

func (f *stubSeriesStore) SaveForecast(_ context.Context, _ *models.Forecast) error { return nil }

// windowLenPredictor predicts the window length, so forecasts produced from
// windows of different lengths never coincide.
type windowLenPredictor struct{}

func (windowLenPredictor) PredictStep(_ context.Context, window []float64) (float64, error) {
	return float64(len(window)), nil
}

type passEncoder struct{}

func (passEncoder) Encode(_ context.Context, _ []float64) (domsvc.State, error) {
	return domsvc.State{}, nil
}

type passDecoder struct{}

func (passDecoder) Decode(_ context.Context, last float64, st domsvc.State) (float64, domsvc.State, error) {
	return last, st, nil
}

func handlerTestService() *usecase.ForecastService {
	cfg := &config.Config{}
	cfg.Forecast.Series = "sunspots"
	cfg.Forecast.Lookback = 12
	cfg.Forecast.Horizon = 6
	cfg.Forecast.BaselineOrder = 2
	cfg.Forecast.ScalerFrom = 2000
	cfg.Forecast.ScalerTo = 2003

	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.MonthlyPoint, 60)
	for i := range points {
		points[i] = models.MonthlyPoint{
			Month: start.AddDate(0, i, 0),
			Value: 50 + 30*math.Sin(float64(i)/6),
		}
	}
	store := &stubSeriesStore{points: points}
	return usecase.NewForecastService(store, windowLenPredictor{}, passEncoder{}, passDecoder{}, cfg)
}

func TestForecastCacheKeyVariesByLookback(t *testing.T) {
	svc := handlerTestService()
	h := NewForecastHandler(svc, nil)
	h.SetCache(icache.NewTTLCache())
	fn := h.Forecast()

	get := func(query string) []byte {
		req := httptest.NewRequest("GET", "/v1/forecast?"+query, nil)
		rec := httptest.NewRecorder()
		fn(rec, req)
		if rec.Code != 200 {
			t.Fatalf("GET ?%s: status %d, body %s", query, rec.Code, rec.Body.String())
		}
		return rec.Body.Bytes()
	}

	first := get("horizon=3&lookback=12")
	second := get("horizon=3&lookback=24")
	if bytes.Equal(first, second) {
		t.Fatal("responses for different lookbacks must not share a cache entry")
	}

	// same params again is a cache hit and byte-identical
	repeat := get("horizon=3&lookback=12")
	if !bytes.Equal(first, repeat) {
		t.Fatal("expected identical cached response for identical params")
	}
}

type overviewEnvelope struct {
	Status int `json:"status"`
	Data   struct {
		Model    *struct{ Model string }
		Baseline *struct{ Model string }
	} `json:"data"`
}

func TestOverviewModelParamReachesUseCase(t *testing.T) {
	svc := handlerTestService()
	l, _ := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	h := NewForecastEchoHandler(l, svc, usecase.NewOverviewUseCase(svc), nil, nil)

	e := echo.New()
	h.RegisterRoutes(e)

	req := httptest.NewRequest("GET", "/api/forecast/overview?horizon=3&model=seq2seq", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}

	var env overviewEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Model == nil || env.Data.Model.Model != "seq2seq" {
		t.Fatalf("expected seq2seq model forecast, got %+v", env.Data.Model)
	}
	if env.Data.Baseline == nil || env.Data.Baseline.Model != "baseline" {
		t.Fatalf("expected baseline forecast, got %+v", env.Data.Baseline)
	}
}

func TestOverviewRejectsBaselineModel(t *testing.T) {
	svc := handlerTestService()
	l, _ := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	h := NewForecastEchoHandler(l, svc, usecase.NewOverviewUseCase(svc), nil, nil)

	e := echo.New()
	h.RegisterRoutes(e)

	req := httptest.NewRequest("GET", "/api/forecast/overview?model=baseline", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env overviewEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Status != 400 {
		t.Fatalf("expected validation to reject model=baseline, got status %d body %s", env.Status, rec.Body.String())
	}
}
