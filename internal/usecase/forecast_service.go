package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"HelioCast/internal/domain/models"
	domrepo "HelioCast/internal/domain/repository"
	domsvc "HelioCast/internal/domain/service"
	"HelioCast/internal/forecast"
	"HelioCast/internal/series"
	"HelioCast/internal/services/baseline"
	pkgcache "HelioCast/pkg/cache"
	"HelioCast/pkg/config"
)

// ForecastService produces multi-step forecasts by rolling a one-step
// predictor forward over its own outputs. The scaler and the baseline are
// fitted once, lazily, from the configured historical year range, then reused
// for every request.
type ForecastService struct {
	store    domrepo.SeriesStore
	step     domsvc.StepPredictor
	seq2seq  *forecast.Seq2Seq
	baseline *baseline.AR

	seriesName string
	lookback   int
	horizon    int
	scalerFrom int
	scalerTo   int

	cache    pkgcache.Service
	cacheTTL time.Duration

	mu     sync.Mutex
	scaler *series.Scaler
}

// SetCache enables result caching with the given TTL.
func (s *ForecastService) SetCache(c pkgcache.Service, ttl time.Duration) {
	s.cache = c
	s.cacheTTL = ttl
}

func NewForecastService(store domrepo.SeriesStore, step domsvc.StepPredictor, enc domsvc.Encoder, dec domsvc.Decoder, cfg *config.Config) *ForecastService {
	return &ForecastService{
		store:      store,
		step:       step,
		seq2seq:    forecast.NewSeq2Seq(enc, dec),
		baseline:   baseline.NewAR(cfg.Forecast.BaselineOrder),
		seriesName: cfg.Forecast.Series,
		lookback:   cfg.Forecast.Lookback,
		horizon:    cfg.Forecast.Horizon,
		scalerFrom: cfg.Forecast.ScalerFrom,
		scalerTo:   cfg.Forecast.ScalerTo,
	}
}

type ForecastParams struct {
	Series   string
	Horizon  int
	Lookback int
	Model    string // "rnn", "seq2seq" or "baseline"
}

func (p *ForecastParams) applyDefaults(s *ForecastService) {
	if p.Series == "" {
		p.Series = s.seriesName
	}
	if p.Horizon <= 0 {
		p.Horizon = s.horizon
	}
	if p.Lookback <= 0 {
		p.Lookback = s.lookback
	}
	if p.Model == "" {
		p.Model = "rnn"
	}
}

// ensureFitted fits the scaler and the baseline from the configured year
// range on the first call. Later calls reuse the fitted state.
func (s *ForecastService) ensureFitted(ctx context.Context, seriesName string) (*series.Scaler, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scaler != nil {
		return s.scaler, nil
	}

	from := time.Date(s.scalerFrom, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(s.scalerTo, time.December, 31, 0, 0, 0, 0, time.UTC)
	points, err := s.store.GetPoints(ctx, seriesName, from, to, domrepo.CadMonthly)
	if err != nil {
		return nil, fmt.Errorf("load scaler range: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no observations in scaler range %d..%d", s.scalerFrom, s.scalerTo)
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}

	sc := &series.Scaler{}
	if err := sc.Fit(values); err != nil {
		return nil, fmt.Errorf("fit scaler: %w", err)
	}

	scaled, err := sc.ScaleSlice(values)
	if err != nil {
		return nil, err
	}
	if err := s.baseline.Fit(scaled); err != nil {
		return nil, fmt.Errorf("fit baseline: %w", err)
	}

	s.scaler = sc
	return sc, nil
}

// GetForecast runs the full loop: load the tail window, scale it, roll the
// chosen predictor forward for the whole horizon, descale once, persist.
// A failed step aborts the request; no partial forecast is stored or served.
func (s *ForecastService) GetForecast(ctx context.Context, p ForecastParams) (*models.Forecast, error) {
	p.applyDefaults(s)
	if p.Model != "rnn" && p.Model != "seq2seq" && p.Model != "baseline" {
		return nil, fmt.Errorf("unknown model %q", p.Model)
	}

	cacheKey := pkgcache.GenerateKeyWithParams("forecast", p.Series, p.Model, p.Horizon, p.Lookback)
	if s.cache != nil {
		var cached models.Forecast
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	sc, err := s.ensureFitted(ctx, p.Series)
	if err != nil {
		return nil, err
	}

	points, err := s.store.GetLatestN(ctx, p.Series, p.Lookback, domrepo.CadMonthly)
	if err != nil {
		return nil, fmt.Errorf("load window: %w", err)
	}
	if len(points) < p.Lookback {
		return nil, fmt.Errorf("window has %d months, need %d", len(points), p.Lookback)
	}

	window := make([]float64, len(points))
	for i, pt := range points {
		window[i] = pt.Value
	}
	scaled, err := sc.ScaleSlice(window)
	if err != nil {
		return nil, err
	}

	var predictions []float64
	switch p.Model {
	case "seq2seq":
		predictions, err = s.seq2seq.Run(ctx, scaled, p.Horizon)
	case "baseline":
		predictions, err = forecast.NewForecaster(s.baseline).Run(ctx, scaled, p.Horizon)
	default:
		predictions, err = forecast.NewForecaster(s.step).Run(ctx, scaled, p.Horizon)
	}
	if err != nil {
		return nil, fmt.Errorf("forecast %s: %w", p.Model, err)
	}

	values, err := sc.DescaleSlice(predictions)
	if err != nil {
		return nil, err
	}

	lastMonth := points[len(points)-1].Month
	out := &models.Forecast{
		Series:    p.Series,
		Start:     lastMonth.AddDate(0, 1, 0),
		Horizon:   p.Horizon,
		Model:     p.Model,
		Values:    values,
		Timestamp: time.Now(),
	}
	if err := s.store.SaveForecast(ctx, out); err != nil {
		return nil, fmt.Errorf("save forecast: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, out, s.cacheTTL)
	}
	return out, nil
}
