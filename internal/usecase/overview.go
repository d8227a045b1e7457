package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"HelioCast/internal/domain/models"
)

// OverviewUseCase runs the model forecast and the baseline forecast for the
// same window side by side so clients can compare them.
type OverviewUseCase struct {
	svc     *ForecastService
	timeout time.Duration
}

func NewOverviewUseCase(svc *ForecastService) *OverviewUseCase {
	return &OverviewUseCase{svc: svc, timeout: 30 * time.Second}
}

type OverviewParams struct {
	Series  string
	Horizon int
	Model   string
}

func (uc *OverviewUseCase) GetOverview(ctx context.Context, p OverviewParams) (*models.ForecastOverview, error) {
	if p.Model == "" {
		p.Model = "rnn"
	}
	if p.Model == "baseline" {
		return nil, fmt.Errorf("overview compares a model against the baseline; pick rnn or seq2seq")
	}

	// Overall timeout
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	res := &models.ForecastOverview{
		Series:    p.Series,
		Horizon:   p.Horizon,
		Timestamp: time.Now(),
		Errors:    map[string]string{},
	}

	type item struct {
		name string
		val  *models.Forecast
		err  error
	}
	ch := make(chan item, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.svc.GetForecast(ctx, ForecastParams{Series: p.Series, Horizon: p.Horizon, Model: p.Model})
		ch <- item{"model", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.svc.GetForecast(ctx, ForecastParams{Series: p.Series, Horizon: p.Horizon, Model: "baseline"})
		ch <- item{"baseline", v, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	for it := range ch {
		if it.err != nil {
			res.Errors[it.name] = it.err.Error()
			continue
		}
		switch it.name {
		case "model":
			res.Model = it.val
		case "baseline":
			res.Baseline = it.val
		}
	}

	if res.Series == "" && res.Model != nil {
		res.Series = res.Model.Series
	}
	if res.Horizon == 0 && res.Model != nil {
		res.Horizon = res.Model.Horizon
	}
	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	return res, nil
}
