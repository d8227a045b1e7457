package usecase

import (
	"context"
	"fmt"
	"time"

	"HelioCast/internal/domain/models"
	domrepo "HelioCast/internal/domain/repository"
	"HelioCast/internal/series"
	"HelioCast/pkg/config"
)

// SeriesUseCase provides business logic for serving observation series.
type SeriesUseCase struct {
	store domrepo.SeriesStore
	split series.SplitConfig
}

func NewSeriesUseCase(store domrepo.SeriesStore, cfg *config.Config) *SeriesUseCase {
	return &SeriesUseCase{
		store: store,
		split: series.SplitConfig{
			TrainToYear:      cfg.Forecast.Split.TrainTo,
			ValidationToYear: cfg.Forecast.Split.ValidationTo,
		},
	}
}

type GetSeriesParams struct {
	Series  string
	From    time.Time
	To      time.Time
	Cadence domrepo.Cadence
	Limit   int
}

type GetSeriesResult struct {
	Series  string
	Cadence string
	From    time.Time
	To      time.Time
	Count   int
	Points  []models.MonthlyPoint
}

func (uc *SeriesUseCase) GetSeries(ctx context.Context, p GetSeriesParams) (*GetSeriesResult, error) {
	if p.Series == "" {
		return nil, fmt.Errorf("series required")
	}
	if p.From.After(p.To) {
		return nil, fmt.Errorf("from must be <= to")
	}
	if p.Limit <= 0 {
		p.Limit = 10000
	}
	if p.Limit > 50000 {
		p.Limit = 50000
	}

	points, err := uc.store.GetPoints(ctx, p.Series, p.From, p.To, p.Cadence)
	if err != nil {
		return nil, fmt.Errorf("get series: %w", err)
	}
	if len(points) > p.Limit {
		points = points[:p.Limit]
	}

	for i := range points {
		points[i].Split = uc.split.Label(points[i].Month)
	}

	return &GetSeriesResult{
		Series:  p.Series,
		Cadence: string(p.Cadence),
		From:    p.From,
		To:      p.To,
		Count:   len(points),
		Points:  points,
	}, nil
}

// GetLatest returns the most recent n points in ascending order.
func (uc *SeriesUseCase) GetLatest(ctx context.Context, seriesName string, n int, cad domrepo.Cadence) (*GetSeriesResult, error) {
	if seriesName == "" {
		return nil, fmt.Errorf("series required")
	}
	if n <= 0 {
		n = 120
	}

	points, err := uc.store.GetLatestN(ctx, seriesName, n, cad)
	if err != nil {
		return nil, fmt.Errorf("get latest: %w", err)
	}
	for i := range points {
		points[i].Split = uc.split.Label(points[i].Month)
	}

	res := &GetSeriesResult{Series: seriesName, Cadence: string(cad), Count: len(points), Points: points}
	if len(points) > 0 {
		res.From = points[0].Month
		res.To = points[len(points)-1].Month
	}
	return res, nil
}
