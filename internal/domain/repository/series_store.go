package repository

import (
	"context"
	"time"

	"HelioCast/internal/domain/models"
)

// SeriesStore provides read access to observation series and persists
// forecasts for later comparison against what was actually observed.
type SeriesStore interface {
	GetPoints(ctx context.Context, series string, from, to time.Time, cad Cadence) ([]models.MonthlyPoint, error)
	GetLatestN(ctx context.Context, series string, n int, cad Cadence) ([]models.MonthlyPoint, error)
	SaveForecast(ctx context.Context, f *models.Forecast) error
}
