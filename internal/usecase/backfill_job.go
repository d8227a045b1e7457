package usecase

import (
	"context"
	"fmt"
	"time"

	"HelioCast/internal/domain/models"
	"HelioCast/pkg/queue"
)

// BackfillPayload describes one historical import request: a station and a
// closed day range with the daily values, as exported from the archive.
type BackfillPayload struct {
	Station string    `json:"station"`
	Source  string    `json:"source"`
	FromDay string    `json:"from_day"` // YYYY-MM-DD
	Values  []float64 `json:"values"`   // one per day, -1 for missing
}

// BackfillJob imports historical daily observations through the regular
// processor so they land in the same backend as live data.
type BackfillJob struct {
	proc *ObservationProcessor
}

func NewBackfillJob(proc *ObservationProcessor) *BackfillJob {
	return &BackfillJob{proc: proc}
}

func (j *BackfillJob) Name() string { return "observation_backfill" }
func (j *BackfillJob) Type() string { return "backfill" }

func (j *BackfillJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[BackfillPayload](payload)
	if err != nil {
		return fmt.Errorf("parse backfill payload: %w", err)
	}
	if p.Station == "" {
		return fmt.Errorf("station required")
	}
	day, err := time.Parse("2006-01-02", p.FromDay)
	if err != nil {
		return fmt.Errorf("parse from_day: %w", err)
	}
	if len(p.Values) == 0 {
		return nil
	}

	source := p.Source
	if source == "" {
		source = "backfill"
	}

	obs := make([]*models.Observation, 0, len(p.Values))
	for i, v := range p.Values {
		obs = append(obs, &models.Observation{
			Station:   p.Station,
			Timestamp: day.AddDate(0, 0, i).Unix(),
			Value:     v,
			Source:    source,
		})
	}
	if err := j.proc.ProcessBatch(ctx, obs); err != nil {
		return fmt.Errorf("backfill %s from %s: %w", p.Station, p.FromDay, err)
	}
	return nil
}

var _ queue.Job = (*BackfillJob)(nil)
