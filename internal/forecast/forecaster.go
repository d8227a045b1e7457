package forecast

import (
	"context"
	"fmt"

	"HelioCast/internal/domain/service"
)

// Forecaster rolls a one-step predictor forward over a fixed horizon. Each
// step slides the lookback window one position left and appends the model's
// own prediction, so later steps condition on earlier predictions. All values
// stay in the scaled domain; callers descale the result once at the end.
type Forecaster struct {
	predictor service.StepPredictor
}

func NewForecaster(p service.StepPredictor) *Forecaster {
	return &Forecaster{predictor: p}
}

// Run produces exactly horizon predictions from the seed window. Any step
// failure aborts the whole forecast; no partial output is returned. The seed
// is never mutated.
func (f *Forecaster) Run(ctx context.Context, seed []float64, horizon int) ([]float64, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizon)
	}
	if len(seed) == 0 {
		return nil, fmt.Errorf("seed window is empty")
	}

	window := make([]float64, len(seed))
	copy(window, seed)

	out := make([]float64, 0, horizon)
	for step := 0; step < horizon; step++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("forecast canceled at step %d: %w", step, err)
		}

		next, err := f.predictor.PredictStep(ctx, window)
		if err != nil {
			return nil, fmt.Errorf("predict step %d: %w", step, err)
		}

		out = append(out, next)
		copy(window, window[1:])
		window[len(window)-1] = next
	}
	return out, nil
}
