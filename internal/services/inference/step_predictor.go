package inference

import (
	"context"
	"fmt"

	domsvc "HelioCast/internal/domain/service"
	"HelioCast/pkg/config"
)

// HTTPStepPredictor asks the model server for one next-step prediction per
// call. The window travels in the scaled domain and the answer comes back in
// the same domain.
type HTTPStepPredictor struct{ base *ModelServiceBase }

func NewHTTPStepPredictor(cfg *config.Config) *HTTPStepPredictor {
	return &HTTPStepPredictor{base: NewModelServiceBase(cfg)}
}

type stepRequest struct {
	Window []float64 `json:"window"`
}

type stepResponse struct {
	Value float64 `json:"value"`
}

func (p *HTTPStepPredictor) PredictStep(ctx context.Context, window []float64) (float64, error) {
	if len(window) == 0 {
		return 0, fmt.Errorf("empty window")
	}
	var sr stepResponse
	err := p.base.PostJSONWithRetry(ctx, "/model/step", stepRequest{Window: window}, &sr, 3)
	if err != nil {
		return 0, fmt.Errorf("post step: %w", err)
	}
	return sr.Value, nil
}

var _ domsvc.StepPredictor = (*HTTPStepPredictor)(nil)
