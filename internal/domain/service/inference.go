package service

import (
	"context"

	"HelioCast/internal/domain/models"
)

// StepPredictor produces exactly one next-step prediction from a scaled
// lookback window. Implementations delegate to the external model server or
// to the in-process baseline; either way the window and the returned value
// live in the scaled domain.
type StepPredictor interface {
	PredictStep(ctx context.Context, window []float64) (float64, error)
}

// State is the recurrent hidden-state pair carried between decoder steps of
// the encoder-decoder model variant.
type State struct {
	H []float64
	C []float64
}

// Encoder summarizes a scaled lookback window into an initial state pair.
type Encoder interface {
	Encode(ctx context.Context, window []float64) (State, error)
}

// Decoder consumes the previous output plus the current state pair and emits
// the next prediction together with the replacement state pair.
type Decoder interface {
	Decode(ctx context.Context, last float64, st State) (float64, State, error)
}

// SentimentClassifier scores a padded token vector.
type SentimentClassifier interface {
	Score(ctx context.Context, tokens []int) (models.SentimentScore, error)
}
