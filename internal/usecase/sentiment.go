package usecase

import (
	"context"
	"fmt"

	"HelioCast/internal/domain/models"
	domsvc "HelioCast/internal/domain/service"
	"HelioCast/internal/text"
	"HelioCast/pkg/config"
)

// SentimentUseCase pads token vectors to the model's input length and
// delegates the scoring to the classifier.
type SentimentUseCase struct {
	classifier domsvc.SentimentClassifier
	maxLen     int
}

func NewSentimentUseCase(classifier domsvc.SentimentClassifier, cfg *config.Config) *SentimentUseCase {
	maxLen := cfg.Text.MaxLen
	if maxLen <= 0 {
		maxLen = 500
	}
	return &SentimentUseCase{classifier: classifier, maxLen: maxLen}
}

func (uc *SentimentUseCase) Score(ctx context.Context, tokens []int) (models.SentimentScore, error) {
	if len(tokens) == 0 {
		return models.SentimentScore{}, fmt.Errorf("tokens required")
	}
	for i, tok := range tokens {
		if tok < 0 {
			return models.SentimentScore{}, fmt.Errorf("token %d is negative", i)
		}
	}
	padded := text.PadSequence(tokens, uc.maxLen)
	return uc.classifier.Score(ctx, padded)
}
