package inference

import (
	"context"
	"fmt"
	"time"

	"HelioCast/internal/domain/models"
	domsvc "HelioCast/internal/domain/service"
	"HelioCast/pkg/config"
)

// HTTPSentimentClassifier scores padded token vectors via the model server.
type HTTPSentimentClassifier struct{ base *ModelServiceBase }

func NewHTTPSentimentClassifier(cfg *config.Config) *HTTPSentimentClassifier {
	return &HTTPSentimentClassifier{base: NewModelServiceBase(cfg)}
}

type sentimentRequest struct {
	Tokens []int `json:"tokens"`
}

type sentimentResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
	Model string  `json:"model"`
}

func (c *HTTPSentimentClassifier) Score(ctx context.Context, tokens []int) (models.SentimentScore, error) {
	var result models.SentimentScore
	if len(tokens) == 0 {
		return result, fmt.Errorf("empty token vector")
	}
	var sr sentimentResponse
	err := c.base.PostJSONWithRetry(ctx, "/model/sentiment", sentimentRequest{Tokens: tokens}, &sr, 3)
	if err != nil {
		return result, fmt.Errorf("post sentiment: %w", err)
	}
	result.Label = sr.Label
	result.Score = sr.Score
	result.Model = sr.Model
	result.Timestamp = time.Now()
	return result, nil
}

var _ domsvc.SentimentClassifier = (*HTTPSentimentClassifier)(nil)
