package forecast

import (
	"context"
	"fmt"

	"HelioCast/internal/domain/service"
)

// Seq2Seq runs the encoder-decoder model variant: the encoder summarizes the
// seed window into a state pair once, then the decoder is applied horizon
// times, each call consuming the previous output and the current state and
// returning the replacement state for the next call.
type Seq2Seq struct {
	encoder service.Encoder
	decoder service.Decoder
}

func NewSeq2Seq(enc service.Encoder, dec service.Decoder) *Seq2Seq {
	return &Seq2Seq{encoder: enc, decoder: dec}
}

// Run produces exactly horizon predictions. The first decoder step is fed
// the last seed value; subsequent steps are fed the previous prediction.
// Any failure aborts the whole forecast.
func (s *Seq2Seq) Run(ctx context.Context, seed []float64, horizon int) ([]float64, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizon)
	}
	if len(seed) == 0 {
		return nil, fmt.Errorf("seed window is empty")
	}

	st, err := s.encoder.Encode(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("encode seed window: %w", err)
	}

	last := seed[len(seed)-1]
	out := make([]float64, 0, horizon)
	for step := 0; step < horizon; step++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("forecast canceled at step %d: %w", step, err)
		}

		next, nextState, err := s.decoder.Decode(ctx, last, st)
		if err != nil {
			return nil, fmt.Errorf("decode step %d: %w", step, err)
		}

		out = append(out, next)
		last = next
		st = nextState
	}
	return out, nil
}
