package forecast

import (
	"context"
	"errors"
	"testing"

	"HelioCast/internal/domain/service"
)

type constantPredictor struct {
	value   float64
	windows [][]float64
}

func (p *constantPredictor) PredictStep(_ context.Context, window []float64) (float64, error) {
	w := make([]float64, len(window))
	copy(w, window)
	p.windows = append(p.windows, w)
	return p.value, nil
}

type incrementPredictor struct{}

func (incrementPredictor) PredictStep(_ context.Context, window []float64) (float64, error) {
	return window[len(window)-1] + 1, nil
}

type failAfter struct {
	calls int
	limit int
}

func (p *failAfter) PredictStep(_ context.Context, _ []float64) (float64, error) {
	p.calls++
	if p.calls > p.limit {
		return 0, errors.New("model unavailable")
	}
	return 1, nil
}

func TestForecasterConstantZero(t *testing.T) {
	pred := &constantPredictor{value: 0}
	f := NewForecaster(pred)

	out, err := f.Run(context.Background(), []float64{3, 1, 4}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("expected 5 predictions, got %d", len(out))
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("prediction %d: expected 0, got %v", i, v)
		}
	}

	// The window slides one slot left each step with the prediction appended.
	wantWindows := [][]float64{
		{3, 1, 4},
		{1, 4, 0},
		{4, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}
	if len(pred.windows) != len(wantWindows) {
		t.Fatalf("expected %d predictor calls, got %d", len(wantWindows), len(pred.windows))
	}
	for i, want := range wantWindows {
		got := pred.windows[i]
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("step %d window: expected %v, got %v", i, want, got)
			}
		}
	}
}

func TestForecasterFeedsBackOwnOutput(t *testing.T) {
	f := NewForecaster(incrementPredictor{})

	out, err := f.Run(context.Background(), []float64{0, 0, 0}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{1, 2, 3}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, out)
		}
	}
}

func TestForecasterSeedNotMutated(t *testing.T) {
	seed := []float64{5, 6, 7}
	f := NewForecaster(incrementPredictor{})
	if _, err := f.Run(context.Background(), seed, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seed[0] != 5 || seed[1] != 6 || seed[2] != 7 {
		t.Fatalf("seed window was mutated: %v", seed)
	}
}

func TestForecasterAbortsOnError(t *testing.T) {
	f := NewForecaster(&failAfter{limit: 2})

	out, err := f.Run(context.Background(), []float64{1, 1, 1}, 5)
	if err == nil {
		t.Fatal("expected error from failing predictor")
	}
	if out != nil {
		t.Fatalf("expected no partial output, got %v", out)
	}
}

func TestForecasterRejectsBadInput(t *testing.T) {
	f := NewForecaster(incrementPredictor{})
	if _, err := f.Run(context.Background(), []float64{1}, 0); err == nil {
		t.Fatal("expected error for zero horizon")
	}
	if _, err := f.Run(context.Background(), nil, 3); err == nil {
		t.Fatal("expected error for empty seed")
	}
}

func TestForecasterHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewForecaster(incrementPredictor{})
	if _, err := f.Run(ctx, []float64{1, 2, 3}, 3); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

type echoEncoder struct{}

func (echoEncoder) Encode(_ context.Context, window []float64) (service.State, error) {
	h := make([]float64, len(window))
	copy(h, window)
	c := make([]float64, len(window))
	copy(c, window)
	return service.State{H: h, C: c}, nil
}

// countingDecoder records the state it was handed at each step and returns a
// fresh state stamped with the step number, so the test can verify the pair
// is replaced rather than reused.
type countingDecoder struct {
	step   int
	states []service.State
}

func (d *countingDecoder) Decode(_ context.Context, last float64, st service.State) (float64, service.State, error) {
	d.states = append(d.states, st)
	d.step++
	next := service.State{H: []float64{float64(d.step)}, C: []float64{float64(-d.step)}}
	return last + 1, next, nil
}

func TestSeq2SeqThreadsState(t *testing.T) {
	dec := &countingDecoder{}
	s := NewSeq2Seq(echoEncoder{}, dec)

	out, err := s.Run(context.Background(), []float64{0, 0, 0}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{1, 2, 3}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, out)
		}
	}

	// First call sees the encoder's state, later calls see the state the
	// previous decode returned.
	if len(dec.states) != 3 {
		t.Fatalf("expected 3 decode calls, got %d", len(dec.states))
	}
	if len(dec.states[0].H) != 3 {
		t.Fatalf("first decode should receive the encoder state, got %v", dec.states[0])
	}
	if len(dec.states[1].H) != 1 || dec.states[1].H[0] != 1 || dec.states[1].C[0] != -1 {
		t.Fatalf("second decode should receive step-1 state, got %v", dec.states[1])
	}
	if dec.states[2].H[0] != 2 || dec.states[2].C[0] != -2 {
		t.Fatalf("third decode should receive step-2 state, got %v", dec.states[2])
	}
}

type failingEncoder struct{}

func (failingEncoder) Encode(_ context.Context, _ []float64) (service.State, error) {
	return service.State{}, errors.New("encoder unavailable")
}

func TestSeq2SeqAbortsOnEncoderError(t *testing.T) {
	s := NewSeq2Seq(failingEncoder{}, &countingDecoder{})
	out, err := s.Run(context.Background(), []float64{1, 2, 3}, 2)
	if err == nil {
		t.Fatal("expected error from failing encoder")
	}
	if out != nil {
		t.Fatalf("expected no partial output, got %v", out)
	}
}
