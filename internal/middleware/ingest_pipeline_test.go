package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"HelioCast/internal/domain/models"
)

type fakeProc struct {
	mu   sync.Mutex
	got  []*models.Observation
	fail bool
}

func (p *fakeProc) Process(_ context.Context, o *models.Observation) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("downstream unavailable")
	}
	p.got = append(p.got, o)
	return nil
}

func (p *fakeProc) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.got)
}

type nopMetrics struct{}

func (nopMetrics) RecordMessageSent(string, string)      {}
func (nopMetrics) RecordError(string)                    {}
func (nopMetrics) RecordLastObservation(string, float64) {}
func (nopMetrics) RecordLatency(string, float64)         {}

func obs(station string, v float64) *models.Observation {
	return &models.Observation{Station: station, Timestamp: time.Now().Unix(), Value: v, Source: "test"}
}

func TestPipelineForwardsValidObservation(t *testing.T) {
	proc := &fakeProc{}
	p := NewIngestPipeline(proc, nopMetrics{})

	if err := p.Process(context.Background(), obs("silso", 42)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proc.count() != 1 {
		t.Fatalf("expected 1 processed observation, got %d", proc.count())
	}
}

func TestPipelineRejectsInvalid(t *testing.T) {
	proc := &fakeProc{}
	p := NewIngestPipeline(proc, nopMetrics{})

	if err := p.Process(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil observation")
	}
	if err := p.Process(context.Background(), obs("", 1)); err == nil {
		t.Fatal("expected error for empty station")
	}
	if err := p.Process(context.Background(), obs("silso", -2)); err == nil {
		t.Fatal("expected error for out-of-range value")
	}
	// -1 marks a missing reading and passes validation
	if err := p.Process(context.Background(), obs("silso", -1)); err != nil {
		t.Fatalf("missing reading should pass: %v", err)
	}
	if proc.count() != 1 {
		t.Fatalf("expected only the missing-reading observation, got %d", proc.count())
	}
}

func TestPipelineThrottlesPerStation(t *testing.T) {
	proc := &fakeProc{}
	p := NewIngestPipeline(proc, nopMetrics{}, WithMaxRPS(1))

	if err := p.Process(context.Background(), obs("silso", 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// immediate second observation from the same station is dropped silently
	if err := p.Process(context.Background(), obs("silso", 2)); err != nil {
		t.Fatalf("throttled observation should not error: %v", err)
	}
	if proc.count() != 1 {
		t.Fatalf("expected throttle to drop the second observation, got %d", proc.count())
	}
	// a different station is not affected
	if err := p.Process(context.Background(), obs("noaa", 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proc.count() != 2 {
		t.Fatalf("expected 2 processed observations, got %d", proc.count())
	}
}

func TestPipelineBuffersOnDownstreamError(t *testing.T) {
	proc := &fakeProc{fail: true}
	p := NewIngestPipeline(proc, nopMetrics{}, WithBufferSize(10))

	if err := p.Process(context.Background(), obs("silso", 7)); err == nil {
		t.Fatal("expected downstream error to propagate")
	}
	if len(p.bufCh) != 1 {
		t.Fatalf("expected observation to be buffered, got %d", len(p.bufCh))
	}
}

func TestPipelineTransform(t *testing.T) {
	proc := &fakeProc{}
	p := NewIngestPipeline(proc, nopMetrics{}, WithTransform(func(o *models.Observation) *models.Observation {
		o.Source = "normalized"
		return o
	}))

	if err := p.Process(context.Background(), obs("silso", 5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proc.got[0].Source != "normalized" {
		t.Fatalf("expected transform to apply, got %q", proc.got[0].Source)
	}
}
