package usecase

import (
	"context"

	"HelioCast/internal/domain/models"
	drepo "HelioCast/internal/domain/repository"
	mid "HelioCast/internal/middleware"
)

// ObservationCollector collects observations from the feed stream and processes them.
type ObservationCollector struct {
	stream  drepo.ObservationStream
	proc    *ObservationProcessor
	metrics drepo.Metrics
	pipe    *mid.IngestPipeline
}

// NewObservationCollector creates a new ObservationCollector instance.
func NewObservationCollector(stream drepo.ObservationStream, proc *ObservationProcessor, metrics drepo.Metrics, pipe *mid.IngestPipeline) *ObservationCollector {
	return &ObservationCollector{stream: stream, proc: proc, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the feed stream is connected.
func (c *ObservationCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *ObservationCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	obsCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, obsCh, errCh)
	return nil
}

func (c *ObservationCollector) consume(ctx context.Context, obsCh <-chan *models.Observation, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("stream")
				_ = c.stream.Reconnect(ctx)
			}
		case o := <-obsCh:
			if o == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, o)
			} else {
				_ = c.proc.Process(ctx, o)
			}
			c.metrics.RecordLastObservation(o.Station, o.Value)
		}
	}
}

func (c *ObservationCollector) Stop() error { return c.stream.Close() }

// Processor returns the underlying ObservationProcessor for lifecycle management.
func (c *ObservationCollector) Processor() *ObservationProcessor { return c.proc }

// Shutdown stops the pipeline and closes the stream.
func (c *ObservationCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}
