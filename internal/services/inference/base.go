package inference

import (
	"context"
	"fmt"
	"time"

	"HelioCast/pkg/config"
	xhttp "HelioCast/pkg/http"
)

// ModelServiceBase provides a DRY foundation for model-server HTTP clients.
// It centralizes client construction and JSON POST request handling.
type ModelServiceBase struct {
	baseURL string
	client  *xhttp.Client
}

// NewModelServiceBase builds an HTTP client with timeout and base URL from config.
func NewModelServiceBase(cfg *config.Config) *ModelServiceBase {
	timeout := cfg.Inference.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ModelServiceBase{
		baseURL: cfg.Inference.ModelServiceURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// PostJSON posts the given payload to `path` under baseURL and decodes JSON into dest.
func (b *ModelServiceBase) PostJSON(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return fmt.Errorf("model service http client not initialized")
	}
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    b.baseURL + path,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: payload,
	}, dest)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	return nil
}

// PostJSONWithRetry posts JSON with up to `attempts` retries for transient errors.
func (b *ModelServiceBase) PostJSONWithRetry(ctx context.Context, path string, payload interface{}, dest interface{}, attempts int) error {
	if attempts <= 1 {
		return b.PostJSON(ctx, path, payload, dest)
	}
	var err error
	for i := 1; i <= attempts; i++ {
		err = b.PostJSON(ctx, path, payload, dest)
		if err == nil {
			return nil
		}
		// simple backoff
		select {
		case <-time.After(time.Duration(i) * 50 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
