package inference

import (
	"context"
	"fmt"

	domsvc "HelioCast/internal/domain/service"
	"HelioCast/pkg/config"
)

// HTTPEncoder and HTTPDecoder are the two halves of the encoder-decoder
// model variant. The hidden-state pair crosses the wire on every decode call
// so the model server stays stateless between requests.
type HTTPEncoder struct{ base *ModelServiceBase }

func NewHTTPEncoder(cfg *config.Config) *HTTPEncoder {
	return &HTTPEncoder{base: NewModelServiceBase(cfg)}
}

type encodeRequest struct {
	Window []float64 `json:"window"`
}

type encodeResponse struct {
	H []float64 `json:"h"`
	C []float64 `json:"c"`
}

func (e *HTTPEncoder) Encode(ctx context.Context, window []float64) (domsvc.State, error) {
	if len(window) == 0 {
		return domsvc.State{}, fmt.Errorf("empty window")
	}
	var er encodeResponse
	err := e.base.PostJSONWithRetry(ctx, "/model/encode", encodeRequest{Window: window}, &er, 3)
	if err != nil {
		return domsvc.State{}, fmt.Errorf("post encode: %w", err)
	}
	return domsvc.State{H: er.H, C: er.C}, nil
}

var _ domsvc.Encoder = (*HTTPEncoder)(nil)

type HTTPDecoder struct{ base *ModelServiceBase }

func NewHTTPDecoder(cfg *config.Config) *HTTPDecoder {
	return &HTTPDecoder{base: NewModelServiceBase(cfg)}
}

type decodeRequest struct {
	Last float64   `json:"last"`
	H    []float64 `json:"h"`
	C    []float64 `json:"c"`
}

type decodeResponse struct {
	Value float64   `json:"value"`
	H     []float64 `json:"h"`
	C     []float64 `json:"c"`
}

func (d *HTTPDecoder) Decode(ctx context.Context, last float64, st domsvc.State) (float64, domsvc.State, error) {
	var dr decodeResponse
	err := d.base.PostJSONWithRetry(ctx, "/model/decode", decodeRequest{Last: last, H: st.H, C: st.C}, &dr, 3)
	if err != nil {
		return 0, domsvc.State{}, fmt.Errorf("post decode: %w", err)
	}
	return dr.Value, domsvc.State{H: dr.H, C: dr.C}, nil
}

var _ domsvc.Decoder = (*HTTPDecoder)(nil)
