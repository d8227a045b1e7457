package baseline

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	domsvc "HelioCast/internal/domain/service"
)

// AR is an in-process autoregressive predictor of order p, fit by ordinary
// least squares on the scaled training values. It serves as the reference
// point the model forecast is compared against and as a fallback when the
// model server is unreachable.
type AR struct {
	order     int
	intercept float64
	coeffs    []float64
	fitted    bool
}

func NewAR(order int) *AR {
	return &AR{order: order}
}

// Fit estimates the intercept and lag coefficients from the training values.
// Row t of the design matrix holds values[t-p..t-1] with target values[t].
func (a *AR) Fit(values []float64) error {
	p := a.order
	if p <= 0 {
		return fmt.Errorf("order must be positive, got %d", p)
	}
	n := len(values) - p
	if n < p+1 {
		return fmt.Errorf("need at least %d values for order %d, got %d", 2*p+1, p, len(values))
	}

	x := mat.NewDense(n, p+1, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j := 0; j < p; j++ {
			x.Set(i, j+1, values[i+j])
		}
		y.SetVec(i, values[i+p])
	}

	var beta mat.VecDense
	var qr mat.QR
	qr.Factorize(x)
	if err := qr.SolveVecTo(&beta, false, y); err != nil {
		return fmt.Errorf("solve least squares: %w", err)
	}

	a.intercept = beta.AtVec(0)
	a.coeffs = make([]float64, p)
	for j := 0; j < p; j++ {
		a.coeffs[j] = beta.AtVec(j + 1)
	}
	a.fitted = true
	return nil
}

// Fitted reports whether Fit has succeeded.
func (a *AR) Fitted() bool { return a.fitted }

// Order returns the lag order.
func (a *AR) Order() int { return a.order }

// PredictStep applies the fitted coefficients to the last p window values.
func (a *AR) PredictStep(_ context.Context, window []float64) (float64, error) {
	if !a.fitted {
		return 0, fmt.Errorf("baseline not fitted")
	}
	if len(window) < a.order {
		return 0, fmt.Errorf("window has %d values, need at least %d", len(window), a.order)
	}

	lags := window[len(window)-a.order:]
	pred := a.intercept
	for j, c := range a.coeffs {
		pred += c * lags[j]
	}
	return pred, nil
}

var _ domsvc.StepPredictor = (*AR)(nil)
