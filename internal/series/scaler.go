package series

import (
	"errors"
	"fmt"
	"math"
)

// ErrScalerNotFit is returned when a scaler is applied before fitting.
var ErrScalerNotFit = errors.New("scaler not fit")

// Scaler standardizes values with the mean and standard deviation of a fixed
// historical subrange. Fit once, then Scale and Descale are pure.
type Scaler struct {
	Mean float64
	Std  float64
	fit  bool
}

// FitYears fits the scaler from the sub-series within [fromYear, toYear].
// The fit range must come from the training split only; validation and test
// values never leak into it.
func (sc *Scaler) FitYears(s *Series, fromYear, toYear int) error {
	sub := s.SliceYears(fromYear, toYear)
	return sc.Fit(sub.Values)
}

// Fit derives center and spread from the given values.
func (sc *Scaler) Fit(values []float64) error {
	if len(values) == 0 {
		return errors.New("scaler fit on empty range")
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	std := math.Sqrt(sumSq / float64(len(values)))
	if std == 0 {
		return fmt.Errorf("scaler fit range is constant (mean %.4f)", mean)
	}
	sc.Mean = mean
	sc.Std = std
	sc.fit = true
	return nil
}

// Fitted reports whether the scaler has been fit.
func (sc *Scaler) Fitted() bool { return sc.fit }

// Scale maps an observed value into the model domain.
func (sc *Scaler) Scale(x float64) (float64, error) {
	if !sc.fit {
		return 0, ErrScalerNotFit
	}
	return (x - sc.Mean) / sc.Std, nil
}

// Descale maps a model-domain value back to the observed domain.
func (sc *Scaler) Descale(z float64) (float64, error) {
	if !sc.fit {
		return 0, ErrScalerNotFit
	}
	return z*sc.Std + sc.Mean, nil
}

// ScaleSlice scales a whole window, returning a new slice.
func (sc *Scaler) ScaleSlice(xs []float64) ([]float64, error) {
	if !sc.fit {
		return nil, ErrScalerNotFit
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = (x - sc.Mean) / sc.Std
	}
	return out, nil
}

// DescaleSlice descales a whole forecast, returning a new slice.
func (sc *Scaler) DescaleSlice(zs []float64) ([]float64, error) {
	if !sc.fit {
		return nil, ErrScalerNotFit
	}
	out := make([]float64, len(zs))
	for i, z := range zs {
		out[i] = z*sc.Std + sc.Mean
	}
	return out, nil
}
