package series

import "fmt"

// WindowAt returns the values spanning [pos+startOff, pos+endOff], both ends
// inclusive. Offsets are relative to pos; negative offsets look backward.
// Near the start of the series both bounds clamp to 0, so early positions
// yield degenerate short windows instead of negative indexes. Callers that
// train on windows must filter those out; Examples does.
func (s *Series) WindowAt(pos, startOff, endOff int) ([]float64, error) {
	if pos < 0 || pos >= len(s.Values) {
		return nil, fmt.Errorf("window position %d out of range [0,%d)", pos, len(s.Values))
	}
	if endOff < startOff {
		return nil, fmt.Errorf("window end offset %d before start offset %d", endOff, startOff)
	}
	lo := pos + startOff
	if lo < 0 {
		lo = 0
	}
	hi := pos + endOff
	if hi < 0 {
		hi = 0
	}
	if hi >= len(s.Values) {
		return nil, fmt.Errorf("window end %d past series length %d", hi, len(s.Values))
	}
	out := make([]float64, hi-lo+1)
	copy(out, s.Values[lo:hi+1])
	return out, nil
}

// Example is one supervised training pair: a full-length lookback window and
// the observation immediately after it.
type Example struct {
	Pos    int // index of the target within the series
	Window []float64
	Target float64
}

// Examples derives (lookback, target) pairs for every position that has a
// full-length window behind it. Positions whose clamped window would come up
// short are skipped entirely rather than padded or trained on.
func (s *Series) Examples(lookback int) ([]Example, error) {
	if lookback <= 0 {
		return nil, fmt.Errorf("lookback must be positive, got %d", lookback)
	}
	if len(s.Values) <= lookback {
		return nil, fmt.Errorf("series of length %d too short for lookback %d", len(s.Values), lookback)
	}
	out := make([]Example, 0, len(s.Values)-lookback)
	for pos := lookback; pos < len(s.Values); pos++ {
		w, err := s.WindowAt(pos, -lookback, -1)
		if err != nil {
			return nil, err
		}
		if len(w) < lookback {
			continue
		}
		out = append(out, Example{Pos: pos, Window: w, Target: s.Values[pos]})
	}
	return out, nil
}

// Tail returns a copy of the last n values, the seed window for forecasting.
func (s *Series) Tail(n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("tail length must be positive, got %d", n)
	}
	if n > len(s.Values) {
		return nil, fmt.Errorf("tail %d longer than series %d", n, len(s.Values))
	}
	out := make([]float64, n)
	copy(out, s.Values[len(s.Values)-n:])
	return out, nil
}
