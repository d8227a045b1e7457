// Package series holds the monthly observation series and the windowing and
// scaling primitives the forecaster is built on.
package series

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Series is an ordered, evenly spaced monthly series. It is treated as
// immutable after construction; derived views are copies.
type Series struct {
	Months []time.Time
	Values []float64
	Name   string
}

// New creates a monthly series starting at the given month.
func New(name string, start time.Time, values []float64) *Series {
	months := make([]time.Time, len(values))
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := range months {
		months[i] = cur
		cur = cur.AddDate(0, 1, 0)
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	return &Series{Months: months, Values: vals, Name: name}
}

// NewWithMonths creates a series with explicit month stamps and validates the
// index invariant: strictly increasing, one calendar month apart.
func NewWithMonths(name string, months []time.Time, values []float64) (*Series, error) {
	if len(months) != len(values) {
		return nil, errors.New("months and values must have the same length")
	}
	for i := 1; i < len(months); i++ {
		want := months[i-1].AddDate(0, 1, 0)
		if !sameMonth(months[i], want) {
			return nil, fmt.Errorf("series index not monthly at position %d: %s after %s",
				i, months[i].Format("2006-01"), months[i-1].Format("2006-01"))
		}
	}
	ms := make([]time.Time, len(months))
	copy(ms, months)
	vs := make([]float64, len(values))
	copy(vs, values)
	return &Series{Months: ms, Values: vs, Name: name}, nil
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// Len returns the length of the series.
func (s *Series) Len() int { return len(s.Values) }

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

// Std calculates the population standard deviation of the series.
func (s *Series) Std() float64 {
	n := len(s.Values)
	if n == 0 {
		return 0
	}
	mean := s.Mean()
	sumSq := 0.0
	for _, v := range s.Values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n))
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	min := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	max := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Slice returns a copy of the series from start to end (exclusive), clamped
// to valid bounds.
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Name: s.Name}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	months := make([]time.Time, len(values))
	if len(s.Months) >= end {
		copy(months, s.Months[start:end])
	}

	return &Series{Months: months, Values: values, Name: s.Name}
}

// SliceYears returns the sub-series with fromYear <= year <= toYear.
func (s *Series) SliceYears(fromYear, toYear int) *Series {
	start, end := -1, len(s.Months)
	for i, m := range s.Months {
		y := m.Year()
		if start < 0 && y >= fromYear {
			start = i
		}
		if y > toYear {
			end = i
			break
		}
	}
	if start < 0 {
		return &Series{Name: s.Name}
	}
	return s.Slice(start, end)
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	months := make([]time.Time, len(s.Months))
	copy(months, s.Months)

	return &Series{Months: months, Values: values, Name: s.Name}
}
