package series

import (
	"fmt"
	"time"
)

// Split labels. Every index carries exactly one.
const (
	SplitTrain      = "train"
	SplitValidation = "validation"
	SplitTest       = "test"
)

// SplitConfig tags each month by year range: train up to and including
// TrainToYear, validation up to and including ValidationToYear, test after.
type SplitConfig struct {
	TrainToYear      int
	ValidationToYear int
}

// Validate checks the ranges are ordered.
func (c SplitConfig) Validate() error {
	if c.TrainToYear <= 0 || c.ValidationToYear <= 0 {
		return fmt.Errorf("split years must be positive, got train<=%d validation<=%d", c.TrainToYear, c.ValidationToYear)
	}
	if c.ValidationToYear <= c.TrainToYear {
		return fmt.Errorf("validation range must follow train range (%d <= %d)", c.ValidationToYear, c.TrainToYear)
	}
	return nil
}

// Label returns the split label for a month. The three ranges are disjoint
// and collectively cover the whole series.
func (c SplitConfig) Label(t time.Time) string {
	switch y := t.Year(); {
	case y <= c.TrainToYear:
		return SplitTrain
	case y <= c.ValidationToYear:
		return SplitValidation
	default:
		return SplitTest
	}
}

// Split partitions the series into train, validation and test sub-series.
func (c SplitConfig) Split(s *Series) (train, validation, test *Series) {
	firstVal, firstTest := len(s.Months), len(s.Months)
	for i, m := range s.Months {
		switch c.Label(m) {
		case SplitValidation:
			if i < firstVal {
				firstVal = i
			}
		case SplitTest:
			if i < firstTest {
				firstTest = i
			}
		}
	}
	if firstVal > firstTest {
		firstVal = firstTest
	}
	return s.Slice(0, firstVal), s.Slice(firstVal, firstTest), s.Slice(firstTest, len(s.Months))
}
