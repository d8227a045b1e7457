package features

import (
	"math"
	"sort"
	"time"

	"HelioCast/internal/domain/models"
	"HelioCast/pkg/util"
)

// MonthlyMeans rolls daily observations up into calendar-month means. Days
// with multiple reports contribute each report; missing days simply do not
// contribute. Negative values mark a missing reading upstream and are
// skipped. The result is sorted by month ascending.
func MonthlyMeans(obs []*models.Observation) []models.MonthlyPoint {
	if len(obs) == 0 {
		return nil
	}

	type acc struct {
		sum float64
		n   int
	}
	buckets := make(map[time.Time]*acc)
	for _, o := range obs {
		if o == nil || o.Value < 0 {
			continue
		}
		month := util.MonthStart(time.Unix(o.Timestamp, 0).UTC())
		a := buckets[month]
		if a == nil {
			a = &acc{}
			buckets[month] = a
		}
		a.sum += o.Value
		a.n++
	}

	out := make([]models.MonthlyPoint, 0, len(buckets))
	for month, a := range buckets {
		out = append(out, models.MonthlyPoint{Month: month, Value: a.sum / float64(a.n)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// Smooth13 applies the conventional 13-month centered smoothing where the
// two endpoint months carry half weight. Months without a full 13-month
// neighborhood keep their raw value.
func Smooth13(points []models.MonthlyPoint) []models.MonthlyPoint {
	out := make([]models.MonthlyPoint, len(points))
	copy(out, points)
	for i := 6; i < len(points)-6; i++ {
		sum := 0.5*points[i-6].Value + 0.5*points[i+6].Value
		for j := i - 5; j <= i+5; j++ {
			sum += points[j].Value
		}
		out[i].Value = sum / 12
	}
	return out
}

// MeanAbsoluteError compares predictions against observed values position by
// position. NaN if the lengths differ or either slice is empty.
func MeanAbsoluteError(predicted, observed []float64) float64 {
	if len(predicted) == 0 || len(predicted) != len(observed) {
		return math.NaN()
	}
	sum := 0.0
	for i := range predicted {
		sum += math.Abs(predicted[i] - observed[i])
	}
	return sum / float64(len(predicted))
}

// AlignFromTo rounds a time range to whole-day or whole-month boundaries.
func AlignFromTo(from, to time.Time, cad string) (time.Time, time.Time) {
	switch cad {
	case "monthly":
		from = util.MonthStart(from)
		to = util.MonthStart(to)
	default:
		from = from.Truncate(24 * time.Hour)
		to = to.Truncate(24 * time.Hour)
	}
	return from, to
}
