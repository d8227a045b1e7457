package models

import "time"

// Observation is a single daily relative sunspot number reported by a station.
type Observation struct {
	Station   string
	Timestamp int64 // unix seconds of the observation day
	Value     float64
	Source    string
}

// MonthlyPoint is one point of the monthly mean series served to clients.
type MonthlyPoint struct {
	Month time.Time
	Value float64
	Split string // "train", "validation" or "test"
}

// Forecast is a multi-step forecast produced by the autoregressive loop.
// Values are in the observed (descaled) domain.
type Forecast struct {
	Series    string
	Start     time.Time // first forecasted month
	Horizon   int
	Model     string // "rnn", "seq2seq" or "baseline"
	Values    []float64
	Timestamp time.Time
}

// SentimentScore is the classifier verdict for one review.
type SentimentScore struct {
	Label     string // "positive" or "negative"
	Score     float64
	Model     string
	Timestamp time.Time
}

// ForecastOverview bundles the model forecast with the baseline for the same
// window so clients can compare them side by side.
type ForecastOverview struct {
	Series    string
	Horizon   int
	Timestamp time.Time
	Model     *Forecast
	Baseline  *Forecast
	Errors    map[string]string
}
