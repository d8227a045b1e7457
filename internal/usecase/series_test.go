package usecase

import (
	"context"
	"testing"
	"time"

	"HelioCast/internal/domain/models"
	domrepo "HelioCast/internal/domain/repository"
	"HelioCast/internal/series"
	"HelioCast/pkg/config"
)

func splitTestConfig() *config.Config {
	cfg := testConfig()
	cfg.Forecast.Split.TrainTo = 2002
	cfg.Forecast.Split.ValidationTo = 2003
	return cfg
}

func TestGetSeriesStampsSplitLabels(t *testing.T) {
	store := testStore() // 60 monthly points starting 2000-01
	uc := NewSeriesUseCase(store, splitTestConfig())

	res, err := uc.GetSeries(context.Background(), GetSeriesParams{
		Series:  "sunspots",
		From:    time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2004, 12, 31, 0, 0, 0, 0, time.UTC),
		Cadence: domrepo.CadMonthly,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 60 {
		t.Fatalf("expected 60 points, got %d", res.Count)
	}

	counts := map[string]int{}
	for _, p := range res.Points {
		counts[p.Split]++
	}
	// years 2000-2002 train, 2003 validation, 2004 test
	if counts[series.SplitTrain] != 36 || counts[series.SplitValidation] != 12 || counts[series.SplitTest] != 12 {
		t.Fatalf("unexpected split counts: %v", counts)
	}
}

func TestGetSeriesValidation(t *testing.T) {
	uc := NewSeriesUseCase(testStore(), splitTestConfig())

	if _, err := uc.GetSeries(context.Background(), GetSeriesParams{}); err == nil {
		t.Fatal("expected error for missing series name")
	}

	from := time.Date(2004, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := uc.GetSeries(context.Background(), GetSeriesParams{Series: "sunspots", From: from, To: to}); err == nil {
		t.Fatal("expected error for from > to")
	}
}

func TestGetSeriesAppliesLimit(t *testing.T) {
	uc := NewSeriesUseCase(testStore(), splitTestConfig())

	res, err := uc.GetSeries(context.Background(), GetSeriesParams{
		Series: "sunspots",
		From:   time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2004, 12, 31, 0, 0, 0, 0, time.UTC),
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 10 || len(res.Points) != 10 {
		t.Fatalf("expected limit of 10 applied, got %d", res.Count)
	}
}

func TestGetLatestAscendingWithRange(t *testing.T) {
	store := testStore()
	uc := NewSeriesUseCase(store, splitTestConfig())

	res, err := uc.GetLatest(context.Background(), "sunspots", 12, domrepo.CadMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 12 {
		t.Fatalf("expected 12 points, got %d", res.Count)
	}
	last := store.points[len(store.points)-1].Month
	if !res.To.Equal(last) {
		t.Fatalf("expected To %v, got %v", last, res.To)
	}
	if !res.From.Equal(last.AddDate(0, -11, 0)) {
		t.Fatalf("expected From %v, got %v", last.AddDate(0, -11, 0), res.From)
	}
	for i := 1; i < len(res.Points); i++ {
		if !res.Points[i].Month.After(res.Points[i-1].Month) {
			t.Fatalf("points not ascending at %d", i)
		}
	}
}

type recordingClassifier struct {
	got []int
}

func (c *recordingClassifier) Score(_ context.Context, tokens []int) (models.SentimentScore, error) {
	c.got = append([]int(nil), tokens...)
	return models.SentimentScore{Label: "positive", Score: 0.91, Model: "lstm"}, nil
}

func TestSentimentPadsBeforeScoring(t *testing.T) {
	cfg := testConfig()
	cfg.Text.MaxLen = 5
	cl := &recordingClassifier{}
	uc := NewSentimentUseCase(cl, cfg)

	score, err := uc.Score(context.Background(), []int{7, 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Label != "positive" {
		t.Fatalf("unexpected label %q", score.Label)
	}
	want := []int{0, 0, 0, 7, 8}
	if len(cl.got) != len(want) {
		t.Fatalf("expected padded length %d, got %d", len(want), len(cl.got))
	}
	for i := range want {
		if cl.got[i] != want[i] {
			t.Fatalf("padded[%d]: expected %d, got %d", i, want[i], cl.got[i])
		}
	}
}

func TestSentimentTruncatesKeepingTail(t *testing.T) {
	cfg := testConfig()
	cfg.Text.MaxLen = 3
	cl := &recordingClassifier{}
	uc := NewSentimentUseCase(cl, cfg)

	if _, err := uc.Score(context.Background(), []int{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{3, 4, 5}
	for i := range want {
		if cl.got[i] != want[i] {
			t.Fatalf("truncated[%d]: expected %d, got %d", i, want[i], cl.got[i])
		}
	}
}

func TestSentimentRejectsBadTokens(t *testing.T) {
	uc := NewSentimentUseCase(&recordingClassifier{}, testConfig())

	if _, err := uc.Score(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty tokens")
	}
	if _, err := uc.Score(context.Background(), []int{1, -2}); err == nil {
		t.Fatal("expected error for negative token")
	}
}
