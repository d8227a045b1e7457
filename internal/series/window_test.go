package series

import (
	"testing"
	"time"
)

func mkSeries(values ...float64) *Series {
	return New("test", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), values)
}

func TestWindowAtInterior(t *testing.T) {
	s := mkSeries(10, 20, 30, 40, 50)
	w, err := s.WindowAt(4, -3, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{20, 30, 40}
	if len(w) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(w))
	}
	for i := range want {
		if w[i] != want[i] {
			t.Fatalf("element %d: expected %v, got %v", i, want[i], w[i])
		}
	}
}

func TestWindowAtInclusiveEnd(t *testing.T) {
	s := mkSeries(10, 20, 30, 40, 50)
	w, err := s.WindowAt(4, -2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{30, 40, 50}
	for i := range want {
		if w[i] != want[i] {
			t.Fatalf("element %d: expected %v, got %v", i, want[i], w[i])
		}
	}
}

func TestWindowAtInteriorLength(t *testing.T) {
	s := mkSeries(1, 2, 3, 4, 5, 6, 7, 8)
	// interior windows contain exactly endOff-startOff+1 elements
	for pos := 4; pos < 8; pos++ {
		w, err := s.WindowAt(pos, -4, -1)
		if err != nil {
			t.Fatalf("pos %d: %v", pos, err)
		}
		if len(w) != 4 {
			t.Fatalf("pos %d: expected 4 elements, got %d", pos, len(w))
		}
	}
}

func TestWindowAtClampsAtStart(t *testing.T) {
	s := mkSeries(10, 20, 30, 40, 50)
	w, err := s.WindowAt(0, -3, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// both bounds clamp to 0: a single degenerate element, never a negative index
	if len(w) != 1 {
		t.Fatalf("expected degenerate window of 1 element, got %d", len(w))
	}
	if w[0] != 10 {
		t.Fatalf("expected 10, got %v", w[0])
	}
}

func TestWindowAtErrors(t *testing.T) {
	s := mkSeries(10, 20, 30)
	if _, err := s.WindowAt(5, -1, 0); err == nil {
		t.Fatal("expected error for out-of-range position")
	}
	if _, err := s.WindowAt(1, 0, -1); err == nil {
		t.Fatal("expected error for reversed offsets")
	}
	if _, err := s.WindowAt(2, 0, 2); err == nil {
		t.Fatal("expected error for window past end")
	}
}

func TestExamplesSkipDegenerate(t *testing.T) {
	s := mkSeries(1, 2, 3, 4, 5, 6)
	exs, err := s.Examples(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exs) != 3 {
		t.Fatalf("expected 3 examples, got %d", len(exs))
	}
	first := exs[0]
	if first.Pos != 3 || first.Target != 4 {
		t.Fatalf("unexpected first example: %+v", first)
	}
	for _, ex := range exs {
		if len(ex.Window) != 3 {
			t.Fatalf("example at %d has window of %d", ex.Pos, len(ex.Window))
		}
		if ex.Window[len(ex.Window)-1] != ex.Target-1 {
			t.Fatalf("window does not end right before target: %+v", ex)
		}
	}
}

func TestExamplesTooShort(t *testing.T) {
	s := mkSeries(1, 2, 3)
	if _, err := s.Examples(3); err == nil {
		t.Fatal("expected error for series shorter than lookback+1")
	}
}

func TestTail(t *testing.T) {
	s := mkSeries(1, 2, 3, 4, 5)
	tail, err := s.Tail(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tail[0] != 4 || tail[1] != 5 {
		t.Fatalf("unexpected tail: %v", tail)
	}
	// tail is a copy, not a view
	tail[0] = 99
	if s.Values[3] != 4 {
		t.Fatal("tail mutated the series")
	}
	if _, err := s.Tail(6); err == nil {
		t.Fatal("expected error for tail longer than series")
	}
}
