package text

import "testing"

func eq(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPadSequenceTruncatesFromTheLeft(t *testing.T) {
	got := PadSequence([]int{1, 2, 3, 4, 5}, 3)
	if !eq(got, []int{3, 4, 5}) {
		t.Fatalf("expected [3 4 5], got %v", got)
	}
}

func TestPadSequencePadsOnTheLeft(t *testing.T) {
	got := PadSequence([]int{7, 8}, 5)
	if !eq(got, []int{0, 0, 0, 7, 8}) {
		t.Fatalf("expected [0 0 0 7 8], got %v", got)
	}
}

func TestPadSequenceExactLength(t *testing.T) {
	in := []int{4, 5, 6}
	got := PadSequence(in, 3)
	if !eq(got, in) {
		t.Fatalf("expected %v, got %v", in, got)
	}
	got[0] = 99
	if in[0] != 4 {
		t.Fatal("input was aliased by the output")
	}
}

func TestPadSequenceEmptyAndZeroMax(t *testing.T) {
	if got := PadSequence(nil, 3); !eq(got, []int{0, 0, 0}) {
		t.Fatalf("expected all zeros, got %v", got)
	}
	if got := PadSequence([]int{1, 2}, 0); len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
}

func TestPadBatch(t *testing.T) {
	got := PadBatch([][]int{{1}, {1, 2, 3, 4}}, 3)
	if !eq(got[0], []int{0, 0, 1}) || !eq(got[1], []int{2, 3, 4}) {
		t.Fatalf("unexpected batch: %v", got)
	}
}
