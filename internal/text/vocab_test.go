package text

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func testVocab() *Vocabulary {
	return NewVocabulary(map[string]int{
		"the":   1,
		"movie": 2,
		"was":   3,
		"great": 4,
	})
}

func TestEncodeShiftsByOffset(t *testing.T) {
	v := testVocab()
	got := v.Encode([]string{"the", "movie"})
	want := []int{StartIndex, 1 + IndexOffset, 2 + IndexOffset}
	if !eq(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestEncodeUnknownWord(t *testing.T) {
	v := testVocab()
	got := v.Encode([]string{"zzz"})
	if !eq(got, []int{StartIndex, UnknownIndex}) {
		t.Fatalf("expected unknown index, got %v", got)
	}
}

func TestDecodeReservedIndices(t *testing.T) {
	v := testVocab()
	got := v.Decode([]int{PadIndex, StartIndex, UnknownIndex, 1 + IndexOffset})
	if got != "? ? ? the" {
		t.Fatalf("expected reserved indices to render as placeholders, got %q", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	v := testVocab()
	tokens := v.EncodeText("the movie was great")
	got := v.Decode(tokens)
	if got != "? the movie was great" {
		t.Fatalf("unexpected round trip: %q", got)
	}
}

func TestLoadVocabulary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.json")
	data, _ := json.Marshal(map[string]int{"hello": 1, "world": 2})
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	v, err := LoadVocabulary(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Size() != 2 {
		t.Fatalf("expected 2 words, got %d", v.Size())
	}

	if _, err := LoadVocabulary(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
