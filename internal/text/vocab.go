package text

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Token indices below the offset are reserved for padding, the
// start-of-sequence marker, and out-of-vocabulary words. Stored vocabulary
// ranks are shifted up by the offset when encoding.
const (
	IndexOffset  = 3
	PadIndex     = 0
	StartIndex   = 1
	UnknownIndex = 2

	Placeholder = "?"
)

// Vocabulary maps words to shifted token indices and back.
type Vocabulary struct {
	wordToIndex map[string]int
	indexToWord map[int]string
	offset      int
}

// NewVocabulary builds a vocabulary from a word-to-rank map. Ranks are the
// raw dictionary values; the offset is applied during encode and decode.
func NewVocabulary(wordIndex map[string]int) *Vocabulary {
	v := &Vocabulary{
		wordToIndex: make(map[string]int, len(wordIndex)),
		indexToWord: make(map[int]string, len(wordIndex)),
		offset:      IndexOffset,
	}
	for word, rank := range wordIndex {
		v.wordToIndex[word] = rank
		v.indexToWord[rank] = word
	}
	return v
}

// LoadVocabulary reads a JSON word-to-rank dictionary from disk.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %s: %w", path, err)
	}
	var wordIndex map[string]int
	if err := json.Unmarshal(data, &wordIndex); err != nil {
		return nil, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	return NewVocabulary(wordIndex), nil
}

// Size reports the number of known words.
func (v *Vocabulary) Size() int {
	return len(v.wordToIndex)
}

// Encode turns lowercase words into shifted token indices, starting with the
// start-of-sequence marker. Unknown words map to the unknown index.
func (v *Vocabulary) Encode(words []string) []int {
	tokens := make([]int, 0, len(words)+1)
	tokens = append(tokens, StartIndex)
	for _, w := range words {
		rank, ok := v.wordToIndex[strings.ToLower(w)]
		if !ok {
			tokens = append(tokens, UnknownIndex)
			continue
		}
		tokens = append(tokens, rank+v.offset)
	}
	return tokens
}

// EncodeText tokenizes free text on whitespace and encodes it.
func (v *Vocabulary) EncodeText(text string) []int {
	return v.Encode(strings.Fields(text))
}

// Decode maps token indices back to words. Reserved indices below the offset
// and indices with no dictionary entry render as the placeholder.
func (v *Vocabulary) Decode(tokens []int) string {
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok < v.offset {
			words = append(words, Placeholder)
			continue
		}
		word, ok := v.indexToWord[tok-v.offset]
		if !ok {
			words = append(words, Placeholder)
			continue
		}
		words = append(words, word)
	}
	return strings.Join(words, " ")
}
