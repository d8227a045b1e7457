package text

// PadSequence fits a token vector to exactly maxLen entries. Shorter inputs
// are left-padded with zeros so the tokens keep their right alignment; longer
// inputs keep only the last maxLen tokens. The input is never mutated.
func PadSequence(tokens []int, maxLen int) []int {
	if maxLen <= 0 {
		return []int{}
	}

	out := make([]int, maxLen)
	if len(tokens) >= maxLen {
		copy(out, tokens[len(tokens)-maxLen:])
		return out
	}
	copy(out[maxLen-len(tokens):], tokens)
	return out
}

// PadBatch pads every sequence in the batch to the same length.
func PadBatch(batch [][]int, maxLen int) [][]int {
	out := make([][]int, len(batch))
	for i, seq := range batch {
		out[i] = PadSequence(seq, maxLen)
	}
	return out
}
