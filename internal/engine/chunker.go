package engine

// SplitText splits text into overlapping windows: chunk i starts at
// i*(chunkSize-overlap) characters and spans chunkSize characters, except the
// final chunk which may be shorter. The split is deterministic: identical
// input and parameters always yield the identical sequence.
//
// Parameters are assumed validated by Config.Validate (overlap < chunkSize).
func SplitText(text string, chunkSize, overlap int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := chunkSize - overlap

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}

	return chunks
}
