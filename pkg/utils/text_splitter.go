package utils

// SplitText splits a long string into windows of 'chunkSize' characters with
// 'overlap' characters shared between neighbours. Windows shorter than
// 'minLen' are discarded, so tiny trailing fragments (or tiny inputs) produce
// no chunks at all. Character-based, not token-aware: deterministic and cheap,
// at the cost of occasionally cutting a word in half.
func SplitText(text string, chunkSize, overlap, minLen int) []string {
	runes := []rune(text)
	total := len(runes)

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	var chunks []string
	for i := 0; i < total; i += step {
		end := i + chunkSize
		if end > total {
			end = total
		}
		if end-i >= minLen {
			chunks = append(chunks, string(runes[i:end]))
		}
		if end == total {
			break
		}
	}
	return chunks
}
