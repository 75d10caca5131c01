package docproc

import "strings"

// lookbackFraction is the fraction of the window, counted from its end,
// within which a whitespace break is preferred over a hard break.
const lookbackFraction = 0.2

// SplitText splits text into chunks of at most chunkSize characters,
// preferring a whitespace break within the last lookbackFraction of the
// window. Empty text yields zero chunks.
func SplitText(text string, chunkSize int) []string {
	if len(text) == 0 || chunkSize <= 0 {
		return nil
	}
	runes := []rune(text)
	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		breakAt := end
		lookback := end - int(float64(chunkSize)*lookbackFraction)
		if lookback < start {
			lookback = start
		}
		for i := end; i > lookback; i-- {
			if isWhitespace(runes[i-1]) {
				breakAt = i - 1
				break
			}
		}
		if breakAt <= start {
			breakAt = end
		}
		chunks = append(chunks, string(runes[start:breakAt]))
		start = breakAt
		for start < len(runes) && isWhitespace(runes[start]) {
			start++
		}
	}
	return chunks
}

func isWhitespace(r rune) bool {
	return strings.ContainsRune(" \t\n\r", r)
}
