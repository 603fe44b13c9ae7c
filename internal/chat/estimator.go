package chat

// EstimateTokens approximates the token cost of a block of text.
// Uses a simple heuristic: ~4 characters per token. This is deliberately
// rough; it only has to be monotonic in text length so the windowing
// logic behaves predictably, not to match any model's real tokenizer.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + 3) / 4
}
