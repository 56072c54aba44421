package domsift

// TokenCounter counts model tokens in text. It is used to keep LLM
// prompts within budget before sending content for analysis.
type TokenCounter interface {
	CountTokens(text string) (int, error)
}
