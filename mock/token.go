package mock

import "github.com/domsift/domsift"

var _ domsift.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of domsift.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(text string) (int, error)
}

func (c *TokenCounter) CountTokens(text string) (int, error) {
	return c.CountTokensFn(text)
}
