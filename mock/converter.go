package mock

import "github.com/domsift/domsift"

var _ domsift.Converter = (*Converter)(nil)

// Converter is a mock implementation of domsift.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
