package mock

import "github.com/domsift/domsift"

var _ domsift.Signer = (*Signer)(nil)

// Signer is a mock implementation of domsift.Signer.
type Signer struct {
	KeyFn           func(n *domsift.Node) string
	DeepSignatureFn func(n *domsift.Node) string
}

func (s *Signer) Key(n *domsift.Node) string {
	return s.KeyFn(n)
}

func (s *Signer) DeepSignature(n *domsift.Node) string {
	return s.DeepSignatureFn(n)
}
