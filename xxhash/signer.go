// Package xxhash computes structural node signatures with xxHash64.
package xxhash

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/domsift/domsift"
)

var _ domsift.Signer = (*Signer)(nil)

// Signer implements domsift.Signer on top of xxHash64. The zero value is
// ready to use.
type Signer struct{}

// NewSigner returns a new Signer.
func NewSigner() *Signer {
	return &Signer{}
}

// Key returns the coarse structural key of a single node as a readable
// tuple: tag, class list, id, direct-child count.
func (s *Signer) Key(n *domsift.Node) string {
	return n.Tag + "|" + strings.Join(n.Classes, ".") + "|" + n.ID + "|" + strconv.Itoa(len(n.Children))
}

// DeepSignature hashes the subtree rooted at n: the root's fields first,
// then every descendant in document order. Child counts are folded in so
// trees with the same flattened field sequence but different shapes hash
// differently.
func (s *Signer) DeepSignature(n *domsift.Node) string {
	var sb strings.Builder
	s.fold(&sb, n)
	return fmt.Sprintf("%x", xxhash.Sum64String(sb.String()))
}

func (s *Signer) fold(sb *strings.Builder, n *domsift.Node) {
	sb.WriteString(s.Key(n))
	sb.WriteString("|")
	sb.WriteString(n.Text)
	sb.WriteString("\n")
	for _, child := range n.Children {
		s.fold(sb, child)
	}
}
