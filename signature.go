package domsift

// Signer computes structural signatures over semantic trees. Signatures are
// compared across independently-fetched pages, so implementations must be
// deterministic across processes: equal (post-generalization) trees always
// produce equal signatures.
type Signer interface {
	// Key returns the coarse Structural Key of a single node: a fingerprint
	// of its tag, class list, id, and direct-child count. Nodes with equal
	// keys are candidates for a duplicate or group relationship, nothing
	// more.
	Key(n *Node) string

	// DeepSignature returns the fine-grained signature of the whole subtree:
	// the node's own fields first, then every descendant in document order,
	// folded into one hash. Generalize leaf text before calling so volatile
	// counters do not defeat matching.
	DeepSignature(n *Node) string
}
