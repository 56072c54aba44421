package domsift

import (
	"slices"
)

// Deduper tracks which subtree signatures recur across the pages of one
// domain. Create one Deduper per domain with the lifecycle of that domain's
// crawl.
//
// Deduper is not safe for concurrent use: the intersect-then-insert sequence
// in AddPageTree is not atomic, so concurrent writers must be serialized
// externally (the crawl coordinator adds pages from a single goroutine).
type Deduper struct {
	signer    Signer
	trees     map[string]*Node
	multisets map[string]map[string]int
	dups      map[string]struct{}
}

// NewDeduper returns an empty Deduper computing signatures with signer.
func NewDeduper(signer Signer) *Deduper {
	return &Deduper{
		signer:    signer,
		trees:     make(map[string]*Node),
		multisets: make(map[string]map[string]int),
		dups:      make(map[string]struct{}),
	}
}

// Seed marks signatures as known duplicates before any tree is added. Used
// to resume a domain from a persisted duplicate set.
func (d *Deduper) Seed(signatures []string) {
	for _, sig := range signatures {
		d.dups[sig] = struct{}{}
	}
}

// AddPageTree registers the tree fetched from url. Every signature the new
// tree shares with an already-stored tree is added to the duplicate set,
// then the tree is stored. The duplicate set only ever grows.
//
// Duplicates surface from the second tree onward: earlier-stored trees are
// not retroactively re-filtered when a later page reveals shared content.
// Callers needing symmetric results re-run FilterDuplicates on every tree
// after the last page is added.
func (d *Deduper) AddPageTree(url string, tree *Node) {
	if tree == nil {
		return
	}

	multiset := d.signatureMultiset(tree)

	for _, stored := range d.multisets {
		for sig := range multiset {
			if _, ok := stored[sig]; ok {
				d.dups[sig] = struct{}{}
			}
		}
	}

	d.trees[url] = tree
	d.multisets[url] = multiset
}

// FilterDuplicates rebuilds tree without any node whose deep signature is in
// the duplicate set. A flagged node is pruned together with its entire
// subtree. Returns nil when the root itself is flagged. The input tree is
// left untouched.
func (d *Deduper) FilterDuplicates(tree *Node) *Node {
	if tree == nil {
		return nil
	}
	if _, ok := d.dups[d.signer.DeepSignature(tree)]; ok {
		return nil
	}

	filtered := &Node{
		Tag:     tree.Tag,
		ID:      tree.ID,
		Classes: slices.Clone(tree.Classes),
		Text:    tree.Text,
	}
	for _, child := range tree.Children {
		if kept := d.FilterDuplicates(child); kept != nil {
			filtered.Children = append(filtered.Children, kept)
		}
	}
	return filtered
}

// IsDuplicate reports whether a signature has been flagged as recurring.
func (d *Deduper) IsDuplicate(signature string) bool {
	_, ok := d.dups[signature]
	return ok
}

// Duplicates returns the flagged signatures in sorted order.
func (d *Deduper) Duplicates() []string {
	sigs := make([]string, 0, len(d.dups))
	for sig := range d.dups {
		sigs = append(sigs, sig)
	}
	slices.Sort(sigs)
	return sigs
}

// Tree returns the stored tree for url.
func (d *Deduper) Tree(url string) (*Node, bool) {
	tree, ok := d.trees[url]
	return tree, ok
}

// Len returns the number of stored page trees.
func (d *Deduper) Len() int {
	return len(d.trees)
}

// signatureMultiset computes the deep signature of every node in the tree
// with occurrence counts.
func (d *Deduper) signatureMultiset(tree *Node) map[string]int {
	multiset := make(map[string]int)
	tree.Walk(func(n *Node) {
		multiset[d.signer.DeepSignature(n)]++
	})
	return multiset
}
