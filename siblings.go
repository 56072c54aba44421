package domsift

import (
	"fmt"
	"slices"
	"strings"
)

// NodeGroup is a set of structurally similar sibling nodes found in one page
// tree: a candidate repeated list or grid item.
type NodeGroup struct {
	Tag      string   `json:"tag"`
	Classes  []string `json:"classes,omitempty"`
	Depth    int      `json:"depth"`
	Path     string   `json:"path"`     // slash-joined tags from the root to the parent
	Selector string   `json:"selector"` // CSS-like path to the first member
	Count    int      `json:"count"`
	Sample   []string `json:"sample,omitempty"` // text of up to the first three members
	Nodes    []*Node  `json:"-"`
}

// SiblingConfig tunes the similarity heuristic of DetectSiblingGroups. The
// thresholds are heuristics, not proofs of semantic grouping; the zero value
// selects the defaults.
type SiblingConfig struct {
	// MaxChildDiff is the largest allowed difference in direct-child count
	// between the first member of a group and any other member.
	MaxChildDiff int

	// MinGroupSize is the smallest emitted group. Values below 2 are raised
	// to 2: a single node is never a group.
	MinGroupSize int
}

// DefaultSiblingConfig returns the default similarity thresholds.
func DefaultSiblingConfig() SiblingConfig {
	return SiblingConfig{MaxChildDiff: 2, MinGroupSize: 2}
}

func (c SiblingConfig) normalized() SiblingConfig {
	if c == (SiblingConfig{}) {
		c = DefaultSiblingConfig()
	}
	if c.MinGroupSize < 2 {
		c.MinGroupSize = 2
	}
	if c.MaxChildDiff < 0 {
		c.MaxChildDiff = 0
	}
	return c
}

// DetectSiblingGroups finds groups of structurally similar direct siblings
// anywhere in the tree. Duplicate groups are removed and the result is
// sorted deepest first, larger groups first within a depth: deeper groups
// are more likely to be the actual repeated unit than an ancestor wrapper.
func DetectSiblingGroups(root *Node, cfg SiblingConfig) []NodeGroup {
	if root == nil {
		return nil
	}
	cfg = cfg.normalized()

	var groups []NodeGroup
	collectSiblingGroups(root, 0, root.Selector(), root.Tag, cfg, &groups)

	groups = dedupeGroups(groups)
	slices.SortStableFunc(groups, func(a, b NodeGroup) int {
		if a.Depth != b.Depth {
			return b.Depth - a.Depth
		}
		return b.Count - a.Count
	})
	return groups
}

// collectSiblingGroups buckets the direct children of n by (tag, class list)
// and records every bucket that passes the similarity test, then recurses
// into each child. selPath is the CSS-like path down to and including n;
// tagPath is the slash-joined tag path down to and including n.
func collectSiblingGroups(n *Node, depth int, selPath, tagPath string, cfg SiblingConfig, groups *[]NodeGroup) {
	buckets := make(map[string][]*Node)
	var order []string
	for _, child := range n.Children {
		key := child.Tag + "|" + strings.Join(child.Classes, " ")
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], child)
	}

	for _, key := range order {
		members := buckets[key]
		if len(members) < cfg.MinGroupSize {
			continue
		}
		if !similarSiblings(members, cfg.MaxChildDiff) {
			continue
		}

		first := members[0]
		*groups = append(*groups, NodeGroup{
			Tag:      first.Tag,
			Classes:  slices.Clone(first.Classes),
			Depth:    depth + 1,
			Path:     tagPath,
			Selector: selPath + " > " + first.Selector(),
			Count:    len(members),
			Sample:   sampleTexts(members),
			Nodes:    members,
		})
	}

	for _, child := range n.Children {
		collectSiblingGroups(child, depth+1, selPath+" > "+child.Selector(), tagPath+"/"+child.Tag, cfg, groups)
	}
}

// similarSiblings applies the similarity test: every member's direct-child
// count may differ from the first member's by at most maxChildDiff, and the
// members must not all carry the same non-empty direct text. Identical text
// across all members signals a repeated heading or label, not list data.
func similarSiblings(members []*Node, maxChildDiff int) bool {
	first := members[0]
	for _, m := range members[1:] {
		diff := len(m.Children) - len(first.Children)
		if diff < 0 {
			diff = -diff
		}
		if diff > maxChildDiff {
			return false
		}
	}

	if first.Text != "" {
		identical := true
		for _, m := range members[1:] {
			if m.Text != first.Text {
				identical = false
				break
			}
		}
		if identical {
			return false
		}
	}
	return true
}

// sampleTexts returns the text of up to the first three members: each
// member's own text, or the first text found in its subtree.
func sampleTexts(members []*Node) []string {
	var sample []string
	for _, m := range members[:min(3, len(members))] {
		if text := m.FirstText(); text != "" {
			sample = append(sample, truncateText(text, 50))
		}
	}
	return sample
}

// dedupeGroups removes groups with an identical identity key, keeping the
// first occurrence.
func dedupeGroups(groups []NodeGroup) []NodeGroup {
	seen := make(map[string]bool)
	kept := groups[:0]
	for _, g := range groups {
		key := fmt.Sprintf("%d|%s|%s|%s|%d|%s",
			g.Depth, g.Path, g.Tag, strings.Join(g.Classes, " "), g.Count, strings.Join(g.Sample, "|"))
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, g)
	}
	return kept
}
