package domsift

import (
	"strings"
)

// Node is a single element in a filtered semantic tree. Tag names are
// lowercased, presentation-state classes are removed at build time, and
// Text holds only the element's direct text, not text inherited from
// descendants. Each node exclusively owns its children; trees contain no
// shared or back references.
type Node struct {
	Tag      string   `json:"tag"`
	ID       string   `json:"id,omitempty"`
	Classes  []string `json:"classes,omitempty"`
	Text     string   `json:"text,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// Selector returns a CSS-like selector for the node itself:
// tag, then #id if present, then .class for each class.
func (n *Node) Selector() string {
	var sb strings.Builder
	sb.WriteString(n.Tag)
	if n.ID != "" {
		sb.WriteString("#")
		sb.WriteString(n.ID)
	}
	for _, class := range n.Classes {
		sb.WriteString(".")
		sb.WriteString(class)
	}
	return sb.String()
}

// Walk visits the node and every descendant in document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree, including the node itself.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) { count++ })
	return count
}

// DeepText returns all text in the subtree in document order, joined by
// single spaces. This is the flattened representation handed to LLM
// consumers.
func (n *Node) DeepText() string {
	var parts []string
	n.Walk(func(node *Node) {
		if node.Text != "" {
			parts = append(parts, node.Text)
		}
	})
	return strings.Join(parts, " ")
}

// FirstText returns the node's own text, or the first text found in its
// subtree in document order. Empty if the subtree carries no text at all.
func (n *Node) FirstText() string {
	if n.Text != "" {
		return n.Text
	}
	for _, child := range n.Children {
		if text := child.FirstText(); text != "" {
			return text
		}
	}
	return ""
}

// Find returns all nodes matching a whitespace-separated path of selector
// parts, e.g. "table.itemlist tr.athing". Each part is a tag, optionally
// followed by #id and any number of .class tokens; parts match descendants
// at any depth, so intermediate non-matching wrappers are skipped.
func (n *Node) Find(path string) []*Node {
	parts := strings.Fields(path)
	if len(parts) == 0 {
		return nil
	}
	var results []*Node
	n.findRecursive(parts, 0, &results)
	return results
}

func (n *Node) findRecursive(parts []string, depth int, results *[]*Node) {
	if depth >= len(parts) {
		return
	}

	if n.matchesPart(parts[depth]) {
		if depth == len(parts)-1 {
			*results = append(*results, n)
		} else {
			for _, child := range n.Children {
				child.findRecursive(parts, depth+1, results)
			}
		}
	}

	// The current part may also match deeper in the tree.
	for _, child := range n.Children {
		child.findRecursive(parts, depth, results)
	}
}

// matchesPart reports whether the node matches a single selector part like
// "td", "tr.athing.submission", or "div#main.content".
func (n *Node) matchesPart(part string) bool {
	tag := part
	var id string
	var classes []string

	if i := strings.IndexByte(tag, '.'); i >= 0 {
		classes = strings.Split(tag[i+1:], ".")
		tag = tag[:i]
	}
	if i := strings.IndexByte(tag, '#'); i >= 0 {
		id = tag[i+1:]
		tag = tag[:i]
	}

	if tag != "" && n.Tag != tag {
		return false
	}
	if id != "" && n.ID != id {
		return false
	}
	for _, class := range classes {
		if !n.hasClass(class) {
			return false
		}
	}
	return true
}

func (n *Node) hasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// String renders the subtree as ASCII art for terminal display, one node
// per line with box-drawing prefixes, id/class attributes, and bracketed
// text previews truncated to 50 characters.
func (n *Node) String() string {
	var sb strings.Builder
	n.render(&sb, 0, true)
	return sb.String()
}

func (n *Node) render(sb *strings.Builder, depth int, isLast bool) {
	for i := 0; i < depth; i++ {
		if i == depth-1 {
			if isLast {
				sb.WriteString("└── ")
			} else {
				sb.WriteString("├── ")
			}
		} else {
			sb.WriteString("│   ")
		}
	}

	sb.WriteString(n.Tag)
	if n.ID != "" {
		sb.WriteString(" id=\"" + n.ID + "\"")
	}
	if len(n.Classes) > 0 {
		sb.WriteString(" class=\"" + strings.Join(n.Classes, " ") + "\"")
	}
	if n.Text != "" {
		sb.WriteString(" [" + truncateText(n.Text, 50) + "]")
	}
	sb.WriteString("\n")

	for i, child := range n.Children {
		child.render(sb, depth+1, i == len(n.Children)-1)
	}
}

// truncateText shortens text to at most max characters, appending "..." when
// truncated. Operates on runes so multi-byte text is never split.
func truncateText(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-3]) + "..."
}
