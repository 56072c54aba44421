package goquery

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/domsift/domsift"
	"golang.org/x/net/html"
)

var _ domsift.TreeBuilder = (*TreeBuilder)(nil)

// TreeBuilder builds filtered semantic trees from raw HTML. Non-content
// tags are dropped, presentation-state classes are stripped, and empty
// subtrees are pruned, so the output reflects page structure rather than
// markup noise.
type TreeBuilder struct {
	ignoredTags    map[string]bool
	ignoredClasses map[string]bool
}

// NewTreeBuilder creates a TreeBuilder with the standard ignore sets.
func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{
		ignoredTags: map[string]bool{
			"script":   true,
			"style":    true,
			"meta":     true,
			"link":     true,
			"noscript": true,
			"title":    true,
			"head":     true,
			"img":      true,
			"video":    true,
			"audio":    true,
			"svg":      true,
			"path":     true,
			"iframe":   true,
			"embed":    true,
			"object":   true,
		},
		ignoredClasses: map[string]bool{
			"active":      true,
			"highlighted": true,
			"selected":    true,
		},
	}
}

// BuildTree parses rawHTML and returns the filtered semantic tree. The
// parser recovers from malformed markup, so a build never fails on bad
// input; a nil root means the page had no usable content at all.
func (b *TreeBuilder) BuildTree(rawHTML string) (*domsift.Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, domsift.Errorf(domsift.EINVALID, "failed to parse HTML: %v", err)
	}

	root := doc.Find("html").First()
	if root.Length() == 0 {
		return nil, nil
	}

	return b.processElement(root.Nodes[0]), nil
}

// processElement converts one DOM element and its subtree, or returns nil
// when the element is ignored or empties out.
func (b *TreeBuilder) processElement(el *html.Node) *domsift.Node {
	tag := strings.ToLower(el.Data)
	if b.ignoredTags[tag] {
		return nil
	}

	node := &domsift.Node{
		Tag:     tag,
		ID:      strings.TrimSpace(attrValue(el, "id")),
		Classes: b.filterClasses(attrValue(el, "class")),
		Text:    directText(el),
	}

	for child := el.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		if childNode := b.processElement(child); childNode != nil {
			node.Children = append(node.Children, childNode)
		}
	}

	node.Children = mergeSiblingParagraphs(node.Children)

	if isControlOnly(node.Text) {
		node.Text = ""
	}
	if node.Text == "" && len(node.Children) == 0 {
		return nil
	}

	return node
}

// filterClasses splits a class attribute into tokens, dropping empty tokens
// and presentation-state classes that vary between renders of the same
// structure.
func (b *TreeBuilder) filterClasses(classAttr string) []string {
	var classes []string
	for _, class := range strings.Fields(classAttr) {
		if b.ignoredClasses[class] {
			continue
		}
		classes = append(classes, class)
	}
	return classes
}

// directText concatenates the element's immediate text nodes, excluding any
// text inherited from descendants.
func directText(el *html.Node) string {
	var sb strings.Builder
	for child := el.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			sb.WriteString(child.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

// isControlOnly reports whether text is non-empty but consists entirely of
// control or whitespace characters.
func isControlOnly(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsControl(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// mergeSiblingParagraphs collapses runs of two or more consecutive "p"
// children that carry direct text into a single paragraph whose text is the
// space-joined run. The first paragraph of the run keeps its attributes and
// children; later run members are dropped. This undoes the artificial
// paragraph splitting some renderers produce, which would otherwise defeat
// template and sibling detection.
func mergeSiblingParagraphs(children []*domsift.Node) []*domsift.Node {
	if len(children) < 2 {
		return children
	}

	var merged []*domsift.Node
	i := 0
	for i < len(children) {
		current := children[i]

		if current.Tag == "p" && current.Text != "" {
			texts := []string{current.Text}
			j := i + 1
			for j < len(children) && children[j].Tag == "p" && children[j].Text != "" {
				texts = append(texts, children[j].Text)
				j++
			}
			if j > i+1 {
				current.Text = strings.Join(texts, " ")
				i = j
				merged = append(merged, current)
				continue
			}
		}

		merged = append(merged, current)
		i++
	}

	return merged
}

func attrValue(el *html.Node, key string) string {
	for _, attr := range el.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
