package domsift_test

import (
	"strings"
	"testing"

	"github.com/domsift/domsift"
	"github.com/domsift/domsift/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sigOf builds a readable deterministic deep signature for tests.
func sigOf(n *domsift.Node) string {
	var sb strings.Builder
	sb.WriteString(n.Tag)
	sb.WriteString("|")
	sb.WriteString(strings.Join(n.Classes, "."))
	sb.WriteString("|")
	sb.WriteString(n.Text)
	for _, child := range n.Children {
		sb.WriteString("(")
		sb.WriteString(sigOf(child))
		sb.WriteString(")")
	}
	return sb.String()
}

func testSigner() *mock.Signer {
	return &mock.Signer{
		KeyFn: func(n *domsift.Node) string {
			return n.Tag + "|" + strings.Join(n.Classes, ".") + "|" + n.Text
		},
		DeepSignatureFn: sigOf,
	}
}

func navbar() *domsift.Node {
	return &domsift.Node{
		Tag:     "nav",
		Classes: []string{"navbar"},
		Children: []*domsift.Node{
			{Tag: "a", Text: "Home"},
			{Tag: "a", Text: "About"},
		},
	}
}

func pageTree(mainText string) *domsift.Node {
	return &domsift.Node{
		Tag: "body",
		Children: []*domsift.Node{
			navbar(),
			{Tag: "main", Children: []*domsift.Node{
				{Tag: "p", Text: mainText},
			}},
		},
	}
}

func TestDeduper_AddPageTree_FlagsSubtreesSharedAcrossPages(t *testing.T) {
	t.Parallel()

	d := domsift.NewDeduper(testSigner())

	d.AddPageTree("https://example.com/a", pageTree("unique to page a"))
	d.AddPageTree("https://example.com/b", pageTree("unique to page b"))

	assert.True(t, d.IsDuplicate(sigOf(navbar())), "shared navbar should be flagged")
	assert.False(t, d.IsDuplicate(sigOf(&domsift.Node{Tag: "p", Text: "unique to page a"})))
	assert.False(t, d.IsDuplicate(sigOf(pageTree("unique to page a"))), "page roots differ and must stay")
	assert.Equal(t, 2, d.Len())
}

func TestDeduper_AddPageTree_IgnoresRepeatsWithinOnePage(t *testing.T) {
	t.Parallel()

	d := domsift.NewDeduper(testSigner())

	// The same banner appears twice on a single page. That alone is not
	// cross-page boilerplate.
	banner := func() *domsift.Node { return &domsift.Node{Tag: "div", Classes: []string{"ad"}, Text: "Buy now"} }
	tree := &domsift.Node{Tag: "body", Children: []*domsift.Node{banner(), {Tag: "p", Text: "content"}, banner()}}

	d.AddPageTree("https://example.com/only", tree)

	assert.False(t, d.IsDuplicate(sigOf(banner())))
	assert.Empty(t, d.Duplicates())
}

func TestDeduper_FilterDuplicates_PrunesFlaggedSubtrees(t *testing.T) {
	t.Parallel()

	d := domsift.NewDeduper(testSigner())
	d.AddPageTree("https://example.com/a", pageTree("story one"))
	d.AddPageTree("https://example.com/b", pageTree("story two"))

	second, ok := d.Tree("https://example.com/b")
	require.True(t, ok)

	filtered := d.FilterDuplicates(second)

	require.NotNil(t, filtered)
	assert.Empty(t, filtered.Find("nav.navbar"), "navbar should be pruned")
	require.Len(t, filtered.Find("main p"), 1)
	assert.Equal(t, "story two", filtered.Find("main p")[0].Text)

	// The stored tree is left untouched.
	assert.Len(t, second.Find("nav.navbar"), 1)
}

func TestDeduper_FilterDuplicates_AppliesToEarlierPagesOnRerun(t *testing.T) {
	t.Parallel()

	d := domsift.NewDeduper(testSigner())
	d.AddPageTree("https://example.com/a", pageTree("story one"))
	d.AddPageTree("https://example.com/b", pageTree("story two"))

	// Duplicates surface on the second add, but the flag set applies to any
	// tree: re-filtering the first page prunes its navbar too.
	first, ok := d.Tree("https://example.com/a")
	require.True(t, ok)

	filtered := d.FilterDuplicates(first)

	require.NotNil(t, filtered)
	assert.Empty(t, filtered.Find("nav.navbar"))
	assert.Equal(t, "story one", filtered.DeepText())
}

func TestDeduper_FilterDuplicates_NilWhenRootIsFlagged(t *testing.T) {
	t.Parallel()

	d := domsift.NewDeduper(testSigner())
	d.AddPageTree("https://example.com/a", pageTree("same everywhere"))
	d.AddPageTree("https://example.com/b", pageTree("same everywhere"))

	tree, ok := d.Tree("https://example.com/b")
	require.True(t, ok)

	assert.Nil(t, d.FilterDuplicates(tree), "identical pages collapse to nothing")
}

func TestDeduper_DuplicateSetOnlyGrows(t *testing.T) {
	t.Parallel()

	d := domsift.NewDeduper(testSigner())
	d.AddPageTree("https://example.com/a", pageTree("one"))
	d.AddPageTree("https://example.com/b", pageTree("two"))
	after2 := d.Duplicates()

	d.AddPageTree("https://example.com/c", pageTree("three"))
	after3 := d.Duplicates()

	assert.Subset(t, after3, after2)
	assert.GreaterOrEqual(t, len(after3), len(after2))
}

func TestDeduper_Seed_MarksKnownSignatures(t *testing.T) {
	t.Parallel()

	d := domsift.NewDeduper(testSigner())
	d.Seed([]string{sigOf(navbar())})

	// A single page already has its seeded boilerplate pruned.
	d.AddPageTree("https://example.com/a", pageTree("fresh content"))
	tree, ok := d.Tree("https://example.com/a")
	require.True(t, ok)

	filtered := d.FilterDuplicates(tree)

	require.NotNil(t, filtered)
	assert.Empty(t, filtered.Find("nav.navbar"))
	assert.Equal(t, "fresh content", filtered.DeepText())
}

func TestDeduper_FilterDuplicates_NilTree(t *testing.T) {
	t.Parallel()

	d := domsift.NewDeduper(testSigner())

	assert.Nil(t, d.FilterDuplicates(nil))
}
