package domsift_test

import (
	"testing"

	"github.com/domsift/domsift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func el(parent string, y, width float64) domsift.ElementBounds {
	return domsift.ElementBounds{
		X:              0,
		Y:              y,
		Width:          width,
		Height:         40,
		TagName:        "div",
		ParentSelector: parent,
	}
}

func TestGroupByWidth_ClustersSimilarWidths(t *testing.T) {
	t.Parallel()

	elements := []domsift.ElementBounds{
		el("div.list", 0, 100),
		el("div.list", 50, 100),
		el("div.list", 100, 100),
		el("div.list", 150, 250), // outlier, alone in its bucket
		el("div.list", 200, 100),
	}

	groups := domsift.GroupByWidth(elements, domsift.DefaultWidthTolerance)

	require.Len(t, groups, 1)
	assert.Equal(t, 4, len(groups[0].Elements))
	assert.InDelta(t, 100.0, groups[0].Width, 0.001)
	assert.Equal(t, "div.list", groups[0].ParentSelector)
}

func TestGroupByWidth_ComparesAgainstTheBucketSeed(t *testing.T) {
	t.Parallel()

	// 108 is within tolerance of the seed 100; 116 is not, even though it is
	// within tolerance of 108. Drift does not chain.
	elements := []domsift.ElementBounds{
		el("ul", 0, 100),
		el("ul", 10, 108),
		el("ul", 20, 116),
	}

	groups := domsift.GroupByWidth(elements, 10)

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Elements, 2)
	assert.InDelta(t, 104.0, groups[0].Width, 0.001)
}

func TestGroupByWidth_SeparatesParents(t *testing.T) {
	t.Parallel()

	elements := []domsift.ElementBounds{
		el("div.left", 0, 100),
		el("div.left", 50, 102),
		el("div.right", 0, 100),
		el("div.right", 50, 98),
		el("div.right", 100, 101),
	}

	groups := domsift.GroupByWidth(elements, domsift.DefaultWidthTolerance)

	require.Len(t, groups, 2)
	// Larger group first.
	assert.Equal(t, "div.right", groups[0].ParentSelector)
	assert.Len(t, groups[0].Elements, 3)
	assert.Equal(t, "div.left", groups[1].ParentSelector)
	assert.Len(t, groups[1].Elements, 2)
}

func TestGroupByWidth_SkipsLoneChildren(t *testing.T) {
	t.Parallel()

	elements := []domsift.ElementBounds{
		el("header", 0, 800),
		el("main", 100, 600),
		el("footer", 700, 800),
	}

	groups := domsift.GroupByWidth(elements, domsift.DefaultWidthTolerance)

	assert.Empty(t, groups, "a parent with a single child has no repetition")
}

func TestGroupByWidth_OrdersMembersTopToBottom(t *testing.T) {
	t.Parallel()

	elements := []domsift.ElementBounds{
		el("div.feed", 300, 100),
		el("div.feed", 100, 100),
		el("div.feed", 200, 100),
	}

	groups := domsift.GroupByWidth(elements, domsift.DefaultWidthTolerance)

	require.Len(t, groups, 1)
	ys := []float64{groups[0].Elements[0].Y, groups[0].Elements[1].Y, groups[0].Elements[2].Y}
	assert.Equal(t, []float64{100, 200, 300}, ys)
}

func TestGroupByWidth_AssignsDistinctColors(t *testing.T) {
	t.Parallel()

	elements := []domsift.ElementBounds{
		el("div.a", 0, 100),
		el("div.a", 50, 100),
		el("div.b", 0, 300),
		el("div.b", 50, 300),
	}

	groups := domsift.GroupByWidth(elements, domsift.DefaultWidthTolerance)

	require.Len(t, groups, 2)
	assert.NotEmpty(t, groups[0].Color)
	assert.NotEmpty(t, groups[1].Color)
	assert.NotEqual(t, groups[0].Color, groups[1].Color)
}

func TestGroupByWidth_NoElements(t *testing.T) {
	t.Parallel()

	assert.Empty(t, domsift.GroupByWidth(nil, domsift.DefaultWidthTolerance))
}
