package domsift

import (
	"slices"
	"sort"
)

// ElementBounds is the post-layout geometry of one rendered element, as
// reported by the browser collaborator. Only visible elements with both
// dimensions above 1px and at least partially inside the viewport are
// reported. The JSON shape matches the in-page extraction script.
type ElementBounds struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	TagName        string  `json:"tag_name"`
	ClassName      string  `json:"class_name"`
	ID             string  `json:"id"`
	TextContent    string  `json:"text_content"`
	ParentSelector string  `json:"parent_selector"`
	SiblingIndex   int     `json:"sibling_index"`
}

// WidthGroup is a set of rendered siblings sharing a parent and a similar
// width: a repeated layout unit found purely from geometry, without any
// markup signal. Elements are ordered top to bottom.
type WidthGroup struct {
	Width          float64         `json:"width"` // average member width
	ParentSelector string          `json:"parent_selector"`
	Color          string          `json:"color"`
	Elements       []ElementBounds `json:"elements"`
}

// groupPalette is cycled through as groups are emitted, for overlay display.
var groupPalette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7",
	"#DDA0DD", "#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9",
	"#F8C471", "#82E0AA", "#F1948A", "#A3E4D7", "#D7BDE2",
	"#F39C12", "#E74C3C", "#9B59B6", "#3498DB", "#1ABC9C",
}

// DefaultWidthTolerance is the default width difference, in pixels, within
// which two siblings are considered the same layout unit.
const DefaultWidthTolerance = 10.0

// GroupByWidth clusters elements sharing a parent selector into groups of
// similar rendered width. Within a parent, elements are sorted top to bottom
// and assigned greedily: each joins the first existing bucket whose first
// member's width is within tolerance, or starts a new one. Buckets with
// fewer than two members are discarded. The result is sorted by member
// count, largest first.
func GroupByWidth(elements []ElementBounds, tolerance float64) []WidthGroup {
	byParent := make(map[string][]ElementBounds)
	var parents []string
	for _, el := range elements {
		if _, ok := byParent[el.ParentSelector]; !ok {
			parents = append(parents, el.ParentSelector)
		}
		byParent[el.ParentSelector] = append(byParent[el.ParentSelector], el)
	}

	var groups []WidthGroup
	colorIndex := 0

	for _, parent := range parents {
		siblings := byParent[parent]
		if len(siblings) < 2 {
			continue
		}

		sort.SliceStable(siblings, func(i, j int) bool {
			return siblings[i].Y < siblings[j].Y
		})

		var buckets [][]ElementBounds
		for _, sibling := range siblings {
			placed := false
			for i := range buckets {
				diff := buckets[i][0].Width - sibling.Width
				if diff < 0 {
					diff = -diff
				}
				if diff <= tolerance {
					buckets[i] = append(buckets[i], sibling)
					placed = true
					break
				}
			}
			if !placed {
				buckets = append(buckets, []ElementBounds{sibling})
			}
		}

		for _, bucket := range buckets {
			if len(bucket) < 2 {
				continue
			}
			var sum float64
			for _, el := range bucket {
				sum += el.Width
			}
			groups = append(groups, WidthGroup{
				Width:          sum / float64(len(bucket)),
				ParentSelector: parent,
				Color:          groupPalette[colorIndex%len(groupPalette)],
				Elements:       bucket,
			})
			colorIndex++
		}
	}

	slices.SortStableFunc(groups, func(a, b WidthGroup) int {
		return len(b.Elements) - len(a.Elements)
	})
	return groups
}
