package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/domsift/domsift"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", domsift.ErrorMessage(err))
		return err
	}

	tree, err := deps.Builder.BuildTree(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", domsift.ErrorMessage(err))
		return err
	}
	if tree == nil {
		fmt.Fprintf(deps.Stderr, "error: no semantic content found at %s\n", c.URL)
		return domsift.Errorf(domsift.ENOTFOUND, "no semantic content found at %s", c.URL)
	}
	deps.Generalizer.GeneralizeTree(tree)

	groups := domsift.DetectSiblingGroups(tree, domsift.SiblingConfig{})

	// Geometry is best effort: a page whose bounds script fails still
	// gets a structural report.
	var widthGroups []domsift.WidthGroup
	if bounds, err := deps.Bounds.ExtractBounds(deps.Ctx, c.URL); err == nil {
		widthGroups = domsift.GroupByWidth(bounds, c.Tolerance)
	}

	if c.JSON {
		report := domsift.PageReport{
			URL:           c.URL,
			Status:        domsift.StatusSuccess,
			NodeCount:     tree.Count(),
			Tree:          tree,
			SiblingGroups: groups,
			WidthGroups:   widthGroups,
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(deps.Stdout, "%s: %d nodes\n", c.URL, tree.Count())

	if c.Tree {
		fmt.Fprintln(deps.Stdout)
		fmt.Fprint(deps.Stdout, tree.String())
	}

	if len(groups) > 0 {
		fmt.Fprintf(deps.Stdout, "\nSibling groups (%d):\n", len(groups))
		for _, g := range groups {
			member := g.Tag
			if len(g.Classes) > 0 {
				member += "." + strings.Join(g.Classes, ".")
			}
			line := fmt.Sprintf("  %dx %s at depth %d", g.Count, member, g.Depth)
			if len(g.Sample) > 0 {
				line += fmt.Sprintf("  e.g. %q", g.Sample[0])
			}
			fmt.Fprintln(deps.Stdout, line)
		}
	}

	if len(widthGroups) > 0 {
		fmt.Fprintf(deps.Stdout, "\nWidth groups (%d):\n", len(widthGroups))
		for _, g := range widthGroups {
			fmt.Fprintf(deps.Stdout, "  %d elements of ~%.0fpx under %s\n",
				len(g.Elements), g.Width, g.ParentSelector)
		}
	}

	if len(groups) == 0 && len(widthGroups) == 0 {
		fmt.Fprintln(deps.Stdout, "No repeated structure detected.")
	}

	return nil
}
