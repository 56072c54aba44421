package main

import (
	"context"
	"io"

	"github.com/domsift/domsift"
	"github.com/domsift/domsift/crawl"
	"github.com/domsift/domsift/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	DB     *sqlite.DB
	Crawls domsift.CrawlService
	Pages  domsift.PageService

	// Crawler is wired for the crawl command.
	Crawler *crawl.Crawler

	// Single-page collaborators, wired for the analyze command.
	Fetcher     domsift.Fetcher
	Bounds      domsift.BoundsExtractor
	Builder     domsift.TreeBuilder
	Generalizer *domsift.Generalizer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl   CrawlCmd   `cmd:"" help:"Crawl a site and analyze pages against an objective"`
	Analyze AnalyzeCmd `cmd:"" help:"Analyze the structure of a single page"`
	List    ListCmd    `cmd:"" help:"List crawls"`
	Pages   PagesCmd   `cmd:"" help:"List pages of a crawl"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a crawl and its pages"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string  `arg:"" help:"Root URL to crawl"`
	Objective   string  `arg:"" help:"What to look for"`
	MaxPages    int     `short:"m" default:"5" help:"Page budget for the crawl"`
	Concurrency int     `short:"c" default:"5" help:"Concurrent fetch limit for discovery and page fetching"`
	Output      string  `short:"o" help:"Directory for the JSON report"`
	Tolerance   float64 `default:"10" help:"Width grouping tolerance in pixels"`
	NoLLM       bool    `name:"no-llm" help:"Use keyword ranking and content excerpts instead of the LLM"`
	Verbose     bool    `short:"v" help:"Log fetch, discovery, and analysis activity"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL       string  `arg:"" help:"Page URL"`
	Tree      bool    `help:"Print the semantic tree"`
	JSON      bool    `help:"Emit the page report as JSON"`
	Tolerance float64 `default:"10" help:"Width grouping tolerance in pixels"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	CrawlID string `arg:"" name:"crawl-id" help:"Crawl ID"`
	Full    bool   `help:"Show full page summaries"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	CrawlID string `arg:"" name:"crawl-id" help:"Crawl ID"`
	Force   bool   `help:"Confirm deletion"`
}
