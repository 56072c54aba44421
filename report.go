package domsift

import (
	"context"
	"time"
)

// PageReport is the per-page slice of a crawl report.
type PageReport struct {
	URL           string       `json:"url"`
	Title         string       `json:"title,omitempty"`
	Status        FetchStatus  `json:"status"`
	Error         string       `json:"error,omitempty"`
	ContentHash   string       `json:"content_hash,omitempty"`
	Summary       string       `json:"summary,omitempty"`
	NodeCount     int          `json:"node_count"`
	Tree          *Node        `json:"tree,omitempty"`
	SiblingGroups []NodeGroup  `json:"sibling_groups,omitempty"`
	WidthGroups   []WidthGroup `json:"width_groups,omitempty"`
}

// CrawlReport is the full result of a crawl, written to disk when the
// crawl finishes.
type CrawlReport struct {
	Domain     string       `json:"domain"`
	RootURL    string       `json:"root_url"`
	Objective  string       `json:"objective,omitempty"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	PageCount  int          `json:"page_count"`
	Pages      []PageReport `json:"pages"`
}

// ReportWriter persists crawl reports.
type ReportWriter interface {
	// WriteReport writes the report and returns the path it was
	// written to.
	WriteReport(ctx context.Context, report *CrawlReport) (string, error)
}
