// Package crawl provides crawl orchestration. It coordinates candidate
// URL discovery, keyword ranking, LLM URL selection, fetching, semantic
// tree analysis with cross-page duplicate detection, and persistence of
// pages, signatures, and reports.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/domsift/domsift"
	"golang.org/x/sync/errgroup"
)

// Crawler orchestrates structural crawls of documentation and content
// sites. Fields without an "optional" note must be wired.
type Crawler struct {
	Discoverer   *Discoverer
	Fetcher      domsift.Fetcher // optional; when nil the discoverer's probe picks one
	Builder      domsift.TreeBuilder
	Generalizer  *domsift.Generalizer // optional
	Signer       domsift.Signer
	Extractor    domsift.Extractor
	Converter    domsift.Converter
	Selector     domsift.URLSelector // optional; when nil the top-ranked candidates are taken
	Analyzer     domsift.Analyzer
	TokenCounter domsift.TokenCounter    // optional
	Bounds       domsift.BoundsExtractor // optional, needs a browser
	Pages        domsift.PageService
	Signatures   domsift.SignatureService // optional
	Reports      domsift.ReportWriter     // optional
	RateLimiter  domsift.RateLimiter

	SiblingConfig  domsift.SiblingConfig
	WidthTolerance float64
	TokenBudget    int // max tokens of page content sent to the analyzer
	RetryDelays    []time.Duration
	Concurrency    int // parallel page fetches in Run, parallel domains in CrawlDomains (default 5)
}

// Result holds the outcome of one domain crawl.
type Result struct {
	Analyzed   int // pages fetched, analyzed, and saved
	Skipped    int // pages whose content was unchanged since a previous crawl
	Failed     int
	Duplicates int // distinct boilerplate signatures known after the crawl
	Bytes      int // content bytes sent for analysis
	Tokens     int
	ReportPath string
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Domain    string
	URL       string
	Completed int
	Total     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressSelected
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// fetchedPage carries one URL's worker results to the coordinator: the
// generalized tree, element geometry, and extracted content. err covers
// fetching and tree building; extractErr only content extraction, which
// has a tree-text fallback.
type fetchedPage struct {
	tree       *domsift.Node
	bounds     []domsift.ElementBounds
	title      string
	markdown   string
	hash       string
	err        error
	extractErr error
}

// pageOutcome carries one processed page plus the render-time data that
// only lives until the report is written.
type pageOutcome struct {
	page    *domsift.Page
	bounds  []domsift.ElementBounds
	content string // content sent to analysis
	tokens  int
	skipped bool
	err     error
}

func (o *pageOutcome) fail(err error) *pageOutcome {
	o.err = err
	o.page.Status = domsift.StatusFailed
	o.page.Error = err.Error()
	return o
}

// Run executes one crawl: discovery, ranking, LLM URL selection, then
// page analysis. Fetches run concurrently up to Concurrency; results
// are consumed in selection order so duplicate detection sees the
// domain's pages in a stable order. The progress callback, if provided,
// receives events as the crawl proceeds.
func (c *Crawler) Run(ctx context.Context, cr *domsift.Crawl, progress ProgressFunc) (*Result, error) {
	if err := cr.Validate(); err != nil {
		return nil, err
	}
	domain, err := domsift.DomainOf(cr.RootURL)
	if err != nil {
		return nil, err
	}

	startedAt := time.Now().UTC()
	notify := func(event ProgressEvent) {
		if progress != nil {
			event.Domain = domain
			progress(event)
		}
	}

	notify(ProgressEvent{Type: ProgressStarted, URL: cr.RootURL})

	// Discover candidate URLs: sitemap first, recursive walk fallback.
	candidates, err := c.Discoverer.DiscoverURLs(ctx, cr.RootURL, nil, WithRetryDelays(c.retryDelays()))
	if err != nil {
		return nil, fmt.Errorf("url discovery: %w", err)
	}
	if len(candidates) == 0 {
		return nil, domsift.Errorf(domsift.ENOTFOUND, "no URLs discovered for %s", domain)
	}

	// Rank by objective keywords, then let the LLM pick.
	ranked := RankURLs(cr.Objective, candidates, cr.MaxPages)
	selected := ranked
	if c.Selector != nil {
		selected, err = c.Selector.SelectURLs(ctx, cr.Objective, ranked, domain, cr.MaxPages)
		if err != nil {
			return nil, fmt.Errorf("url selection: %w", err)
		}
	}
	selected = clampSelection(selected, cr.MaxPages)
	if len(selected) == 0 {
		return nil, domsift.Errorf(domsift.ENOTFOUND, "no URLs selected for %s", domain)
	}

	// Re-runs resume: URLs already stored as successful pages for this
	// crawl are not processed again.
	selected = c.skipCompleted(ctx, cr, selected)

	total := len(selected)
	notify(ProgressEvent{Type: ProgressSelected, Total: total})

	fetcher := c.Fetcher
	if fetcher == nil {
		fetcher = c.Discoverer.ProbeFetcher(ctx, cr.RootURL)
	}

	// Resume the domain's accumulated boilerplate knowledge.
	deduper := domsift.NewDeduper(c.Signer)
	if c.Signatures != nil {
		if known, err := c.Signatures.FindSignatures(ctx, domain); err == nil {
			deduper.Seed(known)
		}
	}

	var result Result
	outcomes := make([]*pageOutcome, 0, total)
	completed := 0

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	// Bounded fetch pool. Every worker delivers into its own buffered
	// slot, so the coordinator below can consume in selection order
	// while fetches complete in any order.
	fetches := make([]chan *fetchedPage, total)
	for i := range fetches {
		fetches[i] = make(chan *fetchedPage, 1)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	go func() {
		for i, pageURL := range selected {
			i, pageURL := i, pageURL
			g.Go(func() error {
				fetches[i] <- c.fetchPage(gctx, fetcher, pageURL)
				return nil
			})
		}
	}()

	for i, pageURL := range selected {
		outcome := c.consumePage(ctx, cr, deduper, domain, pageURL, <-fetches[i])
		completed++
		outcomes = append(outcomes, outcome)

		switch {
		case outcome.err != nil:
			result.Failed++
			notify(ProgressEvent{Type: ProgressFailed, URL: pageURL, Completed: completed, Total: total, Error: outcome.err})
		case outcome.skipped:
			result.Skipped++
			notify(ProgressEvent{Type: ProgressSkipped, URL: pageURL, Completed: completed, Total: total})
		default:
			result.Analyzed++
			result.Bytes += len(outcome.content)
			result.Tokens += outcome.tokens
			notify(ProgressEvent{Type: ProgressCompleted, URL: pageURL, Completed: completed, Total: total})
		}
	}
	_ = g.Wait()

	// Re-filter every page now that the full duplicate set is known,
	// and persist the filtered trees.
	for _, outcome := range outcomes {
		page := outcome.page
		if page.Tree == nil {
			continue
		}
		page.Tree = deduper.FilterDuplicates(page.Tree)
		if page.ID != "" {
			_ = c.Pages.UpdatePageTree(ctx, page.ID, page.Tree)
		}
	}

	sigs := deduper.Duplicates()
	result.Duplicates = len(sigs)
	if c.Signatures != nil && len(sigs) > 0 {
		_ = c.Signatures.AddSignatures(ctx, domain, sigs)
	}

	if c.Reports != nil && len(outcomes) > 0 {
		report := c.buildReport(cr, domain, startedAt, outcomes)
		if path, err := c.Reports.WriteReport(ctx, report); err == nil {
			result.ReportPath = path
		}
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})

	return &result, nil
}

// CrawlDomains runs several crawls concurrently, at most Concurrency at
// a time. Pages within one domain still feed duplicate detection in
// selection order. A failed domain does not stop the others; per-domain
// errors are joined in the returned error, with results indexed like
// crawls.
func (c *Crawler) CrawlDomains(ctx context.Context, crawls []*domsift.Crawl, progress ProgressFunc) ([]*Result, error) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	results := make([]*Result, len(crawls))
	errs := make([]error, len(crawls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, cr := range crawls {
		i, cr := i, cr
		g.Go(func() error {
			res, err := c.Run(gctx, cr, progress)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", cr.RootURL, err)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results, errors.Join(errs...)
}

// fetchPage runs the worker half of the pipeline for one URL: rate
// limit, fetch with retry, tree building and generalization, geometry,
// and content extraction. It touches no shared state.
func (c *Crawler) fetchPage(ctx context.Context, fetcher domsift.Fetcher, pageURL string) *fetchedPage {
	fp := &fetchedPage{}

	linkURL, err := url.Parse(pageURL)
	if err != nil {
		fp.err = err
		return fp
	}
	if err := c.RateLimiter.Wait(ctx, linkURL.Host); err != nil {
		fp.err = err
		return fp
	}

	fetchFn := func(ctx context.Context, url string) (string, error) {
		return fetcher.Fetch(ctx, url)
	}
	html, err := FetchWithRetryDelays(ctx, pageURL, fetchFn, nil, c.retryDelays())
	if err != nil {
		fp.err = err
		return fp
	}

	tree, err := c.Builder.BuildTree(html)
	if err != nil {
		fp.err = err
		return fp
	}
	if tree != nil && c.Generalizer != nil {
		c.Generalizer.GeneralizeTree(tree)
	}
	fp.tree = tree

	// Post-layout geometry, when a bounds extractor is wired.
	if c.Bounds != nil {
		if bounds, err := c.Bounds.ExtractBounds(ctx, pageURL); err == nil {
			fp.bounds = bounds
		}
	}

	extracted, err := c.Extractor.Extract(html, pageURL)
	if err == nil {
		fp.title = extracted.Title
		fp.markdown, err = c.Converter.Convert(extracted.ContentHTML)
	}
	if err != nil {
		fp.extractErr = err
	}

	// Change detection keys on what analysis will see.
	switch {
	case fp.markdown != "":
		fp.hash = ComputeHash(fp.markdown)
	case tree != nil:
		fp.hash = ComputeHash(tree.DeepText())
	}
	return fp
}

// consumePage finishes one fetched URL on the coordinator: page row,
// duplicate registration, unchanged-content skip, and analysis. The
// analyzer sees the extracted markdown, or the text of the
// duplicate-filtered tree when extraction produced nothing.
func (c *Crawler) consumePage(
	ctx context.Context,
	cr *domsift.Crawl,
	deduper *domsift.Deduper,
	domain, pageURL string,
	fetched *fetchedPage,
) *pageOutcome {
	page := &domsift.Page{
		CrawlID:   cr.ID,
		URL:       pageURL,
		Domain:    domain,
		Status:    domsift.StatusInProgress,
		FetchedAt: time.Now().UTC(),
	}
	outcome := &pageOutcome{page: page, bounds: fetched.bounds}

	if err := c.Pages.CreatePage(ctx, page); err != nil {
		return outcome.fail(err)
	}
	defer func() { c.finishPage(ctx, page) }()

	if fetched.err != nil {
		return outcome.fail(fetched.err)
	}

	if fetched.tree != nil {
		deduper.AddPageTree(pageURL, fetched.tree)
		page.Tree = fetched.tree
	}
	page.Title = fetched.title
	page.ContentHash = fetched.hash

	if prev := c.previousPage(ctx, domain, pageURL, page.ID); prev != nil &&
		page.ContentHash != "" && prev.ContentHash == page.ContentHash && prev.Summary != "" {
		page.Summary = prev.Summary
		page.Status = domsift.StatusSuccess
		outcome.skipped = true
		return outcome
	}

	content := fetched.markdown
	if content == "" && page.Tree != nil {
		if filtered := deduper.FilterDuplicates(page.Tree); filtered != nil {
			content = filtered.DeepText()
		}
	}
	if content == "" {
		if fetched.extractErr != nil {
			return outcome.fail(fetched.extractErr)
		}
		return outcome.fail(domsift.Errorf(domsift.EINVALID, "no analyzable content at %s", pageURL))
	}

	content = c.truncateToBudget(content)
	summary, err := c.Analyzer.Analyze(ctx, cr.Objective, pageURL, content)
	if err != nil {
		return outcome.fail(err)
	}

	page.Summary = summary
	page.Status = domsift.StatusSuccess
	outcome.content = content
	if c.TokenCounter != nil {
		if tokens, err := c.TokenCounter.CountTokens(content); err == nil {
			outcome.tokens = tokens
		}
	}
	return outcome
}

// finishPage writes the page's terminal state, best effort.
func (c *Crawler) finishPage(ctx context.Context, page *domsift.Page) {
	if page.ID == "" {
		return
	}
	_, _ = c.Pages.UpdatePage(ctx, page.ID, domsift.PageUpdate{
		Title:       &page.Title,
		Status:      &page.Status,
		Error:       &page.Error,
		ContentHash: &page.ContentHash,
		Summary:     &page.Summary,
	})
}

// skipCompleted drops URLs already stored as successful pages for this
// crawl, so re-running a crawl resumes where it stopped.
func (c *Crawler) skipCompleted(ctx context.Context, cr *domsift.Crawl, selected []string) []string {
	status := domsift.StatusSuccess
	pages, err := c.Pages.FindPages(ctx, domsift.PageFilter{CrawlID: &cr.ID, Status: &status})
	if err != nil || len(pages) == 0 {
		return selected
	}

	done := make(map[string]bool, len(pages))
	for _, p := range pages {
		done[p.URL] = true
	}

	out := selected[:0]
	for _, u := range selected {
		if !done[u] {
			out = append(out, u)
		}
	}
	return out
}

// previousPage returns the most recent earlier page stored for the same
// URL on the same domain, or nil.
func (c *Crawler) previousPage(ctx context.Context, domain, pageURL, excludeID string) *domsift.Page {
	pages, err := c.Pages.FindPages(ctx, domsift.PageFilter{Domain: &domain, URL: &pageURL})
	if err != nil {
		return nil
	}
	var prev *domsift.Page
	for _, p := range pages {
		if p.ID == excludeID {
			continue
		}
		if prev == nil || p.FetchedAt.After(prev.FetchedAt) {
			prev = p
		}
	}
	return prev
}

// buildReport assembles the crawl report: per-page trees with sibling
// groups detected on the filtered trees, and width groups from captured
// element geometry.
func (c *Crawler) buildReport(cr *domsift.Crawl, domain string, startedAt time.Time, outcomes []*pageOutcome) *domsift.CrawlReport {
	report := &domsift.CrawlReport{
		Domain:     domain,
		RootURL:    cr.RootURL,
		Objective:  cr.Objective,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
	}

	tolerance := c.WidthTolerance
	if tolerance <= 0 {
		tolerance = domsift.DefaultWidthTolerance
	}

	for _, outcome := range outcomes {
		page := outcome.page
		pr := domsift.PageReport{
			URL:         page.URL,
			Title:       page.Title,
			Status:      page.Status,
			Error:       page.Error,
			ContentHash: page.ContentHash,
			Summary:     page.Summary,
		}
		if page.Tree != nil {
			pr.Tree = page.Tree
			pr.NodeCount = page.Tree.Count()
			pr.SiblingGroups = domsift.DetectSiblingGroups(page.Tree, c.SiblingConfig)
		}
		if len(outcome.bounds) > 0 {
			pr.WidthGroups = domsift.GroupByWidth(outcome.bounds, tolerance)
		}
		report.Pages = append(report.Pages, pr)
	}
	report.PageCount = len(report.Pages)
	return report
}

// truncateToBudget trims content so the analysis prompt stays within
// the configured token budget. The cut is proportional to the overage
// and lands on a rune boundary.
func (c *Crawler) truncateToBudget(content string) string {
	if c.TokenCounter == nil || c.TokenBudget <= 0 {
		return content
	}
	tokens, err := c.TokenCounter.CountTokens(content)
	if err != nil || tokens <= c.TokenBudget {
		return content
	}
	keep := len(content) * c.TokenBudget / tokens
	if keep >= len(content) {
		return content
	}
	for keep > 0 && !utf8.RuneStart(content[keep]) {
		keep--
	}
	return content[:keep]
}

func (c *Crawler) retryDelays() []time.Duration {
	if c.RetryDelays != nil {
		return c.RetryDelays
	}
	return DefaultRetryDelays
}

// clampSelection deduplicates the selector's URLs preserving order and
// enforces the page budget.
func clampSelection(urls []string, max int) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
		if len(out) == max {
			break
		}
	}
	return out
}
