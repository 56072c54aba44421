package crawl

import (
	"context"
	"net/url"
	"time"

	"github.com/domsift/domsift"
)

// DiscoverOption configures DiscoverURLs behavior.
type DiscoverOption func(*discoverConfig)

type discoverConfig struct {
	concurrency int
	retryDelays []time.Duration
	onURL       func(url string)
}

// WithConcurrency sets the number of concurrent workers for the
// recursive fallback walk. Defaults to 3 if not specified.
func WithConcurrency(n int) DiscoverOption {
	return func(c *discoverConfig) {
		c.concurrency = n
	}
}

// WithRetryDelays sets the retry delays for failed fetches.
// Defaults to DefaultRetryDelays if not specified.
func WithRetryDelays(delays []time.Duration) DiscoverOption {
	return func(c *discoverConfig) {
		c.retryDelays = delays
	}
}

// WithURLCallback invokes fn for each candidate URL as it is found,
// which lets callers stream discovery progress.
func WithURLCallback(fn func(url string)) DiscoverOption {
	return func(c *discoverConfig) {
		c.onURL = fn
	}
}

// Discoverer finds candidate URLs for a site. It consults the site's
// sitemap first and falls back to a bounded recursive link walk when
// the sitemap yields nothing.
type Discoverer struct {
	Sitemaps    domsift.SitemapService
	HTTPFetcher domsift.Fetcher
	Browser     domsift.Fetcher // optional rendering fetcher
	Links       domsift.LinkExtractor
	Extractor   domsift.Extractor
	RateLimiter domsift.RateLimiter
	Concurrency int
	RetryDelays []time.Duration
}

// DiscoverURLs returns candidate URLs for sourceURL. Sitemap entries
// win when present. Otherwise links are followed recursively within
// the source URL's path prefix, stopping after maxDiscoveryURLs (1000)
// pages to prevent runaway walks on large sites.
func (d *Discoverer) DiscoverURLs(
	ctx context.Context,
	sourceURL string,
	urlFilter *domsift.URLFilter,
	opts ...DiscoverOption,
) ([]string, error) {
	cfg := &discoverConfig{
		concurrency: d.Concurrency,
		retryDelays: d.RetryDelays,
	}
	if cfg.concurrency <= 0 {
		cfg.concurrency = 3
	}
	if cfg.retryDelays == nil {
		cfg.retryDelays = DefaultRetryDelays
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if d.Sitemaps != nil {
		entries, err := d.Sitemaps.DiscoverURLs(ctx, sourceURL, urlFilter)
		if err == nil && len(entries) > 0 {
			urls := make([]string, 0, len(entries))
			for _, entry := range entries {
				urls = append(urls, entry.Loc)
				if cfg.onURL != nil {
					cfg.onURL(entry.Loc)
				}
			}
			return urls, nil
		}
	}

	return d.recursiveDiscover(ctx, sourceURL, urlFilter, cfg)
}

// recursiveDiscover walks links from sourceURL with a worker pool,
// collecting every URL that fetches successfully.
func (d *Discoverer) recursiveDiscover(
	ctx context.Context,
	sourceURL string,
	urlFilter *domsift.URLFilter,
	cfg *discoverConfig,
) ([]string, error) {
	fetcher := d.ProbeFetcher(ctx, sourceURL)

	// Collected URLs (handle runs sequentially on the coordinator).
	var urls []string

	process := func(ctx context.Context, link domsift.DiscoveredLink) walkResult {
		result := walkResult{url: link.URL}

		linkURL, err := url.Parse(link.URL)
		if err != nil {
			result.err = err
			return result
		}

		if err := d.RateLimiter.Wait(ctx, linkURL.Host); err != nil {
			result.err = err
			return result
		}

		fetchFn := func(ctx context.Context, url string) (string, error) {
			return fetcher.Fetch(ctx, url)
		}
		html, err := FetchWithRetryDelays(ctx, link.URL, fetchFn, nil, cfg.retryDelays)
		if err != nil {
			result.err = err
			return result
		}

		links, err := d.Links.ExtractLinks(html, link.URL)
		if err == nil {
			result.discovered = links
		}
		return result
	}

	handle := func(result *walkResult, frontier *Frontier, parsedSourceURL *url.URL, pathPrefix string, filter *domsift.URLFilter) {
		for _, discovered := range result.discovered {
			if !inScope(discovered.URL, parsedSourceURL, pathPrefix, filter) {
				continue
			}
			frontier.Push(discovered)
		}

		if result.err == nil {
			urls = append(urls, result.url)
			if cfg.onURL != nil {
				cfg.onURL(result.url)
			}
		}
	}

	if err := walkFrontier(ctx, sourceURL, urlFilter, cfg.concurrency, process, handle); err != nil {
		return nil, err
	}
	return urls, nil
}

// ProbeFetcher fetches probeURL with the static fetcher, then with the
// rendering fetcher, and reports which one the crawl should use.
//
// Logic:
//  1. HTTP fetch the probe URL
//  2. If HTTP fails, fall back to the rendering fetcher
//  3. Otherwise render the same URL and compare extractable content
//  4. If rendering adds enough content, use the rendering fetcher
func (d *Discoverer) ProbeFetcher(ctx context.Context, probeURL string) domsift.Fetcher {
	if d.Browser == nil {
		return d.HTTPFetcher
	}

	httpHTML, httpErr := d.HTTPFetcher.Fetch(ctx, probeURL)
	if httpErr != nil {
		return d.Browser
	}

	rodHTML, rodErr := d.Browser.Fetch(ctx, probeURL)
	if rodErr != nil {
		return d.HTTPFetcher
	}

	if ContentDiffers(httpHTML, rodHTML, probeURL, d.Extractor) {
		return d.Browser
	}
	return d.HTTPFetcher
}
