package crawl

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/domsift/domsift"
)

// Frontier configuration for recursive discovery.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// maxDiscoveryURLs limits the number of URLs processed to prevent runaway walks.
	maxDiscoveryURLs = 1000
)

// walkResult is the outcome of processing one frontier link.
type walkResult struct {
	url        string
	discovered []domsift.DiscoveredLink
	err        error
}

// walkProcessor fetches and processes a single frontier link. It runs
// on a worker goroutine.
type walkProcessor func(ctx context.Context, link domsift.DiscoveredLink) walkResult

// walkResultHandler consumes a completed walkResult. It runs on the
// coordinator goroutine, so it may touch shared state without locking.
// It is responsible for pushing scope-filtered discovered links back
// onto the frontier.
type walkResultHandler func(result *walkResult, frontier *Frontier, sourceURL *url.URL, pathPrefix string, filter *domsift.URLFilter)

// walkFrontier drains a frontier seeded with sourceURL using a pool of
// workers. Each link is dispatched to a worker through process; every
// result is handed to handle on the coordinator goroutine. The walk
// ends when the frontier is empty and no work is in flight, when
// maxDiscoveryURLs links have been dispatched, or when ctx is done.
func walkFrontier(
	ctx context.Context,
	sourceURL string,
	urlFilter *domsift.URLFilter,
	concurrency int,
	process walkProcessor,
	handle walkResultHandler,
) error {
	parsedSourceURL, err := url.Parse(sourceURL)
	if err != nil {
		return domsift.Errorf(domsift.EINVALID, "invalid source URL %q: %v", sourceURL, err)
	}
	pathPrefix := parsedSourceURL.Path

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(domsift.DiscoveredLink{
		URL:      sourceURL,
		Priority: domsift.PriorityNavigation,
	})

	if concurrency <= 0 {
		concurrency = 3
	}

	workCh := make(chan domsift.DiscoveredLink, concurrency)
	resultCh := make(chan walkResult)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for link := range workCh {
				result := process(ctx, link)
				select {
				case resultCh <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Close result channel when all workers are done.
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	dispatched := 0 // links handed to workers
	pending := 0    // links currently being processed
	var next *domsift.DiscoveredLink

	if link, ok := frontier.Pop(); ok {
		next = &link
	}

coordinator:
	for {
		if next == nil && pending == 0 {
			break
		}
		if ctx.Err() != nil {
			break
		}

		if next != nil && dispatched < maxDiscoveryURLs {
			// Dispatch work or receive a result, whichever is ready.
			select {
			case <-ctx.Done():
				break coordinator
			case workCh <- *next:
				dispatched++
				pending++
				next = nil
			case result := <-resultCh:
				pending--
				handle(&result, frontier, parsedSourceURL, pathPrefix, urlFilter)
			}
		} else {
			// Nothing left to dispatch, only collect results.
			select {
			case <-ctx.Done():
				break coordinator
			case result, ok := <-resultCh:
				if !ok {
					break coordinator
				}
				pending--
				handle(&result, frontier, parsedSourceURL, pathPrefix, urlFilter)
			}
		}

		if next == nil && dispatched < maxDiscoveryURLs {
			if link, ok := frontier.Pop(); ok {
				next = &link
			}
		}
	}

	// Signal workers to stop and drain remaining results.
	close(workCh)

	drainTimeout := time.After(5 * time.Second)
drain:
	for {
		select {
		case result, ok := <-resultCh:
			if !ok {
				break drain
			}
			handle(&result, frontier, parsedSourceURL, pathPrefix, urlFilter)
		case <-drainTimeout:
			break drain
		}
	}

	return nil
}

// inScope reports whether a discovered URL stays on the source host,
// under its path prefix, and passes the URL filter.
func inScope(rawURL string, sourceURL *url.URL, pathPrefix string, filter *domsift.URLFilter) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Host != sourceURL.Host {
		return false
	}
	if !strings.HasPrefix(u.Path, pathPrefix) {
		return false
	}
	return filter.Match(rawURL)
}
