package rod

import (
	"context"
	"fmt"

	"github.com/domsift/domsift"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements domsift.Fetcher at compile time.
var _ domsift.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// The underlying browser is managed by a BrowserManager and recycled
// periodically to keep Chrome's memory in check.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
}

// NewFetcher creates a new Fetcher backed by a managed headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...ManagerOption) (*Fetcher, error) {
	manager, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, fmt.Errorf("starting browser manager: %w", err)
	}
	return &Fetcher{manager: manager}, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher. It exists for
// tests that verify process cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
