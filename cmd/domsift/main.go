package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/domsift/domsift"
	"github.com/domsift/domsift/crawl"
	"github.com/domsift/domsift/fs"
	"github.com/domsift/domsift/gemini"
	"github.com/domsift/domsift/goquery"
	domhttp "github.com/domsift/domsift/http"
	"github.com/domsift/domsift/htmltomarkdown"
	"github.com/domsift/domsift/readability"
	"github.com/domsift/domsift/rod"
	domslog "github.com/domsift/domsift/slog"
	"github.com/domsift/domsift/sqlite"
	"github.com/domsift/domsift/trafilatura"
	"github.com/domsift/domsift/xxhash"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	CrawlService domsift.CrawlService
	PageService  domsift.PageService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("domsift"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'domsift --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// The analyze command inspects a single live page and needs no database.
	if cmd != "analyze" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DOMSIFT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.CrawlService = sqlite.NewCrawlService(m.DB)
		m.PageService = sqlite.NewPageService(m.DB)
		deps.DB = m.DB
		deps.Crawls = m.CrawlService
		deps.Pages = m.PageService
	}

	if cmd == "crawl" {
		browser, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer browser.Close()

		tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		// With --no-llm the selector stays nil, so the crawler takes the
		// top-ranked candidates, and summaries are content excerpts.
		var selector domsift.URLSelector
		var analyzer domsift.Analyzer
		if cli.Crawl.NoLLM {
			analyzer = &ExcerptAnalyzer{}
		} else {
			apiKey := os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey, or pass --no-llm")
				return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
			}

			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}

			selector = gemini.NewURLSelector(client)
			analyzer = gemini.NewAnalyzer(client)
		}

		var (
			pageFetcher domsift.Fetcher         = browser
			httpFetcher domsift.Fetcher         = domhttp.NewFetcher()
			sitemaps    domsift.SitemapService  = domhttp.NewSitemapService(nil)
			bounds      domsift.BoundsExtractor = browser
			reports     domsift.ReportWriter
		)
		if cli.Crawl.Output != "" {
			reports = fs.NewResultWriter(cli.Crawl.Output)
		}

		if cli.Crawl.Verbose {
			logger := slog.New(slog.NewTextHandler(stderr, nil))
			pageFetcher = domslog.NewLoggingFetcher(pageFetcher, logger)
			httpFetcher = domslog.NewLoggingFetcher(httpFetcher, logger)
			sitemaps = domslog.NewLoggingSitemapService(sitemaps, logger)
			bounds = domslog.NewLoggingBoundsExtractor(bounds, logger)
			analyzer = domslog.NewLoggingAnalyzer(analyzer, logger)
			if selector != nil {
				selector = domslog.NewLoggingURLSelector(selector, logger)
			}
			if reports != nil {
				reports = domslog.NewLoggingReportWriter(reports, logger)
			}
		}

		// One limiter instance so discovery and page fetches share the
		// per-domain budget (1 request per second per domain).
		rateLimiter := crawl.NewDomainLimiter(1.0)

		deps.Crawler = &crawl.Crawler{
			Discoverer: &crawl.Discoverer{
				Sitemaps:    sitemaps,
				HTTPFetcher: httpFetcher,
				Browser:     pageFetcher,
				Links:       goquery.NewLinkExtractor(),
				Extractor:   trafilatura.NewExtractor(),
				RateLimiter: rateLimiter,
				Concurrency: cli.Crawl.Concurrency,
			},
			Fetcher:        pageFetcher,
			Builder:        goquery.NewTreeBuilder(),
			Generalizer:    domsift.NewGeneralizer(),
			Signer:         xxhash.NewSigner(),
			Extractor:      domsift.NewExtractorChain(trafilatura.NewExtractor(), readability.NewExtractor()),
			Converter:      htmltomarkdown.NewConverter(),
			Selector:       selector,
			Analyzer:       analyzer,
			TokenCounter:   tokenCounter,
			Bounds:         bounds,
			Pages:          m.PageService,
			Signatures:     sqlite.NewSignatureService(m.DB),
			Reports:        reports,
			RateLimiter:    rateLimiter,
			WidthTolerance: cli.Crawl.Tolerance,
			TokenBudget:    analysisTokenBudget,
			Concurrency:    cli.Crawl.Concurrency,
		}
	}

	if cmd == "analyze" {
		browser, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer browser.Close()

		deps.Fetcher = browser
		deps.Bounds = browser
		deps.Builder = goquery.NewTreeBuilder()
		deps.Generalizer = domsift.NewGeneralizer()
	}

	return kongCtx.Run(deps)
}

// analysisTokenBudget caps the content of one page sent to the analyzer.
const analysisTokenBudget = 100000

// tokenizerModel is used for token counting. It matches the generation
// model in the gemini package.
const tokenizerModel = "gemini-2.5-flash"

func defaultDBPath() string {
	if path := os.Getenv("DOMSIFT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "domsift.db"
	}
	dir := filepath.Join(home, ".domsift")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "domsift.db")
}
