// Package gemini implements LLM-backed services using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/domsift/domsift"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure URLSelector implements domsift.URLSelector at compile time.
var _ domsift.URLSelector = (*URLSelector)(nil)

// URLSelector implements domsift.URLSelector using Google Gemini.
type URLSelector struct {
	client *genai.Client
}

// NewURLSelector creates a new URLSelector.
func NewURLSelector(client *genai.Client) *URLSelector {
	return &URLSelector{client: client}
}

// SelectURLs asks the model to pick the candidate URLs most relevant to
// the objective. Empty candidate lists short-circuit without an API call.
func (s *URLSelector) SelectURLs(ctx context.Context, objective string, candidates []string, domain string, max int) ([]string, error) {
	if objective == "" {
		return nil, domsift.Errorf(domsift.EINVALID, "objective required")
	}
	if max <= 0 {
		return nil, domsift.Errorf(domsift.EINVALID, "max must be positive")
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	prompt := BuildSelectionPrompt(objective, candidates, domain, max)
	config := BuildSelectionConfig()

	result, err := s.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, domsift.Errorf(domsift.EINTERNAL, "gemini returned nil result")
	}

	return ParseSelectedURLs(result.Text(), candidates, max), nil
}

// BuildSelectionConfig returns the GenerateContentConfig for URL selection calls.
func BuildSelectionConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You select URLs for a focused web crawl. Choose only URLs likely to contain information relevant to the stated objective. Prefer content pages over index, login, or legal pages.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildSelectionPrompt builds the user prompt listing candidate URLs and the objective.
func BuildSelectionPrompt(objective string, candidates []string, domain string, max int) string {
	var sb strings.Builder
	sb.WriteString("<urls>\n")
	for i, u := range candidates {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, u)
	}
	sb.WriteString("</urls>\n\n")
	fmt.Fprintf(&sb, "Objective: %s\n", objective)
	fmt.Fprintf(&sb, "Domain: %s\n\n", domain)
	fmt.Fprintf(&sb, "Select up to %d URLs from the list above that are most likely to contain information relevant to the objective. Respond with one URL per line, exactly as written in the list, most relevant first. No numbering, no commentary.", max)
	return sb.String()
}

// ParseSelectedURLs extracts candidate URLs from a model response, one per
// line. Lines that do not match a candidate exactly are dropped, duplicates
// are ignored, and at most max URLs are returned.
func ParseSelectedURLs(response string, candidates []string, max int) []string {
	valid := make(map[string]bool, len(candidates))
	for _, u := range candidates {
		valid[u] = true
	}

	var selected []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(response, "\n") {
		u := strings.TrimSpace(line)
		// Tolerate numbering or bullets the model adds despite instructions.
		if i := strings.Index(u, "http"); i > 0 {
			u = u[i:]
		}
		if !valid[u] || seen[u] {
			continue
		}
		seen[u] = true
		selected = append(selected, u)
		if len(selected) == max {
			break
		}
	}
	return selected
}

// Ensure Analyzer implements domsift.Analyzer at compile time.
var _ domsift.Analyzer = (*Analyzer)(nil)

// Analyzer implements domsift.Analyzer using Google Gemini.
type Analyzer struct {
	client *genai.Client
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(client *genai.Client) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze summarizes page content against the crawl objective.
func (a *Analyzer) Analyze(ctx context.Context, objective string, pageURL string, content string) (string, error) {
	if objective == "" {
		return "", domsift.Errorf(domsift.EINVALID, "objective required")
	}
	if content == "" {
		return "", domsift.Errorf(domsift.EINVALID, "content required")
	}

	prompt := BuildAnalysisPrompt(objective, pageURL, content)
	config := BuildAnalysisConfig()

	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", domsift.Errorf(domsift.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildAnalysisConfig returns the GenerateContentConfig for analysis calls.
func BuildAnalysisConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You analyze web page content for a crawl objective. Summarize the information relevant to the objective in a few short paragraphs. If the page contains nothing relevant, say so in one sentence.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildAnalysisPrompt builds the user prompt containing page content and objective.
func BuildAnalysisPrompt(objective, pageURL, content string) string {
	var sb strings.Builder
	sb.WriteString("<page>\n")
	fmt.Fprintf(&sb, "<source>%s</source>\n", pageURL)
	fmt.Fprintf(&sb, "<content>%s</content>\n", content)
	sb.WriteString("</page>\n\n")
	fmt.Fprintf(&sb, "Objective: %s", objective)
	return sb.String()
}
