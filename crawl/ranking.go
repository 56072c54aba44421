package crawl

import (
	"net/url"
	"sort"
	"strings"
	"unicode"
)

// Scoring weights for keyword-based URL ranking. Exact matches in a
// path segment or query parameter score a bonus over substring matches,
// and each path segment costs a small depth penalty so section indexes
// rank above deep leaf pages.
const (
	rankCandidateMultiplier = 3
	rankPathWeight          = 1.0
	rankQueryWeight         = 0.8
	rankDepthWeight         = 0.3
	rankExactMatchBonus     = 2.0
	rankPartialMatchBonus   = 1.0
)

// minKeywordLen filters out stop words and particles from objectives.
const minKeywordLen = 4

// Keywords extracts ranking keywords from a crawl objective: lowercased
// words of at least four letters, deduplicated in order of first
// appearance.
func Keywords(objective string) []string {
	fields := strings.FieldsFunc(strings.ToLower(objective), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	seen := make(map[string]bool)
	var keywords []string
	for _, f := range fields {
		if len(f) < minKeywordLen || seen[f] {
			continue
		}
		seen[f] = true
		keywords = append(keywords, f)
	}
	return keywords
}

// RankURLs orders urls by keyword relevance to the objective and
// returns at most 3*max candidates for LLM selection. Unparseable URLs
// are dropped; ties keep their input order.
func RankURLs(objective string, urls []string, max int) []string {
	keywords := Keywords(objective)

	type scoredURL struct {
		url   string
		score float64
	}
	scored := make([]scoredURL, 0, len(urls))
	for _, u := range urls {
		score, ok := scoreURL(u, keywords)
		if !ok {
			continue
		}
		scored = append(scored, scoredURL{url: u, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	limit := max * rankCandidateMultiplier
	if limit > len(scored) {
		limit = len(scored)
	}
	ranked := make([]string, 0, limit)
	for _, s := range scored[:limit] {
		ranked = append(ranked, s.url)
	}
	return ranked
}

// scoreURL scores one URL against the keyword set. The second return is
// false when the URL does not parse.
func scoreURL(rawURL string, keywords []string) (float64, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" {
		return 0, false
	}
	path := strings.ToLower(u.Path)
	query := strings.ToLower(u.RawQuery)
	segments := splitPath(path)

	var score float64
	for _, kw := range keywords {
		if strings.Contains(path, kw) {
			if containsSegment(segments, kw) {
				score += rankExactMatchBonus * rankPathWeight
			} else {
				score += rankPartialMatchBonus * rankPathWeight
			}
		}
		if query != "" && strings.Contains(query, kw) {
			if containsQueryPart(query, kw) {
				score += rankExactMatchBonus * rankQueryWeight
			} else {
				score += rankPartialMatchBonus * rankQueryWeight
			}
		}
	}

	score -= float64(len(segments)) * rankDepthWeight
	if score < 0 {
		score = 0
	}
	return score, true
}

func splitPath(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func containsSegment(segments []string, kw string) bool {
	for _, seg := range segments {
		if seg == kw {
			return true
		}
	}
	return false
}

// containsQueryPart reports whether kw equals a full key or value of
// any query parameter.
func containsQueryPart(query, kw string) bool {
	for _, param := range strings.Split(query, "&") {
		for _, part := range strings.Split(param, "=") {
			if part == kw {
				return true
			}
		}
	}
	return false
}
