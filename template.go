package domsift

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// VarKind classifies the value a template placeholder replaced.
type VarKind string

// Placeholder value kinds.
const (
	KindInteger VarKind = "integer"
	KindFloat   VarKind = "float"
)

// TemplateVar is a single named placeholder in a template pattern.
type TemplateVar struct {
	Name string  `json:"name"`
	Kind VarKind `json:"kind"`
}

// Template is a canonicalized text pattern where a volatile numeric or time
// value has been replaced by a {name} placeholder, e.g. "{count} comments".
// Texts that differ only in such values collapse to the same pattern and
// therefore to the same deep signature.
type Template struct {
	Pattern string        `json:"pattern"`
	Vars    []TemplateVar `json:"vars"`
}

// Generalizer rewrites leaf text containing recognized numeric/time patterns
// into canonical templates. A zero Generalizer is not usable; construct with
// NewGeneralizer.
type Generalizer struct {
	timeUnits        map[string]bool
	countDescriptors map[string]bool
	floatRe          *regexp.Regexp
	intRe            *regexp.Regexp
	placeholderRe    *regexp.Regexp
}

// NewGeneralizer returns a Generalizer with the built-in time-unit and
// count-descriptor vocabularies.
func NewGeneralizer() *Generalizer {
	timeUnits := make(map[string]bool)
	for _, unit := range []string{
		"second", "seconds", "minute", "minutes", "hour", "hours",
		"day", "days", "week", "weeks", "month", "months", "year", "years",
	} {
		timeUnits[unit] = true
	}

	countDescriptors := make(map[string]bool)
	for _, desc := range []string{
		"comment", "comments", "reply", "replies", "like", "likes",
		"view", "views", "share", "shares", "point", "points",
		"upvote", "upvotes", "item", "items",
	} {
		countDescriptors[desc] = true
	}

	return &Generalizer{
		timeUnits:        timeUnits,
		countDescriptors: countDescriptors,
		floatRe:          regexp.MustCompile(`\b\d+\.\d+\b`),
		intRe:            regexp.MustCompile(`\b\d+\b`),
		placeholderRe:    regexp.MustCompile(`\{(?:value|count|time)\d*\}`),
	}
}

// Detect finds a template pattern in text. The float pass runs first, then
// the integer pass; within each pass occurrences are tried left to right and
// the first substitution producing a valid pattern wins. Returns false when
// no recognized pattern exists, or when text already contains a placeholder
// (generalization is idempotent: templates are never rewritten further).
func (g *Generalizer) Detect(text string) (*Template, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}
	if g.placeholderRe.MatchString(text) {
		return nil, false
	}

	if tpl := g.detectFloat(text); tpl != nil {
		return tpl, true
	}
	if tpl := g.detectInteger(text); tpl != nil {
		return tpl, true
	}
	return nil, false
}

// Generalize returns the template pattern for text, or text unchanged when
// no pattern is detected.
func (g *Generalizer) Generalize(text string) string {
	if tpl, ok := g.Detect(text); ok {
		return tpl.Pattern
	}
	return text
}

// GeneralizeTree applies Generalize to the text of every node in the tree,
// mutating it in place. Run before computing deep signatures so volatile
// counters hash identically across pages.
func (g *Generalizer) GeneralizeTree(root *Node) {
	if root == nil {
		return
	}
	root.Walk(func(n *Node) {
		if n.Text != "" {
			n.Text = g.Generalize(n.Text)
		}
	})
}

// detectFloat tries each decimal-number occurrence in order. Float
// placeholders are always named by occurrence index: value, value1, ...
func (g *Generalizer) detectFloat(text string) *Template {
	for i, loc := range g.floatRe.FindAllStringIndex(text, -1) {
		name := indexedName("value", i)
		candidate := text[:loc[0]] + "{" + name + "}" + text[loc[1]:]
		if g.validPattern(candidate) {
			return &Template{
				Pattern: candidate,
				Vars:    []TemplateVar{{Name: name, Kind: KindFloat}},
			}
		}
	}
	return nil
}

// detectInteger tries each integer occurrence in order, naming the
// placeholder from the words around the match.
func (g *Generalizer) detectInteger(text string) *Template {
	for i, loc := range g.intRe.FindAllStringIndex(text, -1) {
		name := g.variableName(text, loc[0], i)
		candidate := text[:loc[0]] + "{" + name + "}" + text[loc[1]:]
		if g.validPattern(candidate) {
			return &Template{
				Pattern: candidate,
				Vars:    []TemplateVar{{Name: name, Kind: KindInteger}},
			}
		}
	}
	return nil
}

// variableName picks a placeholder name for the integer starting at pos:
// "time" when the next word is a time unit or the word after next is "ago",
// "count" when the next word is a count descriptor or the previous word is
// "page"/"item", otherwise value/valueN by occurrence index.
func (g *Generalizer) variableName(text string, pos, index int) string {
	words := fieldsWithOffsets(text)

	for i, w := range words {
		if pos < w.start || pos >= w.end {
			continue
		}

		if i+1 < len(words) {
			next := strings.ToLower(words[i+1].word)
			if g.timeUnits[next] {
				return "time"
			}
			if g.countDescriptors[next] {
				return "count"
			}
			if i+2 < len(words) && strings.ToLower(words[i+2].word) == "ago" {
				return "time"
			}
		}

		if i > 0 {
			prev := strings.ToLower(words[i-1].word)
			if prev == "page" || prev == "item" {
				return "count"
			}
		}
		break
	}

	return indexedName("value", index)
}

// validPattern reports whether a candidate substitution qualifies as a
// template: it must contain a placeholder, split into at least two words,
// and carry at least one recognized context token among its words.
func (g *Generalizer) validPattern(pattern string) bool {
	if !strings.Contains(pattern, "{") || !strings.Contains(pattern, "}") {
		return false
	}

	words := strings.Fields(pattern)
	if len(words) < 2 {
		return false
	}

	for _, word := range words {
		clean := strings.TrimFunc(strings.ToLower(word), func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		if g.timeUnits[clean] || g.countDescriptors[clean] {
			return true
		}
		if clean == "ago" || clean == "per" || clean == "of" {
			return true
		}
	}
	return false
}

// indexedName returns base for index 0, baseN otherwise.
func indexedName(base string, index int) string {
	if index == 0 {
		return base
	}
	return base + strconv.Itoa(index)
}

type offsetWord struct {
	word  string
	start int
	end   int
}

// fieldsWithOffsets splits on whitespace like strings.Fields but keeps the
// byte range of each word in the original string.
func fieldsWithOffsets(s string) []offsetWord {
	var words []offsetWord
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				words = append(words, offsetWord{word: s[start:i], start: start, end: i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, offsetWord{word: s[start:], start: start, end: len(s)})
	}
	return words
}
