package intent

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// maxPreferenceItems is the fallback cutoff: a short list that is neither a
// sub-query list nor keyword-matched is still read as preferences. This is a
// tunable heuristic, pinned by tests, not a guaranteed-correct rule.
const maxPreferenceItems = 5

// markdownChars are the syntax characters whose absence lets the parser skip
// building an AST on the common plain-text path.
const markdownChars = "*_`#-[]|"

var mdParser parser.Parser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
).Parser()

// ParseMarkdownIntent converts raw user text into a ParsedIntent. It is
// total: any input, including empty or adversarial strings, yields a
// well-formed result and never panics.
func ParseMarkdownIntent(raw string) ParsedIntent {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ParsedIntent{MainQuery: "", HasMarkdown: false, QueryType: QueryGeneral}
	}

	if !strings.ContainsAny(trimmed, markdownChars) {
		// Plain text: skip the AST walk, keyword classification is enough.
		return ParsedIntent{
			MainQuery:   trimmed,
			HasMarkdown: false,
			QueryType:   classifyTopic(trimmed),
		}
	}

	outline := collectOutline(trimmed)

	structured := StructuredData{
		Comparisons: extractComparisons(outline.tables),
	}
	structured.Date, structured.Time = extractDateTime(trimmed)

	var subQueries []string
	for _, items := range outline.lists {
		if qs := asSubQueries(items); qs != nil {
			subQueries = append(subQueries, qs...)
			continue
		}
		if prefs := asPreferences(items); prefs != nil && structured.Preferences == nil {
			structured.Preferences = prefs
		}
	}

	pi := ParsedIntent{
		MainQuery:   trimmed,
		HasMarkdown: true,
		SubQueries:  subQueries,
	}
	if !structured.empty() {
		pi.Structured = &structured
	}

	switch {
	case len(structured.Comparisons) > 0:
		pi.QueryType = QueryComparison
	case len(subQueries) >= 2:
		pi.QueryType = QueryMultiPart
	default:
		pi.QueryType = classifyTopic(trimmed)
	}
	return pi
}

// outline is the result of a single pure fold over the markdown tree:
// heading texts, one string group per list, and table cell grids with the
// header row included.
type outline struct {
	headings []string
	lists    [][]string
	tables   [][][]string
}

func collectOutline(md string) outline {
	source := []byte(md)
	root := mdParser.Parse(text.NewReader(source))

	var out outline
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			out.headings = append(out.headings, nodeText(node, source))
		case *ast.List:
			var items []string
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if item := strings.TrimSpace(nodeText(c, source)); item != "" {
					items = append(items, item)
				}
			}
			if len(items) > 0 {
				out.lists = append(out.lists, items)
			}
			return ast.WalkSkipChildren, nil
		case *east.Table:
			var rows [][]string
			for r := node.FirstChild(); r != nil; r = r.NextSibling() {
				var cells []string
				for c := r.FirstChild(); c != nil; c = c.NextSibling() {
					cells = append(cells, strings.TrimSpace(nodeText(c, source)))
				}
				rows = append(rows, cells)
			}
			out.tables = append(out.tables, rows)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

func nodeText(n ast.Node, source []byte) string {
	return string(n.Text(source))
}

// extractComparisons turns two-column tables into route/criteria pairs. The
// header row is skipped; a table with fewer than two rows contributes
// nothing.
func extractComparisons(tables [][][]string) []Comparison {
	var out []Comparison
	for _, rows := range tables {
		if len(rows) < 2 {
			continue
		}
		for _, cells := range rows[1:] {
			if len(cells) < 2 {
				continue
			}
			if cells[0] == "" && cells[1] == "" {
				continue
			}
			out = append(out, Comparison{Route: cells[0], Criteria: cells[1]})
		}
	}
	return out
}

// Ordered date/time patterns; the first match across the list wins and a
// later pattern never overwrites an earlier hit.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`\b\d{1,2}[./]\d{1,2}[./]\d{2,4}\b`),
	regexp.MustCompile(`(?i)\b(?:today|tomorrow|yesterday)\b`),
	regexp.MustCompile(`(?i)\b(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
}

var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:am|pm)?\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s*(?:am|pm)\b`),
}

func extractDateTime(raw string) (date, tme string) {
	for _, p := range datePatterns {
		if m := p.FindString(raw); m != "" {
			date = m
			break
		}
	}
	for _, p := range timePatterns {
		if m := p.FindString(raw); m != "" {
			tme = m
			break
		}
	}
	return date, tme
}

var questionStart = regexp.MustCompile(`(?i)^(?:what|how|when|where|which|who|why|can|could|should|is|are|do|does|will|find|show|list|plan|compare|tell|give|check|book)\b`)

// asSubQueries reads a list as multiple sub-questions when it has at least
// two items and at least one of them looks like a question. A single-item
// list never qualifies.
func asSubQueries(items []string) []string {
	if len(items) < 2 {
		return nil
	}
	questionLike := false
	for _, item := range items {
		if strings.Contains(item, "?") || questionStart.MatchString(item) {
			questionLike = true
			break
		}
	}
	if !questionLike {
		return nil
	}
	return items
}

var preferenceWords = regexp.MustCompile(`(?i)\b(?:cheap(?:est)?|fast(?:est)?|direct|scenic|quiet|accessible|budget|comfort(?:able)?|first class|second class|window|aisle|bike|no transfers?)\b`)

// asPreferences reads a list as preference tags when any item matches a
// preference keyword, or when the whole list is short enough that a
// preference reading is the best default.
func asPreferences(items []string) []string {
	matched := false
	for _, item := range items {
		if preferenceWords.MatchString(item) {
			matched = true
			break
		}
	}
	if !matched && len(items) > maxPreferenceItems {
		return nil
	}
	return items
}

// Topic dictionaries, checked from most to least specific: the journey
// connectors "from"/"to" are too common to test first.
var (
	weatherWords = regexp.MustCompile(`(?i)\b(?:weather|temperature|forecast|rain|snow|sunny|wetter|météo|meteo)\b`)
	stationWords = regexp.MustCompile(`(?i)\b(?:station|facility|facilities|platform|track|gleis|bahnhof|gare|stazione)\b`)
	journeyWords = regexp.MustCompile(`(?i)\b(?:train|trip|connection|journey|travel|depart|from|to|zug|verbindung|nach|treno)\b`)
)

func classifyTopic(raw string) QueryType {
	switch {
	case weatherWords.MatchString(raw):
		return QueryWeather
	case stationWords.MatchString(raw):
		return QueryStation
	case journeyWords.MatchString(raw):
		return QueryJourney
	default:
		return QueryGeneral
	}
}
