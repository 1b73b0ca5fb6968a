package intent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t "} {
		pi := ParseMarkdownIntent(raw)

		assert.Equal(t, QueryGeneral, pi.QueryType)
		assert.False(t, pi.HasMarkdown)
		assert.Empty(t, pi.MainQuery)
		assert.Nil(t, pi.Structured)
		assert.Empty(t, pi.SubQueries)
	}
}

func TestParsePlainTextSkipsMarkdown(t *testing.T) {
	pi := ParseMarkdownIntent("When is the next train from Zurich to Bern?")

	assert.False(t, pi.HasMarkdown)
	assert.Equal(t, QueryJourney, pi.QueryType)
	assert.Equal(t, "When is the next train from Zurich to Bern?", pi.MainQuery)
	assert.Nil(t, pi.Structured)
}

func TestParsePlainTextTopicPriority(t *testing.T) {
	tests := []struct {
		raw  string
		want QueryType
	}{
		{"What's the weather in Bern?", QueryWeather},
		// weather beats journey even when both vocabularies appear
		{"Will it rain on my trip to Bern?", QueryWeather},
		{"Which platform does my train leave from at the station?", QueryStation},
		{"I want to travel to Geneva", QueryJourney},
		{"Hello there", QueryGeneral},
	}
	for _, tt := range tests {
		pi := ParseMarkdownIntent(tt.raw)
		assert.Equal(t, tt.want, pi.QueryType, tt.raw)
	}
}

func TestParseMultiPartList(t *testing.T) {
	raw := "Help me plan:\n\n" +
		"- When is the next train to Bern?\n" +
		"- What is the weather there?\n"

	pi := ParseMarkdownIntent(raw)

	assert.True(t, pi.HasMarkdown)
	assert.Equal(t, QueryMultiPart, pi.QueryType)
	assert.Len(t, pi.SubQueries, 2)
	assert.Contains(t, pi.SubQueries[0], "next train to Bern")
}

func TestParseSingleItemListIsNeverMultiPart(t *testing.T) {
	pi := ParseMarkdownIntent("Notes:\n\n- When is the next train to Bern?\n")

	assert.NotEqual(t, QueryMultiPart, pi.QueryType)
	assert.Empty(t, pi.SubQueries)
}

func TestParsePreferenceList(t *testing.T) {
	raw := "Find me a connection to Bern:\n\n- cheapest\n- direct\n"

	pi := ParseMarkdownIntent(raw)

	assert.NotEqual(t, QueryMultiPart, pi.QueryType)
	assert.NotNil(t, pi.Structured)
	assert.Equal(t, []string{"cheapest", "direct"}, pi.Structured.Preferences)
}

func TestParseShortListDefaultsToPreferences(t *testing.T) {
	// No preference keyword, but short enough for the fallback reading.
	pi := ParseMarkdownIntent("For the trip:\n\n- morning only\n- with my dog\n")

	assert.NotNil(t, pi.Structured)
	assert.Len(t, pi.Structured.Preferences, 2)
}

func TestParseLongKeywordlessListIsDropped(t *testing.T) {
	var b strings.Builder
	b.WriteString("Some context:\n\n")
	for _, item := range []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta"} {
		b.WriteString("- " + item + "\n")
	}

	pi := ParseMarkdownIntent(b.String())

	assert.Empty(t, pi.SubQueries)
	if pi.Structured != nil {
		assert.Empty(t, pi.Structured.Preferences)
	}
}

func TestParseComparisonTable(t *testing.T) {
	raw := "Compare these routes:\n\n" +
		"| Route | Criteria |\n" +
		"|-------|----------|\n" +
		"| Zurich-Bern | fastest |\n" +
		"| Zurich-Basel | cheapest |\n"

	pi := ParseMarkdownIntent(raw)

	assert.Equal(t, QueryComparison, pi.QueryType)
	assert.NotNil(t, pi.Structured)
	assert.Equal(t, []Comparison{
		{Route: "Zurich-Bern", Criteria: "fastest"},
		{Route: "Zurich-Basel", Criteria: "cheapest"},
	}, pi.Structured.Comparisons)
}

func TestParseHeaderOnlyTableHasNoComparisons(t *testing.T) {
	raw := "| Route | Criteria |\n|-------|----------|\n"

	pi := ParseMarkdownIntent(raw)

	assert.NotEqual(t, QueryComparison, pi.QueryType)
	if pi.Structured != nil {
		assert.Empty(t, pi.Structured.Comparisons)
	}
}

func TestParseComparisonBeatsMultiPart(t *testing.T) {
	raw := "# Trip planning\n\n" +
		"- When is the next train to Bern?\n" +
		"- What about Basel?\n\n" +
		"| Route | Criteria |\n" +
		"|-------|----------|\n" +
		"| Zurich-Bern | fastest |\n" +
		"| Zurich-Basel | fastest |\n"

	pi := ParseMarkdownIntent(raw)

	assert.Equal(t, QueryComparison, pi.QueryType)
	assert.Len(t, pi.SubQueries, 2)
}

func TestParseDateTimeFirstMatchWins(t *testing.T) {
	pi := ParseMarkdownIntent("# Travel\n\nLeave on 2025-06-01 or 02.06.2025 at 14:30\n")

	assert.NotNil(t, pi.Structured)
	assert.Equal(t, "2025-06-01", pi.Structured.Date)
	assert.Equal(t, "14:30", pi.Structured.Time)
}

func TestParseNeverPanics(t *testing.T) {
	inputs := []string{
		"***[[[|||###",
		"| | | |\n|---|\n",
		strings.Repeat("#", 500),
		"héllo wörld \U0001F98E **",
		"\x00\x01*\x02",
	}
	for _, raw := range inputs {
		assert.NotPanics(t, func() {
			pi := ParseMarkdownIntent(raw)
			assert.NotEmpty(t, string(pi.QueryType))
		})
	}
}

func TestParsePlainTextIsIdempotent(t *testing.T) {
	for _, raw := range []string{
		"When is the next train from Zurich to Bern?",
		"What's the weather in Bern?",
		"Hello there",
	} {
		first := ParseMarkdownIntent(raw)
		second := ParseMarkdownIntent(first.MainQuery)
		assert.Equal(t, first.QueryType, second.QueryType, raw)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	raw := "Plan my day:\n\n- Find trains to Bern\n- What is the weather?\n"
	first := ParseMarkdownIntent(raw)
	second := ParseMarkdownIntent(raw)

	assert.Equal(t, first, second)
}
