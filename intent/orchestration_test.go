package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiPartAlwaysOrchestrates(t *testing.T) {
	pi := ParsedIntent{QueryType: QueryMultiPart}
	assert.True(t, RequiresOrchestration(pi, "anything"))
}

func TestComparisonAlwaysOrchestrates(t *testing.T) {
	pi := ParsedIntent{QueryType: QueryComparison}
	assert.True(t, RequiresOrchestration(pi, "anything"))
}

func TestPhraseHeuristics(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"Plan a day in Lucerne for me", true},
		{"Show me the departures from Zürich HB", true},
		{"Can you recommend a scenic route?", true},
		{"Zeig mir die Abfahrten in Basel", true},
		{"Quels sont les départs de Genève?", true},
		{"When is the next train from Zurich to Bern?", false},
		{"What's the weather in Bern?", false},
	}
	for _, tt := range tests {
		pi := ParsedIntent{QueryType: QueryJourney}
		assert.Equal(t, tt.want, RequiresOrchestration(pi, tt.raw), tt.raw)
	}
}
