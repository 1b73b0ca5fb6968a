package intent

// QueryType is the mutually exclusive topic classification of one user
// utterance. Comparison takes priority over multi-part, which takes priority
// over keyword topics, which fall back to general.
type QueryType string

const (
	QueryJourney    QueryType = "journey"
	QueryStation    QueryType = "station"
	QueryWeather    QueryType = "weather"
	QueryComparison QueryType = "comparison"
	QueryMultiPart  QueryType = "multi-part"
	QueryGeneral    QueryType = "general"
)

// Comparison is one data row of a two-column comparison table.
type Comparison struct {
	Route    string `json:"route"`
	Criteria string `json:"criteria"`
}

// StructuredData carries fields recovered from markdown constructs or from
// the raw text. Zero values mean the construct was not found.
type StructuredData struct {
	Date        string       `json:"date,omitempty"`
	Time        string       `json:"time,omitempty"`
	Preferences []string     `json:"preferences,omitempty"`
	Comparisons []Comparison `json:"comparisons,omitempty"`
}

func (s StructuredData) empty() bool {
	return s.Date == "" && s.Time == "" && len(s.Preferences) == 0 && len(s.Comparisons) == 0
}

// ParsedIntent is the result of parsing a single user utterance. It is
// created fresh per message and never mutated after being returned.
type ParsedIntent struct {
	MainQuery   string          `json:"mainQuery"`
	HasMarkdown bool            `json:"hasMarkdown"`
	QueryType   QueryType       `json:"queryType"`
	Structured  *StructuredData `json:"structuredData,omitempty"`
	SubQueries  []string        `json:"subQueries,omitempty"`
}
