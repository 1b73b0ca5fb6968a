package session

import "github.com/transitwise/travel-agent/language"

// Entity is the last concrete thing the conversation mentioned, kept for
// pronoun and ellipsis resolution ("that station").
type Entity struct {
	Type  string `json:"type"` // e.g. "station"
	Value string `json:"value"`
}

// Context is the short-term memory of one conversation. Only the latest
// result per tool name is retained; entries are overwritten, never appended.
type Context struct {
	Language        language.Language         `json:"language"`
	LastToolResults map[string]map[string]any `json:"lastToolResults,omitempty"`
	LastMentioned   *Entity                   `json:"lastMentioned,omitempty"`
}

// NewContext returns the default context created lazily on a session's first
// message.
func NewContext() *Context {
	return &Context{
		Language:        language.English,
		LastToolResults: map[string]map[string]any{},
	}
}

// Patch is a partial update applied with field-level overwrite and no merge
// logic: last write wins per key.
type Patch struct {
	Language    language.Language         // zero value leaves the language untouched
	ToolResults map[string]map[string]any // overwrites per tool name
	Mentioned   *Entity
}

func (c *Context) apply(p Patch) {
	if p.Language != "" {
		c.Language = p.Language
	}
	if c.LastToolResults == nil {
		c.LastToolResults = map[string]map[string]any{}
	}
	for name, payload := range p.ToolResults {
		c.LastToolResults[name] = payload
	}
	if p.Mentioned != nil {
		c.LastMentioned = p.Mentioned
	}
}
