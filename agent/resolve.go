package agent

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/transitwise/travel-agent/extract"
	"github.com/transitwise/travel-agent/session"
	"github.com/transitwise/travel-agent/tools"
)

var ordinalPatterns = []struct {
	re    *regexp.Regexp
	index int
}{
	{regexp.MustCompile(`(?i)\b(?:first|1st)\b`), 0},
	{regexp.MustCompile(`(?i)\b(?:second|2nd)\b`), 1},
	{regexp.MustCompile(`(?i)\b(?:third|3rd)\b`), 2},
	{regexp.MustCompile(`(?i)\b(?:fourth|4th)\b`), 3},
	{regexp.MustCompile(`(?i)\b(?:fifth|5th)\b`), 4},
	{regexp.MustCompile(`(?i)\blast\b`), -1},
}

// ordinalIndex reads a deictic ordinal out of the user's message. -1 means
// "last"; the boolean is false when no ordinal is present.
func ordinalIndex(text string) (int, bool) {
	for _, p := range ordinalPatterns {
		if p.re.MatchString(text) {
			return p.index, true
		}
	}
	return 0, false
}

// resolveParams fills parameters the model omitted, first from the entities
// extracted out of the current message, then from session context
// established by prior turns. Model-provided values are never overwritten.
func resolveParams(call api.ToolCall, ents extract.Entities, sctx *session.Context, message string) map[string]any {
	params := make(map[string]any, len(call.Function.Arguments)+2)
	for k, v := range call.Function.Arguments {
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue // an empty string is as good as omitted
		}
		params[k] = v
	}

	fill := func(key, value string) {
		if value == "" {
			return
		}
		if _, ok := params[key]; !ok {
			params[key] = value
		}
	}

	switch call.Function.Name {
	case tools.FindTrips:
		fill("origin", ents.Origin)
		fill("destination", ents.Destination)
		fill("date", ents.Date)
		fill("time", ents.Time)
		if _, ok := params["origin"]; !ok {
			fill("origin", lastStation(sctx))
		}
	case tools.GetWeather:
		fill("location", ents.Station())
		fill("date", ents.Date)
		if _, ok := params["location"]; !ok {
			fill("location", lastStation(sctx))
		}
	case tools.GetPlaceEvents, tools.GetStationInfo:
		fill("station", ents.Station())
		if _, ok := params["station"]; !ok {
			fill("station", lastStation(sctx))
		}
	case tools.GetTrainFormation:
		if _, ok := params["journeyId"]; !ok {
			if id := journeyFromContext(sctx, message); id != "" {
				params["journeyId"] = id
			}
		}
	}
	return params
}

func lastStation(sctx *session.Context) string {
	if sctx != nil && sctx.LastMentioned != nil && sctx.LastMentioned.Type == "station" {
		return sctx.LastMentioned.Value
	}
	return ""
}

// journeyFromContext resolves references like "the first trip" against the
// most recent findTrips result in session context.
func journeyFromContext(sctx *session.Context, message string) string {
	if sctx == nil {
		return ""
	}
	results, ok := sctx.LastToolResults[tools.FindTrips]
	if !ok {
		return ""
	}
	trips, ok := results["trips"].([]any)
	if !ok || len(trips) == 0 {
		return ""
	}

	idx, found := ordinalIndex(message)
	if !found {
		idx = 0
	}
	if idx == -1 || idx >= len(trips) {
		idx = len(trips) - 1
	}

	trip, ok := trips[idx].(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range []string{"journeyId", "id"} {
		if id, ok := trip[key].(string); ok && id != "" {
			return id
		}
	}
	return ""
}

// mentionedEntity derives the entity to remember from a completed tool call,
// for later pronoun resolution.
func mentionedEntity(toolName string, params map[string]any) *session.Entity {
	for _, key := range []string{"station", "destination", "location"} {
		if v, ok := params[key].(string); ok && v != "" {
			return &session.Entity{Type: "station", Value: v}
		}
	}
	if toolName == tools.GetTrainFormation {
		if v, ok := params["journeyId"].(string); ok && v != "" {
			return &session.Entity{Type: "journey", Value: v}
		}
	}
	return nil
}

// contextSummary renders session context for the planner's system prompt.
func contextSummary(sctx *session.Context) string {
	if sctx == nil {
		return ""
	}
	var b strings.Builder
	if sctx.LastMentioned != nil {
		fmt.Fprintf(&b, "Last mentioned %s: %s\n", sctx.LastMentioned.Type, sctx.LastMentioned.Value)
	}
	if len(sctx.LastToolResults) > 0 {
		names := make([]string, 0, len(sctx.LastToolResults))
		for name := range sctx.LastToolResults {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "Most recent %s result: %s\n", name, compactJSON(sctx.LastToolResults[name]))
		}
	}
	return strings.TrimSpace(b.String())
}

// entitiesMarkdown renders extracted entities for the system prompt.
func entitiesMarkdown(ents extract.Entities) string {
	if ents.Empty() {
		return ""
	}
	var b strings.Builder
	write := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "- %s: %s\n", label, value)
		}
	}
	write("origin", ents.Origin)
	write("destination", ents.Destination)
	write("date", ents.Date)
	write("time", ents.Time)
	if len(ents.Preferences) > 0 {
		write("preferences", strings.Join(ents.Preferences, ", "))
	}
	return strings.TrimSpace(b.String())
}

const maxSummaryBytes = 2048

// marshalJSON renders a payload in full. Tool results fed back into the
// current run must reach the model whole; only cross-turn summaries are
// bounded.
func marshalJSON(v map[string]any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// compactJSON renders a payload for the cross-turn prompt summary, truncated
// so one bulky tool result cannot crowd out the rest of the prompt.
func compactJSON(v map[string]any) string {
	s := marshalJSON(v)
	if len(s) > maxSummaryBytes {
		return s[:maxSummaryBytes] + "(truncated)"
	}
	return s
}
