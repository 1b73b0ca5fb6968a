package intent

import "regexp"

// Phrases that signal a query needing multi-step planning. The gate has to
// stay cheap and side-effect-free: orchestration costs several model
// round-trips, so the decision is a keyword scan, not a model call.
var orchestrationPhrases = regexp.MustCompile(`(?i)\b(?:plan (?:a|my|the) day|itinerary|full day|day trip|arrivals?|departures?|recommend|suggest|best way to|things to do|what should i|abfahrten|ank(?:u|ü)nfte|d(?:e|é)parts|arriv(?:é|e)es|partenze|arrivi)\b`)

// RequiresOrchestration decides whether a query takes the multi-round
// tool-calling path instead of a single-shot completion. Multi-part and
// comparison queries always orchestrate; otherwise phrase heuristics over
// the raw text decide.
func RequiresOrchestration(pi ParsedIntent, rawText string) bool {
	if pi.QueryType == QueryMultiPart || pi.QueryType == QueryComparison {
		return true
	}
	return orchestrationPhrases.MatchString(rawText)
}
