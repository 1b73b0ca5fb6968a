package extract

import (
	"regexp"

	"github.com/transitwise/travel-agent/language"
)

// routePattern is one entry of the per-language connector cascade. Patterns
// are tried in order and the first match wins; the documented priority is
// what the tests pin.
type routePattern struct {
	re    *regexp.Regexp
	apply func(m []string, e *Entities)
}

func originAndDestination(m []string, e *Entities) {
	e.Origin = cleanPlace(m[1])
	e.Destination = cleanPlace(m[2])
}

func destinationOnly(m []string, e *Entities) {
	e.Destination = cleanPlace(m[1])
}

func originOnly(m []string, e *Entities) {
	e.Origin = cleanPlace(m[1])
}

// place matches a station or city name: a capitalized word followed by
// optional extra words ("Zürich HB", "St. Gallen").
const place = `([\p{Lu}][\p{L}\d.'-]*(?:\s+[\p{Lu}][\p{L}\d.'-]*)*)`

var routeCascades = map[language.Language][]routePattern{
	language.English: {
		{regexp.MustCompile(`\b(?i:from)\s+` + place + `\s+(?i:to)\s+` + place), originAndDestination},
		{regexp.MustCompile(`\b(?i:to)\s+` + place), destinationOnly},
		{regexp.MustCompile(`\b(?i:from)\s+` + place), originOnly},
		{regexp.MustCompile(`\b(?i:at|in|for)\s+` + place), destinationOnly},
	},
	language.German: {
		{regexp.MustCompile(`\b(?i:von)\s+` + place + `\s+(?i:nach)\s+` + place), originAndDestination},
		{regexp.MustCompile(`\b(?i:nach)\s+` + place), destinationOnly},
		{regexp.MustCompile(`\b(?i:von|ab)\s+` + place), originOnly},
		{regexp.MustCompile(`\b(?i:in)\s+` + place), destinationOnly},
	},
	language.French: {
		{regexp.MustCompile(`\b(?i:de)\s+` + place + `\s+(?i:à|a|vers)\s+` + place), originAndDestination},
		{regexp.MustCompile(`(?:^|\s)(?i:à|a|vers|pour)\s+` + place), destinationOnly},
		{regexp.MustCompile(`\b(?i:de)\s+` + place), originOnly},
	},
	language.Italian: {
		{regexp.MustCompile(`\b(?i:da)\s+` + place + `\s+(?i:a|per|verso)\s+` + place), originAndDestination},
		{regexp.MustCompile(`\b(?i:a|per|verso)\s+` + place), destinationOnly},
		{regexp.MustCompile(`\b(?i:da)\s+` + place), originOnly},
	},
}

// routeCascade resolves the pattern list for a language. Chinese and Hindi
// text reaches extraction only after the translation gate, so they share the
// English cascade.
func routeCascade(lang language.Language) []routePattern {
	if c, ok := routeCascades[lang]; ok {
		return c
	}
	return routeCascades[language.English]
}

var relativeDays = map[language.Language]map[string]int{
	language.English: {"today": 0, "tomorrow": 1, "yesterday": -1},
	language.German:  {"heute": 0, "morgen": 1, "übermorgen": 2, "gestern": -1},
	language.French:  {"aujourd'hui": 0, "demain": 1, "hier": -1},
	language.Italian: {"oggi": 0, "domani": 1, "ieri": -1},
}

// weekdays maps lowercase weekday names to time.Weekday ordinals (Sunday=0).
var weekdays = map[language.Language]map[string]int{
	language.English: {
		"sunday": 0, "monday": 1, "tuesday": 2, "wednesday": 3,
		"thursday": 4, "friday": 5, "saturday": 6,
	},
	language.German: {
		"sonntag": 0, "montag": 1, "dienstag": 2, "mittwoch": 3,
		"donnerstag": 4, "freitag": 5, "samstag": 6,
	},
	language.French: {
		"dimanche": 0, "lundi": 1, "mardi": 2, "mercredi": 3,
		"jeudi": 4, "vendredi": 5, "samedi": 6,
	},
	language.Italian: {
		"domenica": 0, "lunedì": 1, "martedì": 2, "mercoledì": 3,
		"giovedì": 4, "venerdì": 5, "sabato": 6,
	},
}

var monthNames = map[string]int{
	"january": 1, "jan": 1, "february": 2, "feb": 2, "march": 3, "mar": 3,
	"april": 4, "apr": 4, "may": 5, "june": 6, "jun": 6, "july": 7, "jul": 7,
	"august": 8, "aug": 8, "september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10, "november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

var preferenceTags = map[string]*regexp.Regexp{
	"cheapest":     regexp.MustCompile(`(?i)\b(?:cheap(?:est)?|budget|günstig(?:ste)?|pas cher|economico)\b`),
	"fastest":      regexp.MustCompile(`(?i)\b(?:fast(?:est)?|quick(?:est)?|schnell(?:ste)?|rapide|veloce)\b`),
	"direct":       regexp.MustCompile(`(?i)\b(?:direct|no transfers?|ohne umsteigen|direkt|diretto)\b`),
	"scenic":       regexp.MustCompile(`(?i)\b(?:scenic|panorama|panoramic|panoramique|panoramico)\b`),
	"first-class":  regexp.MustCompile(`(?i)\b(?:first class|1st class|erste klasse|première classe|prima classe)\b`),
	"accessible":   regexp.MustCompile(`(?i)\b(?:accessible|wheelchair|barrierefrei|rollstuhl|accessibile)\b`),
	"bike-allowed": regexp.MustCompile(`(?i)\b(?:bike|bicycle|velo|fahrrad|vélo|bicicletta)\b`),
}
