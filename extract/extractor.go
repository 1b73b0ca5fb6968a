package extract

import (
	"sort"
	"strings"
	"time"

	"github.com/transitwise/travel-agent/language"
)

// Entities is the structured output of entity extraction. Absent entities
// stay zero-valued; extraction never fails.
type Entities struct {
	Origin      string   `json:"origin,omitempty"`
	Destination string   `json:"destination,omitempty"`
	Date        string   `json:"date,omitempty"` // ISO YYYY-MM-DD
	Time        string   `json:"time,omitempty"` // 24-hour HH:MM
	Preferences []string `json:"preferences,omitempty"`
}

// Empty reports whether nothing was extracted.
func (e Entities) Empty() bool {
	return e.Origin == "" && e.Destination == "" && e.Date == "" && e.Time == "" && len(e.Preferences) == 0
}

// Station returns the most specific station mentioned: an origin-only
// phrase ("departures from Zürich HB") names the station of interest, a
// destination otherwise.
func (e Entities) Station() string {
	if e.Origin != "" && e.Destination == "" {
		return e.Origin
	}
	return e.Destination
}

// Extract pulls origin/destination, date, time and preference tags from
// text. The reference instant now anchors relative dates; inject a fixed
// clock in tests. Non-Latin-script input is expected to have passed the
// translation gate already.
func Extract(text string, lang language.Language, now time.Time) Entities {
	var e Entities
	text = strings.TrimSpace(text)
	if text == "" {
		return e
	}

	for _, p := range routeCascade(lang) {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		p.apply(m, &e)
		break
	}

	e.Date = extractDate(text, lang, now)
	e.Time = extractTime(text, lang)
	e.Preferences = extractPreferences(text)
	return e
}

func extractPreferences(text string) []string {
	var tags []string
	for tag, re := range preferenceTags {
		if re.MatchString(text) {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// cleanPlace trims connector debris from a captured station name.
func cleanPlace(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, ",.?!:;")
	return strings.TrimSpace(s)
}
