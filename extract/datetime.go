package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/transitwise/travel-agent/language"
)

const isoDate = "2006-01-02"

var (
	isoDateRe      = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	europeanDateRe = regexp.MustCompile(`\b(\d{1,2})[./](\d{1,2})[./](\d{2,4})\b`)
	monthDayRe     = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sept?|Oct|Nov|Dec)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	dayMonthRe     = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sept?|Oct|Nov|Dec)\b`)
)

// extractDate resolves the first date expression found in text to ISO
// YYYY-MM-DD. Relative keywords and weekday names resolve against now, so
// results are deterministic under an injected clock. Patterns are tried in a
// fixed order; the first hit wins.
func extractDate(text string, lang language.Language, now time.Time) string {
	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		if d, err := time.Parse(isoDate, m[0]); err == nil {
			return d.Format(isoDate)
		}
	}
	if m := europeanDateRe.FindStringSubmatch(text); m != nil {
		if d, ok := europeanDate(m, now); ok {
			return d
		}
	}
	if m := monthDayRe.FindStringSubmatch(text); m != nil {
		if d, ok := monthNameDate(m[2], m[1], now); ok {
			return d
		}
	}
	if m := dayMonthRe.FindStringSubmatch(text); m != nil {
		if d, ok := monthNameDate(m[1], m[2], now); ok {
			return d
		}
	}

	lower := strings.ToLower(text)
	if offsets, ok := relativeDays[lang]; ok {
		if d := firstKeywordDate(lower, offsets, now); d != "" {
			return d
		}
	} else if d := firstKeywordDate(lower, relativeDays[language.English], now); d != "" {
		return d
	}

	days := weekdays[lang]
	if days == nil {
		days = weekdays[language.English]
	}
	bestIdx, bestDay := -1, 0
	for name, wd := range days {
		idx := wordIndex(lower, name)
		if idx < 0 {
			continue
		}
		if bestIdx == -1 || idx < bestIdx {
			bestIdx, bestDay = idx, wd
		}
	}
	if bestIdx >= 0 {
		ahead := (bestDay - int(now.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7 // a bare weekday name means the next occurrence
		}
		return now.AddDate(0, 0, ahead).Format(isoDate)
	}
	return ""
}

func firstKeywordDate(lower string, offsets map[string]int, now time.Time) string {
	best := -1
	offset := 0
	for word, delta := range offsets {
		idx := wordIndex(lower, word)
		if idx < 0 {
			continue
		}
		if best == -1 || idx < best {
			best = idx
			offset = delta
		}
	}
	if best == -1 {
		return ""
	}
	return now.AddDate(0, 0, offset).Format(isoDate)
}

// europeanDate reads dd.mm.yyyy (or dd/mm/yy). Two-digit years resolve into
// the current century.
func europeanDate(m []string, now time.Time) (string, bool) {
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += (now.Year() / 100) * 100
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day { // e.g. 31.02.
		return "", false
	}
	return d.Format(isoDate), true
}

// monthNameDate reads an English month name plus a day number. A date with
// no year is placed in the current year, rolling forward when it already
// passed.
func monthNameDate(monthWord, dayWord string, now time.Time) (string, bool) {
	month, ok := monthNames[strings.ToLower(strings.TrimSuffix(monthWord, "."))]
	if !ok {
		return "", false
	}
	day, err := strconv.Atoi(dayWord)
	if err != nil || day < 1 || day > 31 {
		return "", false
	}
	d := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day {
		return "", false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(today) {
		d = d.AddDate(1, 0, 0)
	}
	return d.Format(isoDate), true
}

var (
	clockTimeRe  = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*(am|pm)?\b`)
	bareHourRe   = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(am|pm)\b`)
	germanTimeRe = regexp.MustCompile(`(?i)\bum\s+(\d{1,2})(?::(\d{2}))?\s*(?:uhr)?\b`)
)

// extractTime normalizes the first time expression in text to 24-hour HH:MM.
// A trailing meridiem overrides an ambiguous hour ("2:30 pm" -> "14:30").
func extractTime(text string, lang language.Language) string {
	if m := clockTimeRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if t := normalizeTime(hour, minute, m[3]); t != "" {
			return t
		}
	}
	if m := bareHourRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if t := normalizeTime(hour, 0, m[2]); t != "" {
			return t
		}
	}
	if lang == language.German {
		if m := germanTimeRe.FindStringSubmatch(text); m != nil {
			hour, _ := strconv.Atoi(m[1])
			minute := 0
			if m[2] != "" {
				minute, _ = strconv.Atoi(m[2])
			}
			if t := normalizeTime(hour, minute, ""); t != "" {
				return t
			}
		}
	}
	return ""
}

func normalizeTime(hour, minute int, meridiem string) string {
	switch strings.ToLower(meridiem) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

func containsWord(haystack, word string) bool {
	return wordIndex(haystack, word) >= 0
}

// wordIndex returns the byte index of the first occurrence of word that is
// not embedded in a longer ASCII word, or -1. Keeps "todays" from matching
// "today" and "montags" from matching "montag".
func wordIndex(haystack, word string) int {
	idx := strings.Index(haystack, word)
	for idx >= 0 {
		before := idx == 0 || !isLetter(haystack[idx-1])
		afterIdx := idx + len(word)
		after := afterIdx >= len(haystack) || !isLetter(haystack[afterIdx])
		if before && after {
			return idx
		}
		next := strings.Index(haystack[idx+1:], word)
		if next < 0 {
			return -1
		}
		idx += 1 + next
	}
	return -1
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
