// internal/timezone/resolver.go

// Package timezone resolves free-text mentions of places, zones, and
// abbreviations into canonical IANA zone identifiers.
package timezone

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// ianaPattern matches Area/City style zone candidates in raw text.
var ianaPattern = regexp.MustCompile(`\b([A-Za-z]+/[A-Za-z_]+)\b`)

// normPattern strips punctuation (keeping word chars, whitespace, and
// slashes) before alias matching.
var normPattern = regexp.MustCompile(`[^\w\s/]`)

var spacePattern = regexp.MustCompile(`\s+`)

// aliases maps common city names, colloquial region names, and timezone
// abbreviations to canonical IANA zone ids.
var aliases = map[string]string{
	"utc":         "UTC",
	"gmt":         "UTC",
	"zulu":        "UTC",
	"denver":      "America/Denver",
	"mountain":    "America/Denver",
	"mst":         "America/Denver",
	"mdt":         "America/Denver",
	"new york":    "America/New_York",
	"est":         "America/New_York",
	"edt":         "America/New_York",
	"chicago":     "America/Chicago",
	"cst":         "America/Chicago",
	"cdt":         "America/Chicago",
	"los angeles": "America/Los_Angeles",
	"la":          "America/Los_Angeles",
	"pst":         "America/Los_Angeles",
	"pdt":         "America/Los_Angeles",
	"london":      "Europe/London",
	"bst":         "Europe/London",
	"paris":       "Europe/Paris",
	"berlin":      "Europe/Berlin",
	"dubai":       "Asia/Dubai",
	"tokyo":       "Asia/Tokyo",
	"singapore":   "Asia/Singapore",
	"beijing":     "Asia/Shanghai",
	"shanghai":    "Asia/Shanghai",
	"india":       "Asia/Kolkata",
	"ist":         "Asia/Kolkata",
}

// orderedAliases holds the alias keys longest-first so that multi-word
// aliases ("new york") are not shadowed by shorter ones.
var orderedAliases = func() []string {
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// Resolve extracts a canonical IANA zone id from free text.
// Explicit Area/City tokens validated against the zone database win;
// otherwise the alias table is tried longest-first with whole-word
// boundaries. Returns ok=false when nothing matches.
func Resolve(message string) (string, bool) {
	for _, candidate := range ianaPattern.FindAllString(message, -1) {
		if _, err := time.LoadLocation(candidate); err == nil {
			return candidate, true
		}
	}

	// Slashes survive normalization (IANA candidates), but act as word
	// boundaries for alias matching: "asia/tokyo" should still hit "tokyo".
	norm := strings.ReplaceAll(Normalize(message), "/", " ")
	padded := " " + norm + " "
	for _, alias := range orderedAliases {
		if strings.Contains(padded, " "+alias+" ") {
			return aliases[alias], true
		}
	}

	return "", false
}

// Normalize lowercases text, strips punctuation to spaces, and collapses
// whitespace. Shared with the classifier so both see the same tokens.
func Normalize(message string) string {
	norm := normPattern.ReplaceAllString(strings.ToLower(message), " ")
	return strings.TrimSpace(spacePattern.ReplaceAllString(norm, " "))
}
