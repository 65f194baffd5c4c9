// internal/guard/guard.go

// Package guard enforces output-safety policy over finished strings and
// incrementally growing streams. Two conditions block output: non-English
// script (CJK, Kana, Hangul ranges) and unverified links. A blocked stream
// emits its fixed replacement message once and then permanently stops.
package guard

import (
	"regexp"
	"strings"
	"unicode"
)

// Fixed replacement messages. These must themselves pass both checks so
// that Sanitize is idempotent.
const (
	EnglishOnlyMessage = "I can only provide responses in English. " +
		"Please ask me to answer in English."
	UnverifiedLinkMessage = "I can't share links that didn't come from a verified source. " +
		"I don't know based on available information."
)

// Reason explains why output was blocked.
type Reason string

const (
	ReasonDisallowedScript Reason = "disallowed-script"
	ReasonUnverifiedLink   Reason = "unverified-link"
)

// Verdict is the guard's decision for one buffer state.
type Verdict struct {
	Blocked     bool
	Reason      Reason
	Replacement string
}

// linkPattern flags http/https URLs and bare www. tokens.
var linkPattern = regexp.MustCompile(`(?i)(https?://|\bwww\.)`)

// disallowedScripts covers the major non-Latin scripts the policy names.
// Known gap, kept deliberately: Cyrillic, Arabic, Devanagari, and other
// non-English scripts pass this check. Widening the set is a policy
// decision, not a code fix.
var disallowedScripts = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Hangul,
}

// containsDisallowedScript reports whether any rune falls in a CJK,
// Kana, or Hangul range.
func containsDisallowedScript(text string) bool {
	for _, r := range text {
		if unicode.In(r, disallowedScripts...) {
			return true
		}
	}
	return false
}

// Check runs both predicates over the whole buffer, script first.
func Check(text string) Verdict {
	if containsDisallowedScript(text) {
		return Verdict{Blocked: true, Reason: ReasonDisallowedScript, Replacement: EnglishOnlyMessage}
	}
	if linkPattern.MatchString(text) {
		return Verdict{Blocked: true, Reason: ReasonUnverifiedLink, Replacement: UnverifiedLinkMessage}
	}
	return Verdict{}
}

// Sanitize returns the trimmed text unchanged when it passes both checks,
// or the fixed replacement message when it does not. Idempotent.
func Sanitize(text string) string {
	if v := Check(text); v.Blocked {
		return v.Replacement
	}
	return strings.TrimSpace(text)
}

// Stream filters an in-order fragment stream. Each fragment is appended to
// a cumulative buffer and both checks run against the whole buffer so far,
// so disallowed patterns straddling fragment boundaries are caught. A
// passing fragment is held back until its successor also passes, which
// keeps the fragment immediately preceding a violation from leaking out:
// a triggered stream emits the fixed replacement once and nothing after
// it. The filter is monotonic: pass can become blocked, never the reverse.
func Stream(in <-chan string) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		var buf strings.Builder
		var pending string
		var havePending bool
		for fragment := range in {
			buf.WriteString(fragment)
			if v := Check(buf.String()); v.Blocked {
				out <- v.Replacement
				// Drain so an already-running producer never blocks on a
				// reader that has stopped.
				for range in {
				}
				return
			}
			if havePending {
				out <- pending
			}
			pending = fragment
			havePending = true
		}
		if havePending {
			out <- pending
		}
	}()
	return out
}
