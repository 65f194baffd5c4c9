// internal/guard/guard_test.go
package guard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(ch <-chan string) []string {
	var out []string
	for s := range ch {
		out = append(out, s)
	}
	return out
}

func feed(fragments ...string) <-chan string {
	in := make(chan string, len(fragments))
	for _, f := range fragments {
		in <- f
	}
	close(in)
	return in
}

func TestSanitizePassesSafeText(t *testing.T) {
	require.Equal(t, "plain safe text", Sanitize("plain safe text"))
	require.Equal(t, "trimmed", Sanitize("  trimmed \n"))
}

func TestSanitizeBlocksDisallowedScript(t *testing.T) {
	require.Equal(t, EnglishOnlyMessage, Sanitize("你好"))
	require.Equal(t, EnglishOnlyMessage, Sanitize("hello こんにちは"))
	require.Equal(t, EnglishOnlyMessage, Sanitize("annyeong 안녕"))
}

func TestSanitizeBlocksUnverifiedLink(t *testing.T) {
	require.Equal(t, UnverifiedLinkMessage, Sanitize("Check https://example.com"))
	require.Equal(t, UnverifiedLinkMessage, Sanitize("see HTTP://EXAMPLE.COM"))
	require.Equal(t, UnverifiedLinkMessage, Sanitize("visit www.example.com today"))
}

func TestSanitizeScriptWinsOverLink(t *testing.T) {
	require.Equal(t, EnglishOnlyMessage, Sanitize("链接 https://example.com"))
}

func TestSanitizeIdempotent(t *testing.T) {
	for _, text := range []string{
		"plain safe text",
		"Check https://example.com",
		"你好",
		"",
	} {
		once := Sanitize(text)
		require.Equal(t, once, Sanitize(once), "input: %q", text)
	}
}

func TestSanitizeAllowsNonListedScripts(t *testing.T) {
	// Cyrillic is outside the blocked ranges; the policy's known gap.
	require.Equal(t, "привет", Sanitize("привет"))
}

func TestStreamForwardsSafeFragments(t *testing.T) {
	got := collect(Stream(feed("a", "b", "c")))
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestStreamBlockedEmitsOnlyReplacement(t *testing.T) {
	// The safe-looking prefix must not leak before the violation in the
	// cumulative buffer is detected.
	got := collect(Stream(feed("Hello ", "世界")))
	require.Equal(t, []string{EnglishOnlyMessage}, got)
}

func TestStreamDetectsPatternAcrossFragmentBoundary(t *testing.T) {
	got := collect(Stream(feed("see https:", "//example.com", " for more")))
	require.Equal(t, []string{UnverifiedLinkMessage}, got)
}

func TestStreamDiscardsInputAfterBlocking(t *testing.T) {
	in := make(chan string, 4)
	in <- "世界"
	in <- "more"
	in <- "and more"
	close(in)
	got := collect(Stream(in))
	require.Equal(t, []string{EnglishOnlyMessage}, got)
}

func TestStreamEmptyInput(t *testing.T) {
	require.Empty(t, collect(Stream(feed())))
}

func TestCheckVerdicts(t *testing.T) {
	require.False(t, Check("fine").Blocked)

	v := Check("粤语")
	require.True(t, v.Blocked)
	require.Equal(t, ReasonDisallowedScript, v.Reason)
	require.Equal(t, EnglishOnlyMessage, v.Replacement)

	v = Check("www.example.com")
	require.True(t, v.Blocked)
	require.Equal(t, ReasonUnverifiedLink, v.Reason)
	require.Equal(t, UnverifiedLinkMessage, v.Replacement)
}
