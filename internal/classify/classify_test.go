// internal/classify/classify_test.go
package classify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyTimeQuery(t *testing.T) {
	cases := []string{
		"what time is it?",
		"TIME please",
		"current time in denver",
		"convert this to UTC",
		"is gmt the same as utc",
		"which timezone is beijing in",
	}
	for _, msg := range cases {
		require.Equal(t, RouteTimeQuery, Classify(msg), "message: %q", msg)
	}
}

func TestClassifyTimeRequiresWholeWord(t *testing.T) {
	// "sometimes" and "timer" contain "time" but are not time queries.
	require.Equal(t, RouteNormal, Classify("sometimes I wonder"))
	require.Equal(t, RouteNormal, Classify("set a timer metaphorically"))
}

func TestClassifyVerificationRequired(t *testing.T) {
	cases := []string{
		"who is the CEO of Acme?",
		"find her linkedin",
		"share your website",
		"can you send me a link",
		"what's his twitter handle",
		"look up this profile",
	}
	for _, msg := range cases {
		require.Equal(t, RouteVerification, Classify(msg), "message: %q", msg)
	}
}

func TestClassifyVerificationIsDeliberatelyOverBroad(t *testing.T) {
	// "link" in an unrelated context still refuses; the policy prefers
	// false positives over fabrication.
	require.Equal(t, RouteVerification, Classify("how do I link two Go packages"))
}

func TestClassifyTimeDominatesVerification(t *testing.T) {
	require.Equal(t, RouteTimeQuery, Classify("what time is it on their website?"))
}

func TestClassifyNormal(t *testing.T) {
	require.Equal(t, RouteNormal, Classify("summarize the last transcript"))
	require.Equal(t, RouteNormal, Classify(""))
}
