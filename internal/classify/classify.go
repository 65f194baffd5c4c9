// internal/classify/classify.go

// Package classify decides which response source handles an inbound
// message, before any backend is contacted.
package classify

import (
	"strings"

	"github.com/dhirajp15/dhirux-workflows/internal/timezone"
)

// Route is the response source selected for a message.
type Route string

const (
	// RouteTimeQuery answers deterministically from the clock tool.
	RouteTimeQuery Route = "time_query"
	// RouteVerification returns a fixed refusal without touching a backend.
	RouteVerification Route = "verification_required"
	// RouteNormal proceeds to the primary agent or fallback worker.
	RouteNormal Route = "normal"
)

// verificationPhrases trigger the refuse-rather-than-fabricate path.
// Deliberately over-broad: "link" or "website" in any context refuses,
// trading false positives for never fabricating identities or URLs.
var verificationPhrases = []string{
	"who is",
	"profile",
	"linkedin",
	"url",
	"link",
	"website",
	"twitter",
	"facebook",
	"instagram",
	"github",
}

// Classify inspects a message and picks its route. Stateless and
// case-insensitive; time queries dominate verification triggers so that
// "what time is it in new york" never refuses.
func Classify(message string) Route {
	norm := timezone.Normalize(message)

	if isTimeQuery(norm) {
		return RouteTimeQuery
	}
	if isVerificationQuery(norm) {
		return RouteVerification
	}
	return RouteNormal
}

// isTimeQuery reports whether the normalized message asks about time:
// the standalone word "time", or any mention of utc/gmt/timezone.
func isTimeQuery(norm string) bool {
	if strings.Contains(" "+norm+" ", " time ") {
		return true
	}
	for _, k := range []string{"utc", "gmt", "timezone"} {
		if strings.Contains(norm, k) {
			return true
		}
	}
	return false
}

func isVerificationQuery(norm string) bool {
	for _, phrase := range verificationPhrases {
		if strings.Contains(norm, phrase) {
			return true
		}
	}
	return false
}
