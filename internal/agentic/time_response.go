// internal/agentic/time_response.go
package agentic

import (
	"fmt"
	"strings"

	"github.com/dhirajp15/dhirux-workflows/internal/timezone"
)

// timeResponse builds the deterministic answer for time queries from the
// clock tool and the timezone resolver, without contacting any model
// backend. Given a fixed clock reading the output is fully reproducible.
func (s *Service) timeResponse(message string) string {
	reading := s.clock.Now()

	zone, ok := timezone.Resolve(message)
	if ok && zone != "UTC" {
		if local, err := s.clock.In(zone); err == nil {
			return fmt.Sprintf(
				"The current UTC time is %s.\nThe current time in %s is %s.\n\n"+
					"I can also help summarize recent transcripts or run other tasks.",
				reading.UTC, zone, local)
		}
	}

	if !ok && strings.Contains(strings.ToLower(message), "timezone") {
		return fmt.Sprintf(
			"The current UTC time is %s.\n\n"+
				"I could not recognize the requested timezone. "+
				"Please provide an IANA timezone like `America/Denver` or `Asia/Tokyo`.",
			reading.UTC)
	}

	return fmt.Sprintf(
		"The current UTC time is %s.\n\n"+
			"If you need exact live time, please check a reliable online clock.\n\n"+
			"I can also help summarize recent transcripts or run other tasks.",
		reading.UTC)
}
