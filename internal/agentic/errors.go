// internal/agentic/errors.go
package agentic

import "errors"

// Configuration errors, surfaced before any backend work begins and
// never retried.
var (
	// ErrDisabled is returned when the process-wide enablement flag is off.
	ErrDisabled = errors.New("agentic workflows are disabled (AGENTIC_ENABLED=0)")

	// ErrAgentUnavailable is returned when the primary agent backend is not
	// ready and classic fallback is disallowed by configuration.
	ErrAgentUnavailable = errors.New(
		"agentic mode requires a configured model backend, and classic fallback is disallowed (AGENTIC_ALLOW_CLASSIC_FALLBACK=0)")
)

// IsConfigError reports whether err is one of the orchestrator's hard
// configuration failures.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrDisabled) || errors.Is(err, ErrAgentUnavailable)
}
