// internal/clock/clock.go

// Package clock is the time-lookup tool: a UTC reading plus on-demand
// readings for any IANA zone. The time source is injectable so the
// orchestrator's time answers are reproducible under test.
package clock

import (
	"fmt"
	"time"
)

// Layout matches the reading format the backends and tests expect,
// e.g. "2025-03-01 17:04:05 UTC".
const Layout = "2006-01-02 15:04:05 MST"

// Reading is one clock observation: the UTC time plus zero or more
// named zone readings.
type Reading struct {
	UTC   string            `json:"utc"`
	Zones map[string]string `json:"zones,omitempty"`
}

// Clock produces readings from an injectable time source.
type Clock struct {
	now func() time.Time
}

// New creates a Clock on the system time source.
func New() *Clock {
	return &Clock{now: time.Now}
}

// NewAt creates a Clock with a fixed or fake time source.
func NewAt(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current UTC reading.
func (c *Clock) Now() Reading {
	return Reading{UTC: c.now().UTC().Format(Layout)}
}

// In returns the current reading in the given IANA zone.
func (c *Clock) In(zone string) (string, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return "", fmt.Errorf("load zone %q: %w", zone, err)
	}
	return c.now().In(loc).Format(Layout), nil
}
