// Package timex provides small time helpers: an injectable clock and
// IANA zone resolution with the application default.
package timex

import "time"

// DefaultZoneName is used when no time zone is configured.
const DefaultZoneName = "America/Sao_Paulo"

// Clock abstracts time retrieval so business logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// LoadZone resolves an IANA zone name, falling back to DefaultZoneName when
// name is empty.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultZoneName
	}
	return time.LoadLocation(name)
}

// NowIn returns the clock's current time converted to loc.
func NowIn(c Clock, loc *time.Location) time.Time {
	return c.Now().In(loc)
}
