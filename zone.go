package rrule

import (
	"strings"
	"time"

	"github.com/mileusna/timezones"
)

// ZonedInstant is a zoned civil instant (spec §3): conceptually a triple of
// (civil date, civil time-of-day, zone identifier), but represented here as
// a resolved time.Time, since Go's time.Time already carries its
// *time.Location and computing civil fields back out of it is exact and
// free of the round-trip ambiguity civil (year,month,day,hour,...) tuples
// have. Equality and ordering are by absolute instant, per spec.
//
// Grounded on the teacher's uniform use of time.Time as both the civil
// anchor and the absolute instant (_examples/standup-raven-rrule-go/rrule.go);
// this type just gives that convention a name matching the spec's
// vocabulary and a documented construction policy (below) for gap/fold.
type ZonedInstant struct {
	t time.Time
}

// NewZonedInstant wraps an already-resolved time.Time.
func NewZonedInstant(t time.Time) ZonedInstant { return ZonedInstant{t: t.Truncate(time.Second)} }

// Time returns the underlying absolute instant.
func (z ZonedInstant) Time() time.Time { return z.t }

// IsZero reports whether z is the zero ZonedInstant.
func (z ZonedInstant) IsZero() bool { return z.t.IsZero() }

// Before, After and Equal order ZonedInstants by absolute instant.
func (z ZonedInstant) Before(o ZonedInstant) bool { return z.t.Before(o.t) }
func (z ZonedInstant) After(o ZonedInstant) bool  { return z.t.After(o.t) }
func (z ZonedInstant) Equal(o ZonedInstant) bool  { return z.t.Equal(o.t) }

// Zone returns the IANA zone name backing z (e.g. "America/New_York", "UTC").
func (z ZonedInstant) Zone() string { return z.t.Location().String() }

func (z ZonedInstant) Year() int         { return z.t.Year() }
func (z ZonedInstant) Month() time.Month { return z.t.Month() }
func (z ZonedInstant) Day() int          { return z.t.Day() }
func (z ZonedInstant) Hour() int         { return z.t.Hour() }
func (z ZonedInstant) Minute() int       { return z.t.Minute() }
func (z ZonedInstant) Second() int       { return z.t.Second() }
func (z ZonedInstant) Weekday() Weekday  { return fromGoWeekday(int(z.t.Weekday())) }

// InZone reprojects z into a different zone without changing the absolute
// instant (only the reported civil fields change).
func (z ZonedInstant) InZone(loc *time.Location) ZonedInstant {
	return ZonedInstant{t: z.t.In(loc)}
}

// LoadZone resolves a TZID to a *time.Location, or ErrUnknownZone. On
// failure it scans github.com/mileusna/timezones' IANA name list for a
// case-insensitive substring match to suggest in the error, e.g. "Berlin"
// -> "Europe/Berlin".
//
// Grounded on jpfluger-alibs-slim/atime/zones.go's TimeIn/GetLocation
// (wraps time.LoadLocation) and GetOSTimeZones (uses timezones.List()).
func LoadZone(tzid string) (*time.Location, error) {
	if tzid == "" || tzid == "UTC" || tzid == "Z" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tzid)
	if err == nil {
		return loc, nil
	}
	return nil, unknownZoneError(tzid, suggestZone(tzid))
}

func suggestZone(tzid string) string {
	needle := strings.ToLower(tzid)
	for _, name := range timezones.List() {
		if strings.Contains(strings.ToLower(name), needle) {
			return name
		}
	}
	return ""
}

// ResolveCivil resolves civil (year, month, day, hour, minute, second) in
// the given zone to an absolute instant, applying the engine's documented
// gap/fold policy (spec §4.2):
//
//   - Gap (the local time does not exist, e.g. during a spring-forward
//     transition): ok is false and the caller must skip this candidate
//     silently, so expansion stays monotonic.
//   - Fold (the local time is ambiguous, e.g. during a fall-back
//     transition): the earlier of the two possible instants is chosen.
//     This falls out of time.Date's own documented disambiguation rule, so
//     no extra branching is needed here — this function just names and
//     tests that choice as part of the engine's observable contract.
func ResolveCivil(year int, month time.Month, day, hour, minute, second int, loc *time.Location) (ZonedInstant, bool) {
	t := time.Date(year, month, day, hour, minute, second, 0, loc)
	if t.Year() != year || t.Month() != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		// time.Date advanced the wall clock past the gap; the requested
		// civil time never existed in this zone.
		return ZonedInstant{}, false
	}
	return ZonedInstant{t: t}, true
}
