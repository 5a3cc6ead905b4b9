package rrule

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers (spec §7). Validation errors
// (StructuralError / SemanticError) are raised eagerly at rule construction;
// expansion errors (UnknownZoneError, BoundExceededError,
// DateArithmeticError) are raised at the point of iteration that encounters
// them. The iterator is fail-fast: once it has produced one of these it is
// poisoned and returns the same error forever (see iterator.go).
//
// Styled on Michael-Gallo-simple-ical/rrule/errors.go and
// Michael-Gallo-simple-ical/parse/errors.go: grouped sentinel vars with one
// doc comment each, rather than a type hierarchy.
var (
	// ErrInvalidFrequency is returned when a FREQ token doesn't name one of
	// the seven defined frequencies.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrInvalidWeekday is returned when a BYDAY token isn't a valid
	// ordered weekday.
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrMissingStart is returned when a RuleValue has no DTSTART (§3
	// invariant 1).
	ErrMissingStart = errors.New("structural: start (DTSTART) is required")

	// ErrCountAndUntil is returned when both COUNT and UNTIL are set (§3
	// invariant 2).
	ErrCountAndUntil = errors.New("structural: count and until cannot both be set")

	// ErrInvalidInterval is returned when interval is not a positive integer.
	ErrInvalidInterval = errors.New("structural: interval must be a positive integer")

	// ErrWeeklyMonthdayConflict is returned when freq=Weekly and
	// by_month_day or by_year_day is non-empty (§3 invariant 3).
	ErrWeeklyMonthdayConflict = errors.New("structural: by_month_day and by_year_day must be empty when freq is weekly")

	// ErrDailyOrdinalByDay is returned when freq=Daily and a BYDAY entry
	// carries a nonzero ordinal (§3 invariant 4).
	ErrDailyOrdinalByDay = errors.New("semantic: by_day ordinals are not meaningful when freq is daily")

	// ErrByWeekNoNotYearly is returned when by_week_no is set and
	// freq != Yearly (§3 invariant 5).
	ErrByWeekNoNotYearly = errors.New("semantic: by_week_no is only meaningful when freq is yearly")

	// ErrOutOfRange is wrapped with a field-specific message when a BYxxx
	// value falls outside its RFC 5545 bound.
	ErrOutOfRange = errors.New("structural: value out of range")

	// ErrUnknownZone is wrapped with the offending TZID in zone.go.
	ErrUnknownZone = errors.New("unknown timezone")

	// ErrBoundExceeded is returned when the defensive iteration cap (§4.6)
	// fires. It signals a likely-pathological rule (e.g. a BYSETPOS position
	// that its periods almost never reach), not caller error.
	ErrBoundExceeded = errors.New("recurrence expansion exceeded its defensive iteration cap")

	// ErrDateArithmetic is returned when a civil date falls outside the
	// representable Gregorian range (years 1..9999).
	ErrDateArithmetic = errors.New("civil date out of representable range")

	// ErrParse is wrapped by ParseRuleValue (str.go) around every error in a
	// malformed RECUR value. icalparse defines its own, separate ErrParse.
	ErrParse = errors.New("parse error")
)

// outOfRangeFormat mirrors Michael-Gallo-simple-ical's
// ErrDuplicatePropertyInComponentFormat pattern: a %w-wrapping format string
// sentinel paired with a small constructor, for errors that need to carry a
// value alongside a fixed identity check.
const outOfRangeFormat = "%w: %s value %d is outside [%d, %d]"

func outOfRangeError(field string, value, lo, hi int) error {
	return fmt.Errorf(outOfRangeFormat, ErrOutOfRange, field, value, lo, hi)
}

func unknownZoneError(tzid string, suggestion string) error {
	if suggestion == "" {
		return fmt.Errorf("%w: %q", ErrUnknownZone, tzid)
	}
	return fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownZone, tzid, suggestion)
}
