package rrule

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// BoundKind selects which of the mutually exclusive stop conditions (spec
// §3) a Bound carries.
type BoundKind int

const (
	BoundNone BoundKind = iota
	BoundCount
	BoundUntil
)

// Bound is the rule's global stop condition: at most one of COUNT or UNTIL,
// or neither (unbounded — the caller must supply their own window, spec
// §4.6).
type Bound struct {
	Kind  BoundKind
	Count int
	Until ZonedInstant
}

func NoBound() Bound                    { return Bound{Kind: BoundNone} }
func CountBound(n int) Bound            { return Bound{Kind: BoundCount, Count: n} }
func UntilBound(u ZonedInstant) Bound   { return Bound{Kind: BoundUntil, Until: u} }
func (b Bound) IsUnbounded() bool       { return b.Kind == BoundNone }

// RuleValue is the immutable structured representation of a single
// recurrence rule (spec §3, C3). It is created once — by ParseRuleValue, by
// icalparse, or by literal construction — and iteration never mutates it;
// an iteration built from it owns its own state (see iterator.go). The one
// write to it is Validate's, which sets a zero Interval to 1.
//
// Grounded on the teacher's ROption (the user-facing options struct) and
// RRule (the validated/normalized struct derived from it) — this merges
// both roles into one immutable value plus a Validate method, since the
// spec doesn't distinguish "raw options" from "validated rule" the way the
// teacher's two-struct split does (_examples/standup-raven-rrule-go/rrule.go
// lines 91-135). Numeric-range checks are tag-driven
// (github.com/go-playground/validator/v10, as used throughout
// jpfluger-alibs-slim); cross-field invariants that validator tags can't
// express are hand-written in Validate below, the way
// ROptionExtend.ValidateRecurrence does in
// jpfluger-alibs-slim/atime/rruleplus/roptionplus.go.
type RuleValue struct {
	Freq     Frequency
	Interval int `validate:"min=1"`
	Start    ZonedInstant
	Bound    Bound

	WeekStart Weekday

	ByMonth    []int `validate:"dive,min=1,max=12"`
	ByMonthDay []int `validate:"dive,absrange=31"`
	ByYearDay  []int `validate:"dive,absrange=366"`
	ByWeekNo   []int `validate:"dive,absrange=53"`
	ByDay      []OrderedWeekday
	ByHour     []int `validate:"dive,min=0,max=23"`
	ByMinute   []int `validate:"dive,min=0,max=59"`
	BySecond   []int `validate:"dive,min=0,max=60"`
	BySetPos   []int `validate:"dive,absrange=366"`
}

// ValidationKind distinguishes the two validation-error flavors named in
// spec §7.
type ValidationKind int

const (
	KindStructural ValidationKind = iota
	KindSemantic
)

// ValidationError wraps a validation failure with its kind so callers can
// tell a malformed rule (StructuralError) from a rule that's well-formed
// but contradicts itself given its frequency (SemanticError).
type ValidationError struct {
	Kind ValidationKind
	Err  error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

func structuralErr(err error) error { return &ValidationError{Kind: KindStructural, Err: err} }
func semanticErr(err error) error   { return &ValidationError{Kind: KindSemantic, Err: err} }

var (
	validateOnce sync.Once
	validatorV   *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validatorV = validator.New()
		_ = validatorV.RegisterValidation("absrange", absRangeValidation)
	})
	return validatorV
}

// absRangeValidation implements the "absrange=N" tag: a value must be
// nonzero and its absolute value must be <= N, matching the signed
// "1..N or -N..-1" bounds RFC 5545 uses for BYMONTHDAY, BYYEARDAY,
// BYWEEKNO and BYSETPOS (spec §3).
func absRangeValidation(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	max := fl.Param()
	var limit int64
	fmt.Sscanf(max, "%d", &limit)
	if n == 0 {
		return false
	}
	if n < 0 {
		n = -n
	}
	return n <= limit
}

// Validate checks RuleValue against every invariant in spec §3, eagerly
// (at construction time, not at iteration time — spec §7). After the
// frequency, start and count checks, numeric-range invariants are checked
// via struct tags; cross-field and frequency-conditional invariants follow
// as hand-written Go.
func (rv *RuleValue) Validate() error {
	if !rv.Freq.IsValid() {
		return structuralErr(fmt.Errorf("%w: %d", ErrInvalidFrequency, int(rv.Freq)))
	}
	if rv.Start.IsZero() {
		return structuralErr(ErrMissingStart)
	}
	if rv.Interval == 0 {
		rv.Interval = 1
	}
	if rv.Bound.Kind == BoundCount && rv.Bound.Count < 1 {
		return structuralErr(fmt.Errorf("%w: count must be >= 1", ErrOutOfRange))
	}

	if err := getValidator().Struct(rv); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fe := verrs[0]
			field := fe.Field()
			if i := strings.IndexByte(field, '['); i >= 0 {
				field = field[:i] // dive errors name the element, e.g. "ByMonth[0]"
			}
			hi := boundFor(field)
			lo := -hi
			switch field {
			case "ByMonth":
				lo = 1
			case "ByHour", "ByMinute", "BySecond":
				lo = 0
			}
			return structuralErr(outOfRangeError(field, int(toInt(fe.Value())), lo, hi))
		}
		return structuralErr(err)
	}

	for _, wd := range rv.ByDay {
		if wd.N < -53 || wd.N > 53 {
			return structuralErr(fmt.Errorf("%w: by_day ordinal %d", ErrOutOfRange, wd.N))
		}
	}

	// Invariant 2: bound is zero-or-one of Count/Until (BoundKind already
	// makes "both" unrepresentable; nothing further to check here).

	// Invariant 3.
	if rv.Freq == Weekly && (len(rv.ByMonthDay) > 0 || len(rv.ByYearDay) > 0) {
		return structuralErr(ErrWeeklyMonthdayConflict)
	}

	// Invariant 4.
	if rv.Freq == Daily {
		for _, wd := range rv.ByDay {
			if wd.N != 0 {
				return semanticErr(ErrDailyOrdinalByDay)
			}
		}
	}

	// Invariant 5.
	if len(rv.ByWeekNo) > 0 && rv.Freq != Yearly {
		return semanticErr(ErrByWeekNoNotYearly)
	}

	return nil
}

func toInt(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	default:
		return 0
	}
}

func boundFor(field string) int {
	switch field {
	case "ByMonthDay":
		return 31
	case "ByYearDay":
		return 366
	case "ByWeekNo", "BySetPos":
		if field == "ByWeekNo" {
			return 53
		}
		return 366
	case "ByHour":
		return 23
	case "ByMinute":
		return 59
	case "BySecond":
		return 60
	case "ByMonth":
		return 12
	default:
		return 0
	}
}
