package rrule

// Cursor is the public, lazy, pull-based iteration handle (spec §6): the
// one caller-facing type wrapping either a single RuleValue's expansion or
// a composed RuleSetValue. It implements the query surface (All, Between,
// Before, After) on top of the same Next() primitive, the way the
// teacher's RRule.Iterator and its All/Between/Before/After convenience
// methods are layered over rIterator
// (_examples/standup-raven-rrule-go/rrule.go lines 831-1020).
type Cursor struct {
	stream occurrenceStream
}

// NewCursor validates rv and returns a Cursor over its expansion.
func NewCursor(rv *RuleValue) (*Cursor, error) {
	if err := rv.Validate(); err != nil {
		return nil, err
	}
	return &Cursor{stream: newRuleIterator(rv)}, nil
}

// NewRuleSetCursor validates every rule in rs and returns a Cursor over
// its composed expansion.
func NewRuleSetCursor(rs *RuleSetValue) (*Cursor, error) {
	for _, rv := range rs.IncludeRules {
		if err := rv.Validate(); err != nil {
			return nil, err
		}
	}
	for _, rv := range rs.ExcludeRules {
		if err := rv.Validate(); err != nil {
			return nil, err
		}
	}
	cs, err := newComposedStream(rs)
	if err != nil {
		return nil, err
	}
	return &Cursor{stream: cs}, nil
}

// Next pulls the next occurrence. ok is false once the stream is
// exhausted. Once err is non-nil the underlying stream is poisoned (spec
// §7): every subsequent call returns the same err.
func (c *Cursor) Next() (ZonedInstant, bool, error) {
	return c.stream.Next()
}

// All collects occurrences up to limit (limit <= 0 means unlimited — only
// safe on a rule known to terminate via COUNT or UNTIL; an unbounded rule
// relies on the defensive cap in bound.go, or on the MaxYear limit and its
// ErrDateArithmetic, to keep this from running forever).
func (c *Cursor) All(limit int) ([]ZonedInstant, error) {
	var out []ZonedInstant
	for limit <= 0 || len(out) < limit {
		v, ok, err := c.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out, nil
}

// Between returns every occurrence within [after, before] when inclusive
// is true, or (after, before) when it is false.
func (c *Cursor) Between(after, before ZonedInstant, inclusive bool) ([]ZonedInstant, error) {
	var out []ZonedInstant
	for {
		v, ok, err := c.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		if v.After(before) || (!inclusive && v.Equal(before)) {
			return out, nil
		}
		if v.Before(after) || (!inclusive && v.Equal(after)) {
			continue
		}
		out = append(out, v)
	}
}

// Before returns the last occurrence strictly before dt (or at-or-before
// when inclusive); ok is false if no occurrence qualifies. There's no way
// to know an occurrence is the last one before dt without first finding
// one at or after it, so this necessarily drains the stream up to that
// point.
func (c *Cursor) Before(dt ZonedInstant, inclusive bool) (ZonedInstant, bool, error) {
	var last ZonedInstant
	found := false
	for {
		v, ok, err := c.Next()
		if err != nil {
			return ZonedInstant{}, false, err
		}
		if !ok {
			return last, found, nil
		}
		if v.After(dt) || (!inclusive && v.Equal(dt)) {
			return last, found, nil
		}
		last, found = v, true
	}
}

// After returns the first occurrence strictly after dt (or at-or-after
// when inclusive); ok is false if the stream ends first.
func (c *Cursor) After(dt ZonedInstant, inclusive bool) (ZonedInstant, bool, error) {
	for {
		v, ok, err := c.Next()
		if err != nil {
			return ZonedInstant{}, false, err
		}
		if !ok {
			return ZonedInstant{}, false, nil
		}
		if v.After(dt) || (inclusive && v.Equal(dt)) {
			return v, true, nil
		}
	}
}
