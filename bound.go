package rrule

import "time"

// Global termination, BYSETPOS selection and the defensive iteration cap
// (spec C6), plus the per-period drive loop that ties together byparts.go
// (the day/time dimensions) and iterator.go (the period cursor).
//
// Grounded on the generate()/decr loop in
// _examples/standup-raven-rrule-go/rrule.go (lines 618-829): that function
// interleaves period stepping, dayset/timeset construction, BYSETPOS and
// COUNT/UNTIL checks in one large loop. Here the same logic is split across
// three files along the spec's component boundaries, with the loop itself
// reduced to "fill one period's buffer, or advance and try again."

// maxEmitted and maxRejected are the defensive cap's two halves (spec
// §4.6): a rule that emits more than this many occurrences, or discards more
// than ten times that many candidates through BYSETPOS (a running total over
// the whole iteration, not reset by an emission), is almost certainly
// pathological rather than merely sparse. Days removed by the day-level
// by-part filters never become candidates and do not count.
const (
	maxEmitted  = 100000
	maxRejected = maxEmitted * 10
)

// fillPeriod expands the iterator's current period into zero or more
// ZonedInstants, appends whatever the bound and BYSETPOS rules admit to
// it.buffer, and advances the cursor to the next period. It sets it.done or
// it.err instead of looping forever; Next() re-invokes it until the buffer
// is non-empty or the stream ends.
func (it *ruleIterator) fillPeriod() {
	cr := it.cr
	loc := cr.start.Time().Location()

	dayStart, dayEnd := dayWindow(cr, it.info, it.year, it.month, it.day)
	days := candidateDays(cr, it.info, dayStart, dayEnd)
	timeset := buildTimeset(cr, it.hour, it.minute, it.second)

	type candidate struct {
		zi ZonedInstant
	}
	var period []candidate
	for _, yd := range days {
		y, m, d, ok := resolveYearDay(it.info, yd)
		if !ok {
			continue
		}
		for _, ts := range timeset {
			zi, ok := ResolveCivil(y, m, d, ts.hour, ts.minute, ts.second, loc)
			if !ok {
				// Spring-forward gap: this civil time never existed. Skip
				// silently (spec §4.2) rather than counting it as rejected,
				// since it was never a real candidate.
				continue
			}
			period = append(period, candidate{zi: zi})
		}
	}

	selected := period
	if len(cr.bySetPos) > 0 && len(period) > 0 {
		selected = nil
		n := len(period)
		keep := make([]bool, n)
		for _, pos := range cr.bySetPos {
			idx := pos - 1
			if pos < 0 {
				idx = n + pos
			}
			if idx >= 0 && idx < n {
				keep[idx] = true
			}
		}
		// Walk the period in order so the selection stays ascending and a
		// position named twice is still emitted once.
		for i, c := range period {
			if keep[i] {
				selected = append(selected, c)
			}
		}
	}

	for _, c := range selected {
		if c.zi.Before(cr.start) {
			// Candidate falls before the rule's own start (can happen when
			// BYDAY/BYMONTHDAY widen the first period behind start); never
			// emitted, and not counted against the rejection cap since it's
			// a structural consequence of the rule, not runaway search.
			continue
		}
		if cr.bound.Kind == BoundUntil && c.zi.After(cr.bound.Until) {
			it.done = true
			return
		}
		it.buffer = append(it.buffer, c.zi)
		it.total++
		if cr.bound.Kind == BoundCount && it.total >= cr.bound.Count {
			it.done = true
			return
		}
		if it.total > maxEmitted {
			it.err = ErrBoundExceeded
			return
		}
	}

	it.rejected += len(period) - len(selected)
	if it.rejected > maxRejected {
		it.err = ErrBoundExceeded
		return
	}

	it.advance()
}

// resolveYearDay converts a candidate 0-based yday (which, for a WEEKLY
// window spanning a year boundary, may run past info.yearLen) into a civil
// date in info.year or info.year+1.
func resolveYearDay(info *yearInfo, yd int) (year int, month time.Month, day int, ok bool) {
	if yd >= 0 && yd < info.yearLen {
		m, d, ok2 := dateFromYearDay(info.year, yd+1)
		return info.year, m, d, ok2
	}
	m, d, ok2 := dateFromYearDay(info.year+1, yd-info.yearLen+1)
	return info.year + 1, m, d, ok2
}

// advance steps the period cursor forward by one interval, per rule.Freq,
// and rebuilds year-scoped tables when the cursor crosses into a new year.
// Grounded on the per-frequency stepping switch inside generate()
// (rrule.go lines 703-777).
func (it *ruleIterator) advance() {
	cr := it.cr
	switch cr.freq {
	case Yearly:
		it.year += cr.interval
	case Monthly:
		it.year, it.month = stepMonth(it.year, it.month, cr.interval)
	case Weekly:
		it.year, it.month, it.day = stepWeekly(it.year, it.month, it.day, cr.weekStart, cr.interval)
	case Daily:
		it.year, it.month, it.day = stepDays(it.year, it.month, it.day, cr.interval)
	case Hourly:
		it.year, it.month, it.day, it.hour = stepHours(it.year, it.month, it.day, it.hour, cr.interval)
	case Minutely:
		it.year, it.month, it.day, it.hour, it.minute = stepMinutes(it.year, it.month, it.day, it.hour, it.minute, cr.interval)
	case Secondly:
		it.year, it.month, it.day, it.hour, it.minute, it.second = stepSeconds(it.year, it.month, it.day, it.hour, it.minute, it.second, cr.interval)
	}

	if it.year > MaxYear {
		// The cursor stepped past the representable Gregorian range (spec
		// §7's DateArithmeticError), not merely "out of occurrences" — an
		// unbounded or COUNT/UNTIL rule that hasn't finished by year 9999
		// is surfaced as an error rather than silently truncated.
		it.err = ErrDateArithmetic
		return
	}

	if it.info == nil || it.info.year != it.year {
		it.info = buildYearInfo(cr, it.year, time.Month(it.month), it.info)
	} else {
		rebuildNWeekday(cr, it.info, it.year, time.Month(it.month))
	}
}

// stepMonth and friends perform civil-calendar stepping via time.Date's
// own normalization, which is exact for every rollover (month overflow,
// leap years, and so on) without hand-written carry logic.

func stepMonth(year, month, delta int) (int, int) {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	t = t.AddDate(0, delta, 0)
	return t.Year(), int(t.Month())
}

// stepWeekly advances a WEEKLY cursor to the WKST-aligned start of the
// interval-th next week, not merely "the same weekday, interval weeks
// later" — the two differ whenever WKST isn't the cursor's own weekday,
// since the day dimension's window (dayWindow, byparts.go) always runs
// from the cursor's day to the next WKST occurrence. Advancing by a flat
// interval*7 would permanently skip every day between WKST and the
// cursor's original weekday. Grounded on the WEEKLY branch of generate()'s
// stepping switch (rrule.go lines 670-677).
func stepWeekly(year, month, day int, wkst Weekday, interval int) (int, int, int) {
	weekday := weekdayOfYearDay(year, yearDay(year, time.Month(month), day))
	var delta int
	if wkst > weekday {
		delta = -(int(weekday) + 1 + (6 - int(wkst))) + interval*7
	} else {
		delta = -(int(weekday) - int(wkst)) + interval*7
	}
	return stepDays(year, month, day, delta)
}

func stepDays(year, month, day, delta int) (int, int, int) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	t = t.AddDate(0, 0, delta)
	return t.Year(), int(t.Month()), t.Day()
}

func stepHours(year, month, day, hour, delta int) (int, int, int, int) {
	t := time.Date(year, time.Month(month), day, hour, 0, 0, 0, time.UTC)
	t = t.Add(time.Duration(delta) * time.Hour)
	return t.Year(), int(t.Month()), t.Day(), t.Hour()
}

func stepMinutes(year, month, day, hour, minute, delta int) (int, int, int, int, int) {
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	t = t.Add(time.Duration(delta) * time.Minute)
	return t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute()
}

func stepSeconds(year, month, day, hour, minute, second, delta int) (int, int, int, int, int, int) {
	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	t = t.Add(time.Duration(delta) * time.Second)
	return t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()
}
