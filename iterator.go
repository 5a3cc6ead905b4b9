package rrule

import "time"

// Frequency iterator (spec C4) and supporting per-period state. The engine
// generates one "period anchor" at a time (a year, month, ISO-like week,
// day, hour, minute or second, per rule.Freq) and, for each anchor, asks
// byparts.go to expand it into that period's candidate occurrences.
//
// Grounded on the teacher's iterInfo/rIterator pair
// (_examples/standup-raven-rrule-go/rrule.go lines 281-460, 522-780): the
// same dayset/timeset technique, restated with the spec's vocabulary and
// split so each file owns one component. BYEASTER (teacher lines 47, 101,
// 176, 384-391) is dropped entirely — it isn't part of this spec's
// RuleValue (§3) and has no counterpart in original_source, so it's not a
// dropped *feature* so much as a teacher extra outside the modeled grammar.

// compiledRule is RuleValue normalized for iteration: BYMONTHDAY and BYDAY
// are split into positive/ordinal-bearing and plain forms the way the
// teacher's RRule splits ROption.Bymonthday into Bymonthday/Bynmonthday and
// ROption.Byweekday into Byweekday/Bynweekday (rrule.go lines 178-187).
type compiledRule struct {
	freq      Frequency
	interval  int
	start     ZonedInstant
	bound     Bound
	weekStart Weekday

	byMonth    []int
	byMonthDay []int // positive day-of-month values
	byNMonthDay []int // negative day-of-month values
	byYearDay  []int
	byWeekNo   []int
	byWeekday  []Weekday        // plain BYDAY entries (no ordinal, or ordinal meaningless at this freq)
	byNWeekday []OrderedWeekday // ordinal BYDAY entries (only meaningful Yearly/Monthly)
	byHour     []int
	byMinute   []int
	bySecond   []int
	bySetPos   []int
}

func compile(rv *RuleValue) *compiledRule {
	cr := &compiledRule{
		freq:      rv.Freq,
		interval:  rv.Interval,
		start:     rv.Start,
		bound:     rv.Bound,
		weekStart: rv.WeekStart,
		byMonth:   rv.ByMonth,
		byYearDay: rv.ByYearDay,
		byWeekNo:  rv.ByWeekNo,
		byHour:    rv.ByHour,
		byMinute:  rv.ByMinute,
		bySecond:  rv.BySecond,
		bySetPos:  rv.BySetPos,
	}
	if cr.interval == 0 {
		cr.interval = 1
	}
	for _, d := range rv.ByMonthDay {
		if d > 0 {
			cr.byMonthDay = append(cr.byMonthDay, d)
		} else if d < 0 {
			cr.byNMonthDay = append(cr.byNMonthDay, d)
		}
	}
	for _, wd := range rv.ByDay {
		if wd.N == 0 || (cr.freq != Yearly && cr.freq != Monthly) {
			cr.byWeekday = append(cr.byWeekday, wd.Day)
		} else {
			cr.byNWeekday = append(cr.byNWeekday, wd)
		}
	}
	if len(cr.byHour) == 0 && cr.freq < Hourly {
		cr.byHour = []int{rv.Start.Hour()}
	}
	if len(cr.byMinute) == 0 && cr.freq < Minutely {
		cr.byMinute = []int{rv.Start.Minute()}
	}
	if len(cr.bySecond) == 0 && cr.freq < Secondly {
		cr.bySecond = []int{rv.Start.Second()}
	}

	// The day dimension anchors on start's own civil fields when no by-part
	// governs it at this frequency, exactly as the teacher's RRule
	// normalization defaults Bymonthday/Byweekday from Dtstart
	// (rrule.go lines ~140-176). This is an internal iteration default, not
	// a mutation of the caller's RuleValue, so it doesn't run afoul of the
	// "no silent defaulting" invariant (§3 invariant 7) that constrains
	// RuleValue.Validate: without it, a YEARLY or MONTHLY rule with no day
	// by-part would (wrongly) emit one occurrence per day of the period
	// instead of one per period on start's own day.
	noDayParts := len(cr.byWeekday) == 0 && len(cr.byNWeekday) == 0 &&
		len(cr.byMonthDay) == 0 && len(cr.byNMonthDay) == 0 && len(cr.byYearDay) == 0
	switch {
	case cr.freq == Weekly && len(cr.byWeekday) == 0 && len(cr.byNWeekday) == 0:
		cr.byWeekday = []Weekday{rv.Start.Weekday()}
	case cr.freq == Monthly && noDayParts:
		cr.byMonthDay = []int{rv.Start.Day()}
	case cr.freq == Yearly && noDayParts && len(cr.byWeekNo) == 0:
		if len(cr.byMonth) == 0 {
			cr.byMonth = []int{int(rv.Start.Month())}
		}
		cr.byMonthDay = []int{rv.Start.Day()}
	}
	return cr
}

// yearInfo caches the per-year civil tables a period needs, rebuilt only
// when the stepping cursor crosses into a new year (or, for the
// ordinal-BYDAY table, a new month under MONTHLY).
//
// Grounded on iterInfo.rebuild (rrule.go lines 299-457).
type yearInfo struct {
	year        int
	yearLen     int
	nextYearLen int
	monthRange  []int

	weekNoMask []bool // 0-based yday -> true if it falls in a requested BYWEEKNO week; nil unless byWeekNo set

	nWeekdayMonth  time.Month
	nWeekdayTable  []int // 0-based yday -> 1 if it matches an ordinal BYDAY entry
}

func buildYearInfo(cr *compiledRule, year int, month time.Month, prev *yearInfo) *yearInfo {
	if prev != nil && prev.year == year {
		info := *prev
		rebuildNWeekday(cr, &info, year, month)
		return &info
	}
	info := &yearInfo{
		year:        year,
		yearLen:     daysInYear(year),
		nextYearLen: daysInYear(year + 1),
		monthRange:  monthRange(isLeapYear(year)),
	}
	if len(cr.byWeekNo) > 0 {
		info.weekNoMask = weekNoMask(year, cr.weekStart, cr.byWeekNo)
	}
	rebuildNWeekday(cr, info, year, month)
	return info
}

func rebuildNWeekday(cr *compiledRule, info *yearInfo, year int, month time.Month) {
	if len(cr.byNWeekday) == 0 {
		info.nWeekdayTable = nil
		return
	}
	if info.nWeekdayTable != nil && info.nWeekdayMonth == month {
		return
	}
	info.nWeekdayMonth = month
	info.nWeekdayTable = make([]int, info.yearLen)

	var ranges [][2]int
	switch cr.freq {
	case Yearly:
		if len(cr.byMonth) > 0 {
			for _, m := range cr.byMonth {
				ranges = append(ranges, [2]int{info.monthRange[m-1], info.monthRange[m] - 1})
			}
		} else {
			ranges = [][2]int{{0, info.yearLen - 1}}
		}
	case Monthly:
		ranges = [][2]int{{info.monthRange[month-1], info.monthRange[month] - 1}}
	}
	for _, rg := range ranges {
		for _, ow := range cr.byNWeekday {
			if idx, ok := nthWeekdayInRange(year, rg[0], rg[1], ow.Day, ow.N); ok {
				info.nWeekdayTable[idx] = 1
			}
		}
	}
}

// ruleIterator walks the period anchors of one compiled rule and, via
// byparts.go and bound.go, turns each period's candidates into a buffered
// run of ZonedInstants. It implements occurrenceStream (ruleset.go).
//
// Grounded on rIterator (rrule.go lines 522-537) plus the frequency-advance
// switch inside generate() (rrule.go lines 618-777).
type ruleIterator struct {
	cr *compiledRule

	year, month, day     int
	hour, minute, second int

	info *yearInfo

	buffer []ZonedInstant
	total  int // emitted so far, for Count and the defensive cap
	rejected int // candidates seen and discarded, for the defensive cap

	done bool
	err  error
}

// newRuleIterator builds an iterator positioned at the rule's start.
func newRuleIterator(rv *RuleValue) *ruleIterator {
	cr := compile(rv)
	it := &ruleIterator{cr: cr}
	it.year, it.month, it.day = cr.start.Year(), int(cr.start.Month()), cr.start.Day()
	it.hour, it.minute, it.second = cr.start.Hour(), cr.start.Minute(), cr.start.Second()
	it.info = buildYearInfo(cr, it.year, time.Month(it.month), nil)
	return it
}

// Next returns the next occurrence, or ok=false when the stream is
// exhausted, or a non-nil err if the defensive cap fired or a date fell
// outside the representable range. Occurrences already buffered when the
// error arose are returned first; once Next has returned err the iterator
// is poisoned: every subsequent call returns the same err (spec §7).
func (it *ruleIterator) Next() (ZonedInstant, bool, error) {
	for len(it.buffer) == 0 {
		if it.err != nil {
			return ZonedInstant{}, false, it.err
		}
		if it.done {
			return ZonedInstant{}, false, nil
		}
		it.fillPeriod()
	}
	next := it.buffer[0]
	it.buffer = it.buffer[1:]
	return next, true, nil
}
