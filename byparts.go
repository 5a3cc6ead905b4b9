package rrule

import "time"

// By-part expansion and filtering (spec C5) and the single-period pipeline
// that stitches together a period's day dimension with its time dimension.
//
// Design note (recorded more fully in DESIGN.md): spec §4.5 describes the
// by-parts as a sequential sieve — six Expand steps in a fixed order,
// deduped and sorted after each step, then a Limit pass. What's implemented
// here is the teacher's equivalent realization: one dense candidate window
// sized to the full period (a year, a month, or an ISO-like week), with
// every configured by-part applied as a single AND-combined membership test
// over that window (rrule.go lines 538-586). The two are behaviorally
// identical for every by-part in §3 because none of them depends on another
// by-part's *expanded output* — only BYSETPOS does, and that's handled
// separately once the day and time dimensions are already combined
// (bound.go). The window itself supplies the "expand" breadth (a YEARLY
// window spans the whole year; a MONTHLY window, one month), so no day-level
// by-part needs a distinct expand-vs-limit code path. The time by-parts
// (BYHOUR, BYMINUTE, BYSECOND) do: buildTimeset below expands or limits
// each of them depending on the frequency.

// civilTime is an (hour, minute, second) triple.
type civilTime struct {
	hour, minute, second int
}

func (t civilTime) before(o civilTime) bool {
	if t.hour != o.hour {
		return t.hour < o.hour
	}
	if t.minute != o.minute {
		return t.minute < o.minute
	}
	return t.second < o.second
}

// dayWindow returns the 0-based year-day span [start, end) that forms the
// current period's day dimension, per rule.Freq. Grounded on
// iterInfo.getdayset (rrule.go lines 459-500).
func dayWindow(cr *compiledRule, info *yearInfo, year, month, day int) (start, end int) {
	switch cr.freq {
	case Yearly:
		return 0, info.yearLen
	case Monthly:
		return info.monthRange[month-1], info.monthRange[month]
	case Weekly:
		yd := yearDay(year, time.Month(month), day) - 1
		start := yd
		i := yd
		for j := 0; j < 7; j++ {
			i++
			if weekdayOfYearDay(year, i+1) == cr.weekStart {
				break
			}
		}
		return start, i
	default: // Daily, Hourly, Minutely, Secondly: a single day.
		yd := yearDay(year, time.Month(month), day) - 1
		return yd, yd + 1
	}
}

// candidateDays returns, in ascending order, every 0-based yday in
// [start, end) that survives every configured by-part filter (the
// AND-combined sieve described above). Grounded on the filter conditional
// inside rIterator.generate (rrule.go lines 541-562).
func candidateDays(cr *compiledRule, info *yearInfo, start, end int) []int {
	var out []int
	for i := start; i < end; i++ {
		if !dayMatches(cr, info, i) {
			continue
		}
		out = append(out, i)
	}
	return out
}

func dayMatches(cr *compiledRule, info *yearInfo, i int) bool {
	year, month, day, ok := yearDayToCivil(info, i)
	if !ok {
		// i indexes into next year (cross-year WEEKLY window tail).
		year, month, day, ok = yearDayToCivil(info, i-info.yearLen)
		if ok {
			year++
		}
	}
	if !ok {
		return false
	}

	if len(cr.byMonth) > 0 && !containsInt(cr.byMonth, int(month)) {
		return false
	}
	if len(cr.byWeekNo) > 0 {
		if info.weekNoMask == nil || i < 0 || i >= len(info.weekNoMask) || !info.weekNoMask[i] {
			return false
		}
	}
	if len(cr.byWeekday) > 0 {
		wd := weekdayOfYearDay(info.year, i+1)
		if !containsWeekday(cr.byWeekday, wd) {
			return false
		}
	}
	if info.nWeekdayTable != nil {
		if i < 0 || i >= len(info.nWeekdayTable) || info.nWeekdayTable[i] == 0 {
			return false
		}
	}
	if len(cr.byMonthDay) > 0 || len(cr.byNMonthDay) > 0 {
		neg := day - daysInMonth(year, month) - 1
		if !containsInt(cr.byMonthDay, day) && !containsInt(cr.byNMonthDay, neg) {
			return false
		}
	}
	if len(cr.byYearDay) > 0 {
		if !yearDayMatches(cr, info, i) {
			return false
		}
	}
	return true
}

// yearDayToCivil converts a 0-based yday (possibly out of [0, yearLen)) for
// info.year into civil (year, month, day); ok is false if it doesn't fall
// within info.year.
func yearDayToCivil(info *yearInfo, i int) (year int, month time.Month, day int, ok bool) {
	if i < 0 || i >= info.yearLen {
		return 0, 0, 0, false
	}
	m, d, ok2 := dateFromYearDay(info.year, i+1)
	return info.year, m, d, ok2
}

func yearDayMatches(cr *compiledRule, info *yearInfo, i int) bool {
	if i < info.yearLen {
		yd1 := i + 1
		return containsInt(cr.byYearDay, yd1) || containsInt(cr.byYearDay, yd1-info.yearLen-1)
	}
	yd1 := i + 1 - info.yearLen
	return containsInt(cr.byYearDay, yd1) || containsInt(cr.byYearDay, yd1-info.nextYearLen-1)
}

func containsInt(set []int, v int) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}

func containsWeekday(set []Weekday, v Weekday) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}

// buildTimeset returns the ascending set of (hour, minute, second) triples
// for the current period, per rule.Freq. By-parts finer than the rule's own
// frequency EXPAND (cross product, defaulted to start's corresponding
// component when absent, per compile()); by-parts coarser than or equal to
// the frequency's own step granularity LIMIT instead, since the
// period cursor already steps through every value at that granularity
// one-by-one (advance, in bound.go) — e.g. FREQ=HOURLY;BYHOUR=9,17 doesn't
// expand each day into two hours, it limits the hourly walk to only fire on
// hour 9 and 17. Grounded on iterInfo.gettimeset (rrule.go lines 501-520)
// and RRule.calculateTimeset (rrule.go lines 869-883).
func buildTimeset(cr *compiledRule, hour, minute, second int) []civilTime {
	switch {
	case cr.freq < Hourly:
		var out []civilTime
		for _, h := range cr.byHour {
			for _, m := range cr.byMinute {
				for _, s := range cr.bySecond {
					out = append(out, civilTime{h, m, s})
				}
			}
		}
		sortTimeset(out)
		return out
	case cr.freq == Hourly:
		if len(cr.byHour) > 0 && !containsInt(cr.byHour, hour) {
			return nil
		}
		var out []civilTime
		for _, m := range cr.byMinute {
			for _, s := range cr.bySecond {
				out = append(out, civilTime{hour, m, s})
			}
		}
		sortTimeset(out)
		return out
	case cr.freq == Minutely:
		if len(cr.byHour) > 0 && !containsInt(cr.byHour, hour) {
			return nil
		}
		if len(cr.byMinute) > 0 && !containsInt(cr.byMinute, minute) {
			return nil
		}
		var out []civilTime
		for _, s := range cr.bySecond {
			out = append(out, civilTime{hour, minute, s})
		}
		sortTimeset(out)
		return out
	default: // Secondly
		if len(cr.byHour) > 0 && !containsInt(cr.byHour, hour) {
			return nil
		}
		if len(cr.byMinute) > 0 && !containsInt(cr.byMinute, minute) {
			return nil
		}
		if len(cr.bySecond) > 0 && !containsInt(cr.bySecond, second) {
			return nil
		}
		return []civilTime{{hour, minute, second}}
	}
}

func sortTimeset(ts []civilTime) {
	for i := 1; i < len(ts); i++ {
		for j := i; j > 0 && ts[j].before(ts[j-1]); j-- {
			ts[j], ts[j-1] = ts[j-1], ts[j]
		}
	}
}
