package rrule

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Describe renders rv as an English sentence, e.g. "Every 2nd week(s) on
// Monday, Wednesday, until January 2, 2030" or "Every year on the last
// Friday, 5 times". Grounded on jpfluger-alibs-slim's
// ToDescriptor/describeROptions (atime/rruleplus), restated over
// RuleValue's shape and using github.com/dustin/go-humanize for ordinals
// (humanize.Ordinal) instead of that package's hand-rolled suffix table.
func (rv *RuleValue) Describe() string {
	var b strings.Builder
	b.WriteString(describeFrequency(rv.Freq, rv.Interval))

	if parts := describeByParts(rv); parts != "" {
		b.WriteString(" ")
		b.WriteString(parts)
	}

	switch rv.Bound.Kind {
	case BoundCount:
		fmt.Fprintf(&b, ", %d time", rv.Bound.Count)
		if rv.Bound.Count != 1 {
			b.WriteString("s")
		}
	case BoundUntil:
		fmt.Fprintf(&b, ", until %s", rv.Bound.Until.Time().Format("January 2, 2006"))
	}
	return b.String()
}

func describeFrequency(freq Frequency, interval int) string {
	unit := map[Frequency]string{
		Yearly:   "year",
		Monthly:  "month",
		Weekly:   "week",
		Daily:    "day",
		Hourly:   "hour",
		Minutely: "minute",
		Secondly: "second",
	}[freq]
	if interval <= 1 {
		return "Every " + unit
	}
	return fmt.Sprintf("Every %s %s", humanize.Ordinal(interval), unit+"(s)")
}

func describeByParts(rv *RuleValue) string {
	var clauses []string
	if len(rv.ByMonth) > 0 {
		clauses = append(clauses, "in "+describeMonths(rv.ByMonth))
	}
	if len(rv.ByDay) > 0 {
		clauses = append(clauses, "on "+describeWeekdays(rv.ByDay))
	}
	if len(rv.ByMonthDay) > 0 {
		clauses = append(clauses, "on the "+describeOrdinals(rv.ByMonthDay)+" of the month")
	}
	if len(rv.ByYearDay) > 0 {
		clauses = append(clauses, "on day "+describeOrdinals(rv.ByYearDay)+" of the year")
	}
	if len(rv.ByWeekNo) > 0 {
		clauses = append(clauses, "in week "+describeOrdinals(rv.ByWeekNo))
	}
	if len(rv.BySetPos) > 0 {
		clauses = append(clauses, "taking the "+describeOrdinals(rv.BySetPos)+" matching occurrence")
	}
	return strings.Join(clauses, ", ")
}

func describeMonths(months []int) string {
	names := make([]string, len(months))
	for i, m := range months {
		names[i] = time.Month(m).String()
	}
	return strings.Join(names, ", ")
}

func describeWeekdays(days []OrderedWeekday) string {
	parts := make([]string, len(days))
	for i, wd := range days {
		if wd.N == 0 {
			parts[i] = weekdayName(wd.Day)
			continue
		}
		parts[i] = fmt.Sprintf("the %s %s", ordinalWord(wd.N), weekdayName(wd.Day))
	}
	return strings.Join(parts, ", ")
}

// ordinalWord renders n the way a reader expects in a recurrence
// description: "last" for -1, "2nd-to-last" for -2 and beyond, and
// humanize.Ordinal's usual "1st"/"2nd"/"23rd" for everything non-negative.
// Grounded on jpfluger-alibs-slim's describeROptions, which special-cases
// negative BYDAY/BYSETPOS ordinals the same way instead of printing "-1th".
func ordinalWord(n int) string {
	switch {
	case n == -1:
		return "last"
	case n < -1:
		return humanize.Ordinal(-n) + "-to-last"
	default:
		return humanize.Ordinal(n)
	}
}

func weekdayName(d Weekday) string {
	names := [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if d < Monday || d > Sunday {
		return d.String()
	}
	return names[d]
}

func describeOrdinals(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = ordinalWord(v)
	}
	return strings.Join(parts, ", ")
}
