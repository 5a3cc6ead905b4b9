package rrule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Bare RuleValue <-> RFC 5545 RECUR-value string round-trip: the
// "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE,FR" form, without the surrounding
// "RRULE:" content-line name (icalparse owns that layer). Grounded on the
// teacher's implied String()/StrToRRule contract
// (_examples/standup-raven-rrule-go/str_test.go) and on
// dolanor-caldav-go's EncodeICalValue for the general shape of a
// component-by-component encoder.

// String renders rv as a bare RECUR value. DTSTART is not part of this
// string (RFC 5545 carries it as a separate DTSTART property); callers that
// need it alongside FREQ etc. render it themselves.
func (rv *RuleValue) String() string {
	var b strings.Builder
	b.WriteString("FREQ=")
	b.WriteString(rv.Freq.String())
	if rv.Interval > 1 {
		fmt.Fprintf(&b, ";INTERVAL=%d", rv.Interval)
	}
	switch rv.Bound.Kind {
	case BoundCount:
		fmt.Fprintf(&b, ";COUNT=%d", rv.Bound.Count)
	case BoundUntil:
		fmt.Fprintf(&b, ";UNTIL=%s", formatUntil(rv.Bound.Until))
	}
	if rv.WeekStart != Monday {
		fmt.Fprintf(&b, ";WKST=%s", rv.WeekStart)
	}
	writeIntList(&b, "BYMONTH", rv.ByMonth)
	writeIntList(&b, "BYMONTHDAY", rv.ByMonthDay)
	writeIntList(&b, "BYYEARDAY", rv.ByYearDay)
	writeIntList(&b, "BYWEEKNO", rv.ByWeekNo)
	if len(rv.ByDay) > 0 {
		b.WriteString(";BYDAY=")
		for i, wd := range rv.ByDay {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(wd.String())
		}
	}
	writeIntList(&b, "BYHOUR", rv.ByHour)
	writeIntList(&b, "BYMINUTE", rv.ByMinute)
	writeIntList(&b, "BYSECOND", rv.BySecond)
	writeIntList(&b, "BYSETPOS", rv.BySetPos)
	return b.String()
}

func writeIntList(b *strings.Builder, name string, vals []int) {
	if len(vals) == 0 {
		return
	}
	b.WriteByte(';')
	b.WriteString(name)
	b.WriteByte('=')
	for i, v := range vals {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
}

func formatUntil(u ZonedInstant) string {
	t := u.Time().UTC()
	return t.Format("20060102T150405Z")
}

// ParseRuleValue parses a bare RECUR value into a RuleValue. The result
// still needs a DTSTART (RuleValue.Start) set by the caller before it's
// usable — this mirrors RFC 5545, where DTSTART lives outside the RRULE
// value entirely — and should be passed through Validate before use.
func ParseRuleValue(s string) (*RuleValue, error) {
	rv := &RuleValue{WeekStart: Monday}
	sawFreq, sawCount, sawUntil := false, false, false
	for _, part := range strings.Split(s, ";") {
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("%w: malformed component %q", ErrParse, part)
		}
		name, value := strings.ToUpper(kv[0]), kv[1]
		var err error
		switch name {
		case "FREQ":
			rv.Freq, err = ParseFrequency(value)
			sawFreq = true
		case "INTERVAL":
			rv.Interval, err = strconv.Atoi(value)
			if err == nil && rv.Interval <= 0 {
				err = ErrInvalidInterval
			}
		case "COUNT":
			var n int
			n, err = strconv.Atoi(value)
			if err == nil {
				rv.Bound = CountBound(n)
				sawCount = true
			}
		case "UNTIL":
			var t ZonedInstant
			t, err = parseUntil(value)
			if err == nil {
				rv.Bound = UntilBound(t)
				sawUntil = true
			}
		case "WKST":
			rv.WeekStart, err = ParseWeekday(value)
		case "BYMONTH":
			rv.ByMonth, err = parseIntList(value)
		case "BYMONTHDAY":
			rv.ByMonthDay, err = parseIntList(value)
		case "BYYEARDAY":
			rv.ByYearDay, err = parseIntList(value)
		case "BYWEEKNO":
			rv.ByWeekNo, err = parseIntList(value)
		case "BYDAY":
			rv.ByDay, err = parseByDayList(value)
		case "BYHOUR":
			rv.ByHour, err = parseIntList(value)
		case "BYMINUTE":
			rv.ByMinute, err = parseIntList(value)
		case "BYSECOND":
			rv.BySecond, err = parseIntList(value)
		case "BYSETPOS":
			rv.BySetPos, err = parseIntList(value)
		default:
			err = fmt.Errorf("%w: unknown component %q", ErrParse, name)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
	}
	if !sawFreq {
		return nil, fmt.Errorf("%w: missing FREQ", ErrParse)
	}
	if sawCount && sawUntil {
		return nil, fmt.Errorf("%w: %w", ErrParse, ErrCountAndUntil)
	}
	return rv, nil
}

func parseUntil(s string) (ZonedInstant, error) {
	layouts := []string{"20060102T150405Z", "20060102T150405", "20060102"}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return NewZonedInstant(t), nil
		}
	}
	return ZonedInstant{}, fmt.Errorf("invalid UNTIL value %q", s)
}

func parseIntList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := parseSignedInt(p)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", p)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseByDayList(s string) ([]OrderedWeekday, error) {
	parts := strings.Split(s, ",")
	out := make([]OrderedWeekday, 0, len(parts))
	for _, p := range parts {
		wd, err := ParseOrderedWeekday(p)
		if err != nil {
			return nil, err
		}
		out = append(out, wd)
	}
	return out, nil
}
