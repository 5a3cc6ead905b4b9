// Package icalparse parses the iCalendar content lines that carry a
// recurrence rule set (spec C8): DTSTART, RRULE, RDATE, EXRULE and EXDATE.
//
// Line splitting (property name / parameters / value) is grounded on
// Michael-Gallo-simple-ical/parse/util.go's parseIcalLine; the
// "no colon means the whole line is an RRULE value" default and the
// overall property-name/parameters/value shape are grounded on
// original_source's get_content_line_parts (rrule/src/parser/content_line/
// content_line_parts.rs) — this engine has no other content-line parser in
// the retrieval pack to ground on, since the teacher is a pure
// recurrence-expansion library with no iCalendar document model.
package icalparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ashcroftsys/rrule"
)

// ErrParse wraps the errors this package raises itself. Their messages name
// the offending value, parameter or property; only a malformed parameter
// quotes the whole content line. Errors from rrule.ParseRuleValue and
// rrule.LoadZone are returned as they are, without ErrParse.
var ErrParse = fmt.Errorf("icalparse: parse error")

// contentLine is one parsed property line: its name, its parameters (as a
// param-name -> value map; RFC 5545 parameter names are case-insensitive
// and upper-cased here), and its raw value.
type contentLine struct {
	name   string
	params map[string]string
	value  string
}

// parseContentLine splits a single iCalendar content line into its
// property name, parameters and value, the way
// Michael-Gallo-simple-ical/parse/util.go's parseIcalLine does: the
// property name is everything before the first colon or semicolon, the
// value is everything after the first unquoted colon, and anything
// between an optional semicolon and that colon is a ";"-separated
// parameter list.
//
// A line with no colon at all is, per original_source's default, treated
// as a bare RRULE value with no parameters.
func parseContentLine(line string) (contentLine, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return contentLine{}, fmt.Errorf("%w: empty line", ErrParse)
	}
	colon := findUnquotedColon(line)
	if colon == -1 {
		return contentLine{name: "RRULE", value: line}, nil
	}

	before, value := line[:colon], line[colon+1:]
	name := before
	params := map[string]string{}
	if semi := strings.Index(before, ";"); semi != -1 {
		name = before[:semi]
		for _, p := range splitParams(before[semi+1:]) {
			kv := strings.SplitN(p, "=", 2)
			if len(kv) != 2 {
				return contentLine{}, fmt.Errorf("%w: malformed parameter %q in %q", ErrParse, p, line)
			}
			params[strings.ToUpper(kv[0])] = kv[1]
		}
	}
	return contentLine{name: strings.ToUpper(name), params: params, value: value}, nil
}

func findUnquotedColon(line string) int {
	inQuotes := false
	for i, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ':' && !inQuotes:
			return i
		}
	}
	return -1
}

func splitParams(s string) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false
	for _, c := range s {
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteRune(c)
		case c == ';' && !inQuotes:
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(c)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// parseDateTimeValue parses an iCalendar DATE-TIME or DATE value
// ("20120201T023000Z", "20120201T023000" or "20120201") into an instant in
// loc, applying the engine's documented gap/fold policy
// (rrule.ResolveCivil) when loc is a zone rather than UTC.
func parseDateTimeValue(value string, loc *time.Location) (rrule.ZonedInstant, error) {
	value = strings.TrimSpace(value)
	switch {
	case len(value) == 16 && value[15] == 'Z':
		t, err := time.ParseInLocation("20060102T150405Z", value, time.UTC)
		if err != nil {
			return rrule.ZonedInstant{}, fmt.Errorf("%w: %s", ErrParse, err)
		}
		return rrule.NewZonedInstant(t), nil
	case len(value) == 15:
		year, month, day, hour, min, sec, err := splitDateTimeDigits(value)
		if err != nil {
			return rrule.ZonedInstant{}, err
		}
		zi, ok := rrule.ResolveCivil(year, time.Month(month), day, hour, min, sec, loc)
		if !ok {
			return rrule.ZonedInstant{}, fmt.Errorf("%w: %q does not exist in %s", ErrParse, value, loc)
		}
		return zi, nil
	case len(value) == 8:
		year, month, day, err := splitDateDigits(value)
		if err != nil {
			return rrule.ZonedInstant{}, err
		}
		zi, ok := rrule.ResolveCivil(year, time.Month(month), day, 0, 0, 0, loc)
		if !ok {
			return rrule.ZonedInstant{}, fmt.Errorf("%w: %q does not exist in %s", ErrParse, value, loc)
		}
		return zi, nil
	default:
		return rrule.ZonedInstant{}, fmt.Errorf("%w: unrecognized date-time value %q", ErrParse, value)
	}
}

func splitDateDigits(value string) (year, month, day int, err error) {
	year, err = strconv.Atoi(value[0:4])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %s", ErrParse, err)
	}
	month, _ = strconv.Atoi(value[4:6])
	day, _ = strconv.Atoi(value[6:8])
	return year, month, day, nil
}

func splitDateTimeDigits(value string) (year, month, day, hour, min, sec int, err error) {
	year, month, day, err = splitDateDigits(value[0:8])
	if err != nil {
		return 0, 0, 0, 0, 0, 0, err
	}
	hour, _ = strconv.Atoi(value[9:11])
	min, _ = strconv.Atoi(value[11:13])
	sec, _ = strconv.Atoi(value[13:15])
	return year, month, day, hour, min, sec, nil
}

func zoneOf(params map[string]string) (*time.Location, error) {
	tzid, ok := params["TZID"]
	if !ok {
		return time.UTC, nil
	}
	return rrule.LoadZone(tzid)
}

func parseDateTimeList(value string, loc *time.Location) ([]rrule.ZonedInstant, error) {
	var out []rrule.ZonedInstant
	for _, v := range strings.Split(value, ",") {
		zi, err := parseDateTimeValue(v, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, zi)
	}
	return out, nil
}

// ParseRuleSet parses a block of iCalendar content lines (one DTSTART,
// plus any number of RRULE/RDATE/EXRULE/EXDATE lines) into a
// rrule.RuleSetValue. Unfolding of multi-line content ("line folding",
// RFC 5545 §3.1) is the caller's responsibility — this expects one logical
// property per entry in lines.
func ParseRuleSet(lines []string) (*rrule.RuleSetValue, error) {
	var dtStart rrule.ZonedInstant
	haveStart := false
	rs := &rrule.RuleSetValue{}

	for _, raw := range lines {
		cl, err := parseContentLine(raw)
		if err != nil {
			return nil, err
		}
		loc, err := zoneOf(cl.params)
		if err != nil {
			return nil, err
		}

		switch cl.name {
		case "DTSTART":
			dtStart, err = parseDateTimeValue(cl.value, loc)
			if err != nil {
				return nil, err
			}
			haveStart = true
		case "RRULE", "EXRULE":
			rv, err := rrule.ParseRuleValue(cl.value)
			if err != nil {
				return nil, err
			}
			if !haveStart {
				return nil, fmt.Errorf("%w: %s appears before DTSTART", ErrParse, cl.name)
			}
			rv.Start = dtStart
			if cl.name == "RRULE" {
				rs.IncludeRules = append(rs.IncludeRules, rv)
			} else {
				rs.ExcludeRules = append(rs.ExcludeRules, rv)
			}
		case "RDATE", "EXDATE":
			dates, err := parseDateTimeList(cl.value, loc)
			if err != nil {
				return nil, err
			}
			if cl.name == "RDATE" {
				rs.IncludeDates = append(rs.IncludeDates, dates...)
			} else {
				rs.ExcludeDates = append(rs.ExcludeDates, dates...)
			}
		default:
			return nil, fmt.Errorf("%w: unsupported property %q", ErrParse, cl.name)
		}
	}

	if !haveStart {
		return nil, fmt.Errorf("%w: missing DTSTART", ErrParse)
	}
	return rs, nil
}
