package rrule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeSimpleDaily(t *testing.T) {
	rv := &RuleValue{Freq: Daily, Start: mustStart(2020, 1, 1, 9, 0, 0), Bound: CountBound(5)}
	assert.Equal(t, "Every day, 5 times", rv.Describe())
}

func TestDescribeWeeklyWithByDayAndUntil(t *testing.T) {
	rv := &RuleValue{
		Freq:  Weekly,
		Start: mustStart(2020, 1, 1, 9, 0, 0),
		Bound: UntilBound(mustStart(2020, 2, 1, 0, 0, 0)),
		ByDay: []OrderedWeekday{On(Monday), On(Wednesday)},
	}
	got := rv.Describe()
	assert.Contains(t, got, "Every week")
	assert.Contains(t, got, "Monday, Wednesday")
	assert.Contains(t, got, "until February 1, 2020")
}

func TestDescribeMonthlyWithOrdinalByDay(t *testing.T) {
	rv := &RuleValue{
		Freq:  Monthly,
		Start: mustStart(2020, 1, 1, 9, 0, 0),
		Bound: CountBound(1),
		ByDay: []OrderedWeekday{Nth(Friday, -1)},
	}
	got := rv.Describe()
	assert.Contains(t, got, "the last Friday")
}

func TestDescribeIntervalUsesOrdinal(t *testing.T) {
	rv := &RuleValue{Freq: Weekly, Interval: 2, Start: mustStart(2020, 1, 1, 9, 0, 0), Bound: CountBound(1)}
	got := rv.Describe()
	assert.Contains(t, got, "Every 2nd week")
}
