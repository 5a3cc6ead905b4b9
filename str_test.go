package rrule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleValueStringBasic(t *testing.T) {
	rv := &RuleValue{Freq: Monthly, Start: mustStart(2018, 1, 1, 9, 0, 0)}
	assert.Equal(t, "FREQ=MONTHLY", rv.String())
}

func TestRuleValueStringFull(t *testing.T) {
	rv := &RuleValue{
		Freq:       Weekly,
		Interval:   5,
		Start:      mustStart(2012, 2, 1, 9, 30, 0),
		Bound:      CountBound(2),
		WeekStart:  Tuesday,
		ByMonth:    []int{3},
		ByYearDay:  []int{95},
		ByWeekNo:   []int{1},
		ByDay:      []OrderedWeekday{On(Monday), Nth(Friday, 2)},
		ByHour:     []int{9},
		ByMinute:   []int{30},
		BySecond:   []int{0},
		BySetPos:   []int{2},
	}
	want := "FREQ=WEEKLY;INTERVAL=5;COUNT=2;WKST=TU;BYMONTH=3;BYYEARDAY=95;BYWEEKNO=1;BYDAY=MO,+2FR;BYHOUR=9;BYMINUTE=30;BYSECOND=0;BYSETPOS=2"
	assert.Equal(t, want, rv.String())
}

func TestParseRuleValueRoundTrip(t *testing.T) {
	str := "FREQ=WEEKLY;INTERVAL=5;COUNT=2;WKST=TU;BYMONTH=3;BYYEARDAY=95;BYWEEKNO=1;BYDAY=MO,+2FR;BYHOUR=9;BYMINUTE=30;BYSECOND=0;BYSETPOS=2"
	rv, err := ParseRuleValue(str)
	require.NoError(t, err)
	assert.Equal(t, str, rv.String())
}

func TestParseRuleValueUntil(t *testing.T) {
	rv, err := ParseRuleValue("FREQ=DAILY;UNTIL=20130130T230000Z")
	require.NoError(t, err)
	assert.Equal(t, BoundUntil, rv.Bound.Kind)
	assert.True(t, rv.Bound.Until.Equal(mustStart(2013, 1, 30, 23, 0, 0)))
}

func TestParseRuleValueRejectsMissingFreq(t *testing.T) {
	_, err := ParseRuleValue("INTERVAL=2")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseRuleValueRejectsUnknownComponent(t *testing.T) {
	_, err := ParseRuleValue("FREQ=DAILY;BYFOO=1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseRuleValueRejectsBothCountAndUntil(t *testing.T) {
	_, err := ParseRuleValue("FREQ=DAILY;COUNT=5;UNTIL=20200101T000000Z")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, ErrCountAndUntil)
}

func TestParseRuleValueRejectsNonPositiveInterval(t *testing.T) {
	_, err := ParseRuleValue("FREQ=DAILY;INTERVAL=0")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = ParseRuleValue("FREQ=DAILY;INTERVAL=-2")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
