package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{2000, true},
		{1900, false},
		{2024, true},
		{2023, false},
		{2400, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isLeapYear(tt.year), "year %d", tt.year)
	}
}

func TestYearDayRoundTrip(t *testing.T) {
	for _, year := range []int{2023, 2024} {
		for month := time.January; month <= time.December; month++ {
			for day := 1; day <= daysInMonth(year, month); day++ {
				yd := yearDay(year, month, day)
				gotMonth, gotDay, ok := dateFromYearDay(year, yd)
				assert.True(t, ok)
				assert.Equal(t, month, gotMonth)
				assert.Equal(t, day, gotDay)
			}
		}
	}
}

func TestMonthRangeLeapVsCommon(t *testing.T) {
	assert.Equal(t, 366, monthRange(true)[12])
	assert.Equal(t, 365, monthRange(false)[12])
	assert.Equal(t, 29, monthRange(true)[2]-monthRange(true)[1])
	assert.Equal(t, 28, monthRange(false)[2]-monthRange(false)[1])
}

func TestNthWeekdayInRange(t *testing.T) {
	// 2024 is a leap year starting on a Monday.
	first, last := 0, 30 // January, 0-based ydays 0..30
	idx, ok := nthWeekdayInRange(2024, first, last, Monday, 1)
	assert.True(t, ok)
	m, d, _ := dateFromYearDay(2024, idx+1)
	assert.Equal(t, time.January, m)
	assert.Equal(t, 1, d)

	idx, ok = nthWeekdayInRange(2024, first, last, Wednesday, -1)
	assert.True(t, ok)
	m, d, _ = dateFromYearDay(2024, idx+1)
	assert.Equal(t, time.January, m)
	assert.Equal(t, 31, d)

	_, ok = nthWeekdayInRange(2024, first, last, Monday, 6)
	assert.False(t, ok, "January 2024 only has 5 Mondays")
}

func TestWeekNoMaskWeek1AlignsToYearStart(t *testing.T) {
	// 2024 starts on a Monday, so week 1 under a Monday week-start is
	// exactly yday 0..6, with yday 7 onward in week 2.
	mask := weekNoMask(2024, Monday, []int{1})
	for yd := 0; yd < 7; yd++ {
		assert.True(t, mask[yd], "yday %d should be in week 1", yd)
	}
	assert.False(t, mask[7])
}

func TestWeekNoMaskForwardFillsNextYearWeek1(t *testing.T) {
	// 2024's last full Monday-start week begins Dec 30 (0-based yday 364)
	// and belongs to next year's week 1; BYWEEKNO=1 should still claim it.
	mask := weekNoMask(2024, Monday, []int{1})
	assert.True(t, mask[364], "Dec 30 2024 should back-fill as next year's week 1")
	assert.True(t, mask[365], "Dec 31 2024 should back-fill as next year's week 1")
}

func TestWeekNoMaskNegativeOneBacksIntoPreviousYear(t *testing.T) {
	// 2023 starts on a Sunday, so under a Monday week-start its first day
	// belongs to 2022's last week; BYWEEKNO=-1 should claim it.
	mask := weekNoMask(2023, Monday, []int{-1})
	assert.True(t, mask[0], "Jan 1 2023 should back-fill as last year's last week")
}

func TestPymodAndDivmodFloor(t *testing.T) {
	assert.Equal(t, 6, pymod(-1, 7))
	assert.Equal(t, 0, pymod(7, 7))
	q, r := divmodFloor(-3, 7)
	assert.Equal(t, -1, q)
	assert.Equal(t, 4, r)
}
