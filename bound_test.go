package rrule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefensiveCapFiresOnPathologicalRule(t *testing.T) {
	// BYSETPOS=2 on a DAILY rule: every period (one day) produces exactly
	// one candidate, so position 2 never exists and every period is a
	// rejection. That reaches the cap's rejection half well within the
	// representable year range (year 1 onward), unlike e.g. an impossible
	// BYMONTHDAY, whose filtered-out days never count as rejections at all,
	// so such a rule runs into MaxYear instead of the cap. The start is
	// January 2 because 0001-01-01T00:00:00Z is the zero time, which
	// Validate treats as a missing start.
	rv := &RuleValue{
		Freq:     Daily,
		Start:    mustStart(1, 1, 2, 0, 0, 0),
		BySetPos: []int{2},
	}
	cur, err := NewCursor(rv)
	require.NoError(t, err)
	_, err = cur.All(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBoundExceeded)
}

func TestBySetPosNegativeIndexSelectsFromEnd(t *testing.T) {
	rv := &RuleValue{
		Freq:     Monthly,
		Start:    mustStart(2021, 3, 1, 0, 0, 0),
		Bound:    CountBound(1),
		ByDay:    []OrderedWeekday{On(Monday)},
		BySetPos: []int{-1},
	}
	cur, err := NewCursor(rv)
	require.NoError(t, err)
	got, err := cur.All(0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	// March 2021's Mondays: 1, 8, 15, 22, 29. The last is the 29th.
	assert.Equal(t, 29, got[0].Day())
}

func TestUnboundedRuleSurfacesDateArithmeticErrorAtMaxYear(t *testing.T) {
	// An unbounded YEARLY rule with no COUNT/UNTIL never stops on its own;
	// once the cursor steps past MaxYear it must surface ErrDateArithmetic
	// rather than silently truncating the stream.
	rv := &RuleValue{Freq: Yearly, Start: mustStart(9990, 1, 1, 0, 0, 0)}
	cur, err := NewCursor(rv)
	require.NoError(t, err)
	got, err := cur.All(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDateArithmetic)
	assert.Equal(t, MaxYear-9990+1, len(got))
}

func TestBySetPosOutOfRangeYieldsNothingForThatPeriod(t *testing.T) {
	rv := &RuleValue{
		Freq:     Monthly,
		Start:    mustStart(2021, 3, 1, 0, 0, 0),
		Bound:    UntilBound(mustStart(2021, 6, 1, 0, 0, 0)),
		ByDay:    []OrderedWeekday{On(Monday)},
		BySetPos: []int{10}, // no month has 10 Mondays
	}
	cur, err := NewCursor(rv)
	require.NoError(t, err)
	got, err := cur.All(0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
