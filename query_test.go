package rrule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailyFiveCursor(t *testing.T) *Cursor {
	t.Helper()
	rv := &RuleValue{Freq: Daily, Start: mustStart(2020, 1, 1, 9, 0, 0), Bound: CountBound(5)}
	cur, err := NewCursor(rv)
	require.NoError(t, err)
	return cur
}

func TestCursorAllRespectsLimit(t *testing.T) {
	got, err := dailyFiveCursor(t).All(3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[2].Equal(mustStart(2020, 1, 3, 9, 0, 0)))
}

func TestCursorBetweenInclusiveVsExclusive(t *testing.T) {
	after := mustStart(2020, 1, 2, 9, 0, 0)
	before := mustStart(2020, 1, 4, 9, 0, 0)

	inclusive, err := dailyFiveCursor(t).Between(after, before, true)
	require.NoError(t, err)
	assert.Len(t, inclusive, 3) // Jan 2, 3, 4

	exclusive, err := dailyFiveCursor(t).Between(after, before, false)
	require.NoError(t, err)
	assert.Len(t, exclusive, 1) // Jan 3 only
}

func TestCursorBefore(t *testing.T) {
	v, ok, err := dailyFiveCursor(t).Before(mustStart(2020, 1, 3, 9, 0, 0), false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, v.Equal(mustStart(2020, 1, 2, 9, 0, 0)))

	vIncl, ok, err := dailyFiveCursor(t).Before(mustStart(2020, 1, 3, 9, 0, 0), true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, vIncl.Equal(mustStart(2020, 1, 3, 9, 0, 0)))

	_, ok, err = dailyFiveCursor(t).Before(mustStart(2020, 1, 1, 9, 0, 0), false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCursorAfter(t *testing.T) {
	v, ok, err := dailyFiveCursor(t).After(mustStart(2020, 1, 3, 9, 0, 0), false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, v.Equal(mustStart(2020, 1, 4, 9, 0, 0)))

	v, ok, err = dailyFiveCursor(t).After(mustStart(2020, 1, 5, 9, 0, 0), false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCursorPoisonedAfterError(t *testing.T) {
	rv := &RuleValue{Freq: Daily, Start: mustStart(1, 1, 2, 0, 0, 0), BySetPos: []int{2}}
	cur, err := NewCursor(rv)
	require.NoError(t, err)
	_, err1 := cur.All(0)
	require.Error(t, err1)
	_, _, err2 := cur.Next()
	assert.Equal(t, err1, err2)
}
