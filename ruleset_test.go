package rrule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateListStreamSortsAndDedupsNothing(t *testing.T) {
	s := newDateListStream([]ZonedInstant{
		mustStart(2020, 3, 1, 0, 0, 0),
		mustStart(2020, 1, 1, 0, 0, 0),
		mustStart(2020, 2, 1, 0, 0, 0),
	})
	var got []ZonedInstant
	for {
		v, ok, err := s.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.Len(t, got, 3)
	assert.True(t, got[0].Equal(mustStart(2020, 1, 1, 0, 0, 0)))
	assert.True(t, got[1].Equal(mustStart(2020, 2, 1, 0, 0, 0)))
	assert.True(t, got[2].Equal(mustStart(2020, 3, 1, 0, 0, 0)))
}

func TestComposedStreamDedupsOverlappingInclusions(t *testing.T) {
	// Two identical DAILY rules plus an RDATE landing on one of their own
	// occurrences: the overlap must collapse to a single emission each.
	rvA := &RuleValue{Freq: Daily, Start: mustStart(2020, 1, 1, 9, 0, 0), Bound: CountBound(3)}
	rvB := &RuleValue{Freq: Daily, Start: mustStart(2020, 1, 1, 9, 0, 0), Bound: CountBound(3)}
	rs := &RuleSetValue{
		IncludeRules: []*RuleValue{rvA, rvB},
		IncludeDates: []ZonedInstant{mustStart(2020, 1, 2, 9, 0, 0)},
	}
	cur, err := NewRuleSetCursor(rs)
	require.NoError(t, err)
	got, err := cur.All(0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Equal(mustStart(2020, 1, 1, 9, 0, 0)))
	assert.True(t, got[1].Equal(mustStart(2020, 1, 2, 9, 0, 0)))
	assert.True(t, got[2].Equal(mustStart(2020, 1, 3, 9, 0, 0)))
}

func TestComposedStreamExcludesEveryInclusionSource(t *testing.T) {
	rv := &RuleValue{Freq: Daily, Start: mustStart(2020, 1, 1, 9, 0, 0), Bound: CountBound(3)}
	// The excluded instant is named by both the rule and an RDATE; it must
	// be removed from each of them.
	rs := &RuleSetValue{
		IncludeRules: []*RuleValue{rv},
		IncludeDates: []ZonedInstant{mustStart(2020, 1, 2, 9, 0, 0)},
		ExcludeDates: []ZonedInstant{mustStart(2020, 1, 2, 9, 0, 0)},
	}
	cur, err := NewRuleSetCursor(rs)
	require.NoError(t, err)
	got, err := cur.All(0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(mustStart(2020, 1, 1, 9, 0, 0)))
	assert.True(t, got[1].Equal(mustStart(2020, 1, 3, 9, 0, 0)))
}
