package rrule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyStringRoundTrip(t *testing.T) {
	all := []Frequency{Yearly, Monthly, Weekly, Daily, Hourly, Minutely, Secondly}
	for _, f := range all {
		tok := f.String()
		got, err := ParseFrequency(tok)
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
}

func TestFrequencyStringUnknown(t *testing.T) {
	assert.Equal(t, "Frequency(99)", Frequency(99).String())
}

func TestParseFrequencyRejectsUnknown(t *testing.T) {
	_, err := ParseFrequency("FORTNIGHTLY")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFrequency)
}

func TestFrequencyIsValid(t *testing.T) {
	assert.True(t, Yearly.IsValid())
	assert.True(t, Secondly.IsValid())
	assert.False(t, Frequency(-1).IsValid())
	assert.False(t, Frequency(7).IsValid())
}
