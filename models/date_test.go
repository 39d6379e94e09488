package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-10")
	require.NoError(t, err)
	assert.Equal(t, Date("2026-10-10"), d)

	// RFC 3339 timestamps collapse to the calendar day.
	d, err = ParseDate("2026-10-10T18:45:00Z")
	require.NoError(t, err)
	assert.Equal(t, Date("2026-10-10"), d)

	_, err = ParseDate("10/10/2026")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestHourIntervalOverlaps(t *testing.T) {
	base := HourInterval{StartHour: 10, EndHour: 12}

	assert.True(t, base.Overlaps(HourInterval{StartHour: 11, EndHour: 13}))
	assert.True(t, base.Overlaps(HourInterval{StartHour: 9, EndHour: 10.5}))
	assert.True(t, base.Overlaps(HourInterval{StartHour: 10.5, EndHour: 11.5}))

	// Touching endpoints are adjacency, not overlap.
	assert.False(t, base.Overlaps(HourInterval{StartHour: 12, EndHour: 14}))
	assert.False(t, base.Overlaps(HourInterval{StartHour: 8, EndHour: 10}))
	assert.False(t, base.Overlaps(HourInterval{StartHour: 13, EndHour: 15}))
}

func TestCartRecomputeTotal(t *testing.T) {
	c := Cart{Items: []CartLineItem{
		{CalculatedPrice: 150},
		{CalculatedPrice: 800},
	}}
	c.RecomputeTotal()
	assert.Equal(t, 950.0, c.TotalPrice)

	c.Items = nil
	c.RecomputeTotal()
	assert.Equal(t, 0.0, c.TotalPrice)
}

func TestDayLedgerHasEntries(t *testing.T) {
	assert.False(t, DayLedger{Date: "2026-10-10"}.HasEntries())
	assert.True(t, DayLedger{FullDay: true}.HasEntries())
	assert.True(t, DayLedger{Intervals: []HourInterval{{StartHour: 10, EndHour: 12}}}.HasEntries())
	assert.True(t, DayLedger{BookedCount: 1}.HasEntries())
}
