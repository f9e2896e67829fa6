package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 2024-03-14 is a Thursday, so the 14th is a weekday night and the
// 15th/16th are weekend (Friday/Saturday) nights.

func TestQuoteMixedWeek(t *testing.T) {
	unit := testUnit() // weekday 600, weekend 800
	total := Quote(unit, mustDate("2024-03-14"), mustDate("2024-03-17"))
	// Thu 600 + Fri 800 + Sat 800
	assert.Equal(t, uint32(2200), total)
}

func TestQuoteSingleNights(t *testing.T) {
	unit := testUnit()
	assert.Equal(t, uint32(600), Quote(unit, mustDate("2024-03-14"), mustDate("2024-03-15"))) // Thursday
	assert.Equal(t, uint32(800), Quote(unit, mustDate("2024-03-15"), mustDate("2024-03-16"))) // Friday
	assert.Equal(t, uint32(800), Quote(unit, mustDate("2024-03-16"), mustDate("2024-03-17"))) // Saturday
	assert.Equal(t, uint32(600), Quote(unit, mustDate("2024-03-17"), mustDate("2024-03-18"))) // Sunday
}

func TestQuoteWithoutWeekendRate(t *testing.T) {
	unit := testUnit()
	unit.WeekendPriceCents = nil
	// Every night falls back to the weekday rate.
	total := Quote(unit, mustDate("2024-03-14"), mustDate("2024-03-17"))
	assert.Equal(t, uint32(1800), total)
}

func TestQuoteEqualsSumOfNightlyRates(t *testing.T) {
	unit := testUnit()
	checkIn, checkOut := mustDate("2024-03-01"), mustDate("2024-03-31")
	var sum uint32
	for _, night := range ExpandRange(checkIn, checkOut) {
		sum += NightlyRate(unit, night)
	}
	assert.Equal(t, sum, Quote(unit, checkIn, checkOut))
}
