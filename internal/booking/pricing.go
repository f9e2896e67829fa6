package booking

import (
	"time"

	"github.com/iliyamo/chalet-reservation/internal/model"
)

// Quote computes the total price in cents for staying at the unit
// over the half-open range [checkIn, checkOut).  Each night is
// priced independently: Friday and Saturday nights use the unit's
// weekend rate when one is set, every other night (and weekend
// nights on units without a weekend rate) uses the weekday rate.
// The result is deterministic for a fixed rate snapshot; callers
// must reject zero-night ranges before calling.
func Quote(unit *model.Unit, checkIn, checkOut time.Time) uint32 {
	var total uint32
	for _, night := range ExpandRange(checkIn, checkOut) {
		total += NightlyRate(unit, night)
	}
	return total
}

// NightlyRate returns the price in cents for the single night
// starting on d.
func NightlyRate(unit *model.Unit, d time.Time) uint32 {
	if isWeekendNight(d) && unit.WeekendPriceCents != nil {
		return *unit.WeekendPriceCents
	}
	return unit.WeekdayPriceCents
}
