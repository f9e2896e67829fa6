package booking

import (
	"context"
	"time"
)

// Occupancy is the unit calendar as seen by callers: every night
// held by an active reservation, partitioned by who holds it.  The
// two sets are always disjoint because active reservations never
// overlap.  The split matters to the owner UI and the block
// manager: customer-held nights are immutable to the owner, while
// owner-blocked nights can be released day by day.
type Occupancy struct {
	Customer DateSet // nights held by PENDING/CONFIRMED reservations
	Blocked  DateSet // nights held by owner-entered BLOCKED rows
}

// All returns the union of both partitions.
func (o Occupancy) All() DateSet {
	s := NewDateSet()
	for d := range o.Customer {
		s[d] = struct{}{}
	}
	for d := range o.Blocked {
		s[d] = struct{}{}
	}
	return s
}

// Occupancy loads the live calendar of a unit: every active
// reservation whose check-out falls on or after from (defaulting to
// today when from is the zero time) is expanded into individual
// nights.  Stale past reservations drop out of the view but are
// never deleted.  A unit with no reservations yields two empty
// sets, not an error.
func (e *Engine) Occupancy(ctx context.Context, unitID uint64, from time.Time) (Occupancy, error) {
	occ := Occupancy{Customer: NewDateSet(), Blocked: NewDateSet()}
	if from.IsZero() {
		from = Day(e.now())
	} else {
		from = Day(from)
	}
	if _, err := e.store.UnitByID(ctx, unitID); err != nil {
		if err == ErrUnitNotFound {
			return occ, &NotFoundError{Resource: "unit", ID: unitID}
		}
		return occ, storageFault("load unit", err)
	}
	reservations, err := e.store.ActiveReservations(ctx, unitID, from)
	if err != nil {
		return occ, storageFault("load reservations", err)
	}
	for i := range reservations {
		res := &reservations[i]
		for _, night := range ExpandRange(res.CheckIn, res.CheckOut) {
			if res.IsBlock() {
				occ.Blocked.Add(night)
			} else {
				occ.Customer.Add(night)
			}
		}
	}
	return occ, nil
}

// OccupiedDays renders the calendar as a flat list of per-day
// facts, one OccupiedDay per (unit, night).  In a correct calendar
// each night maps to exactly one source.
func (e *Engine) OccupiedDays(ctx context.Context, unitID uint64, from time.Time) ([]OccupiedDay, error) {
	occ, err := e.Occupancy(ctx, unitID, from)
	if err != nil {
		return nil, err
	}
	days := make([]OccupiedDay, 0, occ.Customer.Len()+occ.Blocked.Len())
	for _, d := range occ.Customer.Sorted() {
		days = append(days, OccupiedDay{UnitID: unitID, Date: d, Source: SourceCustomer})
	}
	for _, d := range occ.Blocked.Sorted() {
		days = append(days, OccupiedDay{UnitID: unitID, Date: d, Source: SourceOwnerBlock})
	}
	return days, nil
}
