package model

import "time"

// Unit represents a rentable chalet listed by an owner.  A unit
// carries the nightly rates used to price customer reservations:
// a weekday rate that always applies and an optional weekend rate
// that, when set, applies to Friday and Saturday nights.  Rates
// are read at reservation time only; a reservation's total is
// stamped once at creation and never recomputed when rates change.
//
// Fields:
//  ID                – primary key identifier.
//  OwnerID           – user who owns and manages the unit.
//  Name              – display name of the chalet.
//  Description       – free-text description shown to customers.
//  Capacity          – maximum number of guests.
//  WeekdayPriceCents – nightly rate in cents for Sunday–Thursday nights.
//  WeekendPriceCents – nightly rate in cents for Friday/Saturday nights
//                      (nullable; weekday rate applies when unset).
//  IsActive          – whether the unit accepts new reservations.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Unit struct {
	ID                uint64    // units.id
	OwnerID           uint64    // units.owner_id
	Name              string    // units.name
	Description       string    // units.description
	Capacity          uint32    // units.capacity
	WeekdayPriceCents uint32    // units.weekday_price_cents
	WeekendPriceCents *uint32   // units.weekend_price_cents (nullable)
	IsActive          bool      // units.is_active
	CreatedAt         time.Time // units.created_at
	UpdatedAt         time.Time // units.updated_at
}
