package model

import "time"

// Reservation statuses.  Only the three "active" statuses occupy
// calendar space; CANCELLED and COMPLETED never conflict with new
// reservations.  BLOCKED marks an owner-entered hold for an
// off-platform guest and always spans exactly one night.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
	StatusBlocked   = "BLOCKED"
)

// ActiveStatuses lists the statuses that hold calendar space on a
// unit.  Occupancy queries and overlap checks consider only these.
var ActiveStatuses = []string{StatusPending, StatusConfirmed, StatusBlocked}

// Reservation records a hold on a unit for a half-open date range
// [CheckIn, CheckOut); CheckOut is exclusive, so a one-night stay
// has CheckOut = CheckIn plus one day.  Customer reservations are
// created with status PENDING and a total price stamped from the
// unit's rates.  Owner blocks are created with status BLOCKED, span
// a single night each and carry guest/payment metadata instead of a
// total price.
//
// Fields:
//  ID                 – primary key identifier.
//  UnitID             – unit being reserved.
//  HolderID           – customer who booked, or the owner for blocks.
//  CheckIn            – first occupied night (DATE, UTC midnight).
//  CheckOut           – exclusive end of the range (DATE, UTC midnight).
//  GuestCount         – number of guests (zero for blocks).
//  TotalPriceCents    – total price in cents, computed once at creation
//                       (kept at zero for blocks).
//  Status             – PENDING, CONFIRMED, CANCELLED, COMPLETED or BLOCKED.
//  Notes              – free text entered by the creator.
//  GuestName          – off-platform guest name (blocks only, nullable).
//  GuestPhone         – off-platform guest phone (blocks only, nullable).
//  PaymentMethod      – how the deposit was paid (blocks only, nullable).
//  DepositCents       – amount collected up front (blocks only, nullable).
//  RemainingCents     – amount still owed (blocks only, nullable).
//  RemainingMethod    – how the remainder was or will be paid (nullable).
//  RemainingCollected – true only when RemainingMethod is set.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Reservation struct {
	ID                 uint64    // reservations.id
	UnitID             uint64    // reservations.unit_id
	HolderID           uint64    // reservations.holder_id
	CheckIn            time.Time // reservations.check_in (DATE)
	CheckOut           time.Time // reservations.check_out (DATE, exclusive)
	GuestCount         uint32    // reservations.guest_count
	TotalPriceCents    uint32    // reservations.total_price_cents
	Status             string    // reservations.status
	Notes              string    // reservations.notes
	GuestName          *string   // reservations.guest_name (nullable)
	GuestPhone         *string   // reservations.guest_phone (nullable)
	PaymentMethod      *string   // reservations.payment_method (nullable)
	DepositCents       *uint32   // reservations.deposit_cents (nullable)
	RemainingCents     *uint32   // reservations.remaining_cents (nullable)
	RemainingMethod    *string   // reservations.remaining_method (nullable)
	RemainingCollected bool      // reservations.remaining_collected
	CreatedAt          time.Time // reservations.created_at
	UpdatedAt          time.Time // reservations.updated_at
}

// IsActive reports whether the reservation currently holds calendar
// space on its unit.
func (r *Reservation) IsActive() bool {
	switch r.Status {
	case StatusPending, StatusConfirmed, StatusBlocked:
		return true
	}
	return false
}

// IsBlock reports whether the reservation is an owner-entered block.
func (r *Reservation) IsBlock() bool { return r.Status == StatusBlocked }
