package booking

import (
	"context"
	"time"

	"github.com/iliyamo/chalet-reservation/internal/model"
)

// BlockRequest carries the inputs of an owner block operation.
// Every requested date becomes its own single-night BLOCKED row so
// the owner can later release days independently.  The metadata
// fields are all optional and describe the off-platform guest and
// what they have paid so far.
type BlockRequest struct {
	UnitID         uint64
	ActorID        uint64
	Dates          []time.Time
	GuestName      *string
	GuestPhone     *string
	PaymentMethod  *string
	DepositCents   *uint32
	RemainingCents *uint32
	Notes          string
}

// BlockDates holds the requested days for an off-platform guest.
// Days already occupied — by a customer reservation or an earlier
// block — are silently skipped rather than failing the whole
// operation, so an owner selecting a mixed range still gets the
// free days blocked.  The returned count is the number of rows
// actually created; calling again with the same dates creates
// nothing and is not an error.
func (e *Engine) BlockDates(ctx context.Context, req BlockRequest) (int, error) {
	if len(req.Dates) == 0 {
		return 0, &ValidationError{Reason: "at least one date is required"}
	}
	unit, err := e.store.UnitByID(ctx, req.UnitID)
	if err != nil {
		if err == ErrUnitNotFound {
			return 0, &NotFoundError{Resource: "unit", ID: req.UnitID}
		}
		return 0, storageFault("load unit", err)
	}
	if !e.caps.CanManageUnit(req.ActorID, unit) {
		return 0, ErrForbidden
	}
	// Deduplicate and find the earliest requested day so the
	// occupancy snapshot covers every candidate, past days included.
	requested := NewDateSet(req.Dates...)
	earliest := requested.Sorted()[0]
	occ, err := e.Occupancy(ctx, req.UnitID, earliest)
	if err != nil {
		return 0, err
	}
	taken := occ.All()
	var blocks []*model.Reservation
	for _, d := range requested.Sorted() {
		if taken.Has(d) {
			continue
		}
		blocks = append(blocks, &model.Reservation{
			UnitID:         req.UnitID,
			HolderID:       req.ActorID,
			CheckIn:        d,
			CheckOut:       NextDay(d),
			GuestCount:     0,
			Status:         model.StatusBlocked,
			Notes:          req.Notes,
			GuestName:      req.GuestName,
			GuestPhone:     req.GuestPhone,
			PaymentMethod:  req.PaymentMethod,
			DepositCents:   req.DepositCents,
			RemainingCents: req.RemainingCents,
		})
	}
	if len(blocks) == 0 {
		return 0, nil
	}
	created, err := e.store.InsertBlocks(ctx, req.UnitID, blocks)
	if err != nil {
		return 0, storageFault("insert blocks", err)
	}
	e.invalidate(ctx, req.UnitID)
	return created, nil
}

// UnblockDates releases owner blocks on the given days.  Days with
// no block are skipped; the operation is idempotent and returns the
// number of rows deleted.  Customer-held days are untouched because
// only BLOCKED rows match the delete.
func (e *Engine) UnblockDates(ctx context.Context, actorID, unitID uint64, dates []time.Time) (int, error) {
	if len(dates) == 0 {
		return 0, &ValidationError{Reason: "at least one date is required"}
	}
	unit, err := e.store.UnitByID(ctx, unitID)
	if err != nil {
		if err == ErrUnitNotFound {
			return 0, &NotFoundError{Resource: "unit", ID: unitID}
		}
		return 0, storageFault("load unit", err)
	}
	if !e.caps.CanManageUnit(actorID, unit) {
		return 0, ErrForbidden
	}
	deleted, err := e.store.DeleteBlocks(ctx, unitID, NewDateSet(dates...).Sorted())
	if err != nil {
		return 0, storageFault("delete blocks", err)
	}
	if deleted > 0 {
		e.invalidate(ctx, unitID)
	}
	return deleted, nil
}

// RecordRemainingPayment updates the remaining-payment fields of a
// block after the owner collects (or re-negotiates) the balance.
// The reservation must exist, be BLOCKED and belong to the given
// unit; anything else is reported as not found.  RemainingCollected
// is derived from the presence of the payment method, never set
// directly.
func (e *Engine) RecordRemainingPayment(ctx context.Context, actorID, unitID, reservationID uint64, remainingCents uint32, method *string) (*model.Reservation, error) {
	if method != nil && *method == "" {
		return nil, &ValidationError{Reason: "payment method must not be empty"}
	}
	res, err := e.store.ReservationByID(ctx, reservationID)
	if err != nil {
		if err == ErrReservationNotFound {
			return nil, &NotFoundError{Resource: "reservation", ID: reservationID}
		}
		return nil, storageFault("load reservation", err)
	}
	if !res.IsBlock() || res.UnitID != unitID {
		return nil, &NotFoundError{Resource: "reservation", ID: reservationID}
	}
	unit, err := e.store.UnitByID(ctx, unitID)
	if err != nil {
		if err == ErrUnitNotFound {
			return nil, &NotFoundError{Resource: "unit", ID: unitID}
		}
		return nil, storageFault("load unit", err)
	}
	if !e.caps.CanManageUnit(actorID, unit) {
		return nil, ErrForbidden
	}
	collected := method != nil
	if err := e.store.UpdateRemainingPayment(ctx, reservationID, remainingCents, method, collected); err != nil {
		if err == ErrReservationNotFound {
			return nil, &NotFoundError{Resource: "reservation", ID: reservationID}
		}
		return nil, storageFault("update remaining payment", err)
	}
	res.RemainingCents = &remainingCents
	res.RemainingMethod = method
	res.RemainingCollected = collected
	return res, nil
}
