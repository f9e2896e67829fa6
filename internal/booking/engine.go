package booking

import (
	"context"
	"time"

	"github.com/iliyamo/chalet-reservation/internal/model"
)

// Engine is the availability and reservation core.  It owns no
// state of its own beyond its collaborators: a Store for persistence,
// a Capability for authorization decisions and an optional
// Invalidator that drops cached occupancy after every committed
// write.  Engines are safe for concurrent use; per-unit mutual
// exclusion for the check-then-insert sequence is delegated to the
// Store (see Store docs).
type Engine struct {
	store Store
	caps  Capability
	cache Invalidator
	now   func() time.Time
}

// New constructs an Engine.  cache may be nil to disable occupancy
// caching.
func New(store Store, caps Capability, cache Invalidator) *Engine {
	if store == nil || caps == nil {
		panic("nil dependency passed to booking.New")
	}
	return &Engine{store: store, caps: caps, cache: cache, now: time.Now}
}

// invalidate drops cached occupancy for the unit.  Called
// synchronously after every committed write so readers never see a
// stale calendar.
func (e *Engine) invalidate(ctx context.Context, unitID uint64) {
	if e.cache != nil {
		e.cache.Invalidate(ctx, unitID)
	}
}

// CreateRequest carries the inputs of a customer booking.
type CreateRequest struct {
	UnitID     uint64
	HolderID   uint64
	CheckIn    time.Time
	CheckOut   time.Time
	GuestCount uint32
	Notes      string
}

// CreateReservation validates and creates a customer reservation.
// The range must be a non-empty half-open interval that does not
// start in the past.  The overlap check against active reservations
// and the insert run as one atomic unit inside the store, so two
// concurrent requests for overlapping ranges can never both
// succeed.  On success the reservation is PENDING and its total
// price is stamped from the unit's current rates.
func (e *Engine) CreateReservation(ctx context.Context, req CreateRequest) (*model.Reservation, error) {
	checkIn, checkOut := Day(req.CheckIn), Day(req.CheckOut)
	today := Day(e.now())
	if !checkIn.Before(checkOut) {
		return nil, &ValidationError{Reason: "check-out must be after check-in"}
	}
	if checkIn.Before(today) {
		return nil, &ValidationError{Reason: "check-in must not be in the past"}
	}
	if req.GuestCount == 0 {
		return nil, &ValidationError{Reason: "guest count must be positive"}
	}
	unit, err := e.store.UnitByID(ctx, req.UnitID)
	if err != nil {
		if err == ErrUnitNotFound {
			return nil, &NotFoundError{Resource: "unit", ID: req.UnitID}
		}
		return nil, storageFault("load unit", err)
	}
	if !unit.IsActive {
		return nil, &ValidationError{Reason: "unit is not accepting reservations"}
	}
	res := &model.Reservation{
		UnitID:          req.UnitID,
		HolderID:        req.HolderID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		GuestCount:      req.GuestCount,
		TotalPriceCents: Quote(unit, checkIn, checkOut),
		Status:          model.StatusPending,
		Notes:           req.Notes,
	}
	if err := e.store.InsertReservation(ctx, res); err != nil {
		if err == ErrDatesTaken {
			return nil, &ConflictError{UnitID: req.UnitID, CheckIn: checkIn, CheckOut: checkOut}
		}
		return nil, storageFault("insert reservation", err)
	}
	e.invalidate(ctx, req.UnitID)
	return res, nil
}

// SetStatus applies an administrative status transition to a
// customer reservation on behalf of the unit's manager.  BLOCKED
// rows never transition; they exist or are deleted via
// UnblockDates.  Allowed targets are CONFIRMED, CANCELLED and
// COMPLETED.
func (e *Engine) SetStatus(ctx context.Context, actorID, reservationID uint64, status string) (*model.Reservation, error) {
	switch status {
	case model.StatusConfirmed, model.StatusCancelled, model.StatusCompleted:
	default:
		return nil, &ValidationError{Reason: "invalid target status"}
	}
	res, err := e.store.ReservationByID(ctx, reservationID)
	if err != nil {
		if err == ErrReservationNotFound {
			return nil, &NotFoundError{Resource: "reservation", ID: reservationID}
		}
		return nil, storageFault("load reservation", err)
	}
	if res.IsBlock() {
		return nil, &NotFoundError{Resource: "reservation", ID: reservationID}
	}
	unit, err := e.store.UnitByID(ctx, res.UnitID)
	if err != nil {
		if err == ErrUnitNotFound {
			return nil, &NotFoundError{Resource: "unit", ID: res.UnitID}
		}
		return nil, storageFault("load unit", err)
	}
	if !e.caps.CanManageUnit(actorID, unit) {
		return nil, ErrForbidden
	}
	if err := e.store.UpdateReservationStatus(ctx, reservationID, status); err != nil {
		return nil, storageFault("update status", err)
	}
	res.Status = status
	e.invalidate(ctx, res.UnitID)
	return res, nil
}

// CancelOwn lets a customer cancel their own reservation while it
// is still PENDING.  Confirmed stays are released by the owner via
// SetStatus.
func (e *Engine) CancelOwn(ctx context.Context, actorID, reservationID uint64) error {
	res, err := e.store.ReservationByID(ctx, reservationID)
	if err != nil {
		if err == ErrReservationNotFound {
			return &NotFoundError{Resource: "reservation", ID: reservationID}
		}
		return storageFault("load reservation", err)
	}
	if res.IsBlock() || res.HolderID != actorID {
		return ErrForbidden
	}
	if res.Status != model.StatusPending {
		return &ValidationError{Reason: "only pending reservations can be cancelled"}
	}
	if err := e.store.UpdateReservationStatus(ctx, reservationID, model.StatusCancelled); err != nil {
		return storageFault("update status", err)
	}
	e.invalidate(ctx, res.UnitID)
	return nil
}
