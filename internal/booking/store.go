package booking

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/chalet-reservation/internal/model"
)

// Store contract sentinels.  Implementations return these so the
// engine can translate storage outcomes into its error taxonomy
// without depending on any particular driver.
var (
	// ErrUnitNotFound is returned when the referenced unit does not exist.
	ErrUnitNotFound = errors.New("unit not found")
	// ErrReservationNotFound is returned when the referenced reservation
	// does not exist or does not satisfy the operation's status filter.
	ErrReservationNotFound = errors.New("reservation not found")
	// ErrDatesTaken is returned by InsertReservation when the requested
	// range overlaps an active reservation at commit time.
	ErrDatesTaken = errors.New("dates already booked")
)

// Store is the persistence boundary of the engine.  The SQL
// implementation lives in internal/repository; tests use an
// in-memory fake.  Implementations must guarantee that
// InsertReservation and InsertBlocks serialize their
// check-then-insert sequence per unit (the SQL implementation pins
// the unit row with SELECT ... FOR UPDATE inside one transaction),
// because two concurrent inserts for overlapping ranges must never
// both succeed.
type Store interface {
	// UnitByID loads a unit or returns ErrUnitNotFound.
	UnitByID(ctx context.Context, unitID uint64) (*model.Unit, error)

	// ActiveReservations returns every reservation on the unit whose
	// status is active (PENDING, CONFIRMED or BLOCKED) and whose
	// check-out falls on or after the given day.  Stale reservations
	// drop out of the result but are never deleted.  Order is
	// unspecified.
	ActiveReservations(ctx context.Context, unitID uint64, from time.Time) ([]model.Reservation, error)

	// InsertReservation atomically re-runs the overlap check for
	// res's range against active reservations and inserts the row.
	// It returns ErrDatesTaken when the range is no longer free and
	// populates res.ID and timestamps on success.
	InsertReservation(ctx context.Context, res *model.Reservation) error

	// InsertBlocks atomically inserts one single-night BLOCKED row per
	// entry, silently skipping any whose night is occupied at commit
	// time, and returns the number actually created.
	InsertBlocks(ctx context.Context, unitID uint64, blocks []*model.Reservation) (int, error)

	// DeleteBlocks removes every BLOCKED reservation on the unit whose
	// check-in matches one of the given days and returns the number
	// deleted.  Missing days are not an error.
	DeleteBlocks(ctx context.Context, unitID uint64, dates []time.Time) (int, error)

	// ReservationByID loads a reservation or returns
	// ErrReservationNotFound.
	ReservationByID(ctx context.Context, id uint64) (*model.Reservation, error)

	// UpdateReservationStatus sets the status of an existing
	// reservation (administrative PENDING→CONFIRMED/CANCELLED and
	// completion transitions).
	UpdateReservationStatus(ctx context.Context, id uint64, status string) error

	// UpdateRemainingPayment stores the remaining-payment fields of a
	// BLOCKED reservation.  It returns ErrReservationNotFound when the
	// row does not exist or is not BLOCKED.
	UpdateRemainingPayment(ctx context.Context, id uint64, remainingCents uint32, method *string, collected bool) error
}

// Invalidator drops cached occupancy for a unit.  The engine calls
// it synchronously after every committed write so that calendar
// reads never serve a stale snapshot across a reservation create or
// delete.  A nil Invalidator disables caching altogether.
type Invalidator interface {
	Invalidate(ctx context.Context, unitID uint64)
}
