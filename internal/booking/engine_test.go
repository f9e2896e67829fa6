package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/chalet-reservation/internal/model"
)

func TestCreateReservationStampsPriceAndStatus(t *testing.T) {
	store := newFakeStore(testUnit())
	e, inv := newTestEngine(store, "2024-03-01")

	res, err := e.CreateReservation(context.Background(), CreateRequest{
		UnitID:     1,
		HolderID:   42,
		CheckIn:    mustDate("2024-03-14"),
		CheckOut:   mustDate("2024-03-17"),
		GuestCount: 4,
		Notes:      "anniversary trip",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Status)
	assert.Equal(t, uint32(2200), res.TotalPriceCents) // Thu 600 + Fri 800 + Sat 800
	assert.NotZero(t, res.ID)
	assert.Equal(t, 1, inv.calls[1], "occupancy cache must be invalidated on create")
}

func TestCreateReservationValidation(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	var ve *ValidationError

	// zero-length range
	_, err := e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-03-14"), CheckOut: mustDate("2024-03-14"), GuestCount: 2})
	require.ErrorAs(t, err, &ve)

	// inverted range
	_, err = e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-03-17"), CheckOut: mustDate("2024-03-14"), GuestCount: 2})
	require.ErrorAs(t, err, &ve)

	// check-in before today
	_, err = e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-02-20"), CheckOut: mustDate("2024-02-22"), GuestCount: 2})
	require.ErrorAs(t, err, &ve)

	// zero guests
	_, err = e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-03-14"), CheckOut: mustDate("2024-03-15")})
	require.ErrorAs(t, err, &ve)
}

func TestCreateReservationConflict(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	_, err := e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-03-10"), CheckOut: mustDate("2024-03-13"), GuestCount: 2})
	require.NoError(t, err)

	// The 12th overlaps reservation A.
	_, err = e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 43, CheckIn: mustDate("2024-03-12"), CheckOut: mustDate("2024-03-15"), GuestCount: 2})
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, uint64(1), ce.UnitID)

	// Back-to-back is fine: B checks in the day A checks out.
	_, err = e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 43, CheckIn: mustDate("2024-03-13"), CheckOut: mustDate("2024-03-15"), GuestCount: 2})
	require.NoError(t, err)
}

func TestCreateReservationUnknownOrInactiveUnit(t *testing.T) {
	unit := testUnit()
	store := newFakeStore(unit)
	e, _ := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	_, err := e.CreateReservation(ctx, CreateRequest{UnitID: 99, HolderID: 42, CheckIn: mustDate("2024-03-14"), CheckOut: mustDate("2024-03-15"), GuestCount: 2})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "unit", nf.Resource)

	unit.IsActive = false
	_, err = e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-03-14"), CheckOut: mustDate("2024-03-15"), GuestCount: 2})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestCreateReservationStorageFault(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")
	store.failWith = errors.New("connection reset")

	_, err := e.CreateReservation(context.Background(), CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-03-14"), CheckOut: mustDate("2024-03-15"), GuestCount: 2})
	var sf *StorageFault
	require.ErrorAs(t, err, &sf)
	assert.ErrorContains(t, sf.Err, "connection reset")
}

func TestNoOverlapInvariantAcrossMixedWrites(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	_, err := e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-03-10"), CheckOut: mustDate("2024-03-13"), GuestCount: 2})
	require.NoError(t, err)
	_, err = e.BlockDates(ctx, BlockRequest{UnitID: 1, ActorID: 10, Dates: []time.Time{mustDate("2024-03-13"), mustDate("2024-03-14")}})
	require.NoError(t, err)

	// Every pair of active reservations on the unit must be disjoint.
	active, err := store.ActiveReservations(ctx, 1, mustDate("2024-03-01"))
	require.NoError(t, err)
	for i := range active {
		for j := range active {
			if i == j {
				continue
			}
			assert.False(t, Overlaps(active[i].CheckIn, active[i].CheckOut, active[j].CheckIn, active[j].CheckOut),
				"reservations %d and %d overlap", active[i].ID, active[j].ID)
		}
	}
}

func TestSetStatusAndOccupancyHonorsIt(t *testing.T) {
	store := newFakeStore(testUnit())
	e, inv := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	res, err := e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-03-10"), CheckOut: mustDate("2024-03-12"), GuestCount: 2})
	require.NoError(t, err)

	// Only the unit's owner may change status.
	_, err = e.SetStatus(ctx, 99, res.ID, model.StatusConfirmed)
	require.ErrorIs(t, err, ErrForbidden)

	upd, err := e.SetStatus(ctx, 10, res.ID, model.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, upd.Status)

	occ, err := e.Occupancy(ctx, 1, mustDate("2024-03-01"))
	require.NoError(t, err)
	assert.True(t, occ.Customer.Has(mustDate("2024-03-10")))

	// Cancelling frees the nights for new reservations.
	_, err = e.SetStatus(ctx, 10, res.ID, model.StatusCancelled)
	require.NoError(t, err)
	occ, err = e.Occupancy(ctx, 1, mustDate("2024-03-01"))
	require.NoError(t, err)
	assert.Equal(t, 0, occ.Customer.Len())

	_, err = e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 43, CheckIn: mustDate("2024-03-10"), CheckOut: mustDate("2024-03-12"), GuestCount: 2})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, inv.calls[1], 3)
}

func TestSetStatusRejectsBlocksAndBadTargets(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	created, err := e.BlockDates(ctx, BlockRequest{UnitID: 1, ActorID: 10, Dates: []time.Time{mustDate("2024-03-20")}})
	require.NoError(t, err)
	require.Equal(t, 1, created)
	var blockID uint64
	for id := range store.reservations {
		blockID = id
	}

	// Blocks never transition; they exist or are deleted.
	_, err = e.SetStatus(ctx, 10, blockID, model.StatusCancelled)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	_, err = e.SetStatus(ctx, 10, blockID, "BLOCKED")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestCancelOwn(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	res, err := e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-03-10"), CheckOut: mustDate("2024-03-12"), GuestCount: 2})
	require.NoError(t, err)

	// Someone else's reservation cannot be cancelled.
	require.ErrorIs(t, e.CancelOwn(ctx, 43, res.ID), ErrForbidden)

	require.NoError(t, e.CancelOwn(ctx, 42, res.ID))
	got, err := store.ReservationByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, got.Status)

	// A cancelled reservation is no longer PENDING.
	var ve *ValidationError
	require.ErrorAs(t, e.CancelOwn(ctx, 42, res.ID), &ve)
}
