package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/chalet-reservation/internal/model"
)

func TestBlockDatesSkipsOccupiedDays(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	// 03-11 is customer-booked before the owner blocks a mixed range.
	_, err := e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-03-11"), CheckOut: mustDate("2024-03-12"), GuestCount: 2})
	require.NoError(t, err)

	created, err := e.BlockDates(ctx, BlockRequest{
		UnitID:        1,
		ActorID:       10,
		Dates:         []time.Time{mustDate("2024-03-10"), mustDate("2024-03-11"), mustDate("2024-03-12")},
		GuestName:     str("Abu Khalid"),
		GuestPhone:    str("+966500000000"),
		PaymentMethod: str("cash"),
		DepositCents:  cents(500),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	occ, err := e.Occupancy(ctx, 1, mustDate("2024-03-01"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-11"}, occ.Customer.Strings())
	assert.Equal(t, []string{"2024-03-10", "2024-03-12"}, occ.Blocked.Strings())
}

func TestBlockDatesOneRowPerNight(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")

	created, err := e.BlockDates(context.Background(), BlockRequest{
		UnitID:  1,
		ActorID: 10,
		Dates:   []time.Time{mustDate("2024-03-10"), mustDate("2024-03-11"), mustDate("2024-03-12")},
	})
	require.NoError(t, err)
	require.Equal(t, 3, created)

	// Each blocked day is its own single-night BLOCKED row with no
	// price; that is what makes per-day unblock possible.
	for _, r := range store.reservations {
		assert.Equal(t, model.StatusBlocked, r.Status)
		assert.Equal(t, uint32(0), r.TotalPriceCents)
		assert.Equal(t, uint32(0), r.GuestCount)
		assert.Equal(t, NextDay(r.CheckIn), r.CheckOut)
	}
}

func TestBlockDatesIdempotentOverTakenSlots(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	dates := []time.Time{mustDate("2024-03-10"), mustDate("2024-03-11")}
	created, err := e.BlockDates(ctx, BlockRequest{UnitID: 1, ActorID: 10, Dates: dates})
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	// Blocking the same days again creates nothing and is not an error.
	created, err = e.BlockDates(ctx, BlockRequest{UnitID: 1, ActorID: 10, Dates: dates})
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, store.reservations, 2)
}

func TestBlockDatesAuthorization(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	// actor 99 does not own unit 1
	_, err := e.BlockDates(ctx, BlockRequest{UnitID: 1, ActorID: 99, Dates: []time.Time{mustDate("2024-03-10")}})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = e.BlockDates(ctx, BlockRequest{UnitID: 1, ActorID: 10})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = e.BlockDates(ctx, BlockRequest{UnitID: 99, ActorID: 10, Dates: []time.Time{mustDate("2024-03-10")}})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestUnblockDatesIdempotent(t *testing.T) {
	store := newFakeStore(testUnit())
	e, inv := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	_, err := e.BlockDates(ctx, BlockRequest{UnitID: 1, ActorID: 10, Dates: []time.Time{mustDate("2024-03-10"), mustDate("2024-03-11")}})
	require.NoError(t, err)

	deleted, err := e.UnblockDates(ctx, 10, 1, []time.Time{mustDate("2024-03-10")})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	// Unblocking a day with no block is a no-op, not an error.
	deleted, err = e.UnblockDates(ctx, 10, 1, []time.Time{mustDate("2024-03-20")})
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)

	// The no-op path must not invalidate the cache.
	calls := inv.calls[1]
	deleted, err = e.UnblockDates(ctx, 10, 1, []time.Time{mustDate("2024-03-10")})
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
	assert.Equal(t, calls, inv.calls[1])
}

func TestUnblockLeavesCustomerDaysAlone(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	res, err := e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-03-10"), CheckOut: mustDate("2024-03-11"), GuestCount: 2})
	require.NoError(t, err)

	deleted, err := e.UnblockDates(ctx, 10, 1, []time.Time{mustDate("2024-03-10")})
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
	_, err = store.ReservationByID(ctx, res.ID)
	assert.NoError(t, err)
}

func TestRecordRemainingPayment(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	created, err := e.BlockDates(ctx, BlockRequest{UnitID: 1, ActorID: 10, Dates: []time.Time{mustDate("2024-03-10")}, DepositCents: cents(500), RemainingCents: cents(1500)})
	require.NoError(t, err)
	require.Equal(t, 1, created)
	var blockID uint64
	for id := range store.reservations {
		blockID = id
	}

	// Collecting the balance sets the method and derives collected.
	upd, err := e.RecordRemainingPayment(ctx, 10, 1, blockID, 1500, str("bank transfer"))
	require.NoError(t, err)
	assert.True(t, upd.RemainingCollected)
	require.NotNil(t, upd.RemainingMethod)
	assert.Equal(t, "bank transfer", *upd.RemainingMethod)
	require.NotNil(t, upd.RemainingCents)
	assert.Equal(t, uint32(1500), *upd.RemainingCents)

	// Clearing the method clears collected with it.
	upd, err = e.RecordRemainingPayment(ctx, 10, 1, blockID, 1500, nil)
	require.NoError(t, err)
	assert.False(t, upd.RemainingCollected)
	assert.Nil(t, upd.RemainingMethod)
}

func TestRecordRemainingPaymentTargetsBlocksOnly(t *testing.T) {
	store := newFakeStore(testUnit(), &model.Unit{ID: 2, OwnerID: 10, Name: "Cedar Chalet", Capacity: 4, WeekdayPriceCents: 500, IsActive: true})
	e, _ := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	res, err := e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-03-10"), CheckOut: mustDate("2024-03-11"), GuestCount: 2})
	require.NoError(t, err)

	var nf *NotFoundError

	// A customer reservation is not a valid target.
	_, err = e.RecordRemainingPayment(ctx, 10, 1, res.ID, 100, str("cash"))
	require.ErrorAs(t, err, &nf)

	// Nor is a block on a different unit than expected.
	created, err := e.BlockDates(ctx, BlockRequest{UnitID: 1, ActorID: 10, Dates: []time.Time{mustDate("2024-03-20")}})
	require.NoError(t, err)
	require.Equal(t, 1, created)
	var blockID uint64
	for id, r := range store.reservations {
		if r.IsBlock() {
			blockID = id
		}
	}
	_, err = e.RecordRemainingPayment(ctx, 10, 2, blockID, 100, str("cash"))
	require.ErrorAs(t, err, &nf)

	// Unknown reservation id.
	_, err = e.RecordRemainingPayment(ctx, 10, 1, 9999, 100, str("cash"))
	require.ErrorAs(t, err, &nf)

	// Empty method string is rejected outright.
	_, err = e.RecordRemainingPayment(ctx, 10, 1, blockID, 100, str(""))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
