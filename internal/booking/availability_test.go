package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupancyEmptyUnit(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")

	occ, err := e.Occupancy(context.Background(), 1, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 0, occ.Customer.Len())
	assert.Equal(t, 0, occ.Blocked.Len())
}

func TestOccupancyUnknownUnit(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")

	_, err := e.Occupancy(context.Background(), 99, time.Time{})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestOccupancyPartition(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	_, err := e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-03-10"), CheckOut: mustDate("2024-03-13"), GuestCount: 2})
	require.NoError(t, err)
	created, err := e.BlockDates(ctx, BlockRequest{UnitID: 1, ActorID: 10, Dates: []time.Time{mustDate("2024-03-13"), mustDate("2024-03-14")}})
	require.NoError(t, err)
	require.Equal(t, 2, created)

	occ, err := e.Occupancy(ctx, 1, mustDate("2024-03-01"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-10", "2024-03-11", "2024-03-12"}, occ.Customer.Strings())
	assert.Equal(t, []string{"2024-03-13", "2024-03-14"}, occ.Blocked.Strings())

	// Partitions are disjoint and their union covers every held night.
	for d := range occ.Customer {
		assert.False(t, occ.Blocked.Has(d))
	}
	assert.Equal(t, 5, occ.All().Len())
}

func TestOccupancyExcludesStaleAndInactive(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	past, err := e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-03-05"), CheckOut: mustDate("2024-03-08"), GuestCount: 2})
	require.NoError(t, err)
	cancelled, err := e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-03-20"), CheckOut: mustDate("2024-03-22"), GuestCount: 2})
	require.NoError(t, err)
	_, err = e.SetStatus(ctx, 10, cancelled.ID, "CANCELLED")
	require.NoError(t, err)

	// A later "today" hides the finished stay without deleting it.
	e.now = func() time.Time { return mustDate("2024-04-01") }
	occ, err := e.Occupancy(ctx, 1, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 0, occ.Customer.Len())
	_, err = store.ReservationByID(ctx, past.ID)
	assert.NoError(t, err, "stale reservations are excluded from the view, not deleted")
}

func TestOccupiedDaysFlattensCalendar(t *testing.T) {
	store := newFakeStore(testUnit())
	e, _ := newTestEngine(store, "2024-03-01")
	ctx := context.Background()

	_, err := e.CreateReservation(ctx, CreateRequest{UnitID: 1, HolderID: 42, CheckIn: mustDate("2024-03-10"), CheckOut: mustDate("2024-03-12"), GuestCount: 2})
	require.NoError(t, err)
	_, err = e.BlockDates(ctx, BlockRequest{UnitID: 1, ActorID: 10, Dates: []time.Time{mustDate("2024-03-15")}})
	require.NoError(t, err)

	days, err := e.OccupiedDays(ctx, 1, mustDate("2024-03-01"))
	require.NoError(t, err)
	require.Len(t, days, 3)
	sources := map[string]Source{}
	for _, d := range days {
		assert.Equal(t, uint64(1), d.UnitID)
		sources[FormatDate(d.Date)] = d.Source
	}
	assert.Equal(t, SourceCustomer, sources["2024-03-10"])
	assert.Equal(t, SourceCustomer, sources["2024-03-11"])
	assert.Equal(t, SourceOwnerBlock, sources["2024-03-15"])
}
