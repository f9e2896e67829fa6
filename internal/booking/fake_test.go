package booking

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/chalet-reservation/internal/model"
)

// fakeStore is an in-memory Store used by the engine tests.  It
// mirrors the SQL implementation's semantics: the overlap re-check
// happens inside the insert under a single lock, active statuses
// are PENDING/CONFIRMED/BLOCKED, and block deletes match BLOCKED
// rows by check-in day only.
type fakeStore struct {
	mu           sync.Mutex
	units        map[uint64]*model.Unit
	reservations map[uint64]*model.Reservation
	nextID       uint64
	failWith     error // when set, every call fails with this error
}

func newFakeStore(units ...*model.Unit) *fakeStore {
	s := &fakeStore{
		units:        make(map[uint64]*model.Unit),
		reservations: make(map[uint64]*model.Reservation),
	}
	for _, u := range units {
		s.units[u.ID] = u
	}
	return s
}

func (s *fakeStore) UnitByID(_ context.Context, unitID uint64) (*model.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	u, ok := s.units[unitID]
	if !ok {
		return nil, ErrUnitNotFound
	}
	return u, nil
}

func (s *fakeStore) ActiveReservations(_ context.Context, unitID uint64, from time.Time) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []model.Reservation
	for _, r := range s.reservations {
		if r.UnitID == unitID && r.IsActive() && !r.CheckOut.Before(Day(from)) {
			out = append(out, *r)
		}
	}
	return out, nil
}

// overlapsActiveLocked reports whether [checkIn, checkOut) collides
// with any active reservation on the unit.  Caller holds s.mu.
func (s *fakeStore) overlapsActiveLocked(unitID uint64, checkIn, checkOut time.Time) bool {
	for _, r := range s.reservations {
		if r.UnitID == unitID && r.IsActive() && Overlaps(r.CheckIn, r.CheckOut, checkIn, checkOut) {
			return true
		}
	}
	return false
}

func (s *fakeStore) InsertReservation(_ context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.units[res.UnitID]; !ok {
		return ErrUnitNotFound
	}
	if s.overlapsActiveLocked(res.UnitID, res.CheckIn, res.CheckOut) {
		return ErrDatesTaken
	}
	s.nextID++
	res.ID = s.nextID
	res.CreatedAt = time.Now().UTC()
	res.UpdatedAt = res.CreatedAt
	cp := *res
	s.reservations[res.ID] = &cp
	return nil
}

func (s *fakeStore) InsertBlocks(_ context.Context, unitID uint64, blocks []*model.Reservation) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}
	created := 0
	for _, b := range blocks {
		if s.overlapsActiveLocked(unitID, b.CheckIn, b.CheckOut) {
			continue
		}
		s.nextID++
		b.ID = s.nextID
		b.CreatedAt = time.Now().UTC()
		b.UpdatedAt = b.CreatedAt
		cp := *b
		s.reservations[b.ID] = &cp
		created++
	}
	return created, nil
}

func (s *fakeStore) DeleteBlocks(_ context.Context, unitID uint64, dates []time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}
	want := NewDateSet(dates...)
	deleted := 0
	for id, r := range s.reservations {
		if r.UnitID == unitID && r.IsBlock() && want.Has(r.CheckIn) {
			delete(s.reservations, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *fakeStore) ReservationByID(_ context.Context, id uint64) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	r, ok := s.reservations[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeStore) UpdateReservationStatus(_ context.Context, id uint64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	r, ok := s.reservations[id]
	if !ok {
		return ErrReservationNotFound
	}
	r.Status = status
	r.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *fakeStore) UpdateRemainingPayment(_ context.Context, id uint64, remainingCents uint32, method *string, collected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	r, ok := s.reservations[id]
	if !ok || !r.IsBlock() {
		return ErrReservationNotFound
	}
	r.RemainingCents = &remainingCents
	r.RemainingMethod = method
	r.RemainingCollected = collected
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// countingInvalidator records cache invalidations per unit.
type countingInvalidator struct {
	mu    sync.Mutex
	calls map[uint64]int
}

func newCountingInvalidator() *countingInvalidator {
	return &countingInvalidator{calls: make(map[uint64]int)}
}

func (c *countingInvalidator) Invalidate(_ context.Context, unitID uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[unitID]++
}

// Test fixtures shared across the engine tests.

func cents(v uint32) *uint32 { return &v }

func str(v string) *string { return &v }

func testUnit() *model.Unit {
	return &model.Unit{
		ID:                1,
		OwnerID:           10,
		Name:              "Pine Chalet",
		Capacity:          8,
		WeekdayPriceCents: 600,
		WeekendPriceCents: cents(800),
		IsActive:          true,
	}
}

// newTestEngine wires an engine to a fake store with a fixed clock
// so past-date validation is deterministic.
func newTestEngine(store *fakeStore, today string) (*Engine, *countingInvalidator) {
	inv := newCountingInvalidator()
	e := New(store, OwnerCapability{}, inv)
	now, err := ParseDate(today)
	if err != nil {
		panic(err)
	}
	e.now = func() time.Time { return now }
	return e, inv
}

func mustDate(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
