package repository

import (
	"context"
	"time"

	"github.com/iliyamo/chalet-reservation/internal/model"
)

// Store glues the unit and reservation repositories into the single
// persistence boundary the booking engine expects
// (booking.Store).  It exists so the engine depends on one
// interface while each repository keeps its own table.
type Store struct {
	Units        *UnitRepo
	Reservations *ReservationRepo
}

// NewStore returns a Store over the two repositories.
func NewStore(units *UnitRepo, reservations *ReservationRepo) *Store {
	if units == nil || reservations == nil {
		panic("nil repository passed to NewStore")
	}
	return &Store{Units: units, Reservations: reservations}
}

func (s *Store) UnitByID(ctx context.Context, unitID uint64) (*model.Unit, error) {
	return s.Units.GetByID(ctx, unitID)
}

func (s *Store) ActiveReservations(ctx context.Context, unitID uint64, from time.Time) ([]model.Reservation, error) {
	return s.Reservations.ActiveReservations(ctx, unitID, from)
}

func (s *Store) InsertReservation(ctx context.Context, res *model.Reservation) error {
	return s.Reservations.InsertReservation(ctx, res)
}

func (s *Store) InsertBlocks(ctx context.Context, unitID uint64, blocks []*model.Reservation) (int, error) {
	return s.Reservations.InsertBlocks(ctx, unitID, blocks)
}

func (s *Store) DeleteBlocks(ctx context.Context, unitID uint64, dates []time.Time) (int, error) {
	return s.Reservations.DeleteBlocks(ctx, unitID, dates)
}

func (s *Store) ReservationByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	return s.Reservations.ReservationByID(ctx, id)
}

func (s *Store) UpdateReservationStatus(ctx context.Context, id uint64, status string) error {
	return s.Reservations.UpdateReservationStatus(ctx, id, status)
}

func (s *Store) UpdateRemainingPayment(ctx context.Context, id uint64, remainingCents uint32, method *string, collected bool) error {
	return s.Reservations.UpdateRemainingPayment(ctx, id, remainingCents, method, collected)
}
