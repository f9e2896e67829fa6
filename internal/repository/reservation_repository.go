package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/chalet-reservation/internal/booking"
	"github.com/iliyamo/chalet-reservation/internal/model"
)

// ReservationRepo persists reservations and owner blocks.  Dates
// are stored in DATE columns as calendar days; every range is
// half-open with an exclusive check-out.  The write paths that
// decide availability (InsertReservation, InsertBlocks) serialize
// per unit by pinning the unit row with SELECT ... FOR UPDATE
// inside one transaction, so a concurrent check-then-insert on the
// same unit waits for the first to commit and then re-checks
// against the committed state.  That is what keeps the no-overlap
// invariant true under concurrent requests.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the
// given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, unit_id, holder_id, check_in, check_out, guest_count,
	total_price_cents, status, notes, guest_name, guest_phone, payment_method,
	deposit_cents, remaining_cents, remaining_method, remaining_collected,
	created_at, updated_at`

// activeStatusSet is the SQL IN-list of statuses that occupy
// calendar space.  It must stay in sync with model.ActiveStatuses.
const activeStatusSet = `('PENDING','CONFIRMED','BLOCKED')`

// scanReservation scans one row into a model.Reservation,
// normalizing the DATE columns to midnight UTC.
func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var res model.Reservation
	var notes, guestName, guestPhone, payMethod, remMethod sql.NullString
	var deposit, remaining sql.NullInt64
	if err := row.Scan(
		&res.ID, &res.UnitID, &res.HolderID, &res.CheckIn, &res.CheckOut, &res.GuestCount,
		&res.TotalPriceCents, &res.Status, &notes, &guestName, &guestPhone, &payMethod,
		&deposit, &remaining, &remMethod, &res.RemainingCollected,
		&res.CreatedAt, &res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	res.CheckIn = booking.Day(res.CheckIn)
	res.CheckOut = booking.Day(res.CheckOut)
	if notes.Valid {
		res.Notes = notes.String
	}
	if guestName.Valid {
		v := guestName.String
		res.GuestName = &v
	}
	if guestPhone.Valid {
		v := guestPhone.String
		res.GuestPhone = &v
	}
	if payMethod.Valid {
		v := payMethod.String
		res.PaymentMethod = &v
	}
	if deposit.Valid {
		v := uint32(deposit.Int64)
		res.DepositCents = &v
	}
	if remaining.Valid {
		v := uint32(remaining.Int64)
		res.RemainingCents = &v
	}
	if remMethod.Valid {
		v := remMethod.String
		res.RemainingMethod = &v
	}
	return &res, nil
}

// ActiveReservations returns every active reservation on the unit
// whose check-out falls on or after from.
func (r *ReservationRepo) ActiveReservations(ctx context.Context, unitID uint64, from time.Time) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE unit_id = ? AND status IN ` + activeStatusSet + ` AND check_out >= ?
		ORDER BY check_in`
	return r.listReservations(ctx, q, unitID, booking.FormatDate(from))
}

// lockUnitTx pins the unit row for the duration of the transaction.
// Concurrent writers on the same unit queue behind this lock, which
// makes the following check-then-insert atomic per unit.
func lockUnitTx(ctx context.Context, tx *sql.Tx, unitID uint64) error {
	var id uint64
	err := tx.QueryRowContext(ctx, `SELECT id FROM units WHERE id = ? FOR UPDATE`, unitID).Scan(&id)
	if err == sql.ErrNoRows {
		return booking.ErrUnitNotFound
	}
	return err
}

// overlapExistsTx runs the half-open interval overlap test against
// active reservations inside the transaction:
// existing.check_in < checkOut AND existing.check_out > checkIn.
func overlapExistsTx(ctx context.Context, tx *sql.Tx, unitID uint64, checkIn, checkOut time.Time) (bool, error) {
	const q = `SELECT EXISTS(
		SELECT 1 FROM reservations
		WHERE unit_id = ? AND status IN ` + activeStatusSet + `
		  AND check_in < ? AND check_out > ?)`
	var exists bool
	err := tx.QueryRowContext(ctx, q, unitID,
		booking.FormatDate(checkOut), booking.FormatDate(checkIn)).Scan(&exists)
	return exists, err
}

// insertTx writes one reservation row and populates its ID and
// timestamps from the committed defaults.
func insertTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (unit_id, holder_id, check_in, check_out,
		guest_count, total_price_cents, status, notes, guest_name, guest_phone,
		payment_method, deposit_cents, remaining_cents, remaining_method, remaining_collected)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	var deposit, remaining any
	if res.DepositCents != nil {
		deposit = *res.DepositCents
	}
	if res.RemainingCents != nil {
		remaining = *res.RemainingCents
	}
	result, err := tx.ExecContext(ctx, q,
		res.UnitID, res.HolderID,
		booking.FormatDate(res.CheckIn), booking.FormatDate(res.CheckOut),
		res.GuestCount, res.TotalPriceCents, res.Status, res.Notes,
		res.GuestName, res.GuestPhone, res.PaymentMethod,
		deposit, remaining, res.RemainingMethod, res.RemainingCollected)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// InsertReservation atomically re-checks the overlap test for the
// reservation's range and inserts it.  It returns
// booking.ErrDatesTaken when the range is no longer free.
func (r *ReservationRepo) InsertReservation(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := lockUnitTx(ctx, tx, res.UnitID); err != nil {
		return err
	}
	taken, err := overlapExistsTx(ctx, tx, res.UnitID, res.CheckIn, res.CheckOut)
	if err != nil {
		return err
	}
	if taken {
		return booking.ErrDatesTaken
	}
	if err := insertTx(ctx, tx, res); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// InsertBlocks inserts one single-night BLOCKED row per entry under
// the unit lock, skipping entries whose night is occupied at commit
// time, and returns the number created.  A skipped night is a
// success-path outcome, not an error.
func (r *ReservationRepo) InsertBlocks(ctx context.Context, unitID uint64, blocks []*model.Reservation) (int, error) {
	if len(blocks) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := lockUnitTx(ctx, tx, unitID); err != nil {
		return 0, err
	}
	created := 0
	for _, b := range blocks {
		taken, err := overlapExistsTx(ctx, tx, unitID, b.CheckIn, b.CheckOut)
		if err != nil {
			return 0, err
		}
		if taken {
			continue
		}
		if err := insertTx(ctx, tx, b); err != nil {
			return 0, err
		}
		created++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return created, nil
}

// DeleteBlocks removes BLOCKED rows on the unit whose check-in
// matches one of the given days and returns the number deleted.
// Days with no block simply do not match; that is the documented
// idempotent success path, not an error.
func (r *ReservationRepo) DeleteBlocks(ctx context.Context, unitID uint64, dates []time.Time) (int, error) {
	if len(dates) == 0 {
		return 0, nil
	}
	placeholders := make([]string, 0, len(dates))
	args := make([]any, 0, len(dates)+1)
	args = append(args, unitID)
	for _, d := range dates {
		placeholders = append(placeholders, "?")
		args = append(args, booking.FormatDate(d))
	}
	q := `DELETE FROM reservations WHERE unit_id = ? AND status = 'BLOCKED'
		AND check_in IN (` + strings.Join(placeholders, ",") + `)`
	result, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}

// ReservationByID loads one reservation or returns
// booking.ErrReservationNotFound.
func (r *ReservationRepo) ReservationByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, booking.ErrReservationNotFound
	}
	return res, err
}

// UpdateReservationStatus sets the status column of an existing
// reservation.
func (r *ReservationRepo) UpdateReservationStatus(ctx context.Context, id uint64, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// No row changed: either the id is unknown or the status
		// already matched.  Re-read to tell the two apart.
		if _, err := r.ReservationByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// UpdateRemainingPayment stores the remaining-payment fields of a
// BLOCKED reservation.  The status predicate in the UPDATE keeps
// non-block rows untouchable even when the caller raced a release.
func (r *ReservationRepo) UpdateRemainingPayment(ctx context.Context, id uint64, remainingCents uint32, method *string, collected bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET remaining_cents = ?, remaining_method = ?, remaining_collected = ?
		 WHERE id = ? AND status = 'BLOCKED'`,
		remainingCents, method, collected, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		res, err := r.ReservationByID(ctx, id)
		if err != nil {
			return err
		}
		if !res.IsBlock() {
			return booking.ErrReservationNotFound
		}
	}
	return nil
}

// ListByHolder returns every reservation created by the given user,
// newest first, for the customer's own listing endpoint.  Blocks
// are excluded; owners audit those through ListByUnit.
func (r *ReservationRepo) ListByHolder(ctx context.Context, holderID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
		FROM reservations WHERE holder_id = ? AND status <> 'BLOCKED'
		ORDER BY created_at DESC`
	return r.listReservations(ctx, q, holderID)
}

// ListByUnit returns every reservation on the unit, blocks
// included, newest first.
func (r *ReservationRepo) ListByUnit(ctx context.Context, unitID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
		FROM reservations WHERE unit_id = ?
		ORDER BY created_at DESC`
	return r.listReservations(ctx, q, unitID)
}

func (r *ReservationRepo) listReservations(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}
