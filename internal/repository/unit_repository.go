package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/chalet-reservation/internal/booking"
	"github.com/iliyamo/chalet-reservation/internal/model"
)

// UnitRepo provides CRUD operations for units (rentable chalets).
// All timestamp fields are stored in UTC; check-in/check-out style
// DATE columns elsewhere reference units by id.
type UnitRepo struct {
	db *sql.DB
}

// NewUnitRepo returns a new UnitRepo bound to the given database.
func NewUnitRepo(db *sql.DB) *UnitRepo { return &UnitRepo{db: db} }

// DB exposes the underlying handle so handlers can open
// transactions spanning multiple repositories.
func (r *UnitRepo) DB() *sql.DB { return r.db }

const unitColumns = `id, owner_id, name, description, capacity,
	weekday_price_cents, weekend_price_cents, is_active, created_at, updated_at`

// scanUnit scans one row into a model.Unit.  The weekend rate is
// nullable; every other column is required.
func scanUnit(row interface{ Scan(...any) error }) (*model.Unit, error) {
	var u model.Unit
	var weekend sql.NullInt64
	if err := row.Scan(
		&u.ID, &u.OwnerID, &u.Name, &u.Description, &u.Capacity,
		&u.WeekdayPriceCents, &weekend, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if weekend.Valid {
		w := uint32(weekend.Int64)
		u.WeekendPriceCents = &w
	}
	return &u, nil
}

// GetByID loads a unit or returns booking.ErrUnitNotFound.
func (r *UnitRepo) GetByID(ctx context.Context, id uint64) (*model.Unit, error) {
	const q = `SELECT ` + unitColumns + ` FROM units WHERE id = ?`
	u, err := scanUnit(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, booking.ErrUnitNotFound
	}
	return u, err
}

// ListActive returns every unit currently accepting reservations,
// newest first.  Customers browse this list.
func (r *UnitRepo) ListActive(ctx context.Context) ([]model.Unit, error) {
	const q = `SELECT ` + unitColumns + ` FROM units WHERE is_active = 1 ORDER BY created_at DESC`
	return r.list(ctx, q)
}

// ListByOwner returns every unit owned by the given user, active or
// not, newest first.
func (r *UnitRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Unit, error) {
	const q = `SELECT ` + unitColumns + ` FROM units WHERE owner_id = ? ORDER BY created_at DESC`
	return r.list(ctx, q, ownerID)
}

func (r *UnitRepo) list(ctx context.Context, q string, args ...any) ([]model.Unit, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	units := make([]model.Unit, 0)
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, *u)
	}
	return units, rows.Err()
}

// Create inserts a new unit and populates its generated ID and
// timestamps.
func (r *UnitRepo) Create(ctx context.Context, u *model.Unit) error {
	const q = `INSERT INTO units (owner_id, name, description, capacity,
		weekday_price_cents, weekend_price_cents, is_active) VALUES (?,?,?,?,?,?,?)`
	var weekend any
	if u.WeekendPriceCents != nil {
		weekend = *u.WeekendPriceCents
	}
	res, err := r.db.ExecContext(ctx, q,
		u.OwnerID, u.Name, u.Description, u.Capacity,
		u.WeekdayPriceCents, weekend, u.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM units WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, u.ID).Scan(&u.CreatedAt, &u.UpdatedAt)
}

// Update rewrites the mutable columns of an existing unit.  Rate
// changes affect future quotes only; existing reservations keep the
// total stamped at creation.
func (r *UnitRepo) Update(ctx context.Context, u *model.Unit) error {
	const q = `UPDATE units SET name = ?, description = ?, capacity = ?,
		weekday_price_cents = ?, weekend_price_cents = ?, is_active = ? WHERE id = ?`
	var weekend any
	if u.WeekendPriceCents != nil {
		weekend = *u.WeekendPriceCents
	}
	res, err := r.db.ExecContext(ctx, q,
		u.Name, u.Description, u.Capacity,
		u.WeekdayPriceCents, weekend, u.IsActive, u.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the unit is gone or nothing changed; distinguish by
		// re-reading so callers get a proper not-found.
		if _, err := r.GetByID(ctx, u.ID); err != nil {
			return err
		}
	}
	return nil
}
