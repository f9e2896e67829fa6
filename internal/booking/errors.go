package booking

import (
	"errors"
	"fmt"
	"time"
)

// The engine reports failures through a small typed taxonomy so
// that handlers can translate them into HTTP responses without
// inspecting error strings:
//
//  ValidationError – malformed input (inverted or zero-length range,
//                    past dates, missing required metadata).  Never
//                    retried.
//  ConflictError   – the requested range overlaps an existing active
//                    reservation.  Expected, user-facing; the caller
//                    should offer different dates.
//  NotFoundError   – a referenced unit or reservation does not exist,
//                    or a block-only operation targeted a reservation
//                    that is not BLOCKED.
//  StorageFault    – transient persistence failure.  The caller may
//                    retry the whole operation from scratch; the
//                    wrapped driver error is never shown to end users.
//
// ErrForbidden is a plain sentinel for capability failures; it maps
// to 403 and carries no detail.

// ErrForbidden is returned when the acting user lacks the capability
// required for the operation (e.g. blocking days on a unit they do
// not manage).
var ErrForbidden = errors.New("forbidden")

// ValidationError reports malformed caller input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

// ConflictError reports that a requested range overlaps an active
// reservation on the same unit.
type ConflictError struct {
	UnitID   uint64
	CheckIn  time.Time
	CheckOut time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: unit %d already booked in [%s, %s)",
		e.UnitID, FormatDate(e.CheckIn), FormatDate(e.CheckOut))
}

// NotFoundError reports a missing unit or reservation.
type NotFoundError struct {
	Resource string // "unit" or "reservation"
	ID       uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// StorageFault wraps a transient storage-layer error.  Unwrap
// exposes the underlying driver error for logging.
type StorageFault struct {
	Op  string
	Err error
}

func (e *StorageFault) Error() string { return "storage: " + e.Op + ": " + e.Err.Error() }

func (e *StorageFault) Unwrap() error { return e.Err }

// storageFault wraps err unless it already belongs to the engine's
// taxonomy, in which case it is passed through unchanged.
func storageFault(op string, err error) error {
	var ve *ValidationError
	var ce *ConflictError
	var nf *NotFoundError
	if errors.As(err, &ve) || errors.As(err, &ce) || errors.As(err, &nf) || errors.Is(err, ErrForbidden) {
		return err
	}
	return &StorageFault{Op: op, Err: err}
}
