// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types published to the reservation.events queue.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"
	EventStatusChanged        = "reservation.status_changed"
	EventDatesBlocked         = "dates.blocked"
	EventDatesUnblocked       = "dates.unblocked"
)

// ReservationEvent is published after every successful calendar write.
// It carries enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
// Dates use the YYYY-MM-DD wire format; Dates is only set for block
// and unblock events, and Status only for status changes.
type ReservationEvent struct {
	Type            string   `json:"type"`
	ReservationID   uint64   `json:"reservation_id,omitempty"`
	UnitID          uint64   `json:"unit_id"`
	UnitName        string   `json:"unit_name,omitempty"`
	ActorID         uint64   `json:"actor_id"`
	CheckIn         string   `json:"check_in,omitempty"`
	CheckOut        string   `json:"check_out,omitempty"`
	Dates           []string `json:"dates,omitempty"`
	Status          string   `json:"status,omitempty"`
	TotalPriceCents uint32   `json:"total_price_cents,omitempty"`
	OccurredAt      string   `json:"occurred_at"`
}
