package booking

import (
	"encoding/json"
	"time"
)

// Source identifies who holds an occupied night.
type Source string

const (
	// SourceCustomer marks a night held by a paying guest's
	// reservation (PENDING or CONFIRMED).
	SourceCustomer Source = "CUSTOMER"
	// SourceOwnerBlock marks a night the owner blocked for an
	// off-platform guest or maintenance.
	SourceOwnerBlock Source = "OWNER_BLOCK"
)

// OccupiedDay is one (unit, night) occupancy fact.  It is produced
// by expanding an active reservation's half-open range into
// individual nights; because active reservations never overlap,
// each night maps to at most one reservation and thus one source.
type OccupiedDay struct {
	UnitID uint64    `json:"unit_id"`
	Date   time.Time `json:"date"`
	Source Source    `json:"source"`
}

// MarshalJSON renders the date in the YYYY-MM-DD wire format instead
// of a full RFC 3339 timestamp.
func (d OccupiedDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		UnitID uint64 `json:"unit_id"`
		Date   string `json:"date"`
		Source Source `json:"source"`
	}{UnitID: d.UnitID, Date: FormatDate(d.Date), Source: d.Source})
}
