package booking

import "github.com/iliyamo/chalet-reservation/internal/model"

// Capability answers whether an actor may read or manage a unit.
// The engine receives it as a dependency instead of inspecting role
// strings itself, which keeps the core decoupled from the identity
// system: any authorization scheme that can answer these two
// questions can drive the engine.
type Capability interface {
	// CanReadUnit reports whether the actor may view the unit's
	// calendar and reservations.
	CanReadUnit(actorID uint64, unit *model.Unit) bool
	// CanManageUnit reports whether the actor may block days, release
	// blocks and change reservation statuses on the unit.
	CanManageUnit(actorID uint64, unit *model.Unit) bool
}

// OwnerCapability is the default Capability: the unit's owner may
// manage it and anyone may read it.  The JWT middleware has already
// authenticated the actor by the time the engine runs.
type OwnerCapability struct{}

// CanReadUnit always returns true; unit calendars are public.
func (OwnerCapability) CanReadUnit(uint64, *model.Unit) bool { return true }

// CanManageUnit returns true only for the unit's owner.
func (OwnerCapability) CanManageUnit(actorID uint64, unit *model.Unit) bool {
	return unit != nil && unit.OwnerID == actorID
}
