package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chalet-reservation/internal/booking"
	"github.com/iliyamo/chalet-reservation/internal/cache"
	"github.com/iliyamo/chalet-reservation/internal/model"
	"github.com/iliyamo/chalet-reservation/internal/repository"
)

// PublicHandler serves the unauthenticated browse surface: the unit
// catalogue and per-unit occupancy calendars.
type PublicHandler struct {
	Units  *repository.UnitRepo
	Engine *booking.Engine
	Cache  *cache.OccupancyCache
}

func NewPublicHandler(units *repository.UnitRepo, engine *booking.Engine, occ *cache.OccupancyCache) *PublicHandler {
	return &PublicHandler{Units: units, Engine: engine, Cache: occ}
}

// unitResp is the public unit representation.  Prices are cents so
// clients never deal in floats.
type unitResp struct {
	ID                uint64  `json:"id"`
	OwnerID           uint64  `json:"owner_id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Capacity          uint32  `json:"capacity"`
	WeekdayPriceCents uint32  `json:"weekday_price_cents"`
	WeekendPriceCents *uint32 `json:"weekend_price_cents,omitempty"`
	IsActive          bool    `json:"is_active"`
}

func toUnitResp(u *model.Unit) unitResp {
	return unitResp{
		ID:                u.ID,
		OwnerID:           u.OwnerID,
		Name:              u.Name,
		Description:       u.Description,
		Capacity:          u.Capacity,
		WeekdayPriceCents: u.WeekdayPriceCents,
		WeekendPriceCents: u.WeekendPriceCents,
		IsActive:          u.IsActive,
	}
}

// occupancyResp is the calendar payload: the same facts twice, as
// two flat date lists for simple clients and as per-day entries with
// their source for richer ones.
type occupancyResp struct {
	UnitID       uint64                `json:"unit_id"`
	From         string                `json:"from"`
	CustomerDays []string              `json:"customer_days"`
	BlockedDays  []string              `json:"blocked_days"`
	Days         []booking.OccupiedDay `json:"days"`
}

// ListUnits returns every active unit.
func (h *PublicHandler) ListUnits(c echo.Context) error {
	units, err := h.Units.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]unitResp, 0, len(units))
	for i := range units {
		out = append(out, toUnitResp(&units[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"units": out})
}

// GetUnit returns one unit by id.
func (h *PublicHandler) GetUnit(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit id"})
	}
	u, err := h.Units.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == booking.ErrUnitNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unit not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toUnitResp(u))
}

// GetOccupancy returns the unit's occupied days from the given day
// onward (today when the from query parameter is absent).  Responses
// are cached per (unit, from); any reservation write on the unit
// invalidates every cached entry for it before the write returns.
func (h *PublicHandler) GetOccupancy(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit id"})
	}
	ctx := c.Request().Context()

	fromStr := c.QueryParam("from")
	var from = booking.Day(timeNow())
	if fromStr != "" {
		d, err := booking.ParseDate(fromStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from date, want YYYY-MM-DD"})
		}
		from = d
	}
	key := booking.FormatDate(from)

	if h.Cache != nil {
		if payload, ok := h.Cache.Get(ctx, id, key); ok {
			c.Response().Header().Set("X-Cache", "HIT")
			return c.JSONBlob(http.StatusOK, payload)
		}
	}

	occ, err := h.Engine.Occupancy(ctx, id, from)
	if err != nil {
		return bookingError(c, err)
	}
	days, err := h.Engine.OccupiedDays(ctx, id, from)
	if err != nil {
		return bookingError(c, err)
	}
	resp := occupancyResp{
		UnitID:       id,
		From:         key,
		CustomerDays: occ.Customer.Strings(),
		BlockedDays:  occ.Blocked.Strings(),
		Days:         days,
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "encode failed"})
	}
	if h.Cache != nil {
		h.Cache.Set(ctx, id, key, payload)
		c.Response().Header().Set("X-Cache", "MISS")
	}
	return c.JSONBlob(http.StatusOK, payload)
}
