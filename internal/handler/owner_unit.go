package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chalet-reservation/internal/booking"
	"github.com/iliyamo/chalet-reservation/internal/model"
	"github.com/iliyamo/chalet-reservation/internal/repository"
)

// OwnerUnitHandler serves unit management for authenticated owners.
type OwnerUnitHandler struct {
	Units *repository.UnitRepo
}

func NewOwnerUnitHandler(units *repository.UnitRepo) *OwnerUnitHandler {
	return &OwnerUnitHandler{Units: units}
}

type createUnitReq struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Capacity          uint32  `json:"capacity"`
	WeekdayPriceCents uint32  `json:"weekday_price_cents"`
	WeekendPriceCents *uint32 `json:"weekend_price_cents"`
	IsActive          *bool   `json:"is_active"` // default true on create
}

func (r *createUnitReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name is required"
	}
	if r.Capacity == 0 {
		return "capacity must be positive"
	}
	if r.WeekdayPriceCents == 0 {
		return "weekday_price_cents must be positive"
	}
	if r.WeekendPriceCents != nil && *r.WeekendPriceCents == 0 {
		return "weekend_price_cents must be positive when set"
	}
	return ""
}

// Create lists a new unit owned by the caller.
func (h *OwnerUnitHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createUnitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	u := &model.Unit{
		OwnerID:           uid,
		Name:              strings.TrimSpace(req.Name),
		Description:       req.Description,
		Capacity:          req.Capacity,
		WeekdayPriceCents: req.WeekdayPriceCents,
		WeekendPriceCents: req.WeekendPriceCents,
		IsActive:          true,
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if err := h.Units.Create(c.Request().Context(), u); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create unit failed"})
	}
	return c.JSON(http.StatusCreated, toUnitResp(u))
}

// Update rewrites a unit the caller owns.  Partial updates: absent
// fields keep their current value, so rate and availability changes
// do not require resending the whole record.
func (h *OwnerUnitHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit id"})
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	u, err := h.Units.GetByID(ctx, id)
	if err != nil {
		if err == booking.ErrUnitNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unit not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if u.OwnerID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var req struct {
		Name              *string `json:"name"`
		Description       *string `json:"description"`
		Capacity          *uint32 `json:"capacity"`
		WeekdayPriceCents *uint32 `json:"weekday_price_cents"`
		WeekendPriceCents *uint32 `json:"weekend_price_cents"`
		ClearWeekendPrice bool    `json:"clear_weekend_price"`
		IsActive          *bool   `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must not be empty"})
		}
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		u.Description = *req.Description
	}
	if req.Capacity != nil {
		if *req.Capacity == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be positive"})
		}
		u.Capacity = *req.Capacity
	}
	if req.WeekdayPriceCents != nil {
		if *req.WeekdayPriceCents == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "weekday_price_cents must be positive"})
		}
		u.WeekdayPriceCents = *req.WeekdayPriceCents
	}
	if req.WeekendPriceCents != nil {
		if *req.WeekendPriceCents == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "weekend_price_cents must be positive when set"})
		}
		u.WeekendPriceCents = req.WeekendPriceCents
	} else if req.ClearWeekendPrice {
		u.WeekendPriceCents = nil
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := h.Units.Update(ctx, u); err != nil {
		if err == booking.ErrUnitNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unit not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update unit failed"})
	}
	return c.JSON(http.StatusOK, toUnitResp(u))
}

// ListMine returns every unit the caller owns, inactive included.
func (h *OwnerUnitHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	units, err := h.Units.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]unitResp, 0, len(units))
	for i := range units {
		out = append(out, toUnitResp(&units[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"units": out})
}
