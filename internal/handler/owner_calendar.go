package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chalet-reservation/internal/booking"
	"github.com/iliyamo/chalet-reservation/internal/model"
	"github.com/iliyamo/chalet-reservation/internal/queue"
	"github.com/iliyamo/chalet-reservation/internal/repository"
)

// OwnerCalendarHandler serves the owner's calendar management:
// blocking and releasing days, recording the remaining payment of an
// off-platform guest, auditing a unit's reservations and driving
// customer reservation statuses.
type OwnerCalendarHandler struct {
	Engine       *booking.Engine
	Units        *repository.UnitRepo
	Reservations *repository.ReservationRepo
}

func NewOwnerCalendarHandler(engine *booking.Engine, units *repository.UnitRepo, reservations *repository.ReservationRepo) *OwnerCalendarHandler {
	return &OwnerCalendarHandler{Engine: engine, Units: units, Reservations: reservations}
}

type blockReq struct {
	Dates          []string `json:"dates"` // YYYY-MM-DD, one block row per date
	GuestName      *string  `json:"guest_name"`
	GuestPhone     *string  `json:"guest_phone"`
	PaymentMethod  *string  `json:"payment_method"`
	DepositCents   *uint32  `json:"deposit_cents"`
	RemainingCents *uint32  `json:"remaining_cents"`
	Notes          string   `json:"notes"`
}

type unblockReq struct {
	Dates []string `json:"dates"`
}

// ownerReservationResp is the owner-facing reservation shape; unlike
// the customer view it includes the holder and, for blocks, the
// off-platform guest and payment metadata.
type ownerReservationResp struct {
	ID                 uint64  `json:"id"`
	UnitID             uint64  `json:"unit_id"`
	HolderID           uint64  `json:"holder_id"`
	CheckIn            string  `json:"check_in"`
	CheckOut           string  `json:"check_out"`
	GuestCount         uint32  `json:"guest_count"`
	TotalPriceCents    uint32  `json:"total_price_cents"`
	Status             string  `json:"status"`
	Notes              string  `json:"notes,omitempty"`
	GuestName          *string `json:"guest_name,omitempty"`
	GuestPhone         *string `json:"guest_phone,omitempty"`
	PaymentMethod      *string `json:"payment_method,omitempty"`
	DepositCents       *uint32 `json:"deposit_cents,omitempty"`
	RemainingCents     *uint32 `json:"remaining_cents,omitempty"`
	RemainingMethod    *string `json:"remaining_method,omitempty"`
	RemainingCollected bool    `json:"remaining_collected"`
}

func toOwnerReservationResp(r *model.Reservation) ownerReservationResp {
	return ownerReservationResp{
		ID:                 r.ID,
		UnitID:             r.UnitID,
		HolderID:           r.HolderID,
		CheckIn:            booking.FormatDate(r.CheckIn),
		CheckOut:           booking.FormatDate(r.CheckOut),
		GuestCount:         r.GuestCount,
		TotalPriceCents:    r.TotalPriceCents,
		Status:             r.Status,
		Notes:              r.Notes,
		GuestName:          r.GuestName,
		GuestPhone:         r.GuestPhone,
		PaymentMethod:      r.PaymentMethod,
		DepositCents:       r.DepositCents,
		RemainingCents:     r.RemainingCents,
		RemainingMethod:    r.RemainingMethod,
		RemainingCollected: r.RemainingCollected,
	}
}

// Block creates one single-night BLOCKED row per requested free day
// on the unit.  Occupied days are skipped, not errors; the response
// reports how many rows were actually created so the owner's UI can
// show the difference.
func (h *OwnerCalendarHandler) Block(c echo.Context) error {
	unitID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit id"})
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req blockReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	dates, err := parseDates(req.Dates)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
	}

	created, err := h.Engine.BlockDates(c.Request().Context(), booking.BlockRequest{
		UnitID:         unitID,
		ActorID:        uid,
		Dates:          dates,
		GuestName:      req.GuestName,
		GuestPhone:     req.GuestPhone,
		PaymentMethod:  req.PaymentMethod,
		DepositCents:   req.DepositCents,
		RemainingCents: req.RemainingCents,
		Notes:          req.Notes,
	})
	if err != nil {
		return bookingError(c, err)
	}

	if created > 0 {
		publishEvent(queue.ReservationEvent{
			Type:       queue.EventDatesBlocked,
			UnitID:     unitID,
			ActorID:    uid,
			Dates:      req.Dates,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"created":   created,
		"requested": len(req.Dates),
	})
}

// Unblock releases owner blocks on the given days.  Releasing a day
// with no block is a no-op, so retries are safe.
func (h *OwnerCalendarHandler) Unblock(c echo.Context) error {
	unitID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit id"})
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req unblockReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	dates, err := parseDates(req.Dates)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
	}

	deleted, err := h.Engine.UnblockDates(c.Request().Context(), uid, unitID, dates)
	if err != nil {
		return bookingError(c, err)
	}
	if deleted > 0 {
		publishEvent(queue.ReservationEvent{
			Type:       queue.EventDatesUnblocked,
			UnitID:     unitID,
			ActorID:    uid,
			Dates:      req.Dates,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": deleted})
}

// RemainingPayment records how the outstanding balance of a block was
// settled.  Passing a null payment method marks the balance as
// renegotiated but uncollected.
func (h *OwnerCalendarHandler) RemainingPayment(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req struct {
		RemainingCents uint32  `json:"remaining_cents"`
		Method         *string `json:"method"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	res, err := h.Reservations.ReservationByID(ctx, id)
	if err != nil {
		if err == booking.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	updated, err := h.Engine.RecordRemainingPayment(ctx, uid, res.UnitID, id, req.RemainingCents, req.Method)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, toOwnerReservationResp(updated))
}

// ListUnitReservations returns every reservation on a unit the
// caller owns, blocks included.
func (h *OwnerCalendarHandler) ListUnitReservations(c echo.Context) error {
	unitID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit id"})
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	u, err := h.Units.GetByID(ctx, unitID)
	if err != nil {
		if err == booking.ErrUnitNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unit not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if u.OwnerID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	list, err := h.Reservations.ListByUnit(ctx, unitID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]ownerReservationResp, 0, len(list))
	for i := range list {
		out = append(out, toOwnerReservationResp(&list[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}

// SetStatus applies an owner-side status transition to a customer
// reservation on one of the caller's units.
func (h *OwnerCalendarHandler) SetStatus(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))

	res, err := h.Engine.SetStatus(c.Request().Context(), uid, id, status)
	if err != nil {
		return bookingError(c, err)
	}
	publishEvent(queue.ReservationEvent{
		Type:          queue.EventStatusChanged,
		ReservationID: res.ID,
		UnitID:        res.UnitID,
		ActorID:       uid,
		Status:        res.Status,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, toOwnerReservationResp(res))
}
