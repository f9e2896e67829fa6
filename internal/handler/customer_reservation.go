package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chalet-reservation/internal/booking"
	"github.com/iliyamo/chalet-reservation/internal/model"
	"github.com/iliyamo/chalet-reservation/internal/queue"
	"github.com/iliyamo/chalet-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/chalet-reservation/internal/service"
)

// CustomerHandler serves authenticated customer flows: booking a
// stay, listing and cancelling own reservations.
type CustomerHandler struct {
	Engine       *booking.Engine
	Reservations *repository.ReservationRepo
}

func NewCustomerHandler(engine *booking.Engine, reservations *repository.ReservationRepo) *CustomerHandler {
	return &CustomerHandler{Engine: engine, Reservations: reservations}
}

type createReservationReq struct {
	CheckIn    string `json:"check_in"`  // YYYY-MM-DD, inclusive
	CheckOut   string `json:"check_out"` // YYYY-MM-DD, exclusive
	GuestCount uint32 `json:"guest_count"`
	Notes      string `json:"notes"`
}

// reservationResp is the customer-facing reservation shape.  Block
// metadata never appears here; customers only ever see their own
// stays.
type reservationResp struct {
	ID              uint64 `json:"id"`
	UnitID          uint64 `json:"unit_id"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	GuestCount      uint32 `json:"guest_count"`
	TotalPriceCents uint32 `json:"total_price_cents"`
	Status          string `json:"status"`
	Notes           string `json:"notes,omitempty"`
}

func toReservationResp(r *model.Reservation) reservationResp {
	return reservationResp{
		ID:              r.ID,
		UnitID:          r.UnitID,
		CheckIn:         booking.FormatDate(r.CheckIn),
		CheckOut:        booking.FormatDate(r.CheckOut),
		GuestCount:      r.GuestCount,
		TotalPriceCents: r.TotalPriceCents,
		Status:          r.Status,
		Notes:           r.Notes,
	}
}

// publishEvent fires an event to the broker without blocking the
// request; delivery is best-effort and failures only log.
func publishEvent(ev queue.ReservationEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationEvent(ctx, ev)
	}()
}

// Create books a stay on the unit in the path.  The engine holds the
// whole overlap-check-then-insert sequence atomic per unit, so a 409
// here means another active reservation really owns part of the
// range.
func (h *CustomerHandler) Create(c echo.Context) error {
	unitID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit id"})
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	checkIn, err := booking.ParseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_in, want YYYY-MM-DD"})
	}
	checkOut, err := booking.ParseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_out, want YYYY-MM-DD"})
	}

	res, err := h.Engine.CreateReservation(c.Request().Context(), booking.CreateRequest{
		UnitID:     unitID,
		HolderID:   uid,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestCount: req.GuestCount,
		Notes:      req.Notes,
	})
	if err != nil {
		return bookingError(c, err)
	}

	publishEvent(queue.ReservationEvent{
		Type:            queue.EventReservationCreated,
		ReservationID:   res.ID,
		UnitID:          res.UnitID,
		ActorID:         uid,
		CheckIn:         booking.FormatDate(res.CheckIn),
		CheckOut:        booking.FormatDate(res.CheckOut),
		TotalPriceCents: res.TotalPriceCents,
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusCreated, toReservationResp(res))
}

// ListMine returns the caller's reservations, newest first.
func (h *CustomerHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Reservations.ListByHolder(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]reservationResp, 0, len(list))
	for i := range list {
		out = append(out, toReservationResp(&list[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}

// GetMine returns one of the caller's reservations.  Reservations
// held by anyone else are reported as not found rather than
// forbidden so ids cannot be probed.
func (h *CustomerHandler) GetMine(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	res, err := h.Reservations.ReservationByID(c.Request().Context(), id)
	if err != nil {
		if err == booking.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if res.IsBlock() || res.HolderID != uid {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	return c.JSON(http.StatusOK, toReservationResp(res))
}

// CancelMine cancels the caller's own PENDING reservation.
func (h *CustomerHandler) CancelMine(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	if err := h.Engine.CancelOwn(ctx, uid, id); err != nil {
		return bookingError(c, err)
	}
	ev := queue.ReservationEvent{
		Type:          queue.EventReservationCancelled,
		ReservationID: id,
		ActorID:       uid,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if res, err := h.Reservations.ReservationByID(ctx, id); err == nil {
		ev.UnitID = res.UnitID
		ev.CheckIn = booking.FormatDate(res.CheckIn)
		ev.CheckOut = booking.FormatDate(res.CheckOut)
	}
	publishEvent(ev)
	return c.NoContent(http.StatusNoContent)
}
