package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chalet-reservation/internal/handler"
	"github.com/iliyamo/chalet-reservation/internal/middleware"
)

// RegisterOwnerCalendar registers the owner's calendar management
// endpoints under /v1/owner: blocking and releasing days for
// off-platform guests, recording remaining payments, auditing a
// unit's reservations and driving customer reservation statuses.
func RegisterOwnerCalendar(e *echo.Echo, h *handler.OwnerCalendarHandler, jwtSecret string) {
	g := e.Group(
		"/v1/owner",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER"),
	)

	// ---- Blocks ----
	g.POST("/units/:id/blocks", h.Block)
	g.DELETE("/units/:id/blocks", h.Unblock)

	// ---- Reservations ----
	g.GET("/units/:id/reservations", h.ListUnitReservations)
	g.PATCH("/reservations/:id/status", h.SetStatus)
	g.PATCH("/reservations/:id/remaining-payment", h.RemainingPayment)
}
