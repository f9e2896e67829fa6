package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chalet-reservation/internal/handler"
	"github.com/iliyamo/chalet-reservation/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.
// All routes require a valid JWT; both roles may book, so owners can
// reserve other owners' chalets with the same account.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER", "OWNER"),
	)
	// Note: GET /v1/units/:id/occupancy is registered on the public
	// router so guests can check availability before signing up.
	g.POST("/units/:id/reservations", h.Create)
	g.GET("/my-reservations", h.ListMine)

	// Reservation detail and cancellation for the holder.  Ownership
	// is validated within the handler.
	g.GET("/reservations/:id", h.GetMine)
	g.DELETE("/reservations/:id", h.CancelMine)
}
