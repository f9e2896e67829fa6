package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chalet-reservation/internal/handler"
	"github.com/iliyamo/chalet-reservation/internal/middleware"
)

// RegisterOwner registers OWNER-scoped unit management endpoints
// under /v1/owner.  All routes require a valid JWT and OWNER role.
func RegisterOwner(e *echo.Echo, o *handler.OwnerUnitHandler, jwtSecret string) {
	g := e.Group(
		"/v1/owner",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER"),
	)

	g.POST("/units", o.Create)
	g.GET("/units", o.ListMine)
	g.PUT("/units/:id", o.Update)
	g.PATCH("/units/:id", o.Update) // partial updates via PATCH as well
}
