package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chalet-reservation/internal/handler"
	"github.com/iliyamo/chalet-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check, used by load balancers to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth, while protected
// endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the presented token is
	// revoked and a new pair is issued.
	g.POST("/refresh", a.Refresh)
	// Logout does not require a JWT; it accepts a refresh_token in
	// the body so clients can end a session even after their access
	// token expired.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints: the
// unit catalogue and per-unit occupancy calendars.  Guests check
// availability here before registering.  The shared response cache
// covers only the catalogue: occupancy must reflect the latest
// committed write, so it is served through the per-unit versioned
// cache that every reservation write invalidates synchronously.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, responseCache echo.MiddlewareFunc) {
	e.GET("/v1/units", p.ListUnits, responseCache)
	e.GET("/v1/units/:id", p.GetUnit, responseCache)
	// Occupied days from ?from=YYYY-MM-DD onward (default today).
	e.GET("/v1/units/:id/occupancy", p.GetOccupancy)
}
