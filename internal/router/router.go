// Package router defines how HTTP routes are registered for the API.
// All application routes live under the /api prefix; /healthz sits at the
// root for load balancers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/etkinlikhub/event-platform/internal/handler"
	"github.com/etkinlikhub/event-platform/internal/middleware"
)

// RegisterRoutes registers routes that do not belong to a feature area.
// Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Register and login
// are open; /api/auth/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.GET("/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterEvents registers the event and registration endpoints. The
// read endpoints are public (and cacheable); every mutation requires a
// bearer token, and registration management additionally requires the
// admin role.
func RegisterEvents(e *echo.Echo, ev *handler.EventHandler, reg *handler.RegistrationHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	e.GET("/api/events", ev.List, cache)
	e.GET("/api/events/active", ev.ListActive, cache)
	e.GET("/api/events/:id", ev.Get, cache)

	auth := e.Group("/api/events", middleware.JWTAuth(jwtSecret))
	auth.POST("", ev.Create)
	auth.PUT("/:id", ev.Update)
	auth.DELETE("/:id", ev.Delete)

	// Signup is open to any authenticated non-admin; the handler rejects
	// admins itself so the error message stays specific.
	auth.POST("/:id/register", reg.Register)

	admin := e.Group("/api/events", middleware.JWTAuth(jwtSecret), middleware.RequireAdmin())
	admin.GET("/:id/registrations", reg.List)
	admin.DELETE("/:eventId/registrations/:registrationId", reg.Delete)
}

// RegisterContents registers the content endpoints. Reads are public and
// cacheable; mutations require a bearer token with the ownership rule
// enforced in the handlers.
func RegisterContents(e *echo.Echo, ct *handler.ContentHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	e.GET("/api/contents", ct.List, cache)
	e.GET("/api/contents/:id", ct.Get, cache)

	auth := e.Group("/api/contents", middleware.JWTAuth(jwtSecret))
	auth.POST("", ct.Create)
	auth.PUT("/:id", ct.Update)
	auth.DELETE("/:id", ct.Delete)
}
