package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/etkinlikhub/event-platform/internal/model"
)

// RequireAdmin aborts the request with 403 unless the authenticated user
// carries the admin role. It assumes JWTAuth already stored the role in
// the context; a missing or malformed value is treated as non-admin.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || role != model.RoleAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Bu işlem için admin yetkisi gereklidir"})
			}
			return next(c)
		}
	}
}
