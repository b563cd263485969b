package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject, username and role claims into the
// request context. The provided secret must match the one used when
// issuing tokens. Handlers behind this middleware read the identity via
// c.Get("user_id"), c.Get("username") and c.Get("role").
//
// A missing token yields 401; a token that fails the signature or expiry
// check yields 403. Identity is trusted as-is for the request lifetime,
// there is no revocation list.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token bulunamadı"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 only; tokens signed with any other
			// algorithm are rejected.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Geçersiz token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Geçersiz token"})
			}

			c.Set("user_id", claims["sub"])
			c.Set("username", claims["username"])
			c.Set("role", claims["role"])
			return next(c)
		}
	}
}
