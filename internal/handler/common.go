package handler // handler defines http handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/etkinlikhub/event-platform/internal/model"
)

// getUserID extracts the user_id set by the JWT middleware and converts
// it to uint64. JWT numeric claims decode as float64, so several types
// are accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole returns the role claim set by the JWT middleware, or "" when
// absent.
func getRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}

// canMutate implements the single authorization rule applied to every
// mutating event/content route: admins may always mutate, otherwise the
// caller must be the resource owner. Resources without an author (legacy
// rows) are admin-only.
func canMutate(role string, authorID *uint64, userID uint64) bool {
	if role == model.RoleAdmin {
		return true
	}
	return authorID != nil && *authorID == userID
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// eventDateLayouts are the accepted formats for event_date values. The
// browser's datetime-local input produces the minute-resolution variant.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseEventDate parses an event date in any accepted layout.
func parseEventDate(s string) (time.Time, error) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}

// optional normalizes an optional text field: blank becomes NULL.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
