package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/etkinlikhub/event-platform/internal/config"
)

// testConfig returns a config suitable for handler tests. The bcrypt
// cost is the library minimum so the suite stays fast.
func testConfig() config.Config {
	return config.Config{
		JWTSecret:     "test-secret",
		TokenTTLHours: 24,
		BcryptCost:    4,
	}
}

// newContext builds an echo context for a single handler invocation.
func newContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asUser injects the identity the JWT middleware would have stored.
func asUser(c echo.Context, id uint64, username, role string) {
	c.Set("user_id", float64(id)) // JWT numeric claims decode as float64
	c.Set("username", username)
	c.Set("role", role)
}

// decodeBody unmarshals a JSON response body into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}
