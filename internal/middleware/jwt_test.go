package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etkinlikhub/event-platform/internal/model"
	"github.com/etkinlikhub/event-platform/internal/utils"
)

const testSecret = "test-secret"

func runProtected(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, handler(c))
	return rec, c
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec, _ := runProtected(t, JWTAuth(testSecret), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token bulunamadı")
}

func TestJWTAuthInvalidToken(t *testing.T) {
	rec, _ := runProtected(t, JWTAuth(testSecret), "Bearer garbage")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Geçersiz token")
}

func TestJWTAuthWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("other-secret", 1, "alice", model.RoleUser, 24)
	require.NoError(t, err)
	rec, _ := runProtected(t, JWTAuth(testSecret), "Bearer "+at.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 1, "alice", model.RoleUser, -1)
	require.NoError(t, err)
	rec, _ := runProtected(t, JWTAuth(testSecret), "Bearer "+at.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuthInjectsIdentity(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "alice", model.RoleUser, 24)
	require.NoError(t, err)

	rec, c := runProtected(t, JWTAuth(testSecret), "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(7), c.Get("user_id"))
	assert.Equal(t, "alice", c.Get("username"))
	assert.Equal(t, model.RoleUser, c.Get("role"))
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	run := func(role any) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		handler := RequireAdmin()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
		require.NoError(t, handler(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run(model.RoleAdmin).Code)
	assert.Equal(t, http.StatusForbidden, run(model.RoleUser).Code)
	assert.Equal(t, http.StatusForbidden, run(nil).Code)
	assert.Equal(t, http.StatusForbidden, run(42).Code) // malformed claim
}
