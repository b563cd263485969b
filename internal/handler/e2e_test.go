package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etkinlikhub/event-platform/internal/middleware"
)

// newTestServer wires handlers, JWT middleware and routes the same way
// main does, but on top of in-memory stores.
func newTestServer(t *testing.T) (*echo.Echo, *fakeUserStore) {
	t.Helper()
	cfg := testConfig()

	users := newFakeUserStore()
	events := newFakeEventStore()
	regs := newFakeRegistrationStore(events)
	contents := newFakeContentStore()

	authH := NewAuthHandler(cfg, users)
	eventH := NewEventHandler(events)
	regH := NewRegistrationHandler(events, regs, &capturePublisher{})
	contentH := NewContentHandler(contents)

	e := echo.New()
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)

	e.POST("/api/auth/register", authH.Register)
	e.POST("/api/auth/login", authH.Login)
	e.GET("/api/auth/me", authH.Me, jwtMW)

	e.GET("/api/events", eventH.List)
	e.GET("/api/events/active", eventH.ListActive)
	e.GET("/api/events/:id", eventH.Get)
	e.POST("/api/events", eventH.Create, jwtMW)
	e.PUT("/api/events/:id", eventH.Update, jwtMW)
	e.DELETE("/api/events/:id", eventH.Delete, jwtMW)
	e.POST("/api/events/:id/register", regH.Register, jwtMW)
	e.GET("/api/events/:id/registrations", regH.List, jwtMW, middleware.RequireAdmin())
	e.DELETE("/api/events/:eventId/registrations/:registrationId", regH.Delete, jwtMW, middleware.RequireAdmin())

	e.GET("/api/contents", contentH.List)
	e.GET("/api/contents/:id", contentH.Get)
	e.POST("/api/contents", contentH.Create, jwtMW)
	e.PUT("/api/contents/:id", contentH.Update, jwtMW)
	e.DELETE("/api/contents/:id", contentH.Delete, jwtMW)

	return e, users
}

func do(t *testing.T, e *echo.Echo, method, target, token, body string) (int, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var m map[string]any
	if len(rec.Body.Bytes()) > 0 && json.Unmarshal(rec.Body.Bytes(), &m) != nil {
		m = nil
	}
	return rec.Code, m
}

func TestEndToEndCapacityOneScenario(t *testing.T) {
	e, _ := newTestServer(t)

	// Register alice and log in again.
	code, resp := do(t, e, http.MethodPost, "/api/auth/register", "",
		`{"username":"alice","email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, code)
	aliceID := resp["user"].(map[string]any)["id"]

	code, resp = do(t, e, http.MethodPost, "/api/auth/login", "",
		`{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, aliceID, resp["user"].(map[string]any)["id"])
	aliceToken := resp["token"].(string)

	// Alice creates an event with capacity 1.
	code, resp = do(t, e, http.MethodPost, "/api/events", aliceToken,
		`{"title":"Tiny Meetup","event_date":"2031-01-15T18:30","capacity":1}`)
	require.Equal(t, http.StatusOK, code)
	eventID := uint64(resp["id"].(float64))

	// Alice takes the only seat.
	code, resp = do(t, e, http.MethodPost, fmt.Sprintf("/api/events/%d/register", eventID), aliceToken,
		`{"name":"Alice","email":"a@x.com"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Kayıt başarılı", resp["message"])

	// A second user hits the capacity wall.
	code, resp = do(t, e, http.MethodPost, "/api/auth/register", "",
		`{"username":"bob","email":"b@x.com","password":"secret2"}`)
	require.Equal(t, http.StatusCreated, code)
	bobToken := resp["token"].(string)

	code, resp = do(t, e, http.MethodPost, fmt.Sprintf("/api/events/%d/register", eventID), bobToken,
		`{"name":"Bob","email":"b@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Etkinlik dolu", resp["error"])

	// The event shows exactly one registration.
	code, resp = do(t, e, http.MethodGet, fmt.Sprintf("/api/events/%d", eventID), "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), resp["registered_count"])
}

func TestEndToEndAuthGates(t *testing.T) {
	e, users := newTestServer(t)
	users.addAdmin("admin", "admin@example.com", "admin-secret")

	// Mutations without a token are rejected outright.
	code, resp := do(t, e, http.MethodPost, "/api/events", "",
		`{"title":"Nope","event_date":"2031-01-15T18:30"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Token bulunamadı", resp["error"])

	// Garbage tokens are invalid, not missing.
	code, resp = do(t, e, http.MethodGet, "/api/auth/me", "not-a-jwt", "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Geçersiz token", resp["error"])

	// Registration listing is admin-only.
	code, resp = do(t, e, http.MethodPost, "/api/auth/register", "",
		`{"username":"carol","email":"c@x.com","password":"secret3"}`)
	require.Equal(t, http.StatusCreated, code)
	carolToken := resp["token"].(string)

	code, resp = do(t, e, http.MethodGet, "/api/events/1/registrations", carolToken, "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Bu işlem için admin yetkisi gereklidir", resp["error"])

	// The seeded admin logs in and gets through the role gate.
	code, resp = do(t, e, http.MethodPost, "/api/auth/login", "",
		`{"username":"admin","password":"admin-secret"}`)
	require.Equal(t, http.StatusOK, code)
	adminToken := resp["token"].(string)

	code, _ = do(t, e, http.MethodPost, "/api/events", adminToken,
		`{"title":"Admin Event","event_date":"2031-02-01T10:00"}`)
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, e, http.MethodGet, "/api/events/1/registrations", adminToken, "")
	assert.Equal(t, http.StatusOK, code)

	// Admins cannot sign up for events.
	code, resp = do(t, e, http.MethodPost, "/api/events/1/register", adminToken,
		`{"name":"Admin","email":"admin@example.com"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Yöneticiler etkinliğe kayıt olamaz", resp["error"])
}
