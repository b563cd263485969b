package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/etkinlikhub/event-platform/internal/model"
	"github.com/etkinlikhub/event-platform/internal/repository"
)

// EventHandler serves the public event listings and the authenticated
// event CRUD routes.
type EventHandler struct {
	Events EventStore
}

func NewEventHandler(events EventStore) *EventHandler {
	if events == nil {
		panic("nil event store passed to NewEventHandler")
	}
	return &EventHandler{Events: events}
}

type eventReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	EventDate   string `json:"event_date"`
	Capacity    *int   `json:"capacity"`
	Status      string `json:"status"`
}

// parse validates the request body and converts it into a model.Event.
// A capacity of zero or less means unlimited and is stored as NULL, the
// same way the status falls back to the given default when blank.
func (r eventReq) parse(defaultStatus string) (model.Event, string) {
	title := strings.TrimSpace(r.Title)
	if title == "" || strings.TrimSpace(r.EventDate) == "" {
		return model.Event{}, "Başlık ve tarih zorunludur"
	}
	date, err := parseEventDate(strings.TrimSpace(r.EventDate))
	if err != nil {
		return model.Event{}, "Geçersiz tarih formatı"
	}
	status := strings.TrimSpace(r.Status)
	if status == "" {
		status = defaultStatus
	}
	if status != model.EventStatusActive && status != model.EventStatusInactive {
		return model.Event{}, "Geçersiz etkinlik durumu"
	}
	e := model.Event{
		Title:       title,
		Description: optional(strings.TrimSpace(r.Description)),
		Location:    optional(strings.TrimSpace(r.Location)),
		EventDate:   date,
		Status:      status,
	}
	if r.Capacity != nil && *r.Capacity > 0 {
		e.Capacity = r.Capacity
	}
	return e, ""
}

// List handles GET /api/events and returns every event, newest scheduled
// first. Public.
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.Events.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Veritabanı hatası"})
	}
	return c.JSON(http.StatusOK, events)
}

// ListActive handles GET /api/events/active: active events with a future
// date, soonest first. Public.
func (h *EventHandler) ListActive(c echo.Context) error {
	events, err := h.Events.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Veritabanı hatası"})
	}
	return c.JSON(http.StatusOK, events)
}

// Get handles GET /api/events/:id. Public.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Etkinlik bulunamadı"})
	}
	event, err := h.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Etkinlik bulunamadı"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Veritabanı hatası"})
	}
	return c.JSON(http.StatusOK, event)
}

// Create handles POST /api/events. The caller becomes the event's author.
func (h *EventHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token bulunamadı"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Geçersiz istek"})
	}
	event, msg := req.parse(model.EventStatusActive)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	event.AuthorID = &userID

	id, err := h.Events.Create(c.Request().Context(), event)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Etkinlik oluşturulamadı"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":        id,
		"message":   "Etkinlik oluşturuldu",
		"author_id": userID,
	})
}

// Update handles PUT /api/events/:id. Only the owner or an admin may
// update; events without an author are admin-only. When the body omits
// the status, the event keeps its current one.
func (h *EventHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token bulunamadı"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Etkinlik bulunamadı"})
	}

	existing, err := h.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Etkinlik bulunamadı"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Veritabanı hatası"})
	}
	if !canMutate(getRole(c), existing.AuthorID, userID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Bu etkinliği güncelleme izniniz yok"})
	}

	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Geçersiz istek"})
	}
	event, msg := req.parse(existing.Status)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if err := h.Events.Update(c.Request().Context(), id, event); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Etkinlik güncellenemedi"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Etkinlik güncellendi"})
}

// Delete handles DELETE /api/events/:id with the same ownership rule as
// Update. Registrations of the deleted event are left in place.
func (h *EventHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token bulunamadı"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Etkinlik bulunamadı"})
	}

	existing, err := h.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Etkinlik bulunamadı"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Veritabanı hatası"})
	}
	if !canMutate(getRole(c), existing.AuthorID, userID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Bu etkinliği silme izniniz yok"})
	}

	if err := h.Events.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Etkinlik silinemedi"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Etkinlik silindi"})
}
