package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/etkinlikhub/event-platform/internal/model"
	"github.com/etkinlikhub/event-platform/internal/queue"
	"github.com/etkinlikhub/event-platform/internal/repository"
)

// RegistrationHandler serves event signup and the admin-only registration
// management routes. Publisher may be nil when no broker is configured.
type RegistrationHandler struct {
	Events        EventStore
	Registrations RegistrationStore
	Publisher     RegistrationPublisher
}

func NewRegistrationHandler(events EventStore, regs RegistrationStore, pub RegistrationPublisher) *RegistrationHandler {
	if events == nil || regs == nil {
		panic("nil store passed to NewRegistrationHandler")
	}
	return &RegistrationHandler{Events: events, Registrations: regs, Publisher: pub}
}

type registrationReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// Register handles POST /api/events/:id/register. Admins cannot sign up
// for events; regular users can as long as capacity allows. The capacity
// check and counter increment are a single transaction in the store, so
// an event is never overbooked under concurrent signups.
func (h *RegistrationHandler) Register(c echo.Context) error {
	if getRole(c) == model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Yöneticiler etkinliğe kayıt olamaz"})
	}
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Etkinlik bulunamadı"})
	}

	var req registrationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Geçersiz istek"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Ad ve e-posta zorunludur"})
	}

	reg := model.EventRegistration{
		Name:  req.Name,
		Email: req.Email,
		Phone: optional(strings.TrimSpace(req.Phone)),
		Notes: optional(strings.TrimSpace(req.Notes)),
	}

	id, err := h.Registrations.Create(c.Request().Context(), eventID, reg)
	if err != nil {
		switch err {
		case repository.ErrEventNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Etkinlik bulunamadı"})
		case repository.ErrEventFull:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Etkinlik dolu"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Kayıt oluşturulamadı"})
	}

	h.publishCreated(c, id, eventID, reg)

	return c.JSON(http.StatusOK, echo.Map{"id": id, "message": "Kayıt başarılı"})
}

// publishCreated fans the registration out to the broker. Failures are
// logged and never surfaced; the signup already succeeded.
func (h *RegistrationHandler) publishCreated(c echo.Context, id, eventID uint64, reg model.EventRegistration) {
	if h.Publisher == nil {
		return
	}
	ev := queue.RegistrationCreatedEvent{
		RegistrationID: id,
		EventID:        eventID,
		Name:           reg.Name,
		Email:          reg.Email,
		RegisteredAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if event, err := h.Events.GetByID(c.Request().Context(), eventID); err == nil {
		ev.EventTitle = event.Title
	}
	if err := h.Publisher.PublishRegistrationCreated(c.Request().Context(), ev); err != nil {
		log.Printf("registration %d: publish failed: %v", id, err)
	}
}

// List handles GET /api/events/:id/registrations (admin only, enforced by
// middleware), newest first.
func (h *RegistrationHandler) List(c echo.Context) error {
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Etkinlik bulunamadı"})
	}
	regs, err := h.Registrations.ListByEvent(c.Request().Context(), eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Veritabanı hatası"})
	}
	return c.JSON(http.StatusOK, regs)
}

// Delete handles DELETE /api/events/:eventId/registrations/:registrationId
// (admin only). The row delete and the registered_count decrement happen
// in one transaction, so the counter cannot drift.
func (h *RegistrationHandler) Delete(c echo.Context) error {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Etkinlik bulunamadı"})
	}
	regID, err := pathID(c, "registrationId")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Kayıt bulunamadı"})
	}

	if err := h.Registrations.Delete(c.Request().Context(), eventID, regID); err != nil {
		if err == repository.ErrRegistrationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Kayıt bulunamadı"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Kayıt silinemedi"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Kayıt başarıyla silindi"})
}
