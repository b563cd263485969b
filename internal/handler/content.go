package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/etkinlikhub/event-platform/internal/model"
	"github.com/etkinlikhub/event-platform/internal/repository"
)

// ContentHandler serves the public content listings and the authenticated
// content CRUD routes.
type ContentHandler struct {
	Contents ContentStore
}

func NewContentHandler(contents ContentStore) *ContentHandler {
	if contents == nil {
		panic("nil content store passed to NewContentHandler")
	}
	return &ContentHandler{Contents: contents}
}

type contentReq struct {
	Title    string `json:"title"`
	Body     string `json:"content"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

func (r contentReq) parse(defaultStatus string) (model.Content, string) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return model.Content{}, "Başlık zorunludur"
	}
	status := strings.TrimSpace(r.Status)
	if status == "" {
		status = defaultStatus
	}
	if status != model.ContentStatusDraft && status != model.ContentStatusPublished {
		return model.Content{}, "Geçersiz içerik durumu"
	}
	return model.Content{
		Title:    title,
		Body:     optional(r.Body),
		Category: optional(strings.TrimSpace(r.Category)),
		Status:   status,
	}, ""
}

// List handles GET /api/contents with optional exact-match category and
// status filters, newest first. Public; draft items are not filtered out
// unless the caller asks for status=published.
func (h *ContentHandler) List(c echo.Context) error {
	filter := repository.ContentFilter{
		Category: c.QueryParam("category"),
		Status:   c.QueryParam("status"),
	}
	contents, err := h.Contents.List(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Veritabanı hatası"})
	}
	return c.JSON(http.StatusOK, contents)
}

// Get handles GET /api/contents/:id. Public regardless of status.
func (h *ContentHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "İçerik bulunamadı"})
	}
	content, err := h.Contents.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrContentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "İçerik bulunamadı"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Veritabanı hatası"})
	}
	return c.JSON(http.StatusOK, content)
}

// Create handles POST /api/contents. The caller becomes the author and
// the status defaults to draft.
func (h *ContentHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token bulunamadı"})
	}
	var req contentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Geçersiz istek"})
	}
	content, msg := req.parse(model.ContentStatusDraft)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	content.AuthorID = &userID

	id, err := h.Contents.Create(c.Request().Context(), content)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "İçerik oluşturulamadı"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":        id,
		"message":   "İçerik oluşturuldu",
		"author_id": userID,
	})
}

// Update handles PUT /api/contents/:id. Owner-or-admin; contents without
// an author are admin-only. Status transitions are unrestricted.
func (h *ContentHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token bulunamadı"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "İçerik bulunamadı"})
	}

	existing, err := h.Contents.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrContentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "İçerik bulunamadı"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Veritabanı hatası"})
	}
	if !canMutate(getRole(c), existing.AuthorID, userID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Bu içeriği güncelleme izniniz yok"})
	}

	var req contentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Geçersiz istek"})
	}
	content, msg := req.parse(existing.Status)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if err := h.Contents.Update(c.Request().Context(), id, content); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "İçerik güncellenemedi"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "İçerik güncellendi"})
}

// Delete handles DELETE /api/contents/:id with the same ownership rule.
func (h *ContentHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token bulunamadı"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "İçerik bulunamadı"})
	}

	existing, err := h.Contents.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrContentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "İçerik bulunamadı"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Veritabanı hatası"})
	}
	if !canMutate(getRole(c), existing.AuthorID, userID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Bu içeriği silme izniniz yok"})
	}

	if err := h.Contents.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "İçerik silinemedi"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "İçerik silindi"})
}
