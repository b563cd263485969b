package handler

import (
	"context"
	"database/sql"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/etkinlikhub/event-platform/internal/config"
	"github.com/etkinlikhub/event-platform/internal/model"
	"github.com/etkinlikhub/event-platform/internal/repository"
	"github.com/etkinlikhub/event-platform/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	if users == nil {
		panic("nil user store passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
type authResp struct {
	Token   string   `json:"token"`
	User    userPart `json:"user"`
	Message string   `json:"message,omitempty"`
}

// emailPattern is a deliberately loose check: something before the @,
// something after, and a dot in the domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Register creates a user account and returns a token immediately. The
// role is always "user"; admin accounts exist only through seeding.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Geçersiz istek"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Tüm alanlar zorunludur"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Şifre en az 6 karakter olmalıdır"})
	}
	if !emailPattern.MatchString(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Geçerli bir e-posta adresi giriniz"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, model.RoleUser, h.Cfg.BcryptCost)
	if err != nil {
		switch err {
		case repository.ErrUsernameExists:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Bu kullanıcı adı zaten kullanılıyor"})
		case repository.ErrEmailExists:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Bu e-posta adresi zaten kullanılıyor"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Kullanıcı oluşturulamadı"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, req.Username, model.RoleUser, h.Cfg.TokenTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Token oluşturulamadı"})
	}

	return c.JSON(http.StatusCreated, authResp{
		Token:   access.Token,
		User:    userPart{ID: uid, Username: req.Username, Email: req.Email, Role: model.RoleUser},
		Message: "Kayıt başarılı",
	})
}

// Login verifies credentials and returns a fresh token. An unknown
// username and a wrong password both map to 401 with distinct messages.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Geçersiz istek"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Kullanıcı bulunamadı"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Veritabanı hatası"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Hatalı şifre"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Username, u.Role, h.Cfg.TokenTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Token oluşturulamadı"})
	}

	return c.JSON(http.StatusOK, authResp{
		Token: access.Token,
		User:  userPart{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role},
	})
}

// Me echoes the identity carried by the access token.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id":  c.Get("user_id"),
		"username": c.Get("username"),
		"role":     c.Get("role"),
	})
}
