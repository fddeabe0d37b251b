package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-accounts/internal/application"
	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-user-accounts/internal/interface/middleware"
	"github.com/oksasatya/go-user-accounts/pkg/response"
	"github.com/oksasatya/go-user-accounts/pkg/validation"
)

const birthDateLayout = "2006-01-02"

type UserHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

type createUserRequest struct {
	Username   string `json:"username" binding:"required,min=10,max=50"`
	Email      string `json:"email" binding:"required,email,max=100"`
	Password   string `json:"password" binding:"required,strongpwd"`
	BirthDate  string `json:"birth_date" binding:"required,datetime=2006-01-02"`
	ColorTheme string `json:"color_theme" binding:"required,oneof=light dark"`
	Language   string `json:"language" binding:"required,oneof=en_us en_uk pt_br pt_pt es_es fr_fr de_de ja_jp zh_cn ru_ru"`
}

type personalDataRequest struct {
	Username  string `json:"username" binding:"required,min=10,max=50"`
	Email     string `json:"email" binding:"required,email,max=100"`
	BirthDate string `json:"birth_date" binding:"required,datetime=2006-01-02"`
}

type preferencesRequest struct {
	ColorTheme string `json:"color_theme" binding:"required,oneof=light dark"`
	Language   string `json:"language" binding:"required,oneof=en_us en_uk pt_br pt_pt es_es fr_fr de_de ja_jp zh_cn ru_ru"`
}

type passwordRequest struct {
	OldPassword        string `json:"old_password" binding:"required,min=8,max=100"`
	NewPassword        string `json:"new_password" binding:"required,strongpwd"`
	ConfirmNewPassword string `json:"confirm_new_password" binding:"required,strongpwd"`
}

type userOut struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	BirthDate  string `json:"birth_date"`
	ColorTheme string `json:"color_theme"`
	Language   string `json:"language"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at"`
}

func toUserOut(u *entity.User) userOut {
	return userOut{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		BirthDate:  u.BirthDate.Format(birthDateLayout),
		ColorTheme: string(u.ColorTheme),
		Language:   string(u.Language),
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return false
	}
	return true
}

// parseBirthDate also rejects dates 100+ years back; the age ceiling is a
// schema rule, not a use-case kind.
func parseBirthDate(c *gin.Context, s string) (time.Time, bool) {
	bd, err := time.ParseInLocation(birthDateLayout, s, time.UTC)
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"birth_date": "must be a valid date"})
		c.JSON(resp.Status, resp)
		return time.Time{}, false
	}
	if time.Since(bd) >= 100*365.25*24*time.Hour {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"birth_date": "is not a plausible birth date"})
		c.JSON(resp.Status, resp)
		return time.Time{}, false
	}
	return bd, true
}

// Create POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}
	bd, ok := parseBirthDate(c, req.BirthDate)
	if !ok {
		return
	}

	u, err := h.Users.Register(c.Request.Context(), application.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		BirthDate:  bd,
		ColorTheme: entity.ColorTheme(req.ColorTheme),
		Language:   entity.Language(req.Language),
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	resp := response.Success(c, http.StatusCreated, toUserOut(u), "user created")
	c.JSON(resp.Status, resp)
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	u, ok := middleware.AuthUser(c)
	if !ok {
		resp := response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, toUserOut(u), "user profile")
	c.JSON(resp.Status, resp)
}

// UpdatePersonalData PATCH /api/users/me
func (h *UserHandler) UpdatePersonalData(c *gin.Context) {
	u, ok := middleware.AuthUser(c)
	if !ok {
		resp := response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		c.JSON(resp.Status, resp)
		return
	}
	var req personalDataRequest
	if !bindJSON(c, &req) {
		return
	}
	bd, ok := parseBirthDate(c, req.BirthDate)
	if !ok {
		return
	}

	updated, err := h.Users.UpdatePersonalData(c.Request.Context(), u, application.PersonalDataInput{
		Username:  req.Username,
		Email:     req.Email,
		BirthDate: bd,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	resp := response.Success(c, http.StatusOK, toUserOut(updated), "personal data updated")
	c.JSON(resp.Status, resp)
}

// UpdatePreferences PATCH /api/users/me/preferences
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	u, ok := middleware.AuthUser(c)
	if !ok {
		resp := response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		c.JSON(resp.Status, resp)
		return
	}
	var req preferencesRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.Users.UpdatePreferences(c.Request.Context(), u, application.PreferencesInput{
		ColorTheme: entity.ColorTheme(req.ColorTheme),
		Language:   entity.Language(req.Language),
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	resp := response.Success(c, http.StatusOK, toUserOut(updated), "preferences updated")
	c.JSON(resp.Status, resp)
}

// UpdatePassword PATCH /api/users/me/password
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	u, ok := middleware.AuthUser(c)
	if !ok {
		resp := response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		c.JSON(resp.Status, resp)
		return
	}
	var req passwordRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.Users.UpdatePassword(c.Request.Context(), u, application.PasswordInput{
		OldPassword:        req.OldPassword,
		NewPassword:        req.NewPassword,
		ConfirmNewPassword: req.ConfirmNewPassword,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	resp := response.Success(c, http.StatusOK, toUserOut(updated), "password updated")
	c.JSON(resp.Status, resp)
}

// Deactivate PATCH /api/users/me/deactivate
func (h *UserHandler) Deactivate(c *gin.Context) {
	u, ok := middleware.AuthUser(c)
	if !ok {
		resp := response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		c.JSON(resp.Status, resp)
		return
	}
	if _, err := h.Users.Deactivate(c.Request.Context(), u); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
