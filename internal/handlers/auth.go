package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/orgspace/orgspace-api/internal/constants"
	"github.com/orgspace/orgspace-api/internal/dto"
	apierrors "github.com/orgspace/orgspace-api/internal/errors"
	"github.com/orgspace/orgspace-api/internal/middleware"
	"github.com/orgspace/orgspace-api/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login verifies a Telegram login widget payload and opens a session
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.TelegramLoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTelegramNotConfigured):
			apierrors.InternalError(c, "Telegram login is not configured")
		case errors.Is(err, services.ErrInvalidTelegramHash),
			errors.Is(err, services.ErrStaleTelegramLogin),
			errors.Is(err, services.ErrUnknownTelegramUser):
			apierrors.Unauthorized(c, err.Error())
		default:
			apierrors.Respond(c, err)
		}
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout clears the session
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to clear session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetCurrentUser returns the authenticated user
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
