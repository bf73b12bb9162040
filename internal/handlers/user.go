package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orgspace/orgspace-api/internal/apperrors"
	"github.com/orgspace/orgspace-api/internal/dto"
	apierrors "github.com/orgspace/orgspace-api/internal/errors"
	"github.com/orgspace/orgspace-api/internal/middleware"
	"github.com/orgspace/orgspace-api/internal/policy"
	"github.com/orgspace/orgspace-api/internal/services"
	"github.com/orgspace/orgspace-api/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
	gate        *policy.Gate
}

func NewUserHandler(userService *services.UserService, gate *policy.Gate) *UserHandler {
	return &UserHandler{userService: userService, gate: gate}
}

type userRequest struct {
	Name             string `json:"name" binding:"required"`
	TelegramUserName string `json:"telegram_user_name" binding:"required"`
}

// CreateUser provisions a new user account
func (h *UserHandler) CreateUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.gate.Authorize(c.Request.Context(), "create user", policy.CreateUser(), user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	created, err := h.userService.CreateUser(services.UserInput{
		Name:             req.Name,
		TelegramUserName: req.TelegramUserName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*created))
}

// GetUser returns a user with their organisation memberships
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, memberships, err := h.userService.GetUser(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDetailDTO(*user, memberships))
}

// ListUsers returns users with pagination
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListUsers(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, params.Page, params.Limit, total))
}

// UpdateUser updates a user's profile
func (h *UserHandler) UpdateUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type updateRequest struct {
		Name             string `json:"name"`
		TelegramUserName string `json:"telegram_user_name"`
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.gate.Authorize(c.Request.Context(), "update user", policy.UpdateUser(), user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	updated, err := h.userService.UpdateUser(id, services.UserInput{
		Name:             req.Name,
		TelegramUserName: req.TelegramUserName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*updated))
}

// DeleteUser soft deletes a user
func (h *UserHandler) DeleteUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.gate.Authorize(c.Request.Context(), "delete user", policy.DeleteUser(), user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
