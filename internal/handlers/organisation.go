package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orgspace/orgspace-api/internal/apperrors"
	"github.com/orgspace/orgspace-api/internal/dto"
	apierrors "github.com/orgspace/orgspace-api/internal/errors"
	"github.com/orgspace/orgspace-api/internal/middleware"
	"github.com/orgspace/orgspace-api/internal/models"
	"github.com/orgspace/orgspace-api/internal/policy"
	"github.com/orgspace/orgspace-api/internal/services"
	"github.com/orgspace/orgspace-api/internal/utils"
)

type OrganisationHandler struct {
	orgService *services.OrganisationService
	gate       *policy.Gate
}

func NewOrganisationHandler(orgService *services.OrganisationService, gate *policy.Gate) *OrganisationHandler {
	return &OrganisationHandler{orgService: orgService, gate: gate}
}

type organisationRequest struct {
	Name        string                      `json:"name" binding:"required"`
	Slug        string                      `json:"slug" binding:"required"`
	Category    models.OrganisationCategory `json:"category" binding:"required"`
	IsAdminOrg  bool                        `json:"is_admin_org"`
	IsInactive  bool                        `json:"is_inactive"`
	IsInvisible bool                        `json:"is_invisible"`
	InviteLink  string                      `json:"invite_link"`
	Description string                      `json:"description"`
}

func (r organisationRequest) toInput() services.OrganisationInput {
	return services.OrganisationInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Category:    r.Category,
		IsAdminOrg:  r.IsAdminOrg,
		IsInactive:  r.IsInactive,
		IsInvisible: r.IsInvisible,
		InviteLink:  r.InviteLink,
		Description: r.Description,
	}
}

// CreateOrganisation creates a new organisation
func (h *OrganisationHandler) CreateOrganisation(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	var req organisationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.gate.Authorize(c.Request.Context(), "create organisation", policy.CreateOrganisation(), user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	org, err := h.orgService.CreateOrganisation(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganisationDTO(*org))
}

// ListOrganisations returns organisations with pagination. Hidden
// organisations are included only for users who pass the admin gate.
func (h *OrganisationHandler) ListOrganisations(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	includeHidden := false
	if c.Query("include_hidden") == "true" {
		user := middleware.CurrentUser(c)
		if err := h.gate.Authorize(c.Request.Context(), "list hidden organisations", policy.Deny(), user); err == nil {
			includeHidden = true
		}
	}

	orgs, total, err := h.orgService.ListOrganisations(includeHidden, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganisationListResponse(orgs, params.Page, params.Limit, total))
}

// GetOrganisation returns an organisation with its members
func (h *OrganisationHandler) GetOrganisation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	org, members, err := h.orgService.GetOrganisationWithMembers(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganisationDetailDTO(*org, members))
}

// UpdateOrganisation updates an organisation
func (h *OrganisationHandler) UpdateOrganisation(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req organisationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.gate.Authorize(c.Request.Context(), "update organisation", policy.UpdateOrganisation(), user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	org, err := h.orgService.UpdateOrganisation(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganisationDTO(*org))
}

// DeleteOrganisation soft deletes an organisation
func (h *OrganisationHandler) DeleteOrganisation(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.gate.Authorize(c.Request.Context(), "delete organisation", policy.DeleteOrganisation(), user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	if err := h.orgService.DeleteOrganisation(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Organisation deleted successfully"})
}

// AddMember adds a user to an organisation
func (h *OrganisationHandler) AddMember(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type addMemberRequest struct {
		UserID   uint64 `json:"user_id" binding:"required"`
		IsIGHead bool   `json:"is_ig_head"`
	}
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.gate.Authorize(c.Request.Context(), "add organisation member", policy.UpdateOrganisation(), user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	member, err := h.orgService.AddMember(id, req.UserID, req.IsIGHead)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganisationMemberDTO(*member))
}

// RemoveMember removes a user from an organisation
func (h *OrganisationHandler) RemoveMember(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.gate.Authorize(c.Request.Context(), "remove organisation member", policy.UpdateOrganisation(), user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	if err := h.orgService.RemoveMember(id, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}
