package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orgspace/orgspace-api/internal/apperrors"
	"github.com/orgspace/orgspace-api/internal/dto"
	apierrors "github.com/orgspace/orgspace-api/internal/errors"
	"github.com/orgspace/orgspace-api/internal/middleware"
	"github.com/orgspace/orgspace-api/internal/policy"
	"github.com/orgspace/orgspace-api/internal/services"
	"github.com/orgspace/orgspace-api/internal/utils"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
	gate              *policy.Gate
	dir               policy.Directory
}

func NewSubmissionHandler(submissionService *services.SubmissionService, gate *policy.Gate, dir policy.Directory) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService, gate: gate, dir: dir}
}

type submissionRequest struct {
	Title string `json:"title" binding:"required"`
	Text  string `json:"text" binding:"required"`
	OrgID uint64 `json:"org_id" binding:"required"`
}

// CreateSubmission creates a draft submission
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	var req submissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.gate.Authorize(c.Request.Context(), "create submission", policy.CreateSubmission(h.dir), user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	submission, err := h.submissionService.CreateSubmission(user.ID, req.OrgID, services.SubmissionInput{
		Title: req.Title,
		Text:  req.Text,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubmissionDTO(*submission))
}

// GetSubmission returns a submission. Drafts are visible only to users who
// pass the view policy.
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	submission, err := h.submissionService.GetSubmission(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !submission.Published {
		user := middleware.CurrentUser(c)
		if err := h.gate.Authorize(c.Request.Context(), "view submission", policy.ViewSubmission(h.dir), user); err != nil {
			apierrors.Respond(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, dto.ToSubmissionDTO(*submission))
}

// ListSubmissions returns submissions with pagination. Drafts are included
// only for users who pass the view policy.
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var orgID *uint64
	if raw := c.Query("org_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid org_id")
			return
		}
		orgID = &id
	}

	user := middleware.CurrentUser(c)
	includeDrafts := h.gate.Authorize(c.Request.Context(), "view submission", policy.ViewSubmission(h.dir), user) == nil

	submissions, total, err := h.submissionService.ListSubmissions(orgID, includeDrafts, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionListResponse(submissions, params.Page, params.Limit, total))
}

// UpdateSubmission updates a submission's content
func (h *SubmissionHandler) UpdateSubmission(c *gin.Context) {
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
		Title string `json:"title"`
		Text  string `json:"text"`
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.gate.Authorize(c.Request.Context(), "update submission", policy.UpdateSubmission(h.dir), user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	submission, err := h.submissionService.UpdateSubmission(id, services.SubmissionInput{
		Title: req.Title,
		Text:  req.Text,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionDTO(*submission))
}

// PublishSubmission marks a submission as published
func (h *SubmissionHandler) PublishSubmission(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.gate.Authorize(c.Request.Context(), "publish submission", policy.PublishSubmission(h.dir), user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	submission, err := h.submissionService.PublishSubmission(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionDTO(*submission))
}

// DeleteSubmission soft deletes a submission
func (h *SubmissionHandler) DeleteSubmission(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.gate.Authorize(c.Request.Context(), "delete submission", policy.DeleteSubmission(h.dir), user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	if err := h.submissionService.DeleteSubmission(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Submission deleted successfully"})
}
