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
)

type VenueHandler struct {
	venueService *services.VenueService
	gate         *policy.Gate
}

func NewVenueHandler(venueService *services.VenueService, gate *policy.Gate) *VenueHandler {
	return &VenueHandler{venueService: venueService, gate: gate}
}

type venueRequest struct {
	Name string `json:"name" binding:"required"`
	Unit string `json:"unit"`
}

// CreateVenue creates a new venue
func (h *VenueHandler) CreateVenue(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	var req venueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.gate.Authorize(c.Request.Context(), "create venue", policy.CreateVenue(), user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	venue, err := h.venueService.CreateVenue(services.VenueInput{Name: req.Name, Unit: req.Unit})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVenueDTO(*venue))
}

// GetVenue returns a venue by id
func (h *VenueHandler) GetVenue(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	venue, err := h.venueService.GetVenue(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVenueDTO(*venue))
}

// ListVenues returns all venues
func (h *VenueHandler) ListVenues(c *gin.Context) {
	venues, err := h.venueService.ListVenues()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]dto.VenueDTO, len(venues))
	for i, venue := range venues {
		items[i] = dto.ToVenueDTO(venue)
	}

	c.JSON(http.StatusOK, gin.H{"venues": items})
}

// UpdateVenue updates a venue
func (h *VenueHandler) UpdateVenue(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req venueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.gate.Authorize(c.Request.Context(), "update venue", policy.UpdateVenue(), user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	venue, err := h.venueService.UpdateVenue(id, services.VenueInput{Name: req.Name, Unit: req.Unit})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVenueDTO(*venue))
}

// DeleteVenue soft deletes a venue
func (h *VenueHandler) DeleteVenue(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.gate.Authorize(c.Request.Context(), "delete venue", policy.DeleteVenue(), user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	if err := h.venueService.DeleteVenue(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Venue deleted successfully"})
}
