package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orgspace/orgspace-api/internal/apperrors"
	"github.com/orgspace/orgspace-api/internal/dto"
	apierrors "github.com/orgspace/orgspace-api/internal/errors"
	"github.com/orgspace/orgspace-api/internal/middleware"
	"github.com/orgspace/orgspace-api/internal/policy"
	"github.com/orgspace/orgspace-api/internal/services"
)

type BookingHandler struct {
	bookingService *services.BookingService
	gate           *policy.Gate
	dir            policy.Directory
}

func NewBookingHandler(bookingService *services.BookingService, gate *policy.Gate, dir policy.Directory) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, gate: gate, dir: dir}
}

type createBookingRequest struct {
	EventName string    `json:"event_name" binding:"required"`
	VenueID   uint64    `json:"venue_id" binding:"required"`
	UserOrgID uint64    `json:"user_org_id" binding:"required"`
	Start     time.Time `json:"start" binding:"required"`
	End       time.Time `json:"end" binding:"required"`
}

// CreateBooking creates a booking after the authorization gate and the
// constraint engine both pass
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	pol := policy.CreateBooking(h.dir, req.Start, req.End)
	if err := h.gate.Authorize(c.Request.Context(), "create booking", pol, user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	booking, err := h.bookingService.AddBooking(c.Request.Context(), user, services.AddBookingInput{
		EventName: req.EventName,
		VenueID:   req.VenueID,
		UserOrgID: req.UserOrgID,
		Start:     req.Start,
		End:       req.End,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookingDTO(*booking))
}

// GetBooking returns a booking by id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingDTO(*booking))
}

// ListBookings returns a venue's bookings over a time window
func (h *BookingHandler) ListBookings(c *gin.Context) {
	venueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid from timestamp")
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid to timestamp")
		return
	}

	bookings, err := h.bookingService.ListBookings(venueID, from, to)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingListResponse(bookings, from, to))
}

type updateBookingRequest struct {
	EventName string    `json:"event_name" binding:"required"`
	Start     time.Time `json:"start" binding:"required"`
	End       time.Time `json:"end" binding:"required"`
}

// UpdateBooking updates a booking. Owners and organisation heads may edit
// their own bookings; everyone else goes through the ability and venue admin
// policies.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	booking, err := h.bookingService.GetBooking(id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	canManage, err := h.bookingService.CanManageBooking(c.Request.Context(), user, booking)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	if !canManage {
		pol := policy.Any(
			policy.UpdateBooking(h.dir),
			policy.VenueAdminForBooking(h.dir, booking.VenueID),
		)
		if err := h.gate.Authorize(c.Request.Context(), "update booking", pol, user); err != nil {
			apierrors.Respond(c, err)
			return
		}
	}

	updated, err := h.bookingService.UpdateBooking(c.Request.Context(), id, services.UpdateBookingInput{
		EventName: req.EventName,
		Start:     req.Start,
		End:       req.End,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingDTO(*updated))
}

// DeleteBooking deletes a booking under the same management rules as update
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apierrors.Respond(c, apperrors.NewAuthenticationRequired())
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	canManage, err := h.bookingService.CanManageBooking(c.Request.Context(), user, booking)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	if !canManage {
		pol := policy.Any(
			policy.DeleteBooking(h.dir),
			policy.VenueAdminForBooking(h.dir, booking.VenueID),
		)
		if err := h.gate.Authorize(c.Request.Context(), "delete booking", pol, user); err != nil {
			apierrors.Respond(c, err)
			return
		}
	}

	if err := h.bookingService.DestroyBooking(c.Request.Context(), id); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
