package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/orgspace/orgspace-api/internal/errors"
	"github.com/orgspace/orgspace-api/internal/services"
)

// parseIDParam extracts a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// respondServiceError maps service sentinel errors to HTTP responses and
// defers everything else to the kind-based responder.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrOrganisationNotFound),
		errors.Is(err, services.ErrOrganisationMemberNotFound),
		errors.Is(err, services.ErrVenueNotFound),
		errors.Is(err, services.ErrSubmissionNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidUserName),
		errors.Is(err, services.ErrInvalidTelegramUserName),
		errors.Is(err, services.ErrInvalidOrganisationName),
		errors.Is(err, services.ErrInvalidOrganisationSlug),
		errors.Is(err, services.ErrInvalidVenueName),
		errors.Is(err, services.ErrInvalidSubmissionData):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrOrganisationSlugTaken),
		errors.Is(err, services.ErrTelegramUserNameTaken),
		errors.Is(err, services.ErrAlreadyOrganisationMember):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.Respond(c, err)
	}
}
