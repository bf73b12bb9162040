package dto

import (
	"time"

	"github.com/orgspace/orgspace-api/internal/models"
)

// SubmissionDTO represents a submission in API responses
type SubmissionDTO struct {
	ID        uint64           `json:"id"`
	Title     string           `json:"title"`
	Text      string           `json:"text"`
	UserID    uint64           `json:"user_id"`
	OrgID     uint64           `json:"org_id"`
	Published bool             `json:"published"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	User      *UserDTO         `json:"user,omitempty"`
	Org       *OrganisationDTO `json:"organisation,omitempty"`
}

// SubmissionListResponse represents a paginated list of submissions
type SubmissionListResponse struct {
	Submissions []SubmissionDTO `json:"submissions"`
	Page        int             `json:"page"`
	PageSize    int             `json:"page_size"`
	TotalCount  int64           `json:"total_count"`
	TotalPages  int             `json:"total_pages"`
}

// ToSubmissionDTO converts a Submission model to SubmissionDTO
func ToSubmissionDTO(submission models.Submission) SubmissionDTO {
	dto := SubmissionDTO{
		ID:        submission.ID,
		Title:     submission.Title,
		Text:      submission.Text,
		UserID:    submission.UserID,
		OrgID:     submission.OrgID,
		Published: submission.Published,
		CreatedAt: submission.CreatedAt,
		UpdatedAt: submission.UpdatedAt,
	}

	// Include user if preloaded
	if submission.User.ID != 0 {
		user := ToUserDTO(submission.User)
		dto.User = &user
	}

	// Include organisation if preloaded
	if submission.Organisation.ID != 0 {
		org := ToOrganisationDTO(submission.Organisation)
		dto.Org = &org
	}

	return dto
}

// ToSubmissionListResponse converts a slice of submissions to SubmissionListResponse
func ToSubmissionListResponse(submissions []models.Submission, page, pageSize int, totalCount int64) SubmissionListResponse {
	items := make([]SubmissionDTO, len(submissions))
	for i, submission := range submissions {
		items[i] = ToSubmissionDTO(submission)
	}

	return SubmissionListResponse{
		Submissions: items,
		Page:        page,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		TotalPages:  totalPages(totalCount, pageSize),
	}
}
