package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/orgspace/orgspace-api/internal/models"
	"github.com/orgspace/orgspace-api/internal/repository"
	"github.com/orgspace/orgspace-api/internal/utils"
)

var (
	ErrSubmissionNotFound    = errors.New("submission not found")
	ErrInvalidSubmissionData = errors.New("submission title and text cannot be empty")
)

// SubmissionService provides business logic for organisation submissions,
// such as event write-ups awaiting publication.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	orgRepo        repository.OrganisationRepository
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(submissionRepo repository.SubmissionRepository, orgRepo repository.OrganisationRepository) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		orgRepo:        orgRepo,
	}
}

// SubmissionInput represents parameters to create or update a submission.
type SubmissionInput struct {
	Title string
	Text  string
}

// CreateSubmission creates a draft submission on behalf of an organisation.
func (s *SubmissionService) CreateSubmission(userID, orgID uint64, input SubmissionInput) (*models.Submission, error) {
	title := strings.TrimSpace(input.Title)
	text := strings.TrimSpace(input.Text)
	if title == "" || text == "" {
		return nil, ErrInvalidSubmissionData
	}

	if _, err := s.orgRepo.FindByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganisationNotFound
		}
		return nil, fmt.Errorf("failed to find organisation: %w", err)
	}

	submission := &models.Submission{
		Title:  title,
		Text:   text,
		UserID: userID,
		OrgID:  orgID,
	}

	if err := s.submissionRepo.Create(submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}
	return submission, nil
}

// GetSubmission retrieves a submission by ID.
func (s *SubmissionService) GetSubmission(id uint64) (*models.Submission, error) {
	submission, err := s.submissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return submission, nil
}

// ListSubmissions retrieves submissions with pagination. Drafts are hidden
// unless the caller may view unpublished submissions.
func (s *SubmissionService) ListSubmissions(orgID *uint64, includeDrafts bool, params utils.PaginationParams) ([]models.Submission, int64, error) {
	submissions, total, err := s.submissionRepo.List(orgID, !includeDrafts, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, total, nil
}

// UpdateSubmission updates a submission's title and text.
func (s *SubmissionService) UpdateSubmission(id uint64, input SubmissionInput) (*models.Submission, error) {
	submission, err := s.submissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		submission.Title = title
	}
	if text := strings.TrimSpace(input.Text); text != "" {
		submission.Text = text
	}

	if err := s.submissionRepo.Update(submission); err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}
	return submission, nil
}

// PublishSubmission marks a submission as published.
func (s *SubmissionService) PublishSubmission(id uint64) (*models.Submission, error) {
	submission, err := s.submissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}

	if !submission.Published {
		submission.Published = true
		if err := s.submissionRepo.Update(submission); err != nil {
			return nil, fmt.Errorf("failed to publish submission: %w", err)
		}
	}
	return submission, nil
}

// DeleteSubmission soft deletes a submission.
func (s *SubmissionService) DeleteSubmission(id uint64) error {
	if _, err := s.submissionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return fmt.Errorf("failed to find submission: %w", err)
	}

	if err := s.submissionRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	return nil
}
