package repository

import (
	"gorm.io/gorm"

	"github.com/orgspace/orgspace-api/internal/models"
	"github.com/orgspace/orgspace-api/internal/utils"
)

// GormSubmissionRepository is a GORM implementation of SubmissionRepository
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

func (r *GormSubmissionRepository) Create(submission *models.Submission) error {
	return r.db.Create(submission).Error
}

func (r *GormSubmissionRepository) FindByID(id uint64) (*models.Submission, error) {
	var submission models.Submission
	if err := r.db.First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *GormSubmissionRepository) List(orgID *uint64, publishedOnly bool, params utils.PaginationParams) ([]models.Submission, int64, error) {
	query := r.db.Model(&models.Submission{})
	if orgID != nil {
		query = query.Where("org_id = ?", *orgID)
	}
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []models.Submission
	if err := query.Order("created_at DESC").
		Offset(params.Offset).Limit(params.Limit).
		Find(&submissions).Error; err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

func (r *GormSubmissionRepository) Update(submission *models.Submission) error {
	return r.db.Save(submission).Error
}

func (r *GormSubmissionRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Submission{}, id).Error
}
