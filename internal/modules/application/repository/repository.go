package repository

import (
	"context"
	"time"

	"anoa.com/magangportal/internal/entity"
	"anoa.com/magangportal/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListFilter struct {
	Search string
	// Statuses limits the result to these statuses when not empty.
	Statuses []entity.ApplicationStatus
	// OrderBy is a column of applications to sort on, newest first.
	OrderBy string
}

type ApplicationRepository interface {
	Create(ctx context.Context, application *entity.Application) error
	FindByID(ctx context.Context, id uint) (*entity.Application, error)
	FindByApplicantAndPosting(ctx context.Context, applicantID, postingID uint) (*entity.Application, error)
	FindAll(ctx context.Context, filter ListFilter) ([]*entity.Application, error)
	UpdateStatus(ctx context.Context, id uint, status entity.ApplicationStatus, at time.Time) error
	Delete(ctx context.Context, id uint) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create inserts a new application. A second row for the same applicant and
// posting fails with gorm.ErrDuplicatedKey.
func (r *applicationRepository) Create(ctx context.Context, application *entity.Application) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(application).Error
}

func (r *applicationRepository) FindByID(ctx context.Context, id uint) (*entity.Application, error) {
	var application entity.Application
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Posting.Department").
		First(&application, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) FindByApplicantAndPosting(ctx context.Context, applicantID, postingID uint) (*entity.Application, error) {
	var application entity.Application
	err := r.db.WithContext(ctx).
		Where("applicant_id = ? AND posting_id = ?", applicantID, postingID).
		First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// FindAll lists applications with applicant, posting and department loaded.
// Search matches applicant name, posting title or university.
func (r *applicationRepository) FindAll(ctx context.Context, filter ListFilter) ([]*entity.Application, error) {
	var applications []*entity.Application
	query := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Posting.Department").
		Joins("JOIN applicants ON applicants.id = applications.applicant_id").
		Joins("JOIN postings ON postings.id = applications.posting_id")

	if filter.Search != "" {
		like := database.ContainsPattern(filter.Search)
		query = query.Where(
			"applicants.name ILIKE ? OR postings.title ILIKE ? OR applicants.university ILIKE ?",
			like, like, like,
		)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("applications.status IN ?", filter.Statuses)
	}

	orderBy := "created_at"
	if filter.OrderBy == "updated_at" {
		orderBy = "updated_at"
	}

	err := query.
		Order("applications." + orderBy + " DESC").
		Order("applications.id DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uint, status entity.ApplicationStatus, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Application{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *applicationRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Application{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
