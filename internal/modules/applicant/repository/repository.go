package repository

import (
	"context"

	"anoa.com/magangportal/internal/entity"
	"gorm.io/gorm"
)

// ApplicantRepository stores applicant identities. Applicants are never
// deleted on their own.
type ApplicantRepository interface {
	Create(ctx context.Context, applicant *entity.Applicant) error
	FindByID(ctx context.Context, id uint) (*entity.Applicant, error)
	FindByNationalID(ctx context.Context, nationalID string) (*entity.Applicant, error)
}

type applicantRepository struct {
	db *gorm.DB
}

func NewApplicantRepository(db *gorm.DB) ApplicantRepository {
	return &applicantRepository{db: db}
}

// Create inserts the applicant. A national id that already exists fails
// with gorm.ErrDuplicatedKey.
func (r *applicantRepository) Create(ctx context.Context, applicant *entity.Applicant) error {
	return r.db.WithContext(ctx).Create(applicant).Error
}

func (r *applicantRepository) FindByID(ctx context.Context, id uint) (*entity.Applicant, error) {
	var applicant entity.Applicant
	if err := r.db.WithContext(ctx).First(&applicant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &applicant, nil
}

func (r *applicantRepository) FindByNationalID(ctx context.Context, nationalID string) (*entity.Applicant, error) {
	var applicant entity.Applicant
	if err := r.db.WithContext(ctx).Where("national_id = ?", nationalID).First(&applicant).Error; err != nil {
		return nil, err
	}
	return &applicant, nil
}
