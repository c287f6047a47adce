package repository

import (
	"context"
	"time"

	"anoa.com/magangportal/internal/entity"
	"anoa.com/magangportal/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostingFilter struct {
	Search       string
	DepartmentID uint
	// OpenOn keeps postings whose close_date is on or after the date.
	OpenOn *time.Time
	// ClosedBefore keeps postings whose close_date is before the date.
	ClosedBefore *time.Time
}

type PostingRepository interface {
	Create(ctx context.Context, posting *entity.Posting) error
	FindByID(ctx context.Context, id uint) (*entity.Posting, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*entity.Posting, error)
	FindAll(ctx context.Context, filter PostingFilter) ([]*entity.Posting, error)
	FindIDsByDepartment(ctx context.Context, departmentID uint) ([]uint, error)
	Update(ctx context.Context, posting *entity.Posting) error
	Delete(ctx context.Context, id uint) error
}

type postingRepository struct {
	db *gorm.DB
}

func NewPostingRepository(db *gorm.DB) PostingRepository {
	return &postingRepository{db: db}
}

func (r *postingRepository) Create(ctx context.Context, posting *entity.Posting) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(posting).Error
}

func (r *postingRepository) FindByID(ctx context.Context, id uint) (*entity.Posting, error) {
	var posting entity.Posting
	if err := r.db.WithContext(ctx).Joins("Department").First(&posting, "postings.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &posting, nil
}

func (r *postingRepository) FindByIDs(ctx context.Context, ids []uint) ([]*entity.Posting, error) {
	var postings []*entity.Posting
	if len(ids) == 0 {
		return postings, nil
	}
	if err := r.db.WithContext(ctx).Joins("Department").Where("postings.id IN ?", ids).Find(&postings).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

func (r *postingRepository) FindAll(ctx context.Context, filter PostingFilter) ([]*entity.Posting, error) {
	var postings []*entity.Posting
	query := r.db.WithContext(ctx).Joins("Department")

	if filter.Search != "" {
		like := database.ContainsPattern(filter.Search)
		query = query.Where(`postings.title ILIKE ? OR "Department".name ILIKE ?`, like, like)
	}
	if filter.DepartmentID != 0 {
		query = query.Where("postings.department_id = ?", filter.DepartmentID)
	}
	if filter.OpenOn != nil {
		query = query.Where("postings.close_date >= ?", filter.OpenOn.Format(entity.DateLayout))
	}
	if filter.ClosedBefore != nil {
		query = query.Where("postings.close_date < ?", filter.ClosedBefore.Format(entity.DateLayout))
	}

	if err := query.Order("postings.open_date DESC, postings.id DESC").Find(&postings).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

func (r *postingRepository) FindIDsByDepartment(ctx context.Context, departmentID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&entity.Posting{}).
		Where("department_id = ?", departmentID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *postingRepository) Update(ctx context.Context, posting *entity.Posting) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(posting).Error
}

// Delete removes the posting and, through ON DELETE CASCADE, its applications.
func (r *postingRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Posting{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
