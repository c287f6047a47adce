package repository

import (
	"context"

	"anoa.com/magangportal/internal/entity"
	"anoa.com/magangportal/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DepartmentWithCount is a department together with the number of its postings.
type DepartmentWithCount struct {
	entity.Department
	PostingCount int64
}

type DepartmentRepository interface {
	Create(ctx context.Context, department *entity.Department) error
	FindByID(ctx context.Context, id uint) (*entity.Department, error)
	FindAll(ctx context.Context, search string) ([]*DepartmentWithCount, error)
	CountPostings(ctx context.Context, id uint) (int64, error)
	Update(ctx context.Context, department *entity.Department) error
	Delete(ctx context.Context, id uint) error
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, department *entity.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

func (r *departmentRepository) FindByID(ctx context.Context, id uint) (*entity.Department, error) {
	var department entity.Department
	if err := r.db.WithContext(ctx).First(&department, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) FindAll(ctx context.Context, search string) ([]*DepartmentWithCount, error) {
	var departments []*DepartmentWithCount
	query := r.db.WithContext(ctx).
		Model(&entity.Department{}).
		Select("departments.*, COUNT(postings.id) AS posting_count").
		Joins("LEFT JOIN postings ON postings.department_id = departments.id")

	if search != "" {
		query = query.Where("departments.name ILIKE ?", database.ContainsPattern(search))
	}

	err := query.
		Group("departments.id").
		Order("departments.name ASC").
		Scan(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepository) CountPostings(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Posting{}).
		Where("department_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *departmentRepository) Update(ctx context.Context, department *entity.Department) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(department).Error
}

// Delete removes the department. Postings and their applications go with it
// through the ON DELETE CASCADE foreign keys.
func (r *departmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Department{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
