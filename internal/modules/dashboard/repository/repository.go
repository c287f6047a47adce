package repository

import (
	"context"
	"time"

	"anoa.com/magangportal/internal/entity"
	"gorm.io/gorm"
)

type DepartmentCount struct {
	Name  string
	Count int64
}

// DashboardRepository runs the read-only aggregate queries behind the
// staff dashboard.
type DashboardRepository interface {
	CountApplicants(ctx context.Context) (int64, error)
	// CountApplicantsBetween counts applicants created in [from, to).
	CountApplicantsBetween(ctx context.Context, from, to time.Time) (int64, error)
	ApplicantCreatedTimes(ctx context.Context, since time.Time) ([]time.Time, error)
	CountActivePostings(ctx context.Context, today time.Time) (int64, error)
	CountActiveDepartments(ctx context.Context, today time.Time) (int64, error)
	CountApplicationsByStatus(ctx context.Context) (map[entity.ApplicationStatus]int64, error)
	TopDepartments(ctx context.Context, limit int) ([]DepartmentCount, error)
	RecentApplications(ctx context.Context, limit int) ([]*entity.Application, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountApplicants(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Applicant{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountApplicantsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Applicant{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) ApplicantCreatedTimes(ctx context.Context, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).
		Model(&entity.Applicant{}).
		Where("created_at >= ?", since).
		Pluck("created_at", &times).Error
	return times, err
}

func (r *dashboardRepository) CountActivePostings(ctx context.Context, today time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Posting{}).
		Where("close_date >= ?", today.Format(entity.DateLayout)).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountActiveDepartments(ctx context.Context, today time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Posting{}).
		Where("close_date >= ?", today.Format(entity.DateLayout)).
		Distinct("department_id").
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountApplicationsByStatus(ctx context.Context) (map[entity.ApplicationStatus]int64, error) {
	var rows []struct {
		Status entity.ApplicationStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// TopDepartments ranks departments by their number of applications.
func (r *dashboardRepository) TopDepartments(ctx context.Context, limit int) ([]DepartmentCount, error) {
	var rows []DepartmentCount
	err := r.db.WithContext(ctx).
		Table("applications").
		Select("departments.name AS name, COUNT(applications.id) AS count").
		Joins("JOIN postings ON postings.id = applications.posting_id").
		Joins("JOIN departments ON departments.id = postings.department_id").
		Group("departments.id, departments.name").
		Order("count DESC, departments.name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) RecentApplications(ctx context.Context, limit int) ([]*entity.Application, error) {
	var applications []*entity.Application
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Posting.Department").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&applications).Error
	return applications, err
}
