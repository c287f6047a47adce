package service

import (
	"context"
	"time"

	"anoa.com/magangportal/internal/entity"
	"anoa.com/magangportal/internal/modules/dashboard/dto"
	"anoa.com/magangportal/internal/modules/dashboard/repository"
)

const (
	topDepartments     = 5
	defaultRecentLimit = 10
)

type DashboardService interface {
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
	GetTrend(ctx context.Context) (*dto.ChartResponse, error)
	GetDepartmentDistribution(ctx context.Context) (*dto.ChartResponse, error)
	GetRecentApplications(ctx context.Context, limit int) ([]dto.RecentApplicationItem, error)
}

type dashboardService struct {
	repo repository.DashboardRepository
	loc  *time.Location
	now  func() time.Time
}

func NewDashboardService(repo repository.DashboardRepository, loc *time.Location) DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardService{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	now := s.now()
	today := entity.Today(now, s.loc)

	total, err := s.repo.CountApplicants(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.CountApplicantsBetween(ctx, now.Add(-growthWindow), now)
	if err != nil {
		return nil, err
	}
	previous, err := s.repo.CountApplicantsBetween(ctx, now.Add(-2*growthWindow), now.Add(-growthWindow))
	if err != nil {
		return nil, err
	}

	activePostings, err := s.repo.CountActivePostings(ctx, today)
	if err != nil {
		return nil, err
	}
	activeDepartments, err := s.repo.CountActiveDepartments(ctx, today)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.repo.CountApplicationsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	var applications int64
	for _, n := range byStatus {
		applications += n
	}

	return &dto.StatsResponse{
		TotalApplicants:   total,
		GrowthPercentage:  GrowthPercentage(current, previous),
		ActivePostings:    activePostings,
		ActiveDepartments: activeDepartments,
		PendingReview:     byStatus[entity.StatusPending],
		AcceptanceRate:    AcceptanceRate(byStatus[entity.StatusApproved], applications),
		TotalApproved:     byStatus[entity.StatusApproved],
	}, nil
}

// GetTrend counts new applicants per 4-day bucket over the last 32 days.
func (s *dashboardService) GetTrend(ctx context.Context) (*dto.ChartResponse, error) {
	buckets := TrendBuckets(s.now(), s.loc)

	times, err := s.repo.ApplicantCreatedTimes(ctx, buckets[0].Start)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	return &dto.ChartResponse{Labels: labels, Data: CountInBuckets(buckets, times)}, nil
}

func (s *dashboardService) GetDepartmentDistribution(ctx context.Context) (*dto.ChartResponse, error) {
	rows, err := s.repo.TopDepartments(ctx, topDepartments)
	if err != nil {
		return nil, err
	}

	res := &dto.ChartResponse{Labels: []string{}, Data: []int64{}}
	for _, row := range rows {
		if row.Name == "" {
			continue
		}
		res.Labels = append(res.Labels, row.Name)
		res.Data = append(res.Data, row.Count)
	}
	return res, nil
}

func (s *dashboardService) GetRecentApplications(ctx context.Context, limit int) ([]dto.RecentApplicationItem, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	applications, err := s.repo.RecentApplications(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.RecentApplicationItem, 0, len(applications))
	for _, a := range applications {
		item := dto.RecentApplicationItem{
			ID:        a.ID,
			Status:    string(a.Status),
			CreatedAt: a.CreatedAt,
		}
		if a.Applicant != nil {
			item.Name = a.Applicant.Name
			item.Initials = entity.Initials(a.Applicant.Name)
			item.NationalID = a.Applicant.NationalID
			item.University = a.Applicant.University
		}
		if a.Posting != nil {
			item.Position = a.Posting.Title
		}
		items = append(items, item)
	}
	return items, nil
}
