package service

import (
	"context"
	"errors"

	"anoa.com/magangportal/internal/entity"
	"anoa.com/magangportal/internal/modules/department/dto"
	"anoa.com/magangportal/internal/modules/department/repository"
	postingRepo "anoa.com/magangportal/internal/modules/posting/repository"
	search "anoa.com/magangportal/internal/modules/search/service"
	"anoa.com/magangportal/pkg/apperror"
	commonDto "anoa.com/magangportal/pkg/dto"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DepartmentService interface {
	CreateDepartment(ctx context.Context, req dto.DepartmentRequest) (*dto.DepartmentResponse, error)
	GetAllDepartments(ctx context.Context, filter commonDto.SearchFilter) (*dto.DepartmentListResponse, error)
	GetDepartment(ctx context.Context, id uint) (*dto.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, id uint, req dto.DepartmentRequest) (*dto.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id uint) error
}

type departmentService struct {
	repo        repository.DepartmentRepository
	postingRepo postingRepo.PostingRepository
	index       search.PostingIndex
	logger      *zap.Logger
}

func NewDepartmentService(
	repo repository.DepartmentRepository,
	postingRepo postingRepo.PostingRepository,
	index search.PostingIndex,
	logger *zap.Logger,
) DepartmentService {
	return &departmentService{
		repo:        repo,
		postingRepo: postingRepo,
		index:       index,
		logger:      logger,
	}
}

func (s *departmentService) CreateDepartment(ctx context.Context, req dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	department := &entity.Department{Name: req.Name}
	if err := s.repo.Create(ctx, department); err != nil {
		return nil, err
	}
	return &dto.DepartmentResponse{ID: department.ID, Name: department.Name}, nil
}

func (s *departmentService) GetAllDepartments(ctx context.Context, filter commonDto.SearchFilter) (*dto.DepartmentListResponse, error) {
	departments, err := s.repo.FindAll(ctx, filter.Search)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		items = append(items, dto.DepartmentResponse{
			ID:           d.ID,
			Name:         d.Name,
			PostingCount: d.PostingCount,
		})
	}

	return &dto.DepartmentListResponse{
		Items:      items,
		TotalItems: int64(len(items)),
	}, nil
}

func (s *departmentService) GetDepartment(ctx context.Context, id uint) (*dto.DepartmentResponse, error) {
	department, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountPostings(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.DepartmentResponse{
		ID:           department.ID,
		Name:         department.Name,
		PostingCount: count,
	}, nil
}

// UpdateDepartment renames the department and refreshes the search
// documents of its postings, which carry the department name.
func (s *departmentService) UpdateDepartment(ctx context.Context, id uint, req dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	department, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	renamed := department.Name != req.Name
	department.Name = req.Name
	if err := s.repo.Update(ctx, department); err != nil {
		return nil, err
	}

	if renamed && s.index != nil {
		postings, err := s.postingRepo.FindAll(ctx, postingRepo.PostingFilter{DepartmentID: id})
		if err != nil {
			s.logger.Warn("failed to load postings for reindex", zap.Uint("department_id", id), zap.Error(err))
		} else if err := s.index.IndexPostings(postings...); err != nil {
			s.logger.Warn("failed to reindex department postings", zap.Uint("department_id", id), zap.Error(err))
		}
	}

	return s.GetDepartment(ctx, id)
}

// DeleteDepartment removes the department with its postings and their
// applications.
func (s *departmentService) DeleteDepartment(ctx context.Context, id uint) error {
	postingIDs, err := s.postingRepo.FindIDsByDepartment(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("departemen tidak ditemukan")
		}
		return err
	}

	if s.index != nil && len(postingIDs) > 0 {
		if err := s.index.DeletePostings(postingIDs...); err != nil {
			s.logger.Warn("failed to remove department postings from search index", zap.Uint("department_id", id), zap.Error(err))
		}
	}
	return nil
}

func (s *departmentService) find(ctx context.Context, id uint) (*entity.Department, error) {
	department, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("departemen tidak ditemukan")
		}
		return nil, err
	}
	return department, nil
}
