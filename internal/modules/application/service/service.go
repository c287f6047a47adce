package service

import (
	"bytes"
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"anoa.com/magangportal/internal/entity"
	"anoa.com/magangportal/internal/metrics"
	"anoa.com/magangportal/internal/modules/application/dto"
	"anoa.com/magangportal/internal/modules/application/repository"
	"anoa.com/magangportal/pkg/apperror"
	commonDto "anoa.com/magangportal/pkg/dto"
	"anoa.com/magangportal/pkg/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ApplicationService interface {
	// Submit files a new application, creating the applicant on first use.
	Submit(ctx context.Context, req dto.SubmitRequest, cv dto.CVFile) (*dto.ApplicationResponse, error)
	// SetStatus moves an application to approved or rejected.
	SetStatus(ctx context.Context, id uint, req dto.UpdateStatusRequest) (*dto.ApplicationResponse, error)
	GetApplication(ctx context.Context, id uint) (*dto.ApplicationDetailResponse, error)
	GetPendingApplications(ctx context.Context, filter commonDto.SearchFilter) (*dto.ApplicationListResponse, error)
	GetHistory(ctx context.Context, filter dto.HistoryFilter) (*dto.ApplicationListResponse, error)
	ExportHistory(ctx context.Context, filter dto.HistoryFilter) (*bytes.Buffer, string, error)
	DeleteApplication(ctx context.Context, id uint) error
}

type Config struct {
	CVFolder string
	Location *time.Location
}

type applicationService struct {
	repo     repository.ApplicationRepository
	tx       repository.Transactor
	storage  storage.FileStorage
	cvFolder string
	loc      *time.Location
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

func NewApplicationService(
	repo repository.ApplicationRepository,
	tx repository.Transactor,
	fileStorage storage.FileStorage,
	cfg Config,
	m *metrics.Metrics,
	logger *zap.Logger,
) ApplicationService {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &applicationService{
		repo:     repo,
		tx:       tx,
		storage:  fileStorage,
		cvFolder: cfg.CVFolder,
		loc:      loc,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *applicationService) GetApplication(ctx context.Context, id uint) (*dto.ApplicationDetailResponse, error) {
	application, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("pendaftaran tidak ditemukan")
		}
		return nil, err
	}

	res := &dto.ApplicationDetailResponse{
		ID:        application.ID,
		Status:    string(application.Status),
		CreatedAt: application.CreatedAt,
		UpdatedAt: application.UpdatedAt,
		Posting:   postingSummary(application.Posting),
	}

	if a := application.Applicant; a != nil {
		res.Applicant = dto.ApplicantDetail{
			ID:          a.ID,
			NationalID:  a.NationalID,
			Name:        a.Name,
			Gender:      a.Gender,
			GenderLabel: entity.GenderLabel(a.Gender),
			DateOfBirth: a.DateOfBirth.Format(entity.DateLayout),
			Address:     a.Address,
			Phone:       a.Phone,
			University:  a.University,
			Major:       a.Major,
			GPA:         a.GPA,
			CVURL:       a.CVFileRef,
			CVFileName:  cvFileName(a.CVFileRef),
			CreatedAt:   a.CreatedAt,
		}
	}

	return res, nil
}

// GetPendingApplications lists applications awaiting review, newest first.
func (s *applicationService) GetPendingApplications(ctx context.Context, filter commonDto.SearchFilter) (*dto.ApplicationListResponse, error) {
	applications, err := s.repo.FindAll(ctx, repository.ListFilter{
		Search:   filter.Search,
		Statuses: []entity.ApplicationStatus{entity.StatusPending},
		OrderBy:  "created_at",
	})
	if err != nil {
		return nil, err
	}
	return toListResponse(applications), nil
}

// GetHistory lists reviewed applications, most recently reviewed first.
func (s *applicationService) GetHistory(ctx context.Context, filter dto.HistoryFilter) (*dto.ApplicationListResponse, error) {
	applications, err := s.findHistory(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toListResponse(applications), nil
}

func (s *applicationService) findHistory(ctx context.Context, filter dto.HistoryFilter) ([]*entity.Application, error) {
	statuses := []entity.ApplicationStatus{entity.StatusApproved, entity.StatusRejected}
	if filter.Status != "" {
		status := entity.ApplicationStatus(filter.Status)
		if !status.Settable() {
			return nil, apperror.InvalidInput("status riwayat harus approved atau rejected")
		}
		statuses = []entity.ApplicationStatus{status}
	}

	return s.repo.FindAll(ctx, repository.ListFilter{
		Search:   filter.Search,
		Statuses: statuses,
		OrderBy:  "updated_at",
	})
}

// DeleteApplication removes the application record. The applicant stays.
func (s *applicationService) DeleteApplication(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("pendaftaran tidak ditemukan")
		}
		return err
	}
	return nil
}

func toListResponse(applications []*entity.Application) *dto.ApplicationListResponse {
	items := make([]dto.ApplicationListItem, 0, len(applications))
	for _, a := range applications {
		item := dto.ApplicationListItem{
			ID:        a.ID,
			Posting:   postingSummary(a.Posting),
			Status:    string(a.Status),
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		}
		if a.Applicant != nil {
			item.Name = a.Applicant.Name
			item.Initials = entity.Initials(a.Applicant.Name)
			item.NationalID = a.Applicant.NationalID
			item.University = a.Applicant.University
		}
		items = append(items, item)
	}
	return &dto.ApplicationListResponse{
		Items:      items,
		TotalItems: int64(len(items)),
	}
}

func toResponse(a *entity.Application) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:          a.ID,
		ApplicantID: a.ApplicantID,
		PostingID:   a.PostingID,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func postingSummary(p *entity.Posting) commonDto.PostingSummary {
	if p == nil {
		return commonDto.PostingSummary{}
	}
	return commonDto.PostingSummary{
		ID:    p.ID,
		Title: p.Title,
		Department: commonDto.DepartmentSummary{
			ID:   p.Department.ID,
			Name: p.Department.Name,
		},
	}
}

// cvFileName recovers the original file name from a stored CV URL,
// dropping the uuid prefix added on upload.
func cvFileName(ref string) string {
	if ref == "" {
		return ""
	}
	name := path.Base(ref)
	if i := strings.IndexByte(name, '?'); i >= 0 {
		name = name[:i]
	}
	if len(name) > 37 && name[36] == '-' {
		if _, err := uuid.Parse(name[:36]); err == nil {
			return name[37:]
		}
	}
	return name
}
