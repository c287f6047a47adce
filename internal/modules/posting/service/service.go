package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/magangportal/internal/entity"
	deptRepo "anoa.com/magangportal/internal/modules/department/repository"
	"anoa.com/magangportal/internal/modules/posting/dto"
	"anoa.com/magangportal/internal/modules/posting/repository"
	search "anoa.com/magangportal/internal/modules/search/service"
	"anoa.com/magangportal/pkg/apperror"
	commonDto "anoa.com/magangportal/pkg/dto"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultSearchLimit = 20

type PostingService interface {
	CreatePosting(ctx context.Context, req dto.PostingRequest) (*dto.PostingResponse, error)
	GetPosting(ctx context.Context, id uint) (*dto.PostingResponse, error)
	GetAllPostings(ctx context.Context, filter dto.PostingFilter) (*dto.PostingListResponse, error)
	SearchPostings(ctx context.Context, req dto.SearchPostingRequest) (*dto.PostingListResponse, error)
	UpdatePosting(ctx context.Context, id uint, req dto.PostingRequest) (*dto.PostingResponse, error)
	DeletePosting(ctx context.Context, id uint) error
}

type postingService struct {
	repo      repository.PostingRepository
	deptRepo  deptRepo.DepartmentRepository
	index     search.PostingIndex
	sanitizer *bluemonday.Policy
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// NewPostingService builds the posting service. index may be nil, in which
// case search runs against the database.
func NewPostingService(
	repo repository.PostingRepository,
	deptRepo deptRepo.DepartmentRepository,
	index search.PostingIndex,
	loc *time.Location,
	logger *zap.Logger,
) PostingService {
	return &postingService{
		repo:      repo,
		deptRepo:  deptRepo,
		index:     index,
		sanitizer: bluemonday.UGCPolicy(),
		loc:       loc,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *postingService) today() time.Time {
	return entity.Today(s.now(), s.loc)
}

func (s *postingService) CreatePosting(ctx context.Context, req dto.PostingRequest) (*dto.PostingResponse, error) {
	posting := &entity.Posting{}
	if err := s.apply(ctx, posting, req); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, posting); err != nil {
		return nil, err
	}

	s.syncIndex(posting)
	return s.toResponse(posting), nil
}

func (s *postingService) GetPosting(ctx context.Context, id uint) (*dto.PostingResponse, error) {
	posting, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(posting), nil
}

func (s *postingService) GetAllPostings(ctx context.Context, filter dto.PostingFilter) (*dto.PostingListResponse, error) {
	repoFilter := repository.PostingFilter{
		Search:       filter.Search,
		DepartmentID: filter.DepartmentID,
	}

	today := s.today()
	switch filter.Status {
	case entity.PostingStatusOpen:
		repoFilter.OpenOn = &today
	case entity.PostingStatusClosed:
		repoFilter.ClosedBefore = &today
	}

	postings, err := s.repo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	return s.toListResponse(postings), nil
}

// SearchPostings runs a full-text query through the search index and keeps
// its ranking. Without an index, or when the index fails, it falls back to
// the substring search of GetAllPostings.
func (s *postingService) SearchPostings(ctx context.Context, req dto.SearchPostingRequest) (*dto.PostingListResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	if s.index != nil {
		ids, err := s.index.SearchPostings(req.Query, limit)
		if err == nil {
			return s.resolveHits(ctx, ids)
		}
		s.logger.Warn("posting search index unavailable, falling back to database", zap.Error(err))
	}

	postings, err := s.repo.FindAll(ctx, repository.PostingFilter{Search: req.Query})
	if err != nil {
		return nil, err
	}
	if len(postings) > limit {
		postings = postings[:limit]
	}
	return s.toListResponse(postings), nil
}

func (s *postingService) resolveHits(ctx context.Context, ids []uint) (*dto.PostingListResponse, error) {
	postings, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]*entity.Posting, len(postings))
	for _, p := range postings {
		byID[p.ID] = p
	}

	// Keep the index ranking and skip hits deleted since indexing.
	ordered := make([]*entity.Posting, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return s.toListResponse(ordered), nil
}

func (s *postingService) UpdatePosting(ctx context.Context, id uint, req dto.PostingRequest) (*dto.PostingResponse, error) {
	posting, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, posting, req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, posting); err != nil {
		return nil, err
	}

	s.syncIndex(posting)
	return s.toResponse(posting), nil
}

func (s *postingService) DeletePosting(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("lowongan tidak ditemukan")
		}
		return err
	}

	if s.index != nil {
		if err := s.index.DeletePostings(id); err != nil {
			s.logger.Warn("failed to remove posting from search index", zap.Uint("posting_id", id), zap.Error(err))
		}
	}
	return nil
}

func (s *postingService) find(ctx context.Context, id uint) (*entity.Posting, error) {
	posting, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("lowongan tidak ditemukan")
		}
		return nil, err
	}
	return posting, nil
}

// apply validates req and copies it onto posting, resolving the department.
func (s *postingService) apply(ctx context.Context, posting *entity.Posting, req dto.PostingRequest) error {
	openDate, err := entity.ParseDate(req.OpenDate)
	if err != nil {
		return apperror.InvalidInput("tanggal mulai harus berformat YYYY-MM-DD")
	}
	closeDate, err := entity.ParseDate(req.CloseDate)
	if err != nil {
		return apperror.InvalidInput("tanggal selesai harus berformat YYYY-MM-DD")
	}
	if openDate.After(closeDate) {
		return apperror.InvalidInput("tanggal mulai tidak boleh setelah tanggal selesai")
	}

	department, err := s.deptRepo.FindByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("departemen tidak ditemukan")
		}
		return err
	}

	posting.Title = req.Title
	posting.Description = s.sanitizer.Sanitize(req.Description)
	posting.DepartmentID = department.ID
	posting.Department = *department
	posting.OpenDate = openDate
	posting.CloseDate = closeDate
	return nil
}

func (s *postingService) syncIndex(posting *entity.Posting) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexPostings(posting); err != nil {
		s.logger.Warn("failed to index posting", zap.Uint("posting_id", posting.ID), zap.Error(err))
	}
}

func (s *postingService) toResponse(p *entity.Posting) *dto.PostingResponse {
	return toResponse(p, s.today())
}

func (s *postingService) toListResponse(postings []*entity.Posting) *dto.PostingListResponse {
	today := s.today()
	items := make([]dto.PostingResponse, 0, len(postings))
	for _, p := range postings {
		items = append(items, *toResponse(p, today))
	}
	return &dto.PostingListResponse{
		Items:      items,
		TotalItems: int64(len(items)),
	}
}

func toResponse(p *entity.Posting, today time.Time) *dto.PostingResponse {
	return &dto.PostingResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Department: commonDto.DepartmentSummary{
			ID:   p.Department.ID,
			Name: p.Department.Name,
		},
		OpenDate:  p.OpenDate.Format(entity.DateLayout),
		CloseDate: p.CloseDate.Format(entity.DateLayout),
		Status:    p.Status(today),
	}
}
