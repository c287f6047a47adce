package service

import (
	"context"
	"errors"
	"testing"

	"anoa.com/magangportal/internal/entity"
	"anoa.com/magangportal/internal/modules/department/dto"
	"anoa.com/magangportal/internal/modules/department/repository"
	postingRepo "anoa.com/magangportal/internal/modules/posting/repository"
	"anoa.com/magangportal/pkg/apperror"
	commonDto "anoa.com/magangportal/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockDepartmentRepo struct {
	mock.Mock
}

func (m *mockDepartmentRepo) Create(ctx context.Context, d *entity.Department) error {
	args := m.Called(ctx, d)
	d.ID = 1
	return args.Error(0)
}

func (m *mockDepartmentRepo) FindByID(ctx context.Context, id uint) (*entity.Department, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*entity.Department); ok {
		cp := *d
		return &cp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDepartmentRepo) FindAll(ctx context.Context, search string) ([]*repository.DepartmentWithCount, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]*repository.DepartmentWithCount), args.Error(1)
}

func (m *mockDepartmentRepo) CountPostings(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDepartmentRepo) Update(ctx context.Context, d *entity.Department) error {
	return m.Called(ctx, d).Error(0)
}

func (m *mockDepartmentRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockPostingRepo struct {
	postingRepo.PostingRepository
	mock.Mock
}

func (m *mockPostingRepo) FindAll(ctx context.Context, f postingRepo.PostingFilter) ([]*entity.Posting, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*entity.Posting), args.Error(1)
}

func (m *mockPostingRepo) FindIDsByDepartment(ctx context.Context, id uint) ([]uint, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]uint), args.Error(1)
}

type mockIndex struct {
	mock.Mock
}

func (m *mockIndex) IndexPostings(postings ...*entity.Posting) error {
	return m.Called(postings).Error(0)
}

func (m *mockIndex) DeletePostings(ids ...uint) error {
	return m.Called(ids).Error(0)
}

func (m *mockIndex) SearchPostings(query string, limit int) ([]uint, error) {
	args := m.Called(query, limit)
	return args.Get(0).([]uint), args.Error(1)
}

func TestCreateDepartment(t *testing.T) {
	repo := new(mockDepartmentRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(d *entity.Department) bool {
		return d.Name == "Finance"
	})).Return(nil)

	svc := NewDepartmentService(repo, new(mockPostingRepo), nil, zap.NewNop())
	res, err := svc.CreateDepartment(context.Background(), dto.DepartmentRequest{Name: "Finance"})

	require.NoError(t, err)
	assert.Equal(t, uint(1), res.ID)
	assert.Equal(t, "Finance", res.Name)
	repo.AssertExpectations(t)
}

func TestGetAllDepartmentsCarriesPostingCount(t *testing.T) {
	repo := new(mockDepartmentRepo)
	repo.On("FindAll", mock.Anything, "eng").Return([]*repository.DepartmentWithCount{
		{Department: entity.Department{ID: 2, Name: "Engineering"}, PostingCount: 3},
	}, nil)

	svc := NewDepartmentService(repo, new(mockPostingRepo), nil, zap.NewNop())
	res, err := svc.GetAllDepartments(context.Background(), commonDto.SearchFilter{Search: "eng"})

	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(3), res.Items[0].PostingCount)
	assert.Equal(t, int64(1), res.TotalItems)
}

func TestGetDepartmentNotFound(t *testing.T) {
	repo := new(mockDepartmentRepo)
	repo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewDepartmentService(repo, new(mockPostingRepo), nil, zap.NewNop())
	_, err := svc.GetDepartment(context.Background(), 9)

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateDepartmentReindexesPostingsOnRename(t *testing.T) {
	repo := new(mockDepartmentRepo)
	postings := new(mockPostingRepo)
	index := new(mockIndex)

	repo.On("FindByID", mock.Anything, uint(1)).Return(&entity.Department{ID: 1, Name: "IT"}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(d *entity.Department) bool {
		return d.Name == "Teknologi Informasi"
	})).Return(nil)
	repo.On("CountPostings", mock.Anything, uint(1)).Return(int64(2), nil)

	affected := []*entity.Posting{{ID: 10, DepartmentID: 1}, {ID: 11, DepartmentID: 1}}
	postings.On("FindAll", mock.Anything, postingRepo.PostingFilter{DepartmentID: 1}).Return(affected, nil)
	index.On("IndexPostings", affected).Return(nil)

	svc := NewDepartmentService(repo, postings, index, zap.NewNop())
	res, err := svc.UpdateDepartment(context.Background(), 1, dto.DepartmentRequest{Name: "Teknologi Informasi"})

	require.NoError(t, err)
	assert.Equal(t, int64(2), res.PostingCount)
	index.AssertExpectations(t)
}

func TestUpdateDepartmentSameNameSkipsReindex(t *testing.T) {
	repo := new(mockDepartmentRepo)
	index := new(mockIndex)

	repo.On("FindByID", mock.Anything, uint(1)).Return(&entity.Department{ID: 1, Name: "IT"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	repo.On("CountPostings", mock.Anything, uint(1)).Return(int64(0), nil)

	svc := NewDepartmentService(repo, new(mockPostingRepo), index, zap.NewNop())
	_, err := svc.UpdateDepartment(context.Background(), 1, dto.DepartmentRequest{Name: "IT"})

	require.NoError(t, err)
	index.AssertNotCalled(t, "IndexPostings", mock.Anything)
}

func TestDeleteDepartmentUnindexesItsPostings(t *testing.T) {
	repo := new(mockDepartmentRepo)
	postings := new(mockPostingRepo)
	index := new(mockIndex)

	postings.On("FindIDsByDepartment", mock.Anything, uint(1)).Return([]uint{10, 11}, nil)
	repo.On("Delete", mock.Anything, uint(1)).Return(nil)
	index.On("DeletePostings", []uint{10, 11}).Return(errors.New("meilisearch down"))

	svc := NewDepartmentService(repo, postings, index, zap.NewNop())

	// Index failures are logged, not returned.
	require.NoError(t, svc.DeleteDepartment(context.Background(), 1))
	index.AssertExpectations(t)
}

func TestDeleteDepartmentNotFound(t *testing.T) {
	repo := new(mockDepartmentRepo)
	postings := new(mockPostingRepo)

	postings.On("FindIDsByDepartment", mock.Anything, uint(5)).Return([]uint(nil), nil)
	repo.On("Delete", mock.Anything, uint(5)).Return(gorm.ErrRecordNotFound)

	svc := NewDepartmentService(repo, postings, nil, zap.NewNop())
	err := svc.DeleteDepartment(context.Background(), 5)

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
