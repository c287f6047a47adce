package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"anoa.com/magangportal/internal/entity"
	deptRepo "anoa.com/magangportal/internal/modules/department/repository"
	"anoa.com/magangportal/internal/modules/posting/dto"
	"anoa.com/magangportal/internal/modules/posting/repository"
	"anoa.com/magangportal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockPostingRepo struct {
	postings map[uint]*entity.Posting
	depts    map[uint]*entity.Department
	nextID   uint
}

func newMockPostingRepo(depts map[uint]*entity.Department) *mockPostingRepo {
	return &mockPostingRepo{postings: map[uint]*entity.Posting{}, depts: depts}
}

func (m *mockPostingRepo) withDept(p *entity.Posting) *entity.Posting {
	cp := *p
	if d, ok := m.depts[p.DepartmentID]; ok {
		cp.Department = *d
	}
	return &cp
}

func (m *mockPostingRepo) Create(_ context.Context, p *entity.Posting) error {
	m.nextID++
	p.ID = m.nextID
	cp := *p
	m.postings[p.ID] = &cp
	return nil
}

func (m *mockPostingRepo) FindByID(_ context.Context, id uint) (*entity.Posting, error) {
	p, ok := m.postings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m.withDept(p), nil
}

func (m *mockPostingRepo) FindByIDs(_ context.Context, ids []uint) ([]*entity.Posting, error) {
	var out []*entity.Posting
	for _, id := range ids {
		if p, ok := m.postings[id]; ok {
			out = append(out, m.withDept(p))
		}
	}
	// The store returns rows in its own order.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockPostingRepo) FindAll(_ context.Context, f repository.PostingFilter) ([]*entity.Posting, error) {
	var out []*entity.Posting
	for _, p := range m.postings {
		p = m.withDept(p)
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Title), q) && !strings.Contains(strings.ToLower(p.Department.Name), q) {
				continue
			}
		}
		if f.DepartmentID != 0 && p.DepartmentID != f.DepartmentID {
			continue
		}
		if f.OpenOn != nil && p.CloseDate.Before(*f.OpenOn) {
			continue
		}
		if f.ClosedBefore != nil && !p.CloseDate.Before(*f.ClosedBefore) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OpenDate.After(out[j].OpenDate) })
	return out, nil
}

func (m *mockPostingRepo) FindIDsByDepartment(_ context.Context, departmentID uint) ([]uint, error) {
	var ids []uint
	for _, p := range m.postings {
		if p.DepartmentID == departmentID {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (m *mockPostingRepo) Update(_ context.Context, p *entity.Posting) error {
	cp := *p
	m.postings[p.ID] = &cp
	return nil
}

func (m *mockPostingRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.postings[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.postings, id)
	return nil
}

type mockDeptRepo struct {
	deptRepo.DepartmentRepository
	depts map[uint]*entity.Department
}

func (m *mockDeptRepo) FindByID(_ context.Context, id uint) (*entity.Department, error) {
	d, ok := m.depts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

type mockIndex struct {
	indexed  map[uint]string
	deleted  []uint
	hits     []uint
	errOnAll error
}

func newMockIndex() *mockIndex {
	return &mockIndex{indexed: map[uint]string{}}
}

func (m *mockIndex) IndexPostings(postings ...*entity.Posting) error {
	if m.errOnAll != nil {
		return m.errOnAll
	}
	for _, p := range postings {
		m.indexed[p.ID] = p.Title
	}
	return nil
}

func (m *mockIndex) DeletePostings(ids ...uint) error {
	m.deleted = append(m.deleted, ids...)
	return m.errOnAll
}

func (m *mockIndex) SearchPostings(string, int) ([]uint, error) {
	if m.errOnAll != nil {
		return nil, m.errOnAll
	}
	return m.hits, nil
}

// fixed clock: 2025-03-11 in Jakarta
var now = time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC)

func date(s string) time.Time {
	d, err := entity.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	svc   *postingService
	repo  *mockPostingRepo
	index *mockIndex
}

func newFixture(t *testing.T, withIndex bool) fixture {
	t.Helper()
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	depts := map[uint]*entity.Department{
		1: {ID: 1, Name: "Engineering"},
		2: {ID: 2, Name: "Marketing"},
	}
	repo := newMockPostingRepo(depts)
	index := newMockIndex()

	depRepo := &mockDeptRepo{depts: depts}

	var svc PostingService
	if withIndex {
		svc = NewPostingService(repo, depRepo, index, jakarta, zap.NewNop())
	} else {
		svc = NewPostingService(repo, depRepo, nil, jakarta, zap.NewNop())
	}
	s := svc.(*postingService)
	s.now = func() time.Time { return now }
	return fixture{svc: s, repo: repo, index: index}
}

func TestCreatePosting(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	res, err := f.svc.CreatePosting(ctx, dto.PostingRequest{
		Title:        "Software Engineering Intern",
		Description:  `<p>Pengembangan fitur</p><script>alert("x")</script>`,
		DepartmentID: 1,
		OpenDate:     "2025-03-01",
		CloseDate:    "2025-03-11",
	})
	require.NoError(t, err)

	assert.Equal(t, "Engineering", res.Department.Name)
	assert.Equal(t, entity.PostingStatusOpen, res.Status, "closing today is still open")
	assert.Equal(t, "<p>Pengembangan fitur</p>", res.Description)
	assert.Equal(t, "Software Engineering Intern", f.index.indexed[res.ID])
}

func TestCreatePostingValidation(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	_, err := f.svc.CreatePosting(ctx, dto.PostingRequest{
		Title: "DevOps Intern", Description: "x", DepartmentID: 1,
		OpenDate: "2025-04-01", CloseDate: "2025-03-01",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = f.svc.CreatePosting(ctx, dto.PostingRequest{
		Title: "DevOps Intern", Description: "x", DepartmentID: 99,
		OpenDate: "2025-03-01", CloseDate: "2025-04-01",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Empty(t, f.repo.postings)
}

func TestGetAllPostingsStatus(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	f.repo.postings[1] = &entity.Posting{ID: 1, Title: "Open", DepartmentID: 1, OpenDate: date("2025-03-01"), CloseDate: date("2025-03-11")}
	f.repo.postings[2] = &entity.Posting{ID: 2, Title: "Closed", DepartmentID: 2, OpenDate: date("2025-02-01"), CloseDate: date("2025-03-10")}

	all, err := f.svc.GetAllPostings(ctx, dto.PostingFilter{})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.Equal(t, "Open", all.Items[0].Title, "newest open_date first")
	assert.Equal(t, entity.PostingStatusOpen, all.Items[0].Status)
	assert.Equal(t, entity.PostingStatusClosed, all.Items[1].Status)

	open, err := f.svc.GetAllPostings(ctx, dto.PostingFilter{Status: entity.PostingStatusOpen})
	require.NoError(t, err)
	require.Len(t, open.Items, 1)
	assert.Equal(t, uint(1), open.Items[0].ID)

	byDept, err := f.svc.GetAllPostings(ctx, dto.PostingFilter{Search: "market"})
	require.NoError(t, err)
	require.Len(t, byDept.Items, 1)
	assert.Equal(t, uint(2), byDept.Items[0].ID)
}

func TestSearchPostingsKeepsIndexRanking(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	f.repo.postings[1] = &entity.Posting{ID: 1, Title: "QA Intern", DepartmentID: 1, OpenDate: date("2025-03-01"), CloseDate: date("2025-04-01")}
	f.repo.postings[2] = &entity.Posting{ID: 2, Title: "DevOps Intern", DepartmentID: 1, OpenDate: date("2025-03-02"), CloseDate: date("2025-04-01")}
	f.index.hits = []uint{2, 9, 1}

	res, err := f.svc.SearchPostings(ctx, dto.SearchPostingRequest{Query: "intern"})
	require.NoError(t, err)
	require.Len(t, res.Items, 2, "stale hits are skipped")
	assert.Equal(t, uint(2), res.Items[0].ID)
	assert.Equal(t, uint(1), res.Items[1].ID)
}

func TestSearchPostingsFallsBackToDatabase(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	f.repo.postings[1] = &entity.Posting{ID: 1, Title: "QA Intern", DepartmentID: 1, OpenDate: date("2025-03-01"), CloseDate: date("2025-04-01")}
	f.repo.postings[2] = &entity.Posting{ID: 2, Title: "Brand Marketing Intern", DepartmentID: 2, OpenDate: date("2025-03-02"), CloseDate: date("2025-04-01")}
	f.index.errOnAll = errors.New("connection refused")

	res, err := f.svc.SearchPostings(ctx, dto.SearchPostingRequest{Query: "qa"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "QA Intern", res.Items[0].Title)
}

func TestUpdatePostingMovesDepartment(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	f.repo.postings[1] = &entity.Posting{ID: 1, Title: "QA Intern", DepartmentID: 1, OpenDate: date("2025-03-01"), CloseDate: date("2025-04-01")}

	res, err := f.svc.UpdatePosting(ctx, 1, dto.PostingRequest{
		Title: "Growth Intern", Description: "x", DepartmentID: 2,
		OpenDate: "2025-03-01", CloseDate: "2025-03-05",
	})
	require.NoError(t, err)
	assert.Equal(t, "Marketing", res.Department.Name)
	assert.Equal(t, entity.PostingStatusClosed, res.Status)
	assert.Equal(t, uint(2), f.repo.postings[1].DepartmentID)

	_, err = f.svc.UpdatePosting(ctx, 42, dto.PostingRequest{
		Title: "x", Description: "x", DepartmentID: 2, OpenDate: "2025-03-01", CloseDate: "2025-03-05",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeletePosting(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	f.repo.postings[1] = &entity.Posting{ID: 1, Title: "QA Intern", DepartmentID: 1}

	require.NoError(t, f.svc.DeletePosting(ctx, 1))
	assert.Equal(t, []uint{1}, f.index.deleted)

	assert.ErrorIs(t, f.svc.DeletePosting(ctx, 1), apperror.ErrNotFound)
}
