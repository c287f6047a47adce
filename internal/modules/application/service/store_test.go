package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"anoa.com/magangportal/internal/entity"
	applicantRepo "anoa.com/magangportal/internal/modules/applicant/repository"
	"anoa.com/magangportal/internal/modules/application/repository"
	postingRepo "anoa.com/magangportal/internal/modules/posting/repository"
	"gorm.io/gorm"
)

// memStore is an in-memory database with snapshot rollback. Rows written by
// concurrent are treated as committed by another transaction and survive a
// rollback.
type memStore struct {
	postings     map[uint]*entity.Posting
	applicants   map[uint]*entity.Applicant
	applications map[uint]*entity.Application

	nextApplicantID   uint
	nextApplicationID uint

	concurrent []*entity.Applicant

	// beforeApplicantCreate runs once, right before the next applicant insert.
	beforeApplicantCreate func(s *memStore)
	// failApplicationCreate is returned by the next application insert.
	failApplicationCreate error
}

func newMemStore() *memStore {
	return &memStore{
		postings:     map[uint]*entity.Posting{},
		applicants:   map[uint]*entity.Applicant{},
		applications: map[uint]*entity.Application{},
	}
}

// insertConcurrentApplicant simulates another request committing an
// applicant with the given national id.
func (s *memStore) insertConcurrentApplicant(a *entity.Applicant) {
	s.nextApplicantID++
	a.ID = s.nextApplicantID
	s.applicants[a.ID] = a
	s.concurrent = append(s.concurrent, a)
}

type memSnapshot struct {
	applicants        map[uint]entity.Applicant
	applications      map[uint]entity.Application
	nextApplicantID   uint
	nextApplicationID uint
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		applicants:        map[uint]entity.Applicant{},
		applications:      map[uint]entity.Application{},
		nextApplicantID:   s.nextApplicantID,
		nextApplicationID: s.nextApplicationID,
	}
	for id, a := range s.applicants {
		snap.applicants[id] = *a
	}
	for id, a := range s.applications {
		snap.applications[id] = *a
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.applicants = map[uint]*entity.Applicant{}
	for id, a := range snap.applicants {
		a := a
		s.applicants[id] = &a
	}
	s.applications = map[uint]*entity.Application{}
	for id, a := range snap.applications {
		a := a
		s.applications[id] = &a
	}
	for _, a := range s.concurrent {
		s.applicants[a.ID] = a
		if a.ID > snap.nextApplicantID {
			snap.nextApplicantID = a.ID
		}
	}
	s.nextApplicantID = snap.nextApplicantID
	s.nextApplicationID = snap.nextApplicationID
}

func (s *memStore) stores() repository.Stores {
	return repository.Stores{
		Postings:     &memPostings{store: s},
		Applicants:   &memApplicants{store: s},
		Applications: &memApplications{store: s},
	}
}

type memTransactor struct {
	store *memStore
}

func (t *memTransactor) RunInTx(_ context.Context, fn func(stores repository.Stores) error) error {
	snap := t.store.snapshot()
	if err := fn(t.store.stores()); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

type memPostings struct {
	postingRepo.PostingRepository
	store *memStore
}

func (m *memPostings) FindByID(_ context.Context, id uint) (*entity.Posting, error) {
	p, ok := m.store.postings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

type memApplicants struct {
	store *memStore
}

var _ applicantRepo.ApplicantRepository = (*memApplicants)(nil)

func (m *memApplicants) Create(_ context.Context, a *entity.Applicant) error {
	if hook := m.store.beforeApplicantCreate; hook != nil {
		m.store.beforeApplicantCreate = nil
		hook(m.store)
	}
	for _, existing := range m.store.applicants {
		if existing.NationalID == a.NationalID {
			return gorm.ErrDuplicatedKey
		}
	}
	m.store.nextApplicantID++
	a.ID = m.store.nextApplicantID
	cp := *a
	m.store.applicants[a.ID] = &cp
	return nil
}

func (m *memApplicants) FindByID(_ context.Context, id uint) (*entity.Applicant, error) {
	a, ok := m.store.applicants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memApplicants) FindByNationalID(_ context.Context, nationalID string) (*entity.Applicant, error) {
	for _, a := range m.store.applicants {
		if a.NationalID == nationalID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type memApplications struct {
	store *memStore
}

var _ repository.ApplicationRepository = (*memApplications)(nil)

func (m *memApplications) load(a *entity.Application) *entity.Application {
	cp := *a
	if ap, ok := m.store.applicants[a.ApplicantID]; ok {
		apCopy := *ap
		cp.Applicant = &apCopy
	}
	if p, ok := m.store.postings[a.PostingID]; ok {
		pCopy := *p
		cp.Posting = &pCopy
	}
	return &cp
}

func (m *memApplications) Create(_ context.Context, a *entity.Application) error {
	if err := m.store.failApplicationCreate; err != nil {
		m.store.failApplicationCreate = nil
		return err
	}
	for _, existing := range m.store.applications {
		if existing.ApplicantID == a.ApplicantID && existing.PostingID == a.PostingID {
			return gorm.ErrDuplicatedKey
		}
	}
	m.store.nextApplicationID++
	a.ID = m.store.nextApplicationID
	cp := *a
	cp.Applicant, cp.Posting = nil, nil
	m.store.applications[a.ID] = &cp
	return nil
}

func (m *memApplications) FindByID(_ context.Context, id uint) (*entity.Application, error) {
	a, ok := m.store.applications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m.load(a), nil
}

func (m *memApplications) FindByApplicantAndPosting(_ context.Context, applicantID, postingID uint) (*entity.Application, error) {
	for _, a := range m.store.applications {
		if a.ApplicantID == applicantID && a.PostingID == postingID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memApplications) FindAll(_ context.Context, filter repository.ListFilter) ([]*entity.Application, error) {
	search := strings.ToLower(filter.Search)
	var out []*entity.Application
	for _, a := range m.store.applications {
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, a.Status) {
			continue
		}
		loaded := m.load(a)
		if search != "" {
			haystack := strings.ToLower(loaded.Applicant.Name + "\n" + loaded.Posting.Title + "\n" + loaded.Applicant.University)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		out = append(out, loaded)
	}

	key := func(a *entity.Application) time.Time {
		if filter.OrderBy == "updated_at" {
			return a.UpdatedAt
		}
		return a.CreatedAt
	}
	sort.Slice(out, func(i, j int) bool {
		if !key(out[i]).Equal(key(out[j])) {
			return key(out[i]).After(key(out[j]))
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memApplications) UpdateStatus(_ context.Context, id uint, status entity.ApplicationStatus, at time.Time) error {
	a, ok := m.store.applications[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	a.UpdatedAt = at
	return nil
}

func (m *memApplications) Delete(_ context.Context, id uint) error {
	if _, ok := m.store.applications[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.store.applications, id)
	return nil
}

func containsStatus(statuses []entity.ApplicationStatus, s entity.ApplicationStatus) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}
