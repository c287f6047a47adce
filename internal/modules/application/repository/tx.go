package repository

import (
	"context"

	applicantRepo "anoa.com/magangportal/internal/modules/applicant/repository"
	postingRepo "anoa.com/magangportal/internal/modules/posting/repository"
	"gorm.io/gorm"
)

// Stores are the repositories bound to one transaction.
type Stores struct {
	Postings     postingRepo.PostingRepository
	Applicants   applicantRepo.ApplicantRepository
	Applications ApplicationRepository
}

// Transactor runs fn inside a single database transaction. Returning an
// error from fn rolls everything back.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(stores Stores) error) error
}

type gormTransactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) RunInTx(ctx context.Context, fn func(stores Stores) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Stores{
			Postings:     postingRepo.NewPostingRepository(tx),
			Applicants:   applicantRepo.NewApplicantRepository(tx),
			Applications: NewApplicationRepository(tx),
		})
	})
}
