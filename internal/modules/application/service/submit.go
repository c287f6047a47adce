package service

import (
	"context"
	"errors"
	"math"

	"anoa.com/magangportal/internal/entity"
	"anoa.com/magangportal/internal/modules/application/dto"
	"anoa.com/magangportal/internal/modules/application/repository"
	"anoa.com/magangportal/pkg/apperror"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// errApplicantRace marks a lost race on the national id unique index.
var errApplicantRace = errors.New("applicant created concurrently")

// submission carries the state of one Submit call across attempts.
type submission struct {
	req dto.SubmitRequest
	cv  dto.CVFile

	// uploadedCV is the stored CV, set once the file has been uploaded.
	uploadedCV string
	// cvUsed is true when the committed applicant references uploadedCV.
	cvUsed bool
}

// Submit runs the submission guard:
//
//  1. the posting must exist
//  2. an applicant is found by national id, or created from the form
//  3. an applicant may apply to a posting once, whatever the earlier status
//  4. the CV must be a non-empty PDF of at most 2 MiB
//  5. the application is stored as pending
//
// All writes share one transaction. A concurrent first submission for the
// same national id is retried once so it reuses the committed applicant.
func (s *applicationService) Submit(ctx context.Context, req dto.SubmitRequest, cv dto.CVFile) (*dto.ApplicationResponse, error) {
	sub := &submission{req: req, cv: cv}

	application, err := s.submitOnce(ctx, sub)
	if errors.Is(err, errApplicantRace) {
		s.logger.Info("retrying submission after concurrent applicant insert", zap.String("national_id", req.NationalID))
		application, err = s.submitOnce(ctx, sub)
		if errors.Is(err, errApplicantRace) {
			err = duplicateSubmission(entity.StatusPending)
		}
	}

	if sub.uploadedCV != "" && (err != nil || !sub.cvUsed) {
		s.discardCV(sub.uploadedCV)
	}

	if err != nil {
		s.metrics.IncSubmission(apperror.KindOf(err))
		return nil, err
	}

	s.metrics.IncSubmission("accepted")
	return toResponse(application), nil
}

func (s *applicationService) submitOnce(ctx context.Context, sub *submission) (*entity.Application, error) {
	var created *entity.Application
	sub.cvUsed = false

	err := s.tx.RunInTx(ctx, func(st repository.Stores) error {
		if _, err := st.Postings.FindByID(ctx, sub.req.PostingID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("lowongan tidak ditemukan")
			}
			return err
		}

		applicant, err := st.Applicants.FindByNationalID(ctx, sub.req.NationalID)
		switch {
		case err == nil:
			existing, err := st.Applications.FindByApplicantAndPosting(ctx, applicant.ID, sub.req.PostingID)
			if err == nil {
				return duplicateSubmission(existing.Status)
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := ValidateCV(sub.cv); err != nil {
				return err
			}

		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := ValidateCV(sub.cv); err != nil {
				return err
			}
			applicant, err = s.newApplicant(ctx, sub)
			if err != nil {
				return err
			}
			if err := st.Applicants.Create(ctx, applicant); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return errApplicantRace
				}
				return err
			}
			sub.cvUsed = true

		default:
			return err
		}

		now := s.now()
		application := &entity.Application{
			ApplicantID: applicant.ID,
			PostingID:   sub.req.PostingID,
			Status:      entity.StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := st.Applications.Create(ctx, application); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return duplicateSubmission(entity.StatusPending)
			}
			return err
		}

		created = application
		return nil
	})
	if err != nil {
		sub.cvUsed = false
		return nil, err
	}
	return created, nil
}

// newApplicant builds the applicant from the form and uploads the CV. The
// upload happens at most once per Submit call.
func (s *applicationService) newApplicant(ctx context.Context, sub *submission) (*entity.Applicant, error) {
	dob, err := entity.ParseDate(sub.req.DateOfBirth)
	if err != nil {
		return nil, apperror.InvalidInput("tanggal lahir harus berformat YYYY-MM-DD")
	}
	if sub.req.Gender != entity.GenderMale && sub.req.Gender != entity.GenderFemale {
		return nil, apperror.InvalidInput("jenis kelamin harus M atau F")
	}

	var gpa *float64
	if sub.req.GPA != nil {
		if *sub.req.GPA < 0 || *sub.req.GPA > 4 {
			return nil, apperror.InvalidInput("IPK harus di antara 0.00 dan 4.00")
		}
		rounded := math.Round(*sub.req.GPA*100) / 100
		gpa = &rounded
	}

	if sub.uploadedCV == "" {
		url, err := s.storage.Upload(ctx, sub.cv.Reader, s.cvFolder, sub.cv.FileName)
		if err != nil {
			return nil, apperror.StorageFailure(err)
		}
		sub.uploadedCV = url
	}

	return &entity.Applicant{
		NationalID:  sub.req.NationalID,
		Name:        sub.req.Name,
		Gender:      sub.req.Gender,
		DateOfBirth: dob,
		Address:     sub.req.Address,
		Phone:       sub.req.Phone,
		University:  sub.req.University,
		Major:       sub.req.Major,
		GPA:         gpa,
		CVFileRef:   sub.uploadedCV,
		CreatedAt:   s.now(),
	}, nil
}

// discardCV deletes a CV that no committed applicant references.
func (s *applicationService) discardCV(url string) {
	// The request context may already be cancelled.
	if err := s.storage.Delete(context.Background(), url); err != nil {
		s.logger.Warn("failed to delete orphaned CV", zap.String("cv_url", url), zap.Error(err))
	}
}

func duplicateSubmission(existing entity.ApplicationStatus) error {
	return apperror.New(apperror.ErrDuplicateSubmission, "anda sudah mendaftar pada lowongan ini", nil).
		WithMeta("existing_status", string(existing))
}
