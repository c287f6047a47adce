package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/magangportal/internal/entity"
	"anoa.com/magangportal/internal/modules/application/dto"
	"anoa.com/magangportal/pkg/apperror"
	"gorm.io/gorm"
)

// SetStatus overwrites the status with approved or rejected, whatever the
// current status, and refreshes updated_at.
func (s *applicationService) SetStatus(ctx context.Context, id uint, req dto.UpdateStatusRequest) (*dto.ApplicationResponse, error) {
	status := entity.ApplicationStatus(req.Status)
	if !status.Settable() {
		return nil, apperror.New(
			apperror.ErrInvalidTargetStatus,
			fmt.Sprintf("status %q tidak valid, gunakan approved atau rejected", req.Status),
			nil,
		).WithMeta("allowed", []string{string(entity.StatusApproved), string(entity.StatusRejected)})
	}

	if err := s.repo.UpdateStatus(ctx, id, status, s.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("pendaftaran tidak ditemukan")
		}
		return nil, err
	}

	application, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.metrics.IncStatusTransition(string(status))
	return toResponse(application), nil
}
