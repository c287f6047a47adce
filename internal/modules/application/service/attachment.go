package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"anoa.com/magangportal/internal/modules/application/dto"
	"anoa.com/magangportal/pkg/apperror"
)

const (
	MaxCVSize    = 2 << 20
	cvExtension  = ".pdf"
	reasonFormat = "CV harus berformat PDF"
)

// ValidateCV checks the CV name and size. Content is never inspected.
func ValidateCV(cv dto.CVFile) error {
	if cv.Reader == nil || cv.FileName == "" {
		return apperror.InvalidAttachment("CV wajib diunggah")
	}
	if !strings.EqualFold(filepath.Ext(cv.FileName), cvExtension) {
		return apperror.InvalidAttachment(reasonFormat)
	}
	if cv.Size <= 0 {
		return apperror.InvalidAttachment("file CV kosong")
	}
	if cv.Size > MaxCVSize {
		return apperror.InvalidAttachment(fmt.Sprintf("ukuran CV maksimal %d MB", MaxCVSize>>20))
	}
	return nil
}
