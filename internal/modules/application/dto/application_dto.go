package dto

import (
	"io"
	"time"

	commonDto "anoa.com/magangportal/pkg/dto"
)

// SubmitRequest is the public application form. The CV arrives as the
// multipart file "cv".
type SubmitRequest struct {
	PostingID   uint     `form:"posting_id" binding:"required,min=1"`
	NationalID  string   `form:"national_id" binding:"required,numeric,max=20"`
	Name        string   `form:"name" binding:"required,max=255"`
	Gender      string   `form:"gender" binding:"required,gender"`
	DateOfBirth string   `form:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Address     string   `form:"address" binding:"required"`
	Phone       string   `form:"phone" binding:"required,max=20"`
	University  string   `form:"university" binding:"required,max=255"`
	Major       string   `form:"major" binding:"required,max=255"`
	GPA         *float64 `form:"gpa" binding:"omitempty,gte=0,lte=4"`
}

// CVFile is the uploaded curriculum vitae.
type CVFile struct {
	Reader   io.Reader
	FileName string
	Size     int64
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type HistoryFilter struct {
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,oneof=approved rejected"`
}

type ApplicationResponse struct {
	ID          uint      `json:"id"`
	ApplicantID uint      `json:"applicant_id"`
	PostingID   uint      `json:"posting_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ApplicationListItem struct {
	ID         uint                     `json:"id"`
	Name       string                   `json:"name"`
	Initials   string                   `json:"initials"`
	NationalID string                   `json:"national_id"`
	University string                   `json:"university"`
	Posting    commonDto.PostingSummary `json:"posting"`
	Status     string                   `json:"status"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

type ApplicationListResponse struct {
	Items      []ApplicationListItem `json:"items"`
	TotalItems int64                 `json:"total_items"`
}

type ApplicantDetail struct {
	ID          uint      `json:"id"`
	NationalID  string    `json:"national_id"`
	Name        string    `json:"name"`
	Gender      string    `json:"gender"`
	GenderLabel string    `json:"gender_label"`
	DateOfBirth string    `json:"date_of_birth"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	University  string    `json:"university"`
	Major       string    `json:"major"`
	GPA         *float64  `json:"gpa"`
	CVURL       string    `json:"cv_url"`
	CVFileName  string    `json:"cv_file_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type ApplicationDetailResponse struct {
	ID        uint                     `json:"id"`
	Status    string                   `json:"status"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
	Applicant ApplicantDetail          `json:"applicant"`
	Posting   commonDto.PostingSummary `json:"posting"`
}
