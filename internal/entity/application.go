package entity

import "time"

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the stored statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Settable reports whether staff may move an application into s.
// Pending is only ever the initial status.
func (s ApplicationStatus) Settable() bool {
	return s == StatusApproved || s == StatusRejected
}

// Application pairs an Applicant with a Posting. At most one row exists per
// (applicant_id, posting_id).
type Application struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	ApplicantID uint              `gorm:"not null;uniqueIndex:idx_applications_applicant_posting,priority:1" json:"applicant_id"`
	Applicant   *Applicant        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"applicant,omitempty"`
	PostingID   uint              `gorm:"not null;uniqueIndex:idx_applications_applicant_posting,priority:2;index" json:"posting_id"`
	Posting     *Posting          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"posting,omitempty"`
	Status      ApplicationStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	CreatedAt   time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"index" json:"updated_at"`
}
