package entity

import (
	"strings"
	"time"
)

const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// Applicant is a person identified by their national id (NIK). One
// applicant may apply to many postings.
type Applicant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	NationalID  string    `gorm:"size:20;uniqueIndex;not null" json:"national_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Gender      string    `gorm:"size:1;not null" json:"gender"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Address     string    `gorm:"type:text;not null" json:"address"`
	Phone       string    `gorm:"size:20;not null" json:"phone"`
	University  string    `gorm:"size:255;not null" json:"university"`
	Major       string    `gorm:"size:255;not null" json:"major"`
	GPA         *float64  `gorm:"type:numeric(3,2)" json:"gpa"`
	CVFileRef   string    `gorm:"type:text;not null" json:"cv_file_ref"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// GenderLabel returns the display label for a gender code.
func GenderLabel(code string) string {
	switch code {
	case GenderMale:
		return "Laki-laki"
	case GenderFemale:
		return "Perempuan"
	}
	return code
}

// Initials returns up to two uppercase initials of name.
func Initials(name string) string {
	var b strings.Builder
	for i, part := range strings.Fields(name) {
		if i == 2 {
			break
		}
		b.WriteString(strings.ToUpper(string([]rune(part)[0])))
	}
	return b.String()
}
