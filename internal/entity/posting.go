package entity

import "time"

const (
	PostingStatusOpen   = "open"
	PostingStatusClosed = "closed"
)

// DateLayout is the wire and query format of calendar dates.
const DateLayout = "2006-01-02"

// Posting is an internship opening ("lowongan"). OpenDate and CloseDate are
// calendar dates stored as midnight UTC.
type Posting struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	DepartmentID uint       `gorm:"not null;index:idx_postings_open_department,priority:2" json:"department_id"`
	Department   Department `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"department"`
	OpenDate     time.Time  `gorm:"type:date;not null;index:idx_postings_open_department,priority:1" json:"open_date"`
	CloseDate    time.Time  `gorm:"type:date;not null;index" json:"close_date"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsOpen reports whether the posting still accepts applicants on today.
// A posting closing today is open.
func (p *Posting) IsOpen(today time.Time) bool {
	return !CalendarDate(p.CloseDate).Before(CalendarDate(today))
}

func (p *Posting) Status(today time.Time) string {
	if p.IsOpen(today) {
		return PostingStatusOpen
	}
	return PostingStatusClosed
}

// Today returns the calendar date of now as seen in loc, at midnight UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalendarDate drops the clock part of t, keeping its own year, month and day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
