package dto

import "time"

type StatsResponse struct {
	TotalApplicants   int64 `json:"total_applicants"`
	GrowthPercentage  int   `json:"growth_percentage"`
	ActivePostings    int64 `json:"active_postings"`
	ActiveDepartments int64 `json:"active_departments"`
	PendingReview     int64 `json:"pending_review"`
	AcceptanceRate    int   `json:"acceptance_rate"`
	TotalApproved     int64 `json:"total_approved"`
}

// ChartResponse is a labelled series, oldest or largest first.
type ChartResponse struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

type RecentFilter struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

type RecentApplicationItem struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Initials   string    `json:"initials"`
	NationalID string    `json:"national_id"`
	Position   string    `json:"position"`
	University string    `json:"university"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
