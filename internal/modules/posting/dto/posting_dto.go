package dto

import commonDto "anoa.com/magangportal/pkg/dto"

type PostingRequest struct {
	Title        string `json:"title" binding:"required,max=255"`
	Description  string `json:"description" binding:"required"`
	DepartmentID uint   `json:"department_id" binding:"required,min=1"`
	OpenDate     string `json:"open_date" binding:"required,datetime=2006-01-02"`
	CloseDate    string `json:"close_date" binding:"required,datetime=2006-01-02"`
}

type PostingFilter struct {
	Search       string `form:"search"`
	DepartmentID uint   `form:"department_id"`
	Status       string `form:"status" binding:"omitempty,oneof=open closed"`
}

type SearchPostingRequest struct {
	Query string `form:"q" binding:"required,max=200"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

type PostingResponse struct {
	ID          uint                        `json:"id"`
	Title       string                      `json:"title"`
	Description string                      `json:"description"`
	Department  commonDto.DepartmentSummary `json:"department"`
	OpenDate    string                      `json:"open_date"`
	CloseDate   string                      `json:"close_date"`
	Status      string                      `json:"status"`
}

type PostingListResponse struct {
	Items      []PostingResponse `json:"items"`
	TotalItems int64             `json:"total_items"`
}
