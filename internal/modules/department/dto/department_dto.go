package dto

type DepartmentRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type DepartmentResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	PostingCount int64  `json:"posting_count"`
}

type DepartmentListResponse struct {
	Items      []DepartmentResponse `json:"items"`
	TotalItems int64                `json:"total_items"`
}
