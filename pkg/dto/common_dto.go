package dto

// SearchFilter is the query string accepted by every list endpoint.
type SearchFilter struct {
	Search string `form:"search"`
}

type IDRequest struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

type ListMeta struct {
	TotalItems int64 `json:"total_items"`
}

type DepartmentSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type PostingSummary struct {
	ID         uint              `json:"id"`
	Title      string            `json:"title"`
	Department DepartmentSummary `json:"department"`
}
