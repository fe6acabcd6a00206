package response

import "cinema-manager/internal/dto/request"

type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

// Paginate cuts the requested page out of an already ordered list.
func Paginate[T any](items []T, req request.PaginatedRequest) *PaginatedResponse[T] {
	perPage := req.Limit()
	total := len(items)

	start := req.Offset()
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	page := make([]T, end-start)
	copy(page, items[start:end])

	return &PaginatedResponse[T]{
		Data: page,
		Pagination: PaginationMeta{
			Total:      int64(total),
			Page:       max(req.Page, 1),
			PerPage:    perPage,
			TotalPages: (total + perPage - 1) / perPage,
		},
	}
}
