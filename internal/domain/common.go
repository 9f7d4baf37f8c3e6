package domain

// Descriptive paging values. Lists are never actually paged.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

// PaginatedResponse wraps a list result
type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// NewPaginatedResponse returns every item as a single page
func NewPaginatedResponse[T any](items []T) *PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginatedResponse[T]{
		Data:       items,
		Total:      len(items),
		Page:       DefaultPage,
		PageSize:   DefaultPageSize,
		TotalPages: 1,
	}
}
