package model

// RelationFilter selects which entities a listing returns.
type RelationFilter int

const (
	// FilterAll returns every entity.
	FilterAll RelationFilter = iota
	// FilterNoRelations returns entities with no enrollment rows.
	FilterNoRelations
)

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Offset        int64 `json:"offset"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	IsLastPage    bool  `json:"isLastPage"`
	TotalElements int64 `json:"totalElements"`
}

// Page is a slice of a filtered, creation-ordered result set.
type Page[T any] struct {
	Content    []T        `json:"content"`
	Pagination Pagination `json:"pagination"`
}

// NewPage builds a page. A nil content slice is replaced with an empty one.
func NewPage[T any](content []T, pageNumber, pageSize int, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	offset := int64(pageNumber) * int64(pageSize)
	return Page[T]{
		Content: content,
		Pagination: Pagination{
			Offset:        offset,
			PageNumber:    pageNumber,
			PageSize:      pageSize,
			IsLastPage:    offset+int64(pageSize) >= total,
			TotalElements: total,
		},
	}
}
