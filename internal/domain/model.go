package domain

// PageRequest holds the query state of a paginated list view: page, page
// size, a free-text keyword, and an optional entity-specific filter value
// (product category, order status, contact subject).
type PageRequest struct {
	Page    int
	Limit   int
	Keyword string
	Filter  string
}

// Paginator mirrors the pagination metadata block returned by every
// paginated query of the remote API. Field names follow the wire shape.
type Paginator struct {
	SlNo        int  `json:"slNo"`
	Prev        int  `json:"prev"`
	Next        int  `json:"next"`
	PerPage     int  `json:"perPage"`
	TotalPosts  int  `json:"totalPosts"`
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	HasPrevPage bool `json:"hasPrevPage"`
	HasNextPage bool `json:"hasNextPage"`
	TotalDocs   int  `json:"totalDocs"`
}

// PageResult is one page of entities plus its paginator metadata.
type PageResult[T any] struct {
	Data      []T       `json:"data"`
	Paginator Paginator `json:"paginator"`
}
