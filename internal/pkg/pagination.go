package pkg

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/admin-console/internal/domain"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ParsePageRequest extracts list-query parameters from the request query
// string: page, limit, keyword, and an optional filter value. Out-of-range
// values are normalized rather than rejected so a stale or hand-edited URL
// still renders a sensible page.
func ParsePageRequest(c *gin.Context) domain.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if page < 1 {
		page = defaultPage
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return domain.PageRequest{
		Page:    page,
		Limit:   limit,
		Keyword: c.Query("keyword"),
		Filter:  c.Query("filter"),
	}
}

// ClampPage returns the page the caller should actually be on given the
// paginator the server reported. A page beyond the last page snaps to the
// last page; a server reporting zero pages snaps to page 1.
func ClampPage(page int, p domain.Paginator) int {
	if p.TotalPages < 1 {
		return 1
	}
	if page > p.TotalPages {
		return p.TotalPages
	}
	if page < 1 {
		return 1
	}
	return page
}
