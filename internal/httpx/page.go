package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// PageQuery is the page/limit pair requested by a listing endpoint.
type PageQuery struct {
	Page  int
	Limit int
}

func (p PageQuery) Offset() int { return (p.Page - 1) * p.Limit }

// Pagination is the pagination object returned with listings.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// PageFrom reads ?page=&limit= with defaults 1 and 10; limit is capped at 100.
func PageFrom(c *gin.Context) PageQuery {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return PageQuery{Page: page, Limit: limit}
}

func NewPagination(p PageQuery, total int64) Pagination {
	pages := int64(0)
	if p.Limit > 0 {
		pages = (total + int64(p.Limit) - 1) / int64(p.Limit)
	}
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}
}
