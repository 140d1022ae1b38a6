package httpx

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	// maxOffset keeps OFFSET within the int4 range the queries bind it as.
	maxOffset = math.MaxInt32
)

// Pagination is a parsed ?page=&limit= pair. Page is 1-based.
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the number of records to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is the envelope for paginated list responses.
type Page[T any] struct {
	Data  []T `json:"data"`
	Page  int `json:"page"  example:"1"`
	Limit int `json:"limit" example:"20"`
	Total int `json:"total" example:"42"`
}

// NewPage wraps data with the pagination that produced it.
func NewPage[T any](data []T, p Pagination, total int) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{Data: data, Page: p.Page, Limit: p.Limit, Total: total}
}

// ParsePagination reads page and limit from the query string. Missing values
// default to page 1 and DefaultPageLimit; limit is capped at MaxPageLimit.
// A page whose offset would not fit in an int32 is rejected.
func ParsePagination(r *http.Request) (Pagination, error) {
	p := Pagination{Page: 1, Limit: DefaultPageLimit}
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, fmt.Errorf("page must be a positive integer")
		}
		p.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, fmt.Errorf("limit must be a positive integer")
		}
		p.Limit = min(n, MaxPageLimit)
	}
	if p.Page-1 > maxOffset/p.Limit {
		return p, fmt.Errorf("page %d is out of range for limit %d", p.Page, p.Limit)
	}
	return p, nil
}
