package queries

import (
	"math"

	"logistics/internal/pkg/errs"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination is a validated page request. Zero values select the first page
// and DefaultPageSize.
type Pagination struct {
	page int
	size int
}

func NewPagination(page, size int) (Pagination, error) {
	if page == 0 {
		page = 1
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if size < 1 || size > MaxPageSize {
		return Pagination{}, errs.NewValueIsOutOfRangeError("size", size, 1, MaxPageSize)
	}
	// Offset must stay representable.
	if maxPage := math.MaxInt/size + 1; page < 1 || page > maxPage {
		return Pagination{}, errs.NewValueIsOutOfRangeError("page", page, 1, maxPage)
	}
	return Pagination{page: page, size: size}, nil
}

func (p Pagination) Page() int   { return p.page }
func (p Pagination) Size() int   { return p.size }
func (p Pagination) Offset() int { return (p.page - 1) * p.size }

// PageInfo describes the page a listing response holds.
type PageInfo struct {
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

func (p Pagination) info(total int64) PageInfo {
	return PageInfo{Page: p.page, Size: p.size, Total: total}
}
