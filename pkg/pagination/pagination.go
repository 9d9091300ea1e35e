package pagination

import (
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is the storefront grid page size.
	DefaultPageSize = 12
	// MaxPageSize caps how many rows any paginated query can request.
	MaxPageSize = 100
)

// Params holds page-number pagination inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// PageInfo describes the slice of results returned alongside the rows.
type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// Normalize clamps the params to valid values.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// NewPageInfo computes page metadata from the total row count.
func NewPageInfo(params Params, totalItems int64) PageInfo {
	n := params.Normalize()
	totalPages := int((totalItems + int64(n.PageSize) - 1) / int64(n.PageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	return PageInfo{
		Page:       n.Page,
		PageSize:   n.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// ParsePage reads a page query parameter, treating blank or malformed input
// as the first page.
func ParsePage(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
